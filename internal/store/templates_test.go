package store

import (
	"path/filepath"
	"testing"
)

func TestExtractPlaceholders(t *testing.T) {
	cases := []struct {
		body string
		want []string
	}{
		{"git clone {repo} && cd {project}", []string{"repo", "project"}},
		{"docker run -p {port}:{port} {image}", []string{"port", "image"}},
		{"echo hello", []string{}},
		{"{a} {b} {a} {c} {b}", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		got := ExtractPlaceholders(tc.body)
		if len(got) != len(tc.want) {
			t.Fatalf("ExtractPlaceholders(%q) = %v, want %v", tc.body, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("ExtractPlaceholders(%q) = %v, want %v", tc.body, got, tc.want)
			}
		}
	}
}

func TestFillPlaceholders(t *testing.T) {
	body := "docker run -p {port}:{port} {image}"
	got := FillPlaceholders(body, map[string]string{"port": "8080", "image": "web"})
	want := "docker run -p 8080:8080 web"
	if got != want {
		t.Fatalf("FillPlaceholders = %q, want %q", got, want)
	}
}

func TestSetRecomputesPlaceholders(t *testing.T) {
	tmpl := DefaultTemplates()
	tmpl.Set("custom", Template{Template: "scp {file} {host}:{dest}"})
	got, err := tmpl.Get("custom")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	want := []string{"file", "host", "dest"}
	if len(got.Placeholders) != len(want) {
		t.Fatalf("placeholders = %v, want %v", got.Placeholders, want)
	}
	if got.Description == "" {
		t.Fatalf("expected default description to be filled")
	}
}

func TestLoadTemplatesCreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	tmpl, path, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if tmpl.Len() == 0 {
		t.Fatalf("expected default templates")
	}
	if !tmpl.Has("backup") || !tmpl.Has("git-setup") {
		t.Fatalf("default template set incomplete: %v", tmpl.Names())
	}

	// The defaults must have been written so the file is user-editable.
	again, _, err := LoadTemplates()
	if err != nil {
		t.Fatalf("second LoadTemplates failed: %v", err)
	}
	if again.Len() != tmpl.Len() {
		t.Fatalf("template file not persisted at %s", path)
	}
}

func TestLoadTemplatesRecreatesOnGarbage(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	tmpl := DefaultTemplates()
	path := filepath.Join(home, ".local", "state", "ql", "templates.json")
	if err := tmpl.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := writeFileAtomic(path, []byte("not json")); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}
	loaded, _, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if loaded.Len() == 0 {
		t.Fatalf("expected defaults after corrupt file")
	}
}

func TestStatsRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	stats, path := LoadStats()
	stats.RecordUse("build")
	stats.RecordUse("build")
	stats.RecordUse("deploy")
	if err := stats.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, _ := LoadStats()
	if loaded.Count("build") != 2 {
		t.Fatalf("expected build count 2, got %d", loaded.Count("build"))
	}
	if loaded.TotalUses() != 3 {
		t.Fatalf("expected total 3, got %d", loaded.TotalUses())
	}
	loaded.Forget("build")
	if loaded.Count("build") != 0 {
		t.Fatalf("expected forgotten alias to report 0")
	}
}
