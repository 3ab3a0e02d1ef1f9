package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	cmds := NewCommands()
	cmds.Set("build", Command{Command: "npm run build"})
	cmds.Set("deploy", Command{Kind: KindChain, Command: "git pull && make deploy"})

	path := filepath.Join(t.TempDir(), "export.json")
	if err := cmds.Export(path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// The payload must be valid JSON with the interchange envelope.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export failed: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, field := range []string{"commands", "exported_at", "version"} {
		if _, ok := envelope[field]; !ok {
			t.Fatalf("export missing %q field", field)
		}
	}

	imported, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if imported.Len() != 2 {
		t.Fatalf("expected 2 imported commands, got %d", imported.Len())
	}
	cmd, err := imported.Get("deploy")
	if err != nil {
		t.Fatalf("Get deploy failed: %v", err)
	}
	if cmd.Kind != KindChain {
		t.Fatalf("chain kind lost through export/import")
	}
}

func TestImportBareCommandMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	payload := []byte(`{"build": "npm run build", "test": {"command": "go test ./..."}}`)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	imported, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if imported.Len() != 2 {
		t.Fatalf("expected 2 commands, got %d", imported.Len())
	}
}

func TestConflictsAndMerge(t *testing.T) {
	existing := NewCommands()
	existing.Set("build", Command{Command: "old build"})
	existing.Set("logs", Command{Command: "tail"})

	incoming := NewCommands()
	incoming.Set("build", Command{Command: "new build"})
	incoming.Set("deploy", Command{Command: "make deploy"})

	conflicts := existing.Conflicts(incoming)
	if len(conflicts) != 1 || conflicts[0] != "build" {
		t.Fatalf("unexpected conflicts: %v", conflicts)
	}

	count := existing.Merge(incoming)
	if count != 2 {
		t.Fatalf("expected 2 merged, got %d", count)
	}
	cmd, _ := existing.Get("build")
	if cmd.Command != "new build" {
		t.Fatalf("merge must overwrite existing alias")
	}
	if existing.Len() != 3 {
		t.Fatalf("expected 3 commands after merge, got %d", existing.Len())
	}
}
