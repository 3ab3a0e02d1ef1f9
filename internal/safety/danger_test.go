package safety

import (
	"errors"
	"strings"
	"testing"
)

func TestIsDangerous(t *testing.T) {
	cases := []struct {
		command string
		want    bool
	}{
		{"rm -rf /var/tmp", true},
		{"rm -r /etc", true},
		{"sudo rm important.txt", true},
		{"dd if=/dev/zero of=/dev/sda", true},
		{"mkfs.ext4 /dev/sdb1", true},
		{"echo hello > /dev/sdb", true},
		{"shutdown -h now", true},
		{"ls -la", false},
		{"rm notes.txt", false},
		{"git push origin main", false},
	}
	for _, tc := range cases {
		if got := IsDangerous(tc.command); got != tc.want {
			t.Errorf("IsDangerous(%q) = %v, want %v", tc.command, got, tc.want)
		}
	}
}

func TestSuggestTypoFix(t *testing.T) {
	fixed, ok := SuggestTypoFix("gitpush origin main")
	if !ok || fixed != "git push origin main" {
		t.Fatalf("SuggestTypoFix = %q, %v", fixed, ok)
	}
	if _, ok := SuggestTypoFix("git push"); ok {
		t.Fatalf("correct command should not be flagged as typo")
	}
	if _, ok := SuggestTypoFix("   "); ok {
		t.Fatalf("blank command should not be flagged")
	}
}

func TestMissingFromPath(t *testing.T) {
	original := lookPath
	t.Cleanup(func() { lookPath = original })
	lookPath = func(name string) (string, error) {
		if name == "git" {
			return "/usr/bin/git", nil
		}
		return "", errors.New("not found")
	}

	if name, missing := MissingFromPath("definitelynotacommand --flag"); !missing || name != "definitelynotacommand" {
		t.Fatalf("MissingFromPath = %q, %v", name, missing)
	}
	if _, missing := MissingFromPath("git status"); missing {
		t.Fatalf("resolvable command flagged as missing")
	}
	if _, missing := MissingFromPath("cd /tmp"); missing {
		t.Fatalf("builtin flagged as missing")
	}
	if _, missing := MissingFromPath("./run.sh"); missing {
		t.Fatalf("relative invocation flagged as missing")
	}
	if _, missing := MissingFromPath("FOO=bar make"); missing {
		t.Fatalf("variable assignment flagged as missing")
	}
}

func TestSudoCDAlternatives(t *testing.T) {
	if !IsSudoCD("sudo cd /etc && cat passwd") {
		t.Fatalf("sudo cd chain not detected")
	}
	if IsSudoCD("sudo ls /etc") {
		t.Fatalf("plain sudo flagged as sudo cd")
	}

	alts := SudoCDAlternatives("sudo cd /etc && cat passwd")
	if len(alts) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alts))
	}
	if alts[0].Command != "cd /etc && cat passwd" {
		t.Errorf("first alternative = %q", alts[0].Command)
	}
	if alts[1].Command != "cd /etc && sudo cat passwd" {
		t.Errorf("second alternative = %q", alts[1].Command)
	}
	if !strings.HasPrefix(alts[2].Command, `sudo bash -c "`) {
		t.Errorf("third alternative = %q", alts[2].Command)
	}

	if alts := SudoCDAlternatives("sudo cd /etc"); alts != nil {
		t.Fatalf("unchained sudo cd should yield no alternatives")
	}
}
