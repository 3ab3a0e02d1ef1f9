package match

import "testing"

func TestMatchesEmptyPattern(t *testing.T) {
	for _, haystack := range []string{"", "abc", "npm run build", "日本語"} {
		if !Matches(haystack, "") {
			t.Fatalf("empty pattern should match %q", haystack)
		}
	}
}

func TestMatchesSubstring(t *testing.T) {
	cases := []struct {
		haystack string
		pattern  string
	}{
		{"npm run build", "run"},
		{"npm run build", "npm run build"},
		{"Docker Compose Up", "compose"},
		{"BACKUP", "backup"},
	}
	for _, tc := range cases {
		if !Matches(tc.haystack, tc.pattern) {
			t.Fatalf("Matches(%q, %q) = false, want true", tc.haystack, tc.pattern)
		}
	}
}

func TestMatchesSubsequence(t *testing.T) {
	if !Matches("abc", "ac") {
		t.Fatalf("subsequence ac should match abc")
	}
	if Matches("abc", "ca") {
		t.Fatalf("out-of-order pattern ca must not match abc")
	}
	if !Matches("git commit --amend", "gca") {
		t.Fatalf("gca should match git commit --amend")
	}
}

func TestMatchesCaseFold(t *testing.T) {
	if !Matches("Git Push Origin", "gpo") {
		t.Fatalf("case-insensitive subsequence should match")
	}
}

func TestMatchesNoMatch(t *testing.T) {
	if Matches("deploy", "xyz") {
		t.Fatalf("xyz must not match deploy")
	}
	if Matches("", "a") {
		t.Fatalf("non-empty pattern must not match empty haystack")
	}
}

func TestMatchesAny(t *testing.T) {
	if !MatchesAny("ba", "deploy", "tar -czf backup.tar.gz") {
		t.Fatalf("pattern should match second field")
	}
	if MatchesAny("zzz", "deploy", "build") {
		t.Fatalf("pattern must not match any field")
	}
	if !MatchesAny("") {
		t.Fatalf("empty pattern matches even with no fields")
	}
}
