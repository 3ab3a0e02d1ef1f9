package safety

import (
	"os/exec"
	"strings"
)

var commonTypos = map[string]string{
	"cd..":       "cd ..",
	"ls-la":      "ls -la",
	"gitcommit":  "git commit",
	"gitpush":    "git push",
	"gitpull":    "git pull",
	"npminstall": "npm install",
	"dockerrun":  "docker run",
}

// shell builtins that never resolve through PATH.
var builtinWords = map[string]bool{
	"cd":     true,
	"export": true,
	"source": true,
	".":      true,
}

// seam for PATH lookups in tests.
var lookPath = exec.LookPath

// SuggestTypoFix returns a corrected command when its first word is a
// known typo, e.g. "gitpush origin" becomes "git push origin".
func SuggestTypoFix(command string) (string, bool) {
	words := strings.Fields(command)
	if len(words) == 0 {
		return "", false
	}
	fix, ok := commonTypos[words[0]]
	if !ok {
		return "", false
	}
	return strings.Replace(command, words[0], fix, 1), true
}

// MissingFromPath reports the first word of the command when it cannot
// be resolved through PATH. Builtins, relative invocations and leading
// variable assignments are never flagged.
func MissingFromPath(command string) (string, bool) {
	words := strings.Fields(command)
	if len(words) == 0 {
		return "", false
	}
	name := words[0]
	if strings.HasPrefix(name, "./") || strings.Contains(name, "=") || builtinWords[name] {
		return "", false
	}
	if _, err := lookPath(name); err != nil {
		return name, true
	}
	return "", false
}
