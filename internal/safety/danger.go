// Package safety inspects commands before they are handed off to the
// shell: dangerous-pattern detection, first-word typo correction, PATH
// lookups and secret redaction for log output.
package safety

import (
	"regexp"
	"strings"
)

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brm\s+-rf?\s+/`),
	regexp.MustCompile(`(?i)\bshutdown\b`),
	regexp.MustCompile(`(?i)\breboot\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bformat\b`),
	regexp.MustCompile(`(?i)>\s*/dev/sd[a-z]`),
	regexp.MustCompile(`(?i)\bsudo\b.*\brm\b`),
}

// IsDangerous reports whether the command matches a known destructive
// pattern and should be confirmed before execution.
func IsDangerous(command string) bool {
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(command) {
			return true
		}
	}
	return false
}

// SudoCDAlternative is one suggested rewrite of a "sudo cd" chain.
type SudoCDAlternative struct {
	Command string
	Note    string
}

// IsSudoCD reports whether the command starts with "sudo cd", which
// never does what the author intends inside a command chain.
func IsSudoCD(command string) bool {
	return strings.HasPrefix(strings.TrimSpace(command), "sudo cd ")
}

// SudoCDAlternatives suggests working rewrites of a "sudo cd dir && rest"
// chain. It returns nil when the command has no chained remainder.
func SudoCDAlternatives(command string) []SudoCDAlternative {
	parts := strings.SplitN(command, "&&", 2)
	if len(parts) != 2 {
		return nil
	}
	cdPart := strings.TrimSpace(parts[0])
	rest := strings.TrimSpace(parts[1])
	plainCD := strings.TrimSpace(strings.Replace(cdPart, "sudo cd", "cd", 1))

	return []SudoCDAlternative{
		{
			Command: plainCD + " && " + rest,
			Note:    "Change directory first, then run command normally",
		},
		{
			Command: plainCD + " && sudo " + rest,
			Note:    "Change directory first, then run command with sudo",
		},
		{
			Command: `sudo bash -c "` + strings.TrimPrefix(cdPart, "sudo ") + " && " + rest + `"`,
			Note:    "Run entire chain in sudo subshell",
		},
	}
}
