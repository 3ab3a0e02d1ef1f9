package safety

import "regexp"

var secretWord = `[a-z0-9_-]*(?:token|secret|password|passwd|api[_-]?key|access[_-]?key)[a-z0-9_-]*`

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var secretRedactionRules = []redactionRule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(` + secretWord + `)\s*[=:]\s*([^\s"']+|"[^"]*"|'[^']*')`),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(--` + secretWord + `)\s+([^\s"']+|"[^"]*"|'[^']*')`),
		replacement: `$1 <redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer)\s+([^\s"']+)`),
		replacement: `$1 <redacted>`,
	},
}

// Redact scrubs token/password/key values from a command before it is
// written to the trace log. The command itself is never modified.
func Redact(command string) string {
	redacted := command
	for _, rule := range secretRedactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}
