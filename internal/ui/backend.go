// Package ui provides the brief synchronous prompts the launcher needs
// outside its main loop: confirmations, text input and pickers. Each
// prompt tries a list of backends in order and falls back to a plain
// stdin prompt when none of the rich backends can run.
package ui

import (
	"os"
	"strings"
)

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendHuh       = "huh"
	BackendTView     = "tview"
	BackendPlain     = "plain"
)

func NormalizeBackend(backend string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendAuto, "":
		return BackendAuto
	case BackendBubbleTea:
		return BackendBubbleTea
	case BackendHuh:
		return BackendHuh
	case BackendTView:
		return BackendTView
	case BackendPlain:
		return BackendPlain
	default:
		return BackendAuto
	}
}

// seam for tests.
var stdinIsInteractive = isStdinInteractive

func isStdinInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// backendCandidates always ends with the plain prompt so that every
// confirmation and input resolves even on degraded terminals. The rich
// backends need a terminal; on piped stdin only plain can run.
func backendCandidates(backend string) []string {
	if !stdinIsInteractive() {
		return []string{BackendPlain}
	}
	switch NormalizeBackend(backend) {
	case BackendBubbleTea:
		return []string{BackendBubbleTea, BackendHuh, BackendTView, BackendPlain}
	case BackendHuh:
		return []string{BackendHuh, BackendBubbleTea, BackendTView, BackendPlain}
	case BackendTView:
		return []string{BackendTView, BackendBubbleTea, BackendHuh, BackendPlain}
	case BackendPlain:
		return []string{BackendPlain}
	default:
		return []string{BackendHuh, BackendBubbleTea, BackendTView, BackendPlain}
	}
}
