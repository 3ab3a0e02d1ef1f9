package ui

import "github.com/atotto/clipboard"

// seams for tests.
var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

// ClipboardAvailable reports whether a system clipboard can be reached.
func ClipboardAvailable() bool {
	return !clipboardUnsupported()
}

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	return writeClipboard(text)
}
