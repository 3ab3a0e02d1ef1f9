// Package launch hands the terminal over to a saved command: it writes a
// self-deleting shell script and replaces the launcher process with a shell
// running it. It also reaps scripts that earlier sessions left behind.
package launch

import (
	"fmt"
	"os"

	"github.com/quicklaunch/ql/internal/appdirs"
	"github.com/quicklaunch/ql/internal/logging"
	"github.com/quicklaunch/ql/internal/safety"
)

const defaultShell = "/bin/bash"

// Error is a recoverable handoff failure: the script could not be prepared
// or the process replacement failed. The caller stays alive and returns to
// the interactive loop.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("could not %s: %v", e.Stage, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Seams for tests and for the non-unix fallback.
var (
	execProcess = replaceProcess
	environ     = os.Environ
)

// ResolveShell picks the shell for the handoff: a configured override wins
// when it exists on disk, then the user's $SHELL, then the default.
func ResolveShell(override string) string {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override
		}
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		return defaultShell
	}
	if _, err := os.Stat(shell); err != nil {
		return defaultShell
	}
	return shell
}

// Launch writes the execution script and replaces the current process with
// the user's shell running it. On success it never returns. Every failure is
// reported as a recoverable *Error, with the script removed if it was
// already on disk.
func Launch(req Request) error {
	dir, err := appdirs.EnsureScriptDir()
	if err != nil {
		return &Error{Stage: "create script dir", Err: err}
	}

	shell := ResolveShell(req.Shell)
	path, err := writeScript(dir, req, shell)
	if err != nil {
		return &Error{Stage: "write script", Err: err}
	}

	logging.Trace("launch", map[string]string{
		"alias":   req.Alias,
		"kind":    string(req.Kind),
		"command": safety.Redact(req.Command),
		"path":    path,
	})

	if err := execProcess(shell, []string{shell, path}, environ()); err != nil {
		_ = os.Remove(path)
		return &Error{Stage: "replace process", Err: err}
	}
	return nil
}

// writeScript creates the uniquely named script file. The content is fully
// written and the file closed before the executable bit is set, so a
// half-written script is never runnable.
func writeScript(dir string, req Request, shell string) (string, error) {
	f, err := os.CreateTemp(dir, "*"+scriptSuffix)
	if err != nil {
		return "", fmt.Errorf("create script file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(Script(req, shell)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write script file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close script file: %w", err)
	}
	if err := os.Chmod(path, 0o700); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("mark script executable: %w", err)
	}
	return path, nil
}
