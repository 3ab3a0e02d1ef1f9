//go:build windows

package launch

import (
	"os"
	"os/exec"
)

// replaceProcess has no true exec on this platform: spawn the shell, wait
// for it, then exit with its status. Behaviorally equivalent for an
// interactive handoff, with one extra process layer.
func replaceProcess(argv0 string, argv []string, envv []string) error {
	cmd := exec.Command(argv0, argv[1:]...)
	cmd.Env = envv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
