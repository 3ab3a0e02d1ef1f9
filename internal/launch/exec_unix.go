//go:build !windows

package launch

import "syscall"

// replaceProcess swaps the launcher's process image for the shell running
// the generated script. On success it does not return.
func replaceProcess(argv0 string, argv []string, envv []string) error {
	return syscall.Exec(argv0, argv, envv)
}
