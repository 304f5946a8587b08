//go:build unix

package term

import "syscall"

// stopProcess delivers SIGTSTP to the whole process group, matching what
// the shell does for ctrl-z in cooked mode.
func stopProcess() error {
	return syscall.Kill(0, syscall.SIGTSTP)
}
