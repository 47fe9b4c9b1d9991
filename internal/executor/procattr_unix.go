//go:build unix

package executor

import (
	"os/exec"
	"syscall"
)

// configureProcess starts the child in its own process group and kills the
// whole group on cancellation, so grandchildren holding the output pipes die
// with it.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
