//go:build !windows

package notify

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// killGrace is the pause between SIGTERM and SIGKILL.
const killGrace = 100 * time.Millisecond

// setupProcessGroup runs cmd in its own process group. on context cancel the whole
// group gets SIGTERM and then SIGKILL, so children the script spawned die with it.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error { return killProcessGroup(cmd.Process.Pid) }
	cmd.WaitDelay = time.Second
}

func killProcessGroup(pid int) error {
	pgid := -pid
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return fmt.Errorf("sigterm process group %d: %w", pid, err)
	}

	time.Sleep(killGrace)

	// ESRCH means the group exited after SIGTERM
	if err := syscall.Kill(pgid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("sigkill process group %d: %w", pid, err)
	}
	return nil
}
