//go:build windows

package notify

import "os/exec"

// setupProcessGroup keeps the default exec cancellation on windows, only the script itself is killed.
func setupProcessGroup(*exec.Cmd) {}
