//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// disableCtrlCEcho turns off ECHOCTL so an interrupt does not print "^C" into the
// middle of the progress output. the returned func puts the terminal back.
func disableCtrlCEcho() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	state, err := unix.IoctlGetTermios(fd, termiosGetReq)
	if err != nil {
		return func() {}
	}

	saved := *state
	state.Lflag &^= unix.ECHOCTL
	if err := unix.IoctlSetTermios(fd, termiosSetReq, state); err != nil {
		return func() {}
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, termiosSetReq, &saved) // best effort
	}
}
