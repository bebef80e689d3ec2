//go:build !darwin && !freebsd && !openbsd && !netbsd && !dragonfly && !windows

package main

import "golang.org/x/sys/unix"

// linux and the remaining unixes use TCGETS/TCSETS.
const (
	termiosGetReq = unix.TCGETS
	termiosSetReq = unix.TCSETS
)
