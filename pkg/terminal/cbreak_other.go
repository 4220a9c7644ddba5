// ABOUTME: Fallback raw mode for platforms without a termios ioctl pair.
// ABOUTME: Uses term.MakeRaw, which also disables signal generation.

//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import "golang.org/x/term"

func cbreak(fd int) error {
	_, err := term.MakeRaw(fd)
	return err
}
