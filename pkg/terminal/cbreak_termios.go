// ABOUTME: Installs non-canonical, no-echo input via termios on Linux and the BSDs.
// ABOUTME: Unlike term.MakeRaw it keeps ISIG and output processing untouched.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// cbreak clears ICANON and ECHO and asks for one byte per read.
func cbreak(fd int) error {
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}

	tio.Lflag &^= unix.ICANON | unix.ECHO
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlWriteTermios, tio)
}
