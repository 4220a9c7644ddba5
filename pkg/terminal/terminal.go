// ABOUTME: Defines the Terminal interface for raw mode, blocking byte reads, and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

import "errors"

// ErrSetup is wrapped by errors raised while querying or reconfiguring the
// terminal. The caller cannot enter the key loop after it.
var ErrSetup = errors.New("terminal setup failed")

// ErrRead is wrapped by errors raised while reading input. It is fatal for the
// key loop.
var ErrRead = errors.New("terminal read failed")

// Terminal abstracts the controlling terminal: raw mode lifecycle,
// byte-at-a-time input, and output writing.
//
// The lifecycle is Uninitialized -> Active (EnterRawMode) -> Restored
// (ExitRawMode). ExitRawMode is safe to call from any state and any number
// of times; only the first call after EnterRawMode touches the device.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	ReadByte() (byte, error)
	Write(p []byte) (n int, err error)
}
