// ABOUTME: ProcessTerminal implements Terminal over a tty file using golang.org/x/term.
// ABOUTME: Saves the original mode, installs no-echo non-canonical input, and restores it once.

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input tty and an output writer.
type ProcessTerminal struct {
	mu       sync.Mutex
	in       *os.File
	out      io.Writer
	oldState *term.State
}

// NewProcessTerminal returns a ProcessTerminal reading os.Stdin and writing os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewFileTerminal(os.Stdin, os.Stdout)
}

// NewFileTerminal returns a ProcessTerminal over the given tty and output.
func NewFileTerminal(in *os.File, out io.Writer) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// EnterRawMode saves the current mode and switches input to unbuffered,
// no-echo delivery. Signal generation (Ctrl+C) is left enabled.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%w: %s is not a terminal", ErrSetup, t.in.Name())
	}

	state, err := term.GetState(fd)
	if err != nil {
		return fmt.Errorf("%w: saving terminal state: %w", ErrSetup, err)
	}
	if err := cbreak(fd); err != nil {
		return fmt.Errorf("%w: entering raw mode: %w", ErrSetup, err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the saved mode. It is a no-op when no mode is saved.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// IsRawMode reports whether a saved mode is currently held.
func (t *ProcessTerminal) IsRawMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.oldState != nil
}

// ReadByte blocks until one byte of input is available.
func (t *ProcessTerminal) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := t.in.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: %w", ErrRead, io.EOF)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
}

// Write sends bytes to the output writer.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}
