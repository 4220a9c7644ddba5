// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Replays scripted input bytes, captures output, and tracks raw-mode transitions.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// Reads return the scripted input in order; once it is exhausted they fail
// with the configured read error (io.EOF by default), wrapped in ErrRead.
type VirtualTerminal struct {
	mu           sync.Mutex
	buf          bytes.Buffer
	input        []byte
	pos          int
	rawMode      bool
	setupErr     error
	readErr      error
	enterCount   int
	exitCount    int
	restoreCount int
}

// NewVirtualTerminal returns a VirtualTerminal that will yield input.
func NewVirtualTerminal(input []byte) *VirtualTerminal {
	return &VirtualTerminal{
		input:   append([]byte(nil), input...),
		readErr: io.EOF,
	}
}

// EnterRawMode records a raw-mode entry, or fails if FailSetup was called.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.enterCount++
	if v.setupErr != nil {
		return fmt.Errorf("%w: %w", ErrSetup, v.setupErr)
	}
	v.rawMode = true
	return nil
}

// ExitRawMode records a raw-mode exit. Only exits from raw mode count as
// restorations.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if v.rawMode {
		v.restoreCount++
	}
	v.rawMode = false
	return nil
}

// ReadByte returns the next scripted byte.
func (v *VirtualTerminal) ReadByte() (byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pos >= len(v.input) {
		return 0, fmt.Errorf("%w: %w", ErrRead, v.readErr)
	}
	b := v.input[v.pos]
	v.pos++
	return b, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// FailSetup makes the next EnterRawMode calls fail with err.
func (v *VirtualTerminal) FailSetup(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setupErr = err
}

// FailReads sets the error returned once the scripted input is exhausted.
func (v *VirtualTerminal) FailReads(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.readErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode was called.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// RestoreCount returns how many ExitRawMode calls actually left raw mode.
func (v *VirtualTerminal) RestoreCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.restoreCount
}
