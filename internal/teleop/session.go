// ABOUTME: Session owns the terminal for one teleop run: raw mode, banner, key loop, restore.
// ABOUTME: Restoration is deferred so every return path leaves the terminal as it found it.

package teleop

import (
	"context"
	"fmt"
	"io"

	"github.com/mauromedda/quadrotor-teleop/pkg/key"
	"github.com/mauromedda/quadrotor-teleop/pkg/terminal"
)

// Session wires a Terminal to a Loop.
type Session struct {
	Terminal terminal.Terminal
	Mapper   *Mapper
	Sink     Sink
	Decode   key.Mode
	Banner   string
	Echo     bool
}

// Run enters raw mode, prints the banner once, and runs the key loop.
// A setup failure is returned before the loop starts and wraps
// terminal.ErrSetup. The terminal is restored exactly once before Run
// returns, whatever the cause.
func (s *Session) Run(ctx context.Context) (err error) {
	if err := s.Terminal.EnterRawMode(); err != nil {
		return err
	}
	defer func() {
		if rerr := s.Terminal.ExitRawMode(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if s.Banner != "" {
		if _, err := io.WriteString(s.Terminal, s.Banner); err != nil {
			return fmt.Errorf("printing banner: %w", err)
		}
	}

	loop := NewLoop(key.NewDecoder(s.Terminal, s.Decode), s.Mapper, s.Sink)
	if s.Echo {
		loop.Echo = s.Terminal
	}
	return loop.Run(ctx)
}
