// ABOUTME: CLI entry point for the quadrotor keyboard teleop with terminal crash recovery
// ABOUTME: Loads config, opens the command sink, runs the key session, restores the terminal on exit

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before anything renders with lipgloss.
	_ "github.com/mauromedda/quadrotor-teleop/internal/termfix"

	"github.com/mauromedda/quadrotor-teleop/internal/config"
	"github.com/mauromedda/quadrotor-teleop/internal/eventbus"
	pilog "github.com/mauromedda/quadrotor-teleop/internal/log"
	"github.com/mauromedda/quadrotor-teleop/internal/publish"
	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
	"github.com/mauromedda/quadrotor-teleop/pkg/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errLoopPanic = errors.New("key loop panicked")

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("teleop-quadrotor %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run wires config, sink and terminal together and blocks until the key
// session fails or an interrupt arrives. An interrupt is a clean exit.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadAll(cwd, args.configPath, buildCLIOverrides(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub, err := publish.Open(ctx, cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening %s sink: %w", cfg.Sink, err)
	}
	queue := publish.NewQueue(pub)
	defer func() {
		if err := queue.Close(); err != nil {
			pilog.Warn("%v", err)
		}
	}()

	bus := eventbus.New[teleop.Twist]()
	bus.Subscribe(queue.Offer)

	term := terminal.NewProcessTerminal()
	defer terminal.RestoreOnPanic(term)
	defer func() { _ = term.ExitRawMode() }()

	session := &teleop.Session{
		Terminal: term,
		Mapper:   teleop.NewMapper(cfg.Scale()),
		Sink:     bus,
		Decode:   cfg.DecodeMode(),
		Banner:   teleop.Banner(cfg.Scale()),
		Echo:     args.echo,
	}
	pilog.Debug("scale linear=%g angular=%g decode=%s sink=%s topic=%s",
		cfg.ScaleLinear, cfg.ScaleAngular, cfg.Decode, cfg.Sink, cfg.Topic)

	done := make(chan error, 1)
	go func() {
		err := errLoopPanic
		defer func() { done <- err }()
		defer terminal.RecoverGoroutine(term)
		err = session.Run(ctx)
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		// The loop goroutine may be blocked in a read; it is abandoned.
		// Restoring here and releasing the signals lets a second Ctrl+C
		// end the process if closing the sink stalls.
		pilog.Info("interrupted, restoring terminal")
		_ = term.ExitRawMode()
		stop()
		return nil
	}
}

// applyLogLevel sets the global log level from its config name.
func applyLogLevel(name string) error {
	l, err := pilog.ParseLevel(name)
	if err != nil {
		return err
	}
	pilog.SetLevel(l)
	return nil
}
