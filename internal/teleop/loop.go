// ABOUTME: Loop reads keys one at a time, maps them, and publishes matched commands.
// ABOUTME: Cancellation is checked between reads; read failures end the loop.

package teleop

import (
	"context"
	"fmt"
	"io"

	pilog "github.com/mauromedda/quadrotor-teleop/internal/log"
	"github.com/mauromedda/quadrotor-teleop/pkg/key"
)

// KeySource yields decoded keys; *key.Decoder implements it.
type KeySource interface {
	Next() (key.Key, error)
}

// Loop is the key-to-command state machine. It has a single state, awaiting
// the next key, and leaves it only on a read error or cancellation.
type Loop struct {
	keys   KeySource
	mapper *Mapper
	sink   Sink

	// Echo, when set, receives the hex value of every byte read.
	Echo io.Writer
}

// NewLoop returns a Loop reading from keys and publishing to sink.
func NewLoop(keys KeySource, mapper *Mapper, sink Sink) *Loop {
	return &Loop{keys: keys, mapper: mapper, sink: sink}
}

// Run processes keys until ctx is done or the source fails. The returned
// error is ctx.Err() on cancellation, otherwise the wrapped read error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		k, err := l.keys.Next()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}

		pilog.Debug("key %s (%s)", key.Hex(k.Byte), k.Symbol)
		if l.Echo != nil {
			fmt.Fprintln(l.Echo, key.Hex(k.Byte))
		}

		tw, ok := l.mapper.Map(k)
		if !ok {
			continue
		}
		pilog.Debug("publish %s", tw)
		l.sink.Publish(tw)
	}
}
