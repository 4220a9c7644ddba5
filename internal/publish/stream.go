// ABOUTME: Stream publishes commands as rosbridge publish envelopes, one JSON object per line
// ABOUTME: Used for dry runs and for piping into other tools

package publish

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

// Stream is a Publisher writing JSON lines to an io.Writer.
type Stream struct {
	mu    sync.Mutex
	w     io.Writer
	topic string
}

// NewStream returns a Stream for topic writing to w.
func NewStream(w io.Writer, topic string) *Stream {
	return &Stream{w: w, topic: topic}
}

// Publish writes one line.
func (s *Stream) Publish(_ context.Context, t teleop.Twist) error {
	data, err := easyjson.Marshal(publishOp{Topic: s.topic, Msg: t})
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("writing command: %w", err)
	}
	return nil
}

// Close is a no-op; the writer belongs to the caller.
func (s *Stream) Close() error {
	return nil
}
