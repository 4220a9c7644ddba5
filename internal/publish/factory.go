// ABOUTME: Open builds the Publisher selected by the sink setting
// ABOUTME: bridge dials rosbridge; stdout writes JSON lines to the given writer

package publish

import (
	"context"
	"fmt"
	"io"

	"github.com/mauromedda/quadrotor-teleop/internal/config"
)

// Open returns the Publisher named by s.Sink.
func Open(ctx context.Context, s *config.Settings, stdout io.Writer) (Publisher, error) {
	switch s.Sink {
	case config.SinkBridge:
		return DialBridge(ctx, s.BridgeURL, s.Topic, s.QueueSize)
	case config.SinkStdout:
		return NewStream(stdout, s.Topic), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", s.Sink)
	}
}
