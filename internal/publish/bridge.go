// ABOUTME: Bridge publishes Twist commands to a rosbridge server over a websocket
// ABOUTME: Advertises on dial, unadvertises on close, and logs server status messages

package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/mailru/easyjson"
	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"

	pilog "github.com/mauromedda/quadrotor-teleop/internal/log"
	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

const (
	bridgeOrigin = "http://localhost/"
	closeTimeout = time.Second
	writeTimeout = 2 * time.Second
)

// Bridge is a Publisher speaking the rosbridge v2 JSON protocol.
type Bridge struct {
	conn  *websocket.Conn
	topic string

	// writeTimeout bounds every frame write, whatever the caller's context.
	writeTimeout time.Duration

	mu     sync.Mutex // serializes frames and guards closed
	closed bool

	readers errgroup.Group
}

// DialBridge connects to a rosbridge server and advertises topic.
func DialBridge(ctx context.Context, rawURL, topic string, queueSize int) (*Bridge, error) {
	cfg, err := websocket.NewConfig(rawURL, bridgeOrigin)
	if err != nil {
		return nil, fmt.Errorf("bridge config: %w", err)
	}
	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dialing bridge %s: %w", rawURL, err)
	}

	b := &Bridge{conn: conn, topic: topic, writeTimeout: writeTimeout}
	if err := b.send(ctx, advertiseOp{Topic: topic, Type: TwistType, QueueSize: queueSize}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advertising %s: %w", topic, err)
	}
	b.readers.Go(b.readLoop)

	pilog.Info("publishing %s on %s via %s", TwistType, topic, rawURL)
	return b, nil
}

// Publish sends one command.
func (b *Bridge) Publish(ctx context.Context, t teleop.Twist) error {
	return b.send(ctx, publishOp{Topic: b.topic, Msg: t})
}

// Close unadvertises the topic and closes the connection. Only the first
// call has any effect.
func (b *Bridge) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := b.send(ctx, unadvertiseOp{Topic: b.topic}); err != nil && !errors.Is(err, net.ErrClosed) {
		pilog.Debug("unadvertise %s: %v", b.topic, err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	err := b.conn.Close()
	b.mu.Unlock()

	if werr := b.readers.Wait(); werr != nil {
		pilog.Debug("bridge reader: %v", werr)
	}
	if err != nil {
		return fmt.Errorf("closing bridge: %w", err)
	}
	return nil
}

func (b *Bridge) send(ctx context.Context, m easyjson.Marshaler) error {
	data, err := easyjson.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %T: %w", m, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return net.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(b.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := b.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}

	// Cancelling ctx expires the deadline so a stalled write returns.
	stop := context.AfterFunc(ctx, func() { _ = b.conn.SetWriteDeadline(time.Now()) })
	defer stop()

	if err := websocket.Message.Send(b.conn, string(data)); err != nil {
		return fmt.Errorf("sending to bridge: %w", err)
	}
	return nil
}

func (b *Bridge) readLoop() error {
	for {
		var raw string
		if err := websocket.Message.Receive(b.conn, &raw); err != nil {
			if b.isClosed() || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading from bridge: %w", err)
		}

		var st statusOp
		if err := easyjson.Unmarshal([]byte(raw), &st); err != nil {
			pilog.Debug("bridge sent undecodable frame: %v", err)
			continue
		}
		if st.Op != "status" {
			continue
		}
		if st.Level == "error" || st.Level == "warning" {
			pilog.Warn("bridge %s: %s", st.Level, st.Msg)
		} else {
			pilog.Debug("bridge %s: %s", st.Level, st.Msg)
		}
	}
}

func (b *Bridge) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
