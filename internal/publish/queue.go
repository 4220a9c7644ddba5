// ABOUTME: Queue is a depth-1, latest-only mailbox between the key loop and a Publisher
// ABOUTME: Offer never blocks; a command not yet sent is replaced by the newer one

package publish

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	pilog "github.com/mauromedda/quadrotor-teleop/internal/log"
	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

const flushTimeout = 500 * time.Millisecond

// Queue forwards offered commands to a Publisher from a single writer
// goroutine. Only the latest undelivered command is kept.
type Queue struct {
	inner Publisher

	mu      sync.Mutex
	pending teleop.Twist
	has     bool
	dropped int
	failed  int

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error

	ctx    context.Context
	cancel context.CancelFunc
	g      errgroup.Group
}

// NewQueue starts the writer goroutine for inner.
func NewQueue(inner Publisher) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		inner:  inner,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	q.g.Go(q.drain)
	return q
}

// Offer stores t as the next command to send. It never blocks.
func (q *Queue) Offer(t teleop.Twist) {
	q.mu.Lock()
	if q.has {
		q.dropped++
	}
	q.pending = t
	q.has = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Dropped returns how many commands were replaced before being sent.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Failed returns how many sends the Publisher rejected.
func (q *Queue) Failed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.failed
}

// Close sends a still-pending command, stops the writer and closes the
// Publisher. A send still running after flushTimeout has its context
// cancelled. Later calls return the first result.
func (q *Queue) Close() error {
	q.closeOnce.Do(func() {
		close(q.done)
		expire := time.AfterFunc(flushTimeout, q.cancel)
		werr := q.g.Wait()
		expire.Stop()
		q.cancel()

		if err := q.inner.Close(); err != nil {
			q.closeErr = fmt.Errorf("closing publisher: %w", err)
			return
		}
		q.closeErr = werr

		if d := q.Dropped(); d > 0 {
			pilog.Debug("queue replaced %d stale commands", d)
		}
	})
	return q.closeErr
}

func (q *Queue) drain() error {
	for {
		select {
		case <-q.wake:
			q.sendPending(q.ctx)
		case <-q.done:
			ctx, cancel := context.WithTimeout(q.ctx, flushTimeout)
			q.sendPending(ctx)
			cancel()
			return nil
		}
	}
}

func (q *Queue) take() (teleop.Twist, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.pending, q.has
	q.pending, q.has = teleop.Twist{}, false
	return t, ok
}

func (q *Queue) sendPending(ctx context.Context) {
	t, ok := q.take()
	if !ok {
		return
	}
	if err := q.inner.Publish(ctx, t); err != nil {
		q.mu.Lock()
		q.failed++
		q.mu.Unlock()
		pilog.Warn("publish %s: %v", t, err)
	}
}
