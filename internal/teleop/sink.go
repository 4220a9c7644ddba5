// ABOUTME: Sink is the output collaborator that receives each emitted Twist.
// ABOUTME: Publish is synchronous and must not block the key loop for long.

package teleop

// Sink receives one command per matched key.
type Sink interface {
	Publish(Twist)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Twist)

// Publish calls f(t).
func (f SinkFunc) Publish(t Twist) {
	f(t)
}
