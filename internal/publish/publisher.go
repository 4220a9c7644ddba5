// ABOUTME: Publisher is the transport-facing side of the output channel
// ABOUTME: Implementations: rosbridge websocket (Bridge) and JSON lines (Stream)

package publish

import (
	"context"

	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

// TwistType is the ROS message type of published commands.
const TwistType = "geometry_msgs/Twist"

// Publisher delivers velocity commands to one topic.
type Publisher interface {
	Publish(ctx context.Context, t teleop.Twist) error
	Close() error
}
