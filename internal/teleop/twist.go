// ABOUTME: Twist is the 6-DoF velocity command; Scale holds the linear and angular multipliers.
// ABOUTME: Axis addresses one of the six Twist fields for the binding table.

package teleop

import (
	"fmt"
	"math"
)

// Vector3 is a 3-component vector in the vehicle frame.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Twist is a velocity command: linear velocity along and angular velocity
// about the three axes.
type Twist struct {
	Linear  Vector3
	Angular Vector3
}

// IsZero reports whether all six fields are zero (a stop command).
func (t Twist) IsZero() bool {
	return t == Twist{}
}

// NonZero returns how many of the six fields are non-zero.
func (t Twist) NonZero() int {
	n := 0
	for _, a := range axes {
		if t.get(a) != 0 {
			n++
		}
	}
	return n
}

// String formats the command for logs.
func (t Twist) String() string {
	return fmt.Sprintf("linear(%g, %g, %g) angular(%g, %g, %g)",
		t.Linear.X, t.Linear.Y, t.Linear.Z, t.Angular.X, t.Angular.Y, t.Angular.Z)
}

// Axis names one of the six Twist fields.
type Axis int

const (
	LinearX Axis = iota
	LinearY
	LinearZ
	AngularX
	AngularY
	AngularZ
)

var axes = [...]Axis{LinearX, LinearY, LinearZ, AngularX, AngularY, AngularZ}

func (a Axis) String() string {
	switch a {
	case LinearX:
		return "linear.x"
	case LinearY:
		return "linear.y"
	case LinearZ:
		return "linear.z"
	case AngularX:
		return "angular.x"
	case AngularY:
		return "angular.y"
	case AngularZ:
		return "angular.z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (t *Twist) field(a Axis) *float64 {
	switch a {
	case LinearX:
		return &t.Linear.X
	case LinearY:
		return &t.Linear.Y
	case LinearZ:
		return &t.Linear.Z
	case AngularX:
		return &t.Angular.X
	case AngularY:
		return &t.Angular.Y
	default:
		return &t.Angular.Z
	}
}

func (t Twist) get(a Axis) float64 {
	return *t.field(a)
}

// Scale holds the configured velocity factors. Every binding, angular.z
// included, is scaled by Linear; Angular is validated and reported but
// not applied. Both factors must be positive; the zero value is not valid,
// use DefaultScale.
type Scale struct {
	Linear  float64
	Angular float64
}

// DefaultScale is the scale used when nothing is configured.
var DefaultScale = Scale{Linear: 1.0, Angular: 1.0}

// Validate checks that both factors are finite and positive.
func (s Scale) Validate() error {
	if !positive(s.Linear) {
		return fmt.Errorf("linear scale must be positive, got %v", s.Linear)
	}
	if !positive(s.Angular) {
		return fmt.Errorf("angular scale must be positive, got %v", s.Angular)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
