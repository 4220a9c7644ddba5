// ABOUTME: Static key binding table and the Mapper that turns keys into Twist commands.
// ABOUTME: Mapped keys set one scaled field (Space zeroes all); unmapped keys produce nothing.

package teleop

import "github.com/mauromedda/quadrotor-teleop/pkg/key"

// Binding ties a key symbol to a unit displacement on one axis, or to stop.
type Binding struct {
	Symbol key.Symbol
	Axis   Axis
	Sign   float64
	Stop   bool
}

// Bindings is the fixed key table, in banner order.
var Bindings = []Binding{
	{Symbol: key.D, Axis: LinearX, Sign: +1},
	{Symbol: key.A, Axis: LinearX, Sign: -1},
	{Symbol: key.W, Axis: LinearY, Sign: +1},
	{Symbol: key.S, Axis: LinearY, Sign: -1},
	{Symbol: key.Up, Axis: LinearZ, Sign: +1},
	{Symbol: key.Down, Axis: LinearZ, Sign: -1},
	{Symbol: key.Right, Axis: AngularZ, Sign: +1},
	{Symbol: key.Left, Axis: AngularZ, Sign: -1},
	{Symbol: key.Space, Stop: true},
}

// Mapper resolves keys to velocity commands. It is immutable after
// construction and safe for concurrent use.
type Mapper struct {
	scale    Scale
	bindings map[key.Symbol]Binding
}

// NewMapper returns a Mapper applying scale.Linear to the binding table.
func NewMapper(scale Scale) *Mapper {
	m := &Mapper{
		scale:    scale,
		bindings: make(map[key.Symbol]Binding, len(Bindings)),
	}
	for _, b := range Bindings {
		m.bindings[b.Symbol] = b
	}
	return m
}

// Scale returns the configured scale.
func (m *Mapper) Scale() Scale {
	return m.scale
}

// Map returns the command for k and whether it should be emitted.
func (m *Mapper) Map(k key.Key) (Twist, bool) {
	var tw Twist

	b, ok := m.bindings[k.Symbol]
	if !ok {
		return tw, false
	}
	if b.Stop {
		return tw, true
	}

	*tw.field(b.Axis) = b.Sign * m.scale.Linear
	return tw, true
}

// MapByte decodes a single byte and maps it.
func (m *Mapper) MapByte(b byte) (Twist, bool) {
	return m.Map(key.Decode(b))
}
