// ABOUTME: rosbridge v2 protocol envelopes with hand-written easyjson marshalers
// ABOUTME: advertise / publish / unadvertise outbound, status inbound

package publish

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

// advertiseOp announces the topic and its message type.
type advertiseOp struct {
	Topic     string
	Type      string
	QueueSize int
}

func (m advertiseOp) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"op":"advertise","topic":`)
	w.String(m.Topic)
	w.RawString(`,"type":`)
	w.String(m.Type)
	w.RawString(`,"queue_size":`)
	w.Int(m.QueueSize)
	w.RawByte('}')
}

// publishOp carries one command.
type publishOp struct {
	Topic string
	Msg   teleop.Twist
}

func (m publishOp) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"op":"publish","topic":`)
	w.String(m.Topic)
	w.RawString(`,"msg":`)
	writeTwist(w, m.Msg)
	w.RawByte('}')
}

// unadvertiseOp withdraws the topic on shutdown.
type unadvertiseOp struct {
	Topic string
}

func (m unadvertiseOp) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"op":"unadvertise","topic":`)
	w.String(m.Topic)
	w.RawByte('}')
}

func writeTwist(w *jwriter.Writer, t teleop.Twist) {
	w.RawString(`{"linear":`)
	writeVector3(w, t.Linear)
	w.RawString(`,"angular":`)
	writeVector3(w, t.Angular)
	w.RawByte('}')
}

func writeVector3(w *jwriter.Writer, v teleop.Vector3) {
	w.RawString(`{"x":`)
	w.Float64(v.X)
	w.RawString(`,"y":`)
	w.Float64(v.Y)
	w.RawString(`,"z":`)
	w.Float64(v.Z)
	w.RawByte('}')
}

// statusOp is a rosbridge status report sent by the server.
type statusOp struct {
	Op    string
	Level string
	Msg   string
}

func (m *statusOp) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		field := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch field {
		case "op":
			m.Op = in.String()
		case "level":
			m.Level = in.String()
		case "msg":
			m.Msg = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}
