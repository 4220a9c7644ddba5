package publish

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
)

func TestStream_WritesOneLinePerCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewStream(&buf, "/cmd_vel")

	if err := s.Publish(context.Background(), teleop.Twist{Linear: teleop.Vector3{X: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Publish(context.Background(), teleop.Twist{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	want0 := `{"op":"publish","topic":"/cmd_vel","msg":{"linear":{"x":1,"y":0,"z":0},"angular":{"x":0,"y":0,"z":0}}}`
	if lines[0] != want0 {
		t.Errorf("line 0 = %s\nwant     %s", lines[0], want0)
	}
}
