// ABOUTME: Tests for Decoder in byte mode and escape-sequence mode.
// ABOUTME: Verifies arrow folding, replay of broken sequences, and error passthrough.

package key

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func decodeAll(t *testing.T, input []byte, mode Mode) []Key {
	t.Helper()

	d := NewDecoder(bytes.NewReader(input), mode)
	var keys []Key
	for {
		k, err := d.Next()
		if errors.Is(err, io.EOF) {
			return keys
		}
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		keys = append(keys, k)
	}
}

func symbols(keys []Key) []Symbol {
	out := make([]Symbol, len(keys))
	for i, k := range keys {
		out[i] = k.Symbol
	}
	return out
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		mode  Mode
		want  []Symbol
	}{
		{name: "byte mode arrow", input: "\x1b[A", mode: ModeByte, want: []Symbol{Unknown, Unknown, Up}},
		{name: "byte mode letters", input: "dxa", mode: ModeByte, want: []Symbol{D, Unknown, A}},
		{name: "byte mode capital A is up", input: "A", mode: ModeByte, want: []Symbol{Up}},

		{name: "sequence mode csi arrows", input: "\x1b[A\x1b[B\x1b[C\x1b[D", mode: ModeSequence, want: []Symbol{Up, Down, Right, Left}},
		{name: "sequence mode ss3 arrow", input: "\x1bOA", mode: ModeSequence, want: []Symbol{Up}},
		{name: "sequence mode capital A is unknown", input: "A", mode: ModeSequence, want: []Symbol{Unknown}},
		{name: "sequence mode letters", input: "w s", mode: ModeSequence, want: []Symbol{W, Space, S}},
		{name: "sequence mode alt+w replays w", input: "\x1bw", mode: ModeSequence, want: []Symbol{Unknown, W}},
		{name: "sequence mode unknown csi replays bytes", input: "\x1b[Zd", mode: ModeSequence, want: []Symbol{Unknown, Unknown, Unknown, D}},
		{name: "sequence mode double esc keeps arrow", input: "\x1b\x1b[A", mode: ModeSequence, want: []Symbol{Unknown, Up}},
		{name: "sequence mode esc as csi final restarts", input: "\x1b[\x1b[B", mode: ModeSequence, want: []Symbol{Unknown, Unknown, Down}},
		{name: "sequence mode esc as ss3 final restarts", input: "\x1bO\x1bOC", mode: ModeSequence, want: []Symbol{Unknown, Unknown, Right}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			want := tt.want
			got := symbols(decodeAll(t, []byte(tt.input), tt.mode))
			if len(got) != len(want) {
				t.Fatalf("decoded %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("key %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDecoder_SequenceKeepsFinalByte(t *testing.T) {
	t.Parallel()

	keys := decodeAll(t, []byte("\x1b[C"), ModeSequence)
	if len(keys) != 1 {
		t.Fatalf("decoded %d keys, want 1", len(keys))
	}
	if keys[0].Byte != ByteRight {
		t.Errorf("Byte = 0x%02X, want 0x%02X", keys[0].Byte, ByteRight)
	}
}

func TestDecoder_TruncatedSequenceReturnsError(t *testing.T) {
	t.Parallel()

	d := NewDecoder(bytes.NewReader([]byte{0x1b, '['}), ModeSequence)
	if _, err := d.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() error = %v, want io.EOF", err)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeByte},
		{in: "byte", want: ModeByte},
		{in: "sequence", want: ModeSequence},
		{in: "vt100", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != tt.want.String() {
			t.Errorf("Mode.String() = %q, want %q", got.String(), tt.want.String())
		}
	}
}
