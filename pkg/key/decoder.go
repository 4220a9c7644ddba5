// ABOUTME: Decoder turns a byte stream into Keys in byte mode or escape-sequence mode.
// ABOUTME: Sequence mode folds CSI and SS3 arrow sequences into a single key event.

package key

import (
	"fmt"
	"io"
)

// Mode selects how the Decoder groups bytes into keys.
type Mode int

const (
	// ModeByte decodes every byte independently with Decode.
	ModeByte Mode = iota
	// ModeSequence recognizes "ESC [ A".."ESC [ D" and "ESC O A".."ESC O D"
	// as one arrow key. Bare 0x41..0x44 bytes are then plain letters
	// and decode as Unknown.
	ModeSequence
)

// ParseMode parses "byte" or "sequence".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "byte":
		return ModeByte, nil
	case "sequence":
		return ModeSequence, nil
	default:
		return ModeByte, fmt.Errorf("unknown decode mode %q (want byte or sequence)", s)
	}
}

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	if m == ModeSequence {
		return "sequence"
	}
	return "byte"
}

// arrowFinals maps the final byte of a CSI/SS3 arrow sequence to its symbol.
var arrowFinals = map[byte]Symbol{
	ByteUp:    Up,
	ByteDown:  Down,
	ByteRight: Right,
	ByteLeft:  Left,
}

// Decoder reads one Key at a time from an underlying byte source.
type Decoder struct {
	r       io.ByteReader
	mode    Mode
	pending []byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.ByteReader, mode Mode) *Decoder {
	return &Decoder{r: r, mode: mode}
}

// Next blocks until the next key is available. Errors from the underlying
// reader are returned unchanged.
func (d *Decoder) Next() (Key, error) {
	b, err := d.readByte()
	if err != nil {
		return Key{}, err
	}
	if d.mode == ModeByte || b != ByteEsc {
		return d.single(b), nil
	}
	return d.sequence()
}

// readByte takes pushed-back bytes first, then the underlying reader.
func (d *Decoder) readByte() (byte, error) {
	if len(d.pending) > 0 {
		b := d.pending[0]
		d.pending = d.pending[1:]
		return b, nil
	}
	return d.r.ReadByte()
}

// unread pushes bs back in front of any bytes already pending.
func (d *Decoder) unread(bs ...byte) {
	d.pending = append(bs, d.pending...)
}

// single decodes a byte outside of any escape sequence.
func (d *Decoder) single(b byte) Key {
	if d.mode == ModeSequence {
		if _, arrow := arrowFinals[b]; arrow {
			return Key{Symbol: Unknown, Byte: b}
		}
	}
	return Decode(b)
}

// sequence continues after an ESC byte. Bytes that turn out not to form an
// arrow sequence are replayed on later calls, so a replayed ESC can still
// start the next sequence.
func (d *Decoder) sequence() (Key, error) {
	intro, err := d.readByte()
	if err != nil {
		return Key{}, err
	}
	if intro != '[' && intro != 'O' {
		d.unread(intro)
		return Key{Symbol: Unknown, Byte: ByteEsc}, nil
	}

	final, err := d.readByte()
	if err != nil {
		return Key{}, err
	}
	if s, ok := arrowFinals[final]; ok {
		return Key{Symbol: s, Byte: final}, nil
	}
	d.unread(intro, final)
	return Key{Symbol: Unknown, Byte: ByteEsc}, nil
}
