// ABOUTME: Defines the Key type and Decode for single-byte teleop keyboard input.
// ABOUTME: Arrow keys match the final byte of their escape sequence; everything unmapped is Unknown.

package key

import "fmt"

// Key is one decoded unit of keyboard input. Byte holds the raw byte that
// produced the key (the final byte for escape sequences).
type Key struct {
	Symbol Symbol
	Byte   byte
}

// Symbol enumerates the keys the teleop loop recognizes.
type Symbol int

const (
	Unknown Symbol = iota // Unrecognized input
	Up                    // Arrow up
	Down                  // Arrow down
	Left                  // Arrow left
	Right                 // Arrow right
	W                     // 'w'
	A                     // 'a'
	S                     // 's'
	D                     // 'd'
	Space                 // ' '
)

// Raw byte values of the recognized keys.
const (
	ByteUp    byte = 0x41
	ByteDown  byte = 0x42
	ByteRight byte = 0x43
	ByteLeft  byte = 0x44
	ByteW     byte = 0x77
	ByteS     byte = 0x73
	ByteA     byte = 0x61
	ByteD     byte = 0x64
	ByteSpace byte = 0x20
	ByteEsc   byte = 0x1b
)

var byteSymbols = map[byte]Symbol{
	ByteUp:    Up,
	ByteDown:  Down,
	ByteRight: Right,
	ByteLeft:  Left,
	ByteW:     W,
	ByteS:     S,
	ByteA:     A,
	ByteD:     D,
	ByteSpace: Space,
}

// Decode maps a single byte to a Key. Only the byte itself is consulted, so
// the ESC and '[' of an arrow sequence decode as Unknown and the final byte
// decodes as the arrow.
func Decode(b byte) Key {
	if s, ok := byteSymbols[b]; ok {
		return Key{Symbol: s, Byte: b}
	}
	return Key{Symbol: Unknown, Byte: b}
}

var symbolNames = map[Symbol]string{
	Unknown: "Unknown",
	Up:      "Up",
	Down:    "Down",
	Left:    "Left",
	Right:   "Right",
	W:       "W",
	A:       "A",
	S:       "S",
	D:       "D",
	Space:   "Space",
}

// String returns the symbol name.
func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	if k.Symbol == Unknown {
		return fmt.Sprintf("Unknown(%s)", Hex(k.Byte))
	}
	return k.Symbol.String()
}

// Hex formats a raw input byte for diagnostics.
func Hex(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}
