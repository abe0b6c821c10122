package wire

import "errors"

// MaxVarintLen is the longest encoding of a 32-bit value.
const MaxVarintLen = 5

var (
	// ErrCorrupt reports input that failed to decode: truncated, or
	// structurally well-bounded but invalid.
	ErrCorrupt = errors.New("binser: corrupt input")
	// ErrTrailing reports a value that decoded cleanly but left unread bytes.
	ErrTrailing = errors.New("binser: trailing bytes after value")
)

// AppendVarint writes n as little-endian 7-bit chunks, continuation bit set on
// every chunk but the last.
//
//	000zzzzzzzyyyyyyyxxxxxxx -> 1xxxxxxx 1yyyyyyy 0zzzzzzz
func AppendVarint(b *Buffer, n uint32) {
	for n > 0x7f {
		b.AppendByte(byte(n&0x7f) | 0x80)
		n >>= 7
	}
	b.AppendByte(byte(n))
}

// VarintLen returns the encoded size of n.
func VarintLen(n uint32) int {
	l := 1
	for n > 0x7f {
		n >>= 7
		l++
	}
	return l
}

// ReadVarint decodes a varint written by AppendVarint.
//
// Values wider than 32 bits are invariant failures: the fifth chunk may only
// carry the low four data bits and must end the sequence, so a sixth byte is
// never read. A sequence ending in a zero chunk (other than the single byte 0)
// is rejected too, which keeps exactly one valid encoding per value. Both
// checks make this stricter than a plain LEB128 reader: padded forms such as
// 80 00 (zero) or 81 80 00 (one) do not decode.
func ReadVarint(c *Cursor) (uint32, bool) {
	var v uint32
	for shift := uint(0); ; shift += 7 {
		b, ok := c.Byte()
		if !ok {
			return 0, false
		}
		if shift == 28 && b > 0x0f {
			return 0, c.Stop()
		}
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			if b == 0 && shift > 0 {
				return 0, c.Stop()
			}
			return v, true
		}
	}
}
