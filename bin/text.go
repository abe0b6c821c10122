package bin

import (
	"bytes"
	"unsafe"

	"github.com/unkn0wn-root/binser/wire"
)

// Unit is a fixed-width character unit of a Text string.
type Unit interface {
	~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

var (
	// String encodes a Go string as a varint byte length followed by its bytes.
	String Codec[string] = stringCodec{}
	// Bytes shares the String layout. Decoded slices never alias the input.
	Bytes Codec[[]byte] = bytesCodec{}
	// UTF16 carries 2-byte code units.
	UTF16 = Text[uint16]()
	// Runes carries 4-byte code points.
	Runes = Text[rune]()
)

type stringCodec struct{}

func (stringCodec) Encode(b *wire.Buffer, v string) {
	putLen(b, len(v))
	b.AppendString(v)
}

func (stringCodec) Decode(c *wire.Cursor, v *string) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	p, ok := c.Next(n)
	if !ok {
		return false
	}
	*v = string(p)
	return true
}

type bytesCodec struct{}

func (bytesCodec) Encode(b *wire.Buffer, v []byte) {
	putLen(b, len(v))
	b.Append(v)
}

func (bytesCodec) Decode(c *wire.Cursor, v *[]byte) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	p, ok := c.Next(n)
	if !ok {
		return false
	}
	*v = bytes.Clone(p)
	return true
}

// Text returns the codec for strings of E units. The prefix is the length in
// bytes, not in units, so a decoder rejects any length that is not a multiple
// of the unit width.
func Text[E Unit]() Codec[[]E] {
	var e E
	return text[E]{width: int(unsafe.Sizeof(e))}
}

type text[E Unit] struct {
	width int
}

func (t text[E]) Encode(b *wire.Buffer, v []E) {
	putLen(b, len(v)*t.width)
	for _, e := range v {
		putScalar(b, e)
	}
}

func (t text[E]) Decode(c *wire.Cursor, v *[]E) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	if n%t.width != 0 {
		return c.Stop()
	}
	p, ok := c.Next(n)
	if !ok {
		return false
	}
	out := make([]E, n/t.width)
	for i := range out {
		loadScalar(p[i*t.width:(i+1)*t.width], &out[i])
	}
	*v = out
	return true
}
