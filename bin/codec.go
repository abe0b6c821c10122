// Package bin provides the composable encode/decode rules of the binser wire
// format: fixed-width scalars, fixed arrays, length-prefixed strings, and
// sequence, set, map and pair containers built on top of each other.
//
// A rule is a Codec[T]. Rules are plain values built once (typically into
// package-level variables) and are safe for concurrent use; the Buffer and
// Cursor handed to them are not.
//
// There are no type tags on the wire. Decoding must use the same rule tree that
// encoded the bytes.
package bin

import (
	"fmt"
	"math"

	"github.com/unkn0wn-root/binser/wire"
)

// Codec is the encode/decode rule for values of type T.
//
// Encode appends v to b and cannot fail. Decode reads one value into v and
// reports success; on failure the cursor is disarmed and the contents of v
// are unspecified.
type Codec[T any] interface {
	Encode(b *wire.Buffer, v T)
	Decode(c *wire.Cursor, v *T) bool
}

// Funcs adapts a pair of functions to a Codec. Use it for hand-written rules
// of types that need a specialised layout.
type Funcs[T any] struct {
	Enc func(b *wire.Buffer, v T)
	Dec func(c *wire.Cursor, v *T) bool
}

func (f Funcs[T]) Encode(b *wire.Buffer, v T)       { f.Enc(b, v) }
func (f Funcs[T]) Decode(c *wire.Cursor, v *T) bool { return c.OK() && f.Dec(c, v) }

// Lazy resolves its codec on every call. It breaks initialisation cycles for
// self-referential types whose schema is assigned in an init function.
func Lazy[T any](get func() Codec[T]) Codec[T] {
	return lazy[T]{get: get}
}

type lazy[T any] struct{ get func() Codec[T] }

func (l lazy[T]) Encode(b *wire.Buffer, v T)       { l.get().Encode(b, v) }
func (l lazy[T]) Decode(c *wire.Cursor, v *T) bool { return l.get().Decode(c, v) }

// DecodeAll decodes exactly one value from data. It returns the cursor offset
// alongside wire.ErrCorrupt when decoding fails and wire.ErrTrailing when bytes
// remain after the value.
func DecodeAll[T any](rule Codec[T], data []byte) (T, int, error) {
	var (
		v T
		c wire.Cursor
	)
	c.Init(data)
	if !rule.Decode(&c, &v) {
		var zero T
		return zero, c.Offset(), wire.ErrCorrupt
	}
	if !c.EOF() {
		var zero T
		return zero, c.Offset(), wire.ErrTrailing
	}
	return v, c.Offset(), nil
}

// Append encodes v onto dst and returns the extended slice.
func Append[T any](dst []byte, rule Codec[T], v T) []byte {
	b := wire.BufferFrom(dst)
	rule.Encode(b, v)
	return b.Bytes()
}

// putLen writes a size or count prefix.
func putLen(b *wire.Buffer, n int) {
	if uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("bin: length %d does not fit a 32-bit varint", n))
	}
	wire.AppendVarint(b, uint32(n))
}

// readLen reads a size or count prefix.
func readLen(c *wire.Cursor) (int, bool) {
	n, ok := wire.ReadVarint(c)
	return int(n), ok
}
