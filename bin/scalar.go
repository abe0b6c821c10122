package bin

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"github.com/unkn0wn-root/binser/wire"
)

// Scalar is the set of fixed-width types encoded as raw little-endian bytes.
// Platform-sized int, uint and uintptr are deliberately absent: their width
// is not part of the type.
type Scalar interface {
	~bool |
		~int8 | ~uint8 |
		~int16 | ~uint16 |
		~int32 | ~uint32 |
		~int64 | ~uint64 |
		~float32 | ~float64
}

var (
	Bool    = Fixed[bool]()
	Int8    = Fixed[int8]()
	Uint8   = Fixed[uint8]()
	Int16   = Fixed[int16]()
	Uint16  = Fixed[uint16]()
	Int32   = Fixed[int32]()
	Uint32  = Fixed[uint32]()
	Int64   = Fixed[int64]()
	Uint64  = Fixed[uint64]()
	Float32 = Fixed[float32]()
	Float64 = Fixed[float64]()
)

// Fixed returns the raw codec for T. Named types are encoded as their
// underlying scalar, so enum-like types need no extra glue:
//
//	type Level uint32
//	var levelCodec = bin.Fixed[Level]()
//
// Bool accepts only the bytes 0x00 and 0x01; any other byte fails the decode
// instead of being read as true.
func Fixed[T Scalar]() Codec[T] {
	return fixed[T]{boolean: reflect.TypeFor[T]().Kind() == reflect.Bool}
}

type fixed[T Scalar] struct {
	boolean bool
}

func (f fixed[T]) Encode(b *wire.Buffer, v T) { putScalar(b, v) }

func (f fixed[T]) Decode(c *wire.Cursor, v *T) bool {
	p, ok := c.Next(int(unsafe.Sizeof(*v)))
	if !ok {
		return false
	}
	// a bool byte other than 0 or 1 has no Go representation
	if f.boolean && p[0] > 1 {
		return c.Stop()
	}
	loadScalar(p, v)
	return true
}

// putScalar appends the little-endian bytes of v. Every Scalar has a width of
// 1, 2, 4 or 8 bytes and the same bit layout as the unsigned integer of that
// width, so the value is reinterpreted rather than converted.
func putScalar[T Scalar](b *wire.Buffer, v T) {
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		b.AppendByte(*(*uint8)(p))
	case 2:
		b.AppendUint16(*(*uint16)(p))
	case 4:
		b.AppendUint32(*(*uint32)(p))
	default:
		b.AppendUint64(*(*uint64)(p))
	}
}

// loadScalar is the inverse of putScalar; len(p) must equal the width of T.
func loadScalar[T Scalar](p []byte, v *T) {
	d := unsafe.Pointer(v)
	switch len(p) {
	case 1:
		*(*uint8)(d) = p[0]
	case 2:
		*(*uint16)(d) = binary.LittleEndian.Uint16(p)
	case 4:
		*(*uint32)(d) = binary.LittleEndian.Uint32(p)
	default:
		*(*uint64)(d) = binary.LittleEndian.Uint64(p)
	}
}
