package binser

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/binser/bin"
	"github.com/unkn0wn-root/binser/record"
	"github.com/unkn0wn-root/binser/wire"
)

// Marshal encodes v with its record schema.
func Marshal[R record.Described[R]](v R) []byte {
	return AppendMarshal(nil, v)
}

// AppendMarshal appends the encoding of v to dst.
func AppendMarshal[R record.Described[R]](dst []byte, v R) []byte {
	return bin.Append(dst, bin.Codec[R](v.Schema()), v)
}

// Unmarshal decodes exactly one R from data. Trailing bytes are an error.
func Unmarshal[R record.Described[R]](data []byte) (R, error) {
	var zero R
	v, off, err := bin.DecodeAll[R](zero.Schema(), data)
	if err != nil {
		return zero, &DecodeError{Type: reflect.TypeFor[R](), Offset: off, Err: err}
	}
	return v, nil
}

// MarshalAny encodes v through the registry. v may be a registered record or
// a pointer to one.
func MarshalAny(v any) ([]byte, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		if reflect.ValueOf(v).IsNil() {
			return nil, fmt.Errorf("binser: marshal nil %v", t)
		}
		t = t.Elem()
	}
	s, ok := record.Find(t)
	if !ok {
		return nil, fmt.Errorf("%w for %v", ErrNoSchema, t)
	}
	var b wire.Buffer
	s.EncodeValue(&b, v)
	return b.Bytes(), nil
}

// UnmarshalAny decodes data into dst, which must be a non-nil pointer to a
// registered record type.
func UnmarshalAny(data []byte, dst any) error {
	t := reflect.TypeOf(dst)
	if t == nil || t.Kind() != reflect.Pointer || reflect.ValueOf(dst).IsNil() {
		return fmt.Errorf("binser: unmarshal into non-pointer or nil %v", t)
	}
	s, ok := record.Find(t.Elem())
	if !ok {
		return fmt.Errorf("%w for %v", ErrNoSchema, t.Elem())
	}
	c := wire.NewCursor(data)
	switch {
	case !s.DecodeValue(c, dst):
		return &DecodeError{Type: t.Elem(), Offset: c.Offset(), Err: wire.ErrCorrupt}
	case !c.EOF():
		return &DecodeError{Type: t.Elem(), Offset: c.Offset(), Err: wire.ErrTrailing}
	}
	return nil
}
