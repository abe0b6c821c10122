// Package record drives the binser codecs over user-defined struct types.
//
// A record type is described once by an ordered list of members, each naming a
// field and the bin.Codec that carries it:
//
//	type Foo struct {
//		Maybe bool
//		Label string
//		Value uint16
//	}
//
//	var fooSchema = record.Register(
//		record.Field("maybe", bin.Bool, func(f *Foo) *bool { return &f.Maybe }),
//		record.Field("label", bin.String, func(f *Foo) *string { return &f.Label }),
//		record.Field("value", bin.Uint16, func(f *Foo) *uint16 { return &f.Value }),
//	)
//
//	func (Foo) Schema() *record.Schema[Foo] { return fooSchema }
//
// The wire form of a record is the concatenation of its members' encodings in
// registration order. Field names never reach the wire; encoder and decoder
// must agree on the schema out of band.
package record

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/binser/bin"
	"github.com/unkn0wn-root/binser/wire"
)

// Member is one serialized field of R.
type Member[R any] interface {
	// Name is for documentation and diagnostics only.
	Name() string

	encode(b *wire.Buffer, r *R)
	decode(c *wire.Cursor, r *R) bool
}

// Field describes a member reached through a pointer into the record. It is
// the common case and decodes straight into the field.
func Field[R, F any](name string, codec bin.Codec[F], at func(*R) *F) Member[R] {
	if codec == nil || at == nil {
		panic(fmt.Sprintf("record: field %q of %v: nil codec or accessor", name, reflect.TypeFor[R]()))
	}
	return field[R, F]{name: name, codec: codec, at: at}
}

type field[R, F any] struct {
	name  string
	codec bin.Codec[F]
	at    func(*R) *F
}

func (f field[R, F]) Name() string                     { return f.name }
func (f field[R, F]) encode(b *wire.Buffer, r *R)      { f.codec.Encode(b, *f.at(r)) }
func (f field[R, F]) decode(c *wire.Cursor, r *R) bool { return f.codec.Decode(c, f.at(r)) }

// Accessor describes a member read and written through functions, for values
// that are derived or kept in unexported state. set only runs after the value
// decoded successfully.
func Accessor[R, F any](name string, codec bin.Codec[F], get func(*R) F, set func(*R, F)) Member[R] {
	if codec == nil || get == nil || set == nil {
		panic(fmt.Sprintf("record: accessor %q of %v: nil codec, getter or setter", name, reflect.TypeFor[R]()))
	}
	return accessor[R, F]{name: name, codec: codec, get: get, set: set}
}

type accessor[R, F any] struct {
	name  string
	codec bin.Codec[F]
	get   func(*R) F
	set   func(*R, F)
}

func (a accessor[R, F]) Name() string                { return a.name }
func (a accessor[R, F]) encode(b *wire.Buffer, r *R) { a.codec.Encode(b, a.get(r)) }

func (a accessor[R, F]) decode(c *wire.Cursor, r *R) bool {
	var v F
	if !a.codec.Decode(c, &v) {
		return false
	}
	a.set(r, v)
	return true
}

// Schema is the ordered, immutable member list of record type R. It
// implements bin.Codec[R], so records nest inside containers and other
// records directly.
type Schema[R any] struct {
	typ     reflect.Type
	members []Member[R]
}

var _ bin.Codec[struct{}] = (*Schema[struct{}])(nil)

// New builds a schema without registering it. Member names must be unique.
func New[R any](members ...Member[R]) *Schema[R] {
	typ := reflect.TypeFor[R]()
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m == nil {
			panic(fmt.Sprintf("record: %v: member %d is nil", typ, i))
		}
		if _, dup := seen[m.Name()]; dup {
			panic(fmt.Sprintf("record: %v: duplicate member %q", typ, m.Name()))
		}
		seen[m.Name()] = struct{}{}
	}
	return &Schema[R]{typ: typ, members: append([]Member[R](nil), members...)}
}

// Name returns the Go type name of R.
func (s *Schema[R]) Name() string { return s.typ.String() }

// Type returns the reflect.Type of R.
func (s *Schema[R]) Type() reflect.Type { return s.typ }

// Fields returns the member names in wire order.
func (s *Schema[R]) Fields() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = m.Name()
	}
	return out
}

// Encode appends every member of v in schema order.
func (s *Schema[R]) Encode(b *wire.Buffer, v R) {
	for _, m := range s.members {
		m.encode(b, &v)
	}
}

// Decode reads every member into v in schema order, stopping at the first
// failure. Members already decoded keep their new values.
func (s *Schema[R]) Decode(c *wire.Cursor, v *R) bool {
	for _, m := range s.members {
		if !c.OK() || !m.decode(c, v) {
			return false
		}
	}
	return c.OK()
}

// EncodeValue encodes v, which must be an R or a non-nil *R.
func (s *Schema[R]) EncodeValue(b *wire.Buffer, v any) {
	switch x := v.(type) {
	case R:
		s.Encode(b, x)
	case *R:
		s.Encode(b, *x)
	default:
		panic(fmt.Sprintf("record: schema %v cannot encode %T", s.typ, v))
	}
}

// DecodeValue decodes into dst, which must be a non-nil *R.
func (s *Schema[R]) DecodeValue(c *wire.Cursor, dst any) bool {
	p, ok := dst.(*R)
	if !ok || p == nil {
		panic(fmt.Sprintf("record: schema %v cannot decode into %T", s.typ, dst))
	}
	return s.Decode(c, p)
}
