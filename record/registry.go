package record

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/unkn0wn-root/binser/wire"
)

// Described is implemented by record types that expose their schema. Requiring
// it in a type constraint turns "this type has no schema" into a compile
// error.
type Described[R any] interface {
	Schema() *Schema[R]
}

// Erased is the type-erased view of a registered schema, for callers that only
// hold an `any`.
type Erased interface {
	Name() string
	Type() reflect.Type
	Fields() []string
	EncodeValue(b *wire.Buffer, v any)
	DecodeValue(c *wire.Cursor, dst any) bool
}

// registry maps reflect.Type -> Erased. Entries are written once and never
// replaced, so concurrent lookups need no further locking.
var registry sync.Map

// Register builds the schema for R and records it in the process-wide
// registry. Registering the same type twice panics; do it from a package-level
// variable or an init function.
func Register[R any](members ...Member[R]) *Schema[R] {
	s := New(members...)
	if _, loaded := registry.LoadOrStore(s.typ, Erased(s)); loaded {
		panic(fmt.Sprintf("record: schema for %v already registered", s.typ))
	}
	return s
}

// Lookup returns the registered schema for R.
func Lookup[R any]() (*Schema[R], bool) {
	v, ok := registry.Load(reflect.TypeFor[R]())
	if !ok {
		return nil, false
	}
	return v.(*Schema[R]), true
}

// Find returns the registered schema for t.
func Find(t reflect.Type) (Erased, bool) {
	v, ok := registry.Load(t)
	if !ok {
		return nil, false
	}
	return v.(Erased), true
}
