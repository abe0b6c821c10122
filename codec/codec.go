// Package codec converts whole values to and from byte slices for storage.
//
// Binary runs the binser rule engine. CBOR, Msgpack, JSON and Protobuf wrap
// the usual general-purpose formats so the same store can hold either, and
// cmd/binsize can compare them.
package codec

import (
	"fmt"

	"github.com/unkn0wn-root/binser/bin"
	"github.com/unkn0wn-root/binser/record"
)

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Binary encodes V with a bin rule. Decode requires the rule to consume the
// whole input.
type Binary[V any] struct {
	rule bin.Codec[V]
}

var _ Codec[string] = Binary[string]{}

func NewBinary[V any](rule bin.Codec[V]) Binary[V] {
	if rule == nil {
		panic("codec: NewBinary with nil rule")
	}
	return Binary[V]{rule: rule}
}

// Record returns the Binary codec for a record type's own schema.
func Record[R record.Described[R]]() Binary[R] {
	var zero R
	return NewBinary[R](zero.Schema())
}

func (c Binary[V]) Encode(v V) ([]byte, error) {
	return bin.Append(nil, c.rule, v), nil
}

func (c Binary[V]) Decode(b []byte) (V, error) {
	v, off, err := bin.DecodeAll(c.rule, b)
	if err != nil {
		return v, fmt.Errorf("codec: binary: %w at offset %d", err, off)
	}
	return v, nil
}
