package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use and writes maps in iteration order.
//
// Field names come from `msgpack:"name"` tags, not json tags.
type Msgpack[V any] struct {
	// SortMapKeys makes map output byte-stable.
	SortMapKeys bool
	// CompactInts writes integers in the smallest msgpack form that holds them.
	CompactInts bool
}

func (m Msgpack[V]) Encode(v V) ([]byte, error) {
	if !m.SortMapKeys && !m.CompactInts {
		return msgpack.Marshal(v)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(m.SortMapKeys)
	enc.UseCompactInts(m.CompactInts)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
