package bin

import (
	"cmp"
	"maps"
	"reflect"
	"slices"

	"github.com/unkn0wn-root/binser/wire"
)

// Every container is a varint element (or pair) count followed by the
// elements. Any element failure aborts the whole container; the destination
// is then unspecified.

// Slice returns the sequence codec for []T. Decode preserves encode order.
// When a zero-size element consumes no input, the rest of the count is
// filled with zero values instead of being decoded one by one.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return slice[T]{elem: elem, zeroWidth: reflect.TypeFor[T]().Size() == 0}
}

type slice[T any] struct {
	elem      Codec[T]
	zeroWidth bool
}

func (s slice[T]) Encode(b *wire.Buffer, v []T) {
	putLen(b, len(v))
	for _, e := range v {
		s.elem.Encode(b, e)
	}
}

func (s slice[T]) Decode(c *wire.Cursor, v *[]T) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	out := (*v)[:0]
	if hint := min(n, c.Remaining()); cap(out) < hint {
		out = make([]T, 0, hint)
	}
	for i := range n {
		var e T
		off := c.Offset()
		if !s.elem.Decode(c, &e) {
			*v = out
			return false
		}
		if s.zeroWidth && c.Offset() == off {
			// every remaining element reads the same zero bytes; a large
			// count costs no input, so do not loop over it
			out = append(out, make([]T, n-i)...)
			break
		}
		out = append(out, e)
	}
	*v = out
	return true
}

// Set returns the codec for a set of ordered keys. Keys are written in
// ascending order so equal sets encode to equal bytes.
func Set[K cmp.Ordered](key Codec[K]) Codec[map[K]struct{}] {
	return SetFunc(key, cmp.Compare[K])
}

// SetFunc is Set for any comparable key. order sorts keys before encoding;
// with a nil order keys are written in map iteration order.
//
// Decoding a key that is already present is an invariant failure: a
// well-formed encoder never produces one.
func SetFunc[K comparable](key Codec[K], order func(a, b K) int) Codec[map[K]struct{}] {
	return set[K]{key: key, order: order}
}

type set[K comparable] struct {
	key   Codec[K]
	order func(a, b K) int
}

func (s set[K]) Encode(b *wire.Buffer, v map[K]struct{}) {
	putLen(b, len(v))
	for _, e := range sortedEntries(v, s.order) {
		s.key.Encode(b, e.key)
	}
}

func (s set[K]) Decode(c *wire.Cursor, v *map[K]struct{}) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	out := reset(v, min(n, c.Remaining()))
	for range n {
		var k K
		if !s.key.Decode(c, &k) {
			return false
		}
		if _, dup := out[k]; dup {
			return c.Stop()
		}
		out[k] = struct{}{}
	}
	return true
}

// Map returns the codec for a map with ordered keys, written in ascending key
// order as key/value pairs.
func Map[K cmp.Ordered, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return MapFunc(key, val, cmp.Compare[K])
}

// MapFunc is Map for any comparable key; see SetFunc for order and duplicate
// handling.
func MapFunc[K comparable, V any](key Codec[K], val Codec[V], order func(a, b K) int) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val, order: order}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	val   Codec[V]
	order func(a, b K) int
}

func (m mapCodec[K, V]) Encode(b *wire.Buffer, v map[K]V) {
	putLen(b, len(v))
	for _, e := range sortedEntries(v, m.order) {
		m.key.Encode(b, e.key)
		m.val.Encode(b, e.val)
	}
}

func (m mapCodec[K, V]) Decode(c *wire.Cursor, v *map[K]V) bool {
	n, ok := readLen(c)
	if !ok {
		return false
	}
	out := reset(v, min(n, c.Remaining()))
	for range n {
		var (
			k   K
			val V
		)
		if !m.key.Decode(c, &k) || !m.val.Decode(c, &val) {
			return false
		}
		if _, dup := out[k]; dup {
			return c.Stop()
		}
		out[k] = val
	}
	return true
}

// Pair is a 2-tuple encoded as First immediately followed by Second.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf returns the codec for Pair[A, B].
func PairOf[A, B any](first Codec[A], second Codec[B]) Codec[Pair[A, B]] {
	return pair[A, B]{first: first, second: second}
}

type pair[A, B any] struct {
	first  Codec[A]
	second Codec[B]
}

func (p pair[A, B]) Encode(b *wire.Buffer, v Pair[A, B]) {
	p.first.Encode(b, v.First)
	p.second.Encode(b, v.Second)
}

func (p pair[A, B]) Decode(c *wire.Cursor, v *Pair[A, B]) bool {
	return c.OK() &&
		p.first.Decode(c, &v.First) &&
		p.second.Decode(c, &v.Second)
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// sortedEntries snapshots m as key/value pairs. Values are taken during
// iteration, not looked up afterwards, since a NaN key never matches itself.
func sortedEntries[K comparable, V any](m map[K]V, order func(a, b K) int) []entry[K, V] {
	out := make([]entry[K, V], 0, len(m))
	for k, v := range maps.All(m) {
		out = append(out, entry[K, V]{k, v})
	}
	if order != nil {
		slices.SortFunc(out, func(a, b entry[K, V]) int { return order(a.key, b.key) })
	}
	return out
}

// reset empties the map behind v, allocating it when nil.
func reset[K comparable, V any](v *map[K]V, hint int) map[K]V {
	if *v == nil {
		*v = make(map[K]V, hint)
	} else {
		clear(*v)
	}
	return *v
}
