// Package binser is a compact, schema-driven binary serializer for Go values.
//
// The wire format carries no type tags or field names: scalars are written as
// raw little-endian bytes, sizes and counts as 7-bit varints (at most 32 bits),
// and records as the concatenation of their fields in declaration order.
// Encoder and decoder must share the same schema.
//
// Layers:
//   - wire: the append-only Buffer, the bounds-checked Cursor and the varint.
//   - bin: composable per-type rules (scalars, arrays, strings, containers).
//   - record: ordered field registries for struct types.
//   - binser (this package): one-call Marshal and Unmarshal on top of them.
//
// Usage:
//
//	b := binser.Marshal(order)
//	got, err := binser.Unmarshal[Order](b)
//
// Decoding never panics on malformed input. Any bounds or invariant failure is
// reported as a *DecodeError wrapping wire.ErrCorrupt or wire.ErrTrailing.
package binser
