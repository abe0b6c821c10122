// Package wire holds the two byte-level primitives every binser codec is built
// on, plus the variable-length integer used for sizes and counts.
//
//   - Buffer: owned, append-only encode target.
//   - Cursor: bounded, fail-sticky read window used by decoders.
//   - Varint: 1-5 byte little-endian 7-bit chunk encoding of uint32.
//
// A full round trip is:
//
//	var b wire.Buffer
//	rule.Encode(&b, v)
//
//	var c wire.Cursor
//	c.Init(b.Bytes())
//	ok := rule.Decode(&c, &out) && c.EOF()
package wire
