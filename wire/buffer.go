package wire

import "encoding/binary"

// Buffer is the append-only encode target. The zero value is ready to use.
// Buffer grows monotonically during an encode pass and never shrinks.
// It is not safe for concurrent use.
type Buffer struct {
	b []byte
}

// NewBuffer returns a Buffer with room for capHint bytes before it has to grow.
func NewBuffer(capHint int) *Buffer {
	if capHint < 0 {
		capHint = 0
	}
	return &Buffer{b: make([]byte, 0, capHint)}
}

// BufferFrom returns a Buffer that takes ownership of p and appends after its
// existing contents.
func BufferFrom(p []byte) *Buffer { return &Buffer{b: p} }

// Append appends raw bytes.
func (b *Buffer) Append(p []byte) { b.b = append(b.b, p...) }

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) { b.b = append(b.b, s...) }

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) { b.b = append(b.b, c) }

// All multi-byte scalars are written little-endian regardless of host order.

func (b *Buffer) AppendUint16(v uint16) { b.b = binary.LittleEndian.AppendUint16(b.b, v) }
func (b *Buffer) AppendUint32(v uint32) { b.b = binary.LittleEndian.AppendUint32(b.b, v) }
func (b *Buffer) AppendUint64(v uint64) { b.b = binary.LittleEndian.AppendUint64(b.b, v) }

// Bytes returns the encoded bytes. The slice aliases the buffer's storage
// and is only valid until the next append.
func (b *Buffer) Bytes() []byte { return b.b }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.b) }
