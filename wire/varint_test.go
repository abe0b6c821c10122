package wire

import (
	"bytes"
	"math"
	"testing"
)

func encodeVarint(n uint32) []byte {
	var b Buffer
	AppendVarint(&b, n)
	return b.Bytes()
}

func TestVarintKnownEncodings(t *testing.T) {
	cases := []struct {
		n    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{1<<28 - 1, []byte{0xff, 0xff, 0xff, 0x7f}},
		{1 << 28, []byte{0x80, 0x80, 0x80, 0x80, 0x01}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tc := range cases {
		got := encodeVarint(tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("encode %d: got %x want %x", tc.n, got, tc.want)
		}
		if VarintLen(tc.n) != len(tc.want) {
			t.Fatalf("VarintLen(%d)=%d want %d", tc.n, VarintLen(tc.n), len(tc.want))
		}
		c := NewCursor(got)
		v, ok := ReadVarint(c)
		if !ok || v != tc.n || !c.EOF() {
			t.Fatalf("decode %x: got %d ok=%v eof=%v", got, v, ok, c.EOF())
		}
	}
}

func TestVarintRoundTripSweep(t *testing.T) {
	// every power-of-two boundary plus a stride through the whole range
	var values []uint32
	for i := 0; i < 32; i++ {
		p := uint32(1) << i
		values = append(values, p-1, p, p+1)
	}
	for n := uint64(0); n <= math.MaxUint32; n += 7919 * 7919 {
		values = append(values, uint32(n))
	}

	for _, n := range values {
		enc := encodeVarint(n)
		if len(enc) > MaxVarintLen {
			t.Fatalf("encode %d: %d bytes", n, len(enc))
		}
		c := NewCursor(enc)
		got, ok := ReadVarint(c)
		if !ok || got != n || !c.EOF() {
			t.Fatalf("round trip %d: got %d ok=%v eof=%v", n, got, ok, c.EOF())
		}
	}
}

func TestVarintMinimalLength(t *testing.T) {
	for n := uint32(1); n != 0 && n <= math.MaxUint32/2; n <<= 1 {
		enc := encodeVarint(n)
		if last := enc[len(enc)-1]; last == 0 {
			t.Fatalf("encode %d: trailing zero chunk in %x", n, enc)
		}
	}
}

func TestVarintRejects(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"truncated continuation", []byte{0x80}},
		{"truncated 4 bytes", []byte{0xff, 0xff, 0xff, 0xff}},
		{"fifth byte top nibble", []byte{0xff, 0xff, 0xff, 0xff, 0x10}},
		{"fifth byte high bit", []byte{0x80, 0x80, 0x80, 0x80, 0x7f}},
		{"six bytes", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}},
		{"non-minimal zero", []byte{0x80, 0x00}},
		{"non-minimal one", []byte{0x81, 0x80, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCursor(tc.in)
			if v, ok := ReadVarint(c); ok {
				t.Fatalf("accepted %x as %d", tc.in, v)
			}
			if c.OK() {
				t.Fatalf("failure did not disarm the cursor")
			}
		})
	}
}

func TestVarintOverflowDoesNotReadSixthByte(t *testing.T) {
	c := NewCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, ok := ReadVarint(c); ok {
		t.Fatalf("6-byte varint accepted")
	}
	if c.Offset() != 5 {
		t.Fatalf("offset=%d, decoder should stop at the fifth byte", c.Offset())
	}
}

func TestVarintOnDisarmedCursor(t *testing.T) {
	c := NewCursor([]byte{0x01})
	c.Stop()
	if _, ok := ReadVarint(c); ok {
		t.Fatalf("ReadVarint succeeded on a failed cursor")
	}
}
