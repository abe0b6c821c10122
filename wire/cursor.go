package wire

// Cursor is a non-owning read window over an encoded byte sequence with a
// sticky failure flag.
//
// Once ok goes false it stays false for the rest of the decode pass (until Init
// is called again). Every codec checks the flag before doing work, so a single
// bounds or invariant failure short-circuits the whole decode. A failed read
// never advances the read position.
//
// The zero value is not armed: OK and EOF report false until Init is called.
type Cursor struct {
	buf []byte
	off int
	ok  bool
}

// NewCursor returns a Cursor initialised over b.
func NewCursor(b []byte) *Cursor {
	c := &Cursor{}
	c.Init(b)
	return c
}

// Init resets the read position to the start of b and re-arms the cursor.
func (c *Cursor) Init(b []byte) {
	c.buf = b
	c.off = 0
	c.ok = true
}

// OK reports whether no failure has been recorded.
func (c *Cursor) OK() bool { return c.ok }

// Has reports whether at least n unread bytes remain. Asking for more than
// what is left is a bounds failure and disarms the cursor.
func (c *Cursor) Has(n int) bool {
	if c.ok && (n < 0 || n > len(c.buf)-c.off) {
		c.ok = false
	}
	return c.ok
}

// Stop records an invariant failure (duplicate key, misaligned length, oversized
// varint). It always returns false so callers can `return c.Stop()`.
func (c *Cursor) Stop() bool {
	c.ok = false
	return false
}

// EOF reports whether decoding succeeded and consumed every byte.
func (c *Cursor) EOF() bool { return c.ok && c.off == len(c.buf) }

// Next returns the next n bytes and advances past them. The returned slice
// aliases the underlying input.
func (c *Cursor) Next(n int) ([]byte, bool) {
	if !c.Has(n) {
		return nil, false
	}
	p := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return p, true
}

// Byte returns the next byte.
func (c *Cursor) Byte() (byte, bool) {
	if !c.Has(1) {
		return 0, false
	}
	v := c.buf[c.off]
	c.off++
	return v, true
}

// Offset returns the read position. After a failure it points at the read
// that could not be satisfied.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.off }
