package bin

import (
	"testing"

	"github.com/unkn0wn-root/binser/wire"
)

func encode[T any](rule Codec[T], v T) []byte {
	var b wire.Buffer
	rule.Encode(&b, v)
	return b.Bytes()
}

func mustRoundTrip[T any](t *testing.T, rule Codec[T], v T) T {
	t.Helper()
	got, off, err := DecodeAll(rule, encode(rule, v))
	if err != nil {
		t.Fatalf("DecodeAll: %v at offset %d", err, off)
	}
	return got
}

// mustRejectPrefixes checks that every proper prefix of enc fails to decode.
func mustRejectPrefixes[T any](t *testing.T, rule Codec[T], enc []byte) {
	t.Helper()
	for i := 0; i < len(enc); i++ {
		var (
			v T
			c wire.Cursor
		)
		c.Init(enc[:i])
		if rule.Decode(&c, &v) {
			t.Fatalf("prefix %x (len %d of %d) decoded successfully", enc[:i], i, len(enc))
		}
	}
}

func mustReject[T any](t *testing.T, rule Codec[T], in []byte) {
	t.Helper()
	var (
		v T
		c wire.Cursor
	)
	c.Init(in)
	if rule.Decode(&c, &v) {
		t.Fatalf("decoded %x, want failure", in)
	}
	if c.OK() {
		t.Fatalf("failure left the cursor armed")
	}
}
