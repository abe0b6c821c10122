// Package frame wraps encoded values in the envelope the store writes to
// providers.
//
//	magic "BSER"(4) | ver(1) | plen(u32 be) | payload(plen) | digest(8)
//
// digest is the first 8 bytes of BLAKE3(payload). It catches truncation and
// bit rot in shared providers; it is not a MAC.
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/zeebo/blake3"
)

const (
	version   byte = 1
	digestLen      = 8
	headerLen      = 4 + 1 + 4

	// Overhead is the number of bytes Encode adds around a payload.
	Overhead = headerLen + digestLen
)

var (
	// ErrCorrupt reports any frame that fails validation.
	ErrCorrupt = errors.New("binser: corrupt frame")
	magic      = [...]byte{'B', 'S', 'E', 'R'}
)

// Encode returns payload wrapped in a new frame.
func Encode(payload []byte) []byte {
	return Append(make([]byte, 0, Overhead+len(payload)), payload)
}

// Append writes the framed payload after dst.
func Append(dst, payload []byte) []byte {
	if uint64(len(payload)) > 0xFFFFFFFF {
		panic("binser: frame payload exceeds 4 GiB")
	}
	dst = append(dst, magic[:]...)
	dst = append(dst, version)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	sum := blake3.Sum256(payload)
	return append(dst, sum[:digestLen]...)
}

// Decode validates b and returns the payload. The payload aliases b. Any
// mismatch, including trailing bytes, is ErrCorrupt.
func Decode(b []byte) ([]byte, error) {
	if len(b) < Overhead || !bytes.Equal(b[:4], magic[:]) || b[4] != version {
		return nil, ErrCorrupt
	}
	plen := binary.BigEndian.Uint32(b[5:headerLen])
	if uint64(plen) != uint64(len(b)-Overhead) {
		return nil, ErrCorrupt
	}
	payload := b[headerLen : headerLen+int(plen) : headerLen+int(plen)]
	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:digestLen], b[headerLen+int(plen):]) {
		return nil, ErrCorrupt
	}
	return payload, nil
}
