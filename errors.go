package binser

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoSchema is returned by the dynamic API for types that were never
// registered with record.Register.
var ErrNoSchema = errors.New("binser: no schema registered")

// DecodeError describes a failed Unmarshal.
type DecodeError struct {
	Type   reflect.Type
	Offset int   // cursor position when decoding stopped
	Err    error // wire.ErrCorrupt or wire.ErrTrailing
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("binser: decode %v: %v at offset %d", e.Type, e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }
