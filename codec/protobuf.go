package codec

import "google.golang.org/protobuf/proto"

// Protobuf carries generated proto messages. ctor allocates the message that
// Decode fills, e.g. func() *pb.Order { return new(pb.Order) }.
type Protobuf[T proto.Message] struct {
	ctor func() T
	mo   proto.MarshalOptions
}

// NewProtobuf builds a codec with deterministic map ordering.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	if ctor == nil {
		panic("codec: NewProtobuf with nil constructor")
	}
	return Protobuf[T]{ctor: ctor, mo: proto.MarshalOptions{Deterministic: true}}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) { return c.mo.Marshal(v) }

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.ctor()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}
