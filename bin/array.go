package bin

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/unkn0wn-root/binser/wire"
)

// Array returns the raw-block codec for the array type A, which must be [N]E.
// The N elements travel as one contiguous N*width block with no length
// prefix; the length is part of the type.
//
// The shape of A is checked here, once. Array panics when A is not an array
// of E.
func Array[A any, E Scalar]() Codec[A] {
	n := arrayLen[A, E]("Array")
	var e E
	return array[A, E]{
		n:       n,
		width:   int(unsafe.Sizeof(e)),
		boolean: reflect.TypeFor[E]().Kind() == reflect.Bool,
	}
}

type array[A any, E Scalar] struct {
	n       int
	width   int
	boolean bool
}

func (a array[A, E]) Encode(b *wire.Buffer, v A) {
	if a.width == 1 {
		b.Append(unsafe.Slice((*byte)(unsafe.Pointer(&v)), a.n))
		return
	}
	for _, e := range elems[A, E](&v, a.n) {
		putScalar(b, e)
	}
}

func (a array[A, E]) Decode(c *wire.Cursor, v *A) bool {
	p, ok := c.Next(a.n * a.width)
	if !ok {
		return false
	}
	out := elems[A, E](v, a.n)
	for i := range out {
		q := p[i*a.width : (i+1)*a.width]
		if a.boolean && q[0] > 1 {
			return c.Stop()
		}
		loadScalar(q, &out[i])
	}
	return true
}

// ArrayOf is the element-by-element codec for A = [N]E. Use it when E is not
// a Scalar (strings, containers, records); no length prefix is written.
func ArrayOf[A any, E any](elem Codec[E]) Codec[A] {
	return arrayOf[A, E]{n: arrayLen[A, E]("ArrayOf"), elem: elem}
}

type arrayOf[A any, E any] struct {
	n    int
	elem Codec[E]
}

func (a arrayOf[A, E]) Encode(b *wire.Buffer, v A) {
	for _, e := range elems[A, E](&v, a.n) {
		a.elem.Encode(b, e)
	}
}

func (a arrayOf[A, E]) Decode(c *wire.Cursor, v *A) bool {
	out := elems[A, E](v, a.n)
	for i := range out {
		var e E
		if !a.elem.Decode(c, &e) {
			return false
		}
		out[i] = e
	}
	return c.OK()
}

func arrayLen[A any, E any](fn string) int {
	at, et := reflect.TypeFor[A](), reflect.TypeFor[E]()
	if at.Kind() != reflect.Array || at.Elem() != et {
		panic(fmt.Sprintf("bin: %s[%v, %v]: %v is not an array of %v", fn, at, et, at, et))
	}
	return at.Len()
}

// elems views the array behind p as a slice of its n elements.
func elems[A any, E any](p *A, n int) []E {
	return unsafe.Slice((*E)(unsafe.Pointer(p)), n)
}
