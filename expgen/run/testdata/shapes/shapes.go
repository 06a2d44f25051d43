// Package shapes declares interfaces the generator tests mock.
package shapes

import (
	"context"
	"io"
)

// Point is a position on the plane.
type Point struct{ X, Y int }

// Shape is a mockable interface with every kind of method the generator handles.
type Shape interface {
	Area() float64
	Move(ctx context.Context, by Point) (Point, error)
	Label(prefix string, parts ...string) string
	Reset()
	Describer
}

// Describer writes a description.
type Describer interface {
	Describe(w io.Writer) error
}

// Container is a generic interface.
type Container[T any] interface {
	Put(item T)
	Get(i int) (T, bool)
}

// Stream embeds an interface from another package.
type Stream interface {
	io.Reader
}

// Named is not an interface.
type Named string
