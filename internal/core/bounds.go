package core

import (
	"cmp"
	"fmt"
)

// BoundKind says how a Bound constrains its side of a range.
type BoundKind int

// Bound kinds.
const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// Bound is one side of a range.
type Bound[T cmp.Ordered] struct {
	Kind  BoundKind
	Value T
}

// Inclusive returns a bound that includes value.
func Inclusive[T cmp.Ordered](value T) Bound[T] {
	return Bound[T]{Kind: Included, Value: value}
}

// Exclusive returns a bound that excludes value.
func Exclusive[T cmp.Ordered](value T) Bound[T] {
	return Bound[T]{Kind: Excluded, Value: value}
}

// Open returns an unbounded side.
func Open[T cmp.Ordered]() Bound[T] {
	return Bound[T]{Kind: Unbounded}
}

// AllowsAbove reports whether value satisfies the bound when used as a lower bound.
func (b Bound[T]) AllowsAbove(value T) bool {
	switch b.Kind {
	case Included:
		return b.Value <= value
	case Excluded:
		return b.Value < value
	default:
		return true
	}
}

// AllowsBelow reports whether value satisfies the bound when used as an upper bound.
func (b Bound[T]) AllowsBelow(value T) bool {
	switch b.Kind {
	case Included:
		return value <= b.Value
	case Excluded:
		return value < b.Value
	default:
		return true
	}
}

// FormatInterval renders lower/upper in interval notation: [1, 3], (0, 5), [2, _].
func FormatInterval[T cmp.Ordered](lower, upper Bound[T]) string {
	var left, right string

	switch lower.Kind {
	case Included:
		left = fmt.Sprintf("[%v", lower.Value)
	case Excluded:
		left = fmt.Sprintf("(%v", lower.Value)
	default:
		left = "[_"
	}

	switch upper.Kind {
	case Included:
		right = fmt.Sprintf("%v]", upper.Value)
	case Excluded:
		right = fmt.Sprintf("%v)", upper.Value)
	default:
		right = "_]"
	}

	return left + ", " + right
}
