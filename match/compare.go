package match

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/toejough/expecto/internal/core"
)

// Eq matches values deeply equal to expected.
func Eq(expected any) Matcher {
	return &equalMatcher{expected: expected}
}

// Ne matches values not deeply equal to unexpected.
func Ne(unexpected any) Matcher {
	return &equalMatcher{expected: unexpected, negated: true}
}

// Lt matches values of type T below bound.
func Lt[T cmp.Ordered](bound T) Matcher {
	return &orderedMatcher[T]{name: "Lt", bound: bound, accept: func(c int) bool { return c < 0 }}
}

// Le matches values of type T at or below bound.
func Le[T cmp.Ordered](bound T) Matcher {
	return &orderedMatcher[T]{name: "Le", bound: bound, accept: func(c int) bool { return c <= 0 }}
}

// Gt matches values of type T above bound.
func Gt[T cmp.Ordered](bound T) Matcher {
	return &orderedMatcher[T]{name: "Gt", bound: bound, accept: func(c int) bool { return c > 0 }}
}

// Ge matches values of type T at or above bound.
func Ge[T cmp.Ordered](bound T) Matcher {
	return &orderedMatcher[T]{name: "Ge", bound: bound, accept: func(c int) bool { return c >= 0 }}
}

// Range matches values of type T between lower and upper. It renders in interval
// notation, e.g. "[1, 5)".
func Range[T cmp.Ordered](lower, upper core.Bound[T]) Matcher {
	return &rangeMatcher[T]{lower: lower, upper: upper}
}

// InRange matches values of type T in the closed interval [lower, upper].
func InRange[T cmp.Ordered](lower, upper T) Matcher {
	return Range(core.Inclusive(lower), core.Inclusive(upper))
}

type equalMatcher struct {
	expected any
	negated  bool
}

func (m *equalMatcher) Matches(actual any) bool {
	return reflect.DeepEqual(actual, m.expected) != m.negated
}

func (m *equalMatcher) String() string {
	if m.negated {
		return fmt.Sprintf("Ne(%#v)", m.expected)
	}

	return fmt.Sprintf("Eq(%#v)", m.expected)
}

type orderedMatcher[T cmp.Ordered] struct {
	name   string
	bound  T
	accept func(comparison int) bool
}

func (m *orderedMatcher[T]) Matches(actual any) bool {
	value, ok := actual.(T)
	if !ok {
		return false
	}

	return m.accept(cmp.Compare(value, m.bound))
}

func (m *orderedMatcher[T]) String() string {
	return fmt.Sprintf("%s(%#v)", m.name, m.bound)
}

type rangeMatcher[T cmp.Ordered] struct {
	lower core.Bound[T]
	upper core.Bound[T]
}

func (m *rangeMatcher[T]) Matches(actual any) bool {
	value, ok := actual.(T)
	if !ok {
		return false
	}

	return m.lower.AllowsAbove(value) && m.upper.AllowsBelow(value)
}

func (m *rangeMatcher[T]) String() string {
	return core.FormatInterval(m.lower, m.upper)
}
