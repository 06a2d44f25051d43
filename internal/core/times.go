package core

import (
	"fmt"
	"sync/atomic"
)

// Range is the number of calls an expectation accepts.
type Range struct {
	Lower Bound[int]
	Upper Bound[int]
}

// Exactly expects n calls.
func Exactly(n int) Range {
	return Range{Lower: Inclusive(n), Upper: Inclusive(n)}
}

// Between expects at least lower and at most upper calls.
func Between(lower, upper int) Range {
	return Range{Lower: Inclusive(lower), Upper: Inclusive(upper)}
}

// HalfOpen expects at least lower calls and fewer than upper calls.
func HalfOpen(lower, upper int) Range {
	return Range{Lower: Inclusive(lower), Upper: Exclusive(upper)}
}

// AtLeast expects n or more calls.
func AtLeast(n int) Range {
	return Range{Lower: Inclusive(n), Upper: Open[int]()}
}

// AtMost expects up to n calls.
func AtMost(n int) Range {
	return Range{Lower: Open[int](), Upper: Inclusive(n)}
}

// Below expects fewer than n calls.
func Below(n int) Range {
	return Range{Lower: Open[int](), Upper: Exclusive(n)}
}

// AnyTimes accepts any number of calls, including none.
func AnyTimes() Range {
	return Range{Lower: Open[int](), Upper: Open[int]()}
}

func (r Range) String() string {
	return FormatInterval(r.Lower, r.Upper)
}

// Times tracks how often an expectation was called against its Range.
// The counter only ever grows.
type Times struct {
	count atomic.Int64
	rng   Range
}

// NewTimes returns a zero-count tracker for r.
func NewTimes(r Range) *Times {
	return &Times{rng: r}
}

// Count returns the number of recorded calls.
func (t *Times) Count() int {
	return int(t.count.Load())
}

// Increment records a call and returns the count before it.
func (t *Times) Increment() int {
	return int(t.count.Add(1) - 1)
}

// IsDone reports whether the upper bound is reached. An excluded upper bound of n
// is reached once the next call would make the count n.
func (t *Times) IsDone() bool {
	count := t.Count()

	switch t.rng.Upper.Kind {
	case Included:
		return count >= t.rng.Upper.Value
	case Excluded:
		return count+1 >= t.rng.Upper.Value
	default:
		return false
	}
}

// IsReady reports whether the lower bound is met.
func (t *Times) IsReady() bool {
	return t.rng.Lower.AllowsAbove(t.Count())
}

// Range returns the configured range.
func (t *Times) Range() Range {
	return t.rng
}

func (t *Times) String() string {
	return fmt.Sprintf("%d calls, expected %s", t.Count(), t.rng)
}

// setRange replaces the range. Only builders call this, before the expectation is used.
func (t *Times) setRange(r Range) {
	t.rng = r
}
