package core

import (
	"fmt"
	"sync/atomic"
)

// Expectation is one registered rule: calls to a method whose arguments satisfy the
// matcher are accepted, within the call-count range and sequence order, and answered
// by the action.
//
// Expectations are configured through a Builder and owned by the registry of the Handle
// that created them.
type Expectation struct {
	method      Method
	times       *Times
	description string
	action      Action
	matcher     Matcher
	sequences   []*SequenceHandle

	// gate serializes dispatches of static methods, which find the expectation through a
	// local context instead of through a locked registry.
	gate    gate
	retired atomic.Bool
}

func newExpectation(method Method) *Expectation {
	return &Expectation{
		method: method,
		times:  NewTimes(AtLeast(1)),
		gate:   newGate(),
	}
}

// Description returns the user-supplied description.
func (e *Expectation) Description() string {
	return e.description
}

// Method returns the method the expectation was registered for.
func (e *Expectation) Method() Method {
	return e.method
}

// Retired reports whether a checkpoint removed the expectation from its registry.
func (e *Expectation) Retired() bool {
	return e.retired.Load()
}

// Times returns the call counter of the expectation.
func (e *Expectation) Times() *Times {
	return e.times
}

// String renders the expectation the way diagnostics show it, e.g.
// "Calculator.Add(Eq(1), Any) adds small numbers".
func (e *Expectation) String() string {
	args := placeholders(e.method.Arity)
	if e.matcher != nil {
		args = e.matcher.String()
	}

	text := fmt.Sprintf("%s(%s)", e.method, args)
	if e.description != "" {
		text += " " + e.description
	}

	return text
}

func (e *Expectation) matches(args []any) bool {
	if e.matcher == nil {
		return true
	}

	return e.matcher.Matches(args)
}

// retire marks the expectation as removed from its registry, which expires weak
// references to it and frees its sequence slots.
func (e *Expectation) retire() {
	e.retired.Store(true)
	releaseHandles(e.sequences)
}

// selectCall records an accepted call.
func (e *Expectation) selectCall() {
	e.times.Increment()

	if e.times.IsReady() {
		for _, handle := range e.sequences {
			handle.SetReady()
		}
	}
}

func (e *Expectation) setDone() {
	for _, handle := range e.sequences {
		handle.SetDone()
	}
}

func releaseHandles(handles []*SequenceHandle) {
	for _, handle := range handles {
		handle.Release()
	}
}
