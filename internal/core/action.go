package core

import (
	"fmt"
	"sync/atomic"
)

// Action computes the results of a call from its arguments.
// Unless it is also Cloneable, an Action is only run once.
type Action interface {
	Exec(args []any) []any
}

// Cloneable is an Action that can be copied, so it can serve many calls.
type Cloneable interface {
	Action
	Clone() Action
}

// Fallback is the default implementation a stub supplies for calls whose expectation
// has no action. A nil Fallback means there is no default implementation.
type Fallback func(args []any) []any

// OnetimeAction runs its action once and fails on any further call.
type OnetimeAction struct {
	inner Action
	used  atomic.Bool
}

// NewOnetimeAction wraps action for single use.
func NewOnetimeAction(action Action) *OnetimeAction {
	return &OnetimeAction{inner: action}
}

// Exec runs the wrapped action. A second call panics with an *ActionReusedError.
func (a *OnetimeAction) Exec(args []any) []any {
	if a.used.Swap(true) {
		panic(&ActionReusedError{Args: args})
	}

	return a.inner.Exec(args)
}

// RepeatedAction runs a fresh clone of its action for every call.
type RepeatedAction struct {
	inner Cloneable
}

// NewRepeatedAction wraps action for repeated use.
func NewRepeatedAction(action Cloneable) *RepeatedAction {
	return &RepeatedAction{inner: action}
}

// Exec runs a clone of the wrapped action.
func (a *RepeatedAction) Exec(args []any) []any {
	return a.inner.Clone().Exec(args)
}

// Invoke forwards the call arguments to fn.
func Invoke(fn func(args []any) []any) Cloneable {
	return invokeAction(fn)
}

// Panic panics with value when the call is made.
func Panic(value any) Cloneable {
	return panicAction{value: value}
}

// Return returns values for every call.
func Return(values ...any) Cloneable {
	return returnAction(values)
}

// ReturnPointee returns the value ptr points to at the time of the call.
func ReturnPointee[T any](ptr *T) Cloneable {
	return pointeeAction[T]{ptr: ptr}
}

// Result unpacks result i of a dispatched call. Missing and nil results are the zero value.
func Result[T any](results []any, i int) T {
	var zero T

	if i >= len(results) || results[i] == nil {
		return zero
	}

	value, ok := results[i].(T)
	if !ok {
		panic(fmt.Sprintf("result %d: expected %T, got %T", i, zero, results[i]))
	}

	return value
}

type invokeAction func(args []any) []any

func (a invokeAction) Clone() Action {
	return a
}

func (a invokeAction) Exec(args []any) []any {
	return a(args)
}

type panicAction struct {
	value any
}

func (a panicAction) Clone() Action {
	return a
}

func (a panicAction) Exec([]any) []any {
	panic(a.value)
}

type pointeeAction[T any] struct {
	ptr *T
}

func (a pointeeAction[T]) Clone() Action {
	return a
}

func (a pointeeAction[T]) Exec([]any) []any {
	return []any{*a.ptr}
}

type returnAction []any

func (a returnAction) Clone() Action {
	return append(returnAction(nil), a...)
}

func (a returnAction) Exec([]any) []any {
	return a
}
