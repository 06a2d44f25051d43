package core

import (
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	ErrActionReused    = errors.New("one-time action called more than once")
	ErrArity           = errors.New("argument matcher does not fit the method")
	ErrBuilderReleased = errors.New("expectation builder already released")
	ErrDeadlock        = errors.New("unable to lock expectation registry")
	ErrNoDefault       = errors.New("no default implementation")
	ErrNoMatch         = errors.New("no suitable expectation found")
	ErrScopeOrder      = errors.New("local context closed out of order")
	ErrUnsatisfied     = errors.New("unfulfilled expectations")
)

// ActionReusedError reports a second call into a one-time action.
type ActionReusedError struct {
	Args []any
}

func (e *ActionReusedError) Error() string {
	return fmt.Sprintf("%s (args: %s)", ErrActionReused, formatArgs(e.Args))
}

func (e *ActionReusedError) Unwrap() error {
	return ErrActionReused
}

// DeadlockError reports a registry that stayed locked for the whole lock timeout. Either an
// action re-entered the mock it belongs to, or an action running in another goroutine
// took longer than the timeout.
type DeadlockError struct {
	Name      string
	Operation string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("%s of '%s' during %s: deadlock? (an action may be calling back into the same mock, "+
		"or an action in another goroutine ran longer than the lock timeout)",
		ErrDeadlock, e.Name, e.Operation)
}

func (e *DeadlockError) Unwrap() error {
	return ErrDeadlock
}

// NoMatchError reports a call no expectation accepted, together with the reason each
// candidate was rejected.
type NoMatchError struct {
	Call  string
	Trace string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s for %s\n%s", ErrNoMatch, e.Call, e.Trace)
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

// UnsatisfiedError lists the expectations a checkpoint found below their lower call bound.
type UnsatisfiedError struct {
	Name         string
	Expectations []string
}

func (e *UnsatisfiedError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "mocked object '%s' has %s:", e.Name, ErrUnsatisfied)

	for _, ex := range e.Expectations {
		fmt.Fprintf(&builder, "\n- %s", ex)
	}

	return builder.String()
}

func (e *UnsatisfiedError) Unwrap() error {
	return ErrUnsatisfied
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%#v", arg)
	}

	return strings.Join(parts, ", ")
}
