// Package expecto verifies how code under test calls its collaborators.
// A mock forwards each call to a Handle, which answers it with the first registered
// expectation that accepts it, and checks at the end of the test that every expectation
// was called often enough.
//
// Mocks are generated with expgen. Matchers live in the match package.
//
// This is the public API entry point. Implementation lives in internal/core.
package expecto

import (
	"cmp"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/toejough/expecto/internal/core"
)

// Action computes the results of a call from its arguments.
type Action = core.Action

// ActionReusedError reports a second call into a one-time action.
type ActionReusedError = core.ActionReusedError

// ArgsMatcher is a Matcher for a whole argument list of a fixed length.
type ArgsMatcher = core.ArgsMatcher

// Bound is one side of a range.
type Bound[T cmp.Ordered] = core.Bound[T]

// Builder configures a freshly registered expectation.
type Builder = core.Builder

// Cloneable is an Action that can serve many calls.
type Cloneable = core.Cloneable

// Config holds the engine settings that can be changed from the environment.
type Config = core.Config

// DeadlockError reports a registry locked by the caller itself.
type DeadlockError = core.DeadlockError

// Env is the ambient state shared by the mocks of one test.
type Env = core.Env

// Expectation is one registered rule for calls to a method.
type Expectation = core.Expectation

// Fallback is the default implementation a stub supplies.
type Fallback = core.Fallback

// Handle controls a mocked object.
type Handle = core.Handle

// HandleOption configures a Handle.
type HandleOption = core.HandleOption

// LocalContext is a scope for expectations of static methods.
type LocalContext = core.LocalContext

// Matcher decides whether the arguments of a call are acceptable.
type Matcher = core.Matcher

// Method describes a mocked method.
type Method = core.Method

// MethodKey groups expectations in registries.
type MethodKey = core.MethodKey

// NoMatchError reports a call no expectation accepted.
type NoMatchError = core.NoMatchError

// Range is the number of calls an expectation accepts.
type Range = core.Range

// Sequence orders expectations.
type Sequence = core.Sequence

// SequenceHandle is a reserved slot in a Sequence.
type SequenceHandle = core.SequenceHandle

// SequenceScope restores the previous ambient sequence when closed.
type SequenceScope = core.SequenceScope

// Tag identifies a method signature.
type Tag = core.Tag

// TestReporter is the minimal interface expecto needs from test frameworks.
type TestReporter = core.TestReporter

// Timer abstracts time-based operations for testability.
type Timer = core.Timer

// Times tracks how often an expectation was called.
type Times = core.Times

// UnsatisfiedError lists expectations a checkpoint found unmet.
type UnsatisfiedError = core.UnsatisfiedError

// Errors re-exported from internal/core.
var (
	ErrActionReused    = core.ErrActionReused
	ErrArity           = core.ErrArity
	ErrBuilderReleased = core.ErrBuilderReleased
	ErrDeadlock        = core.ErrDeadlock
	ErrNoDefault       = core.ErrNoDefault
	ErrNoMatch         = core.ErrNoMatch
	ErrScopeOrder      = core.ErrScopeOrder
	ErrUnsatisfied     = core.ErrUnsatisfied
)

// Functions re-exported from internal/core.

// AnyTimes accepts any number of calls.
func AnyTimes() Range { return core.AnyTimes() }

// AtLeast expects n or more calls.
func AtLeast(n int) Range { return core.AtLeast(n) }

// AtMost expects up to n calls.
func AtMost(n int) Range { return core.AtMost(n) }

// Below expects fewer than n calls.
func Below(n int) Range { return core.Below(n) }

// Between expects at least lower and at most upper calls.
func Between(lower, upper int) Range { return core.Between(lower, upper) }

// ConfigFromEnv reads the engine settings through getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) { return core.ConfigFromEnv(getenv) }

// DefaultEnv returns the process-wide Env.
func DefaultEnv() *Env { return core.DefaultEnv() }

// EnvFor returns the Env of a test.
func EnvFor(t TestReporter) *Env { return core.EnvFor(t) }

// Exclusive returns a bound that excludes value.
func Exclusive[T cmp.Ordered](value T) Bound[T] { return core.Exclusive(value) }

// Exactly expects n calls.
func Exactly(n int) Range { return core.Exactly(n) }

// HalfOpen expects at least lower calls and fewer than upper calls.
func HalfOpen(lower, upper int) Range { return core.HalfOpen(lower, upper) }

// Inclusive returns a bound that includes value.
func Inclusive[T cmp.Ordered](value T) Bound[T] { return core.Inclusive(value) }

// Invoke forwards the call arguments to fn.
func Invoke(fn func(args []any) []any) Cloneable { return core.Invoke(fn) }

// NewHandle creates a Handle with an empty registry.
func NewHandle(t TestReporter, options ...HandleOption) *Handle { return core.NewHandle(t, options...) }

// NewSequence creates an empty sequence.
func NewSequence() *Sequence { return core.NewSequence() }

// Open returns an unbounded side.
func Open[T cmp.Ordered]() Bound[T] { return core.Open[T]() }

// Panic panics with value when the call is made.
func Panic(value any) Cloneable { return core.Panic(value) }

// Result unpacks result i of a dispatched call.
func Result[T any](results []any, i int) T { return core.Result[T](results, i) }

// Return returns values for every call.
func Return(values ...any) Cloneable { return core.Return(values...) }

// ReturnPointee returns the value ptr points to at the time of the call.
func ReturnPointee[T any](ptr *T) Cloneable { return core.ReturnPointee(ptr) }

// TagOf returns the tag of the function type F.
func TagOf[F any]() Tag { return core.TagOf[F]() }

// WithEnv attaches a handle to env.
func WithEnv(env *Env) HandleOption { return core.WithEnv(env) }

// WithLockTimeout sets how long a dispatch waits for a busy registry. Actions hold the
// registry, so a slow action in another goroutine counts against the timeout too.
func WithLockTimeout(timeout time.Duration) HandleOption { return core.WithLockTimeout(timeout) }

// WithLogger replaces a handle's logger.
func WithLogger(logger *charmlog.Logger) HandleOption { return core.WithLogger(logger) }

// WithName sets the name of the mocked object used in diagnostics.
func WithName(name string) HandleOption { return core.WithName(name) }

// WithTimer replaces the clock used for lock timeouts.
func WithTimer(timer Timer) HandleOption { return core.WithTimer(timer) }
