package core

import (
	"slices"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Handle controls a mocked object: it registers expectations, answers the calls
// generated stubs forward to it, and verifies the registry at checkpoints.
//
// A Handle is closed automatically when its test finishes, which runs a final checkpoint.
type Handle struct {
	t           TestReporter
	shared      *Shared
	env         *Env
	timer       Timer
	lockTimeout time.Duration
	logger      *charmlog.Logger

	released atomic.Bool
	closed   atomic.Bool
}

// HandleOption configures a Handle.
type HandleOption func(*Handle) *Handle

// NewHandle creates a Handle with an empty registry. Failures are reported to t; a nil t
// makes them panic and uses DefaultEnv.
func NewHandle(t TestReporter, options ...HandleOption) *Handle {
	cfg := processConfig()

	handle := &Handle{
		t:           orPanicReporter(t),
		shared:      newShared("mock"),
		timer:       realTimer{},
		lockTimeout: cfg.LockTimeout,
	}

	for _, o := range options {
		handle = o(handle)
	}

	if handle.env == nil {
		handle.env = EnvFor(t)
	}

	if handle.logger == nil {
		handle.logger = newLogger(cfg, handle.shared.name)
	}

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(handle.Close)
	}

	return handle
}

// WithEnv attaches the handle to env instead of the Env of its test.
func WithEnv(env *Env) HandleOption {
	return func(h *Handle) *Handle {
		h.env = env
		return h
	}
}

// WithLockTimeout sets how long a dispatch waits for a busy registry. Zero waits forever.
//
// The registry stays locked while an action runs, so concurrent calls are serialized and a
// call waiting behind a slower action in another goroutine also fails as a deadlock. A
// reentrant call from inside an action blocks for the full timeout before it fails.
func WithLockTimeout(timeout time.Duration) HandleOption {
	return func(h *Handle) *Handle {
		h.lockTimeout = timeout
		return h
	}
}

// WithLogger replaces the handle's logger.
func WithLogger(logger *charmlog.Logger) HandleOption {
	return func(h *Handle) *Handle {
		h.logger = logger
		return h
	}
}

// WithName sets the name of the mocked object used in diagnostics.
func WithName(name string) HandleOption {
	return func(h *Handle) *Handle {
		h.shared.name = name
		return h
	}
}

// WithTimer replaces the clock used for lock timeouts.
func WithTimer(timer Timer) HandleOption {
	return func(h *Handle) *Handle {
		h.timer = timer
		return h
	}
}

// Checkpoint verifies that every registered expectation reached its lower call bound,
// then clears the registry. Ready expectations finish their sequence slots.
// A second checkpoint without new expectations always passes.
func (h *Handle) Checkpoint() {
	h.t.Helper()
	h.env.releaseOpen()

	if !h.shared.gate.tryLock() {
		fail(h.t, &DeadlockError{Name: h.shared.name, Operation: "checkpoint"})
	}

	unmet := h.shared.checkpoint()
	h.shared.gate.unlock()

	if len(unmet) > 0 {
		h.logger.Error("unfulfilled expectations", "count", len(unmet))
		fail(h.t, &UnsatisfiedError{Name: h.shared.name, Expectations: unmet})
	}
}

// Clone returns a handle on the same registry. Each clone is closed separately.
func (h *Handle) Clone() *Handle {
	return &Handle{
		t:           h.t,
		shared:      h.shared,
		env:         h.env,
		timer:       h.timer,
		lockTimeout: h.lockTimeout,
		logger:      h.logger,
	}
}

// Close runs the final checkpoint, unless the handle was released or its test already
// failed. Only the first call has an effect.
func (h *Handle) Close() {
	h.t.Helper()

	if h.closed.Swap(true) || h.released.Load() || hasFailed(h.t) {
		return
	}

	h.Checkpoint()
}

// Dispatch answers a call to method with the first registered expectation that accepts
// args, running its action, or fallback when it has none. The registry stays locked
// while the action runs, so an action calling back into the same mock is reported as a
// deadlock once the lock timeout expires.
func (h *Handle) Dispatch(method Method, args []any, fallback Fallback) []any {
	h.t.Helper()
	h.env.releaseOpen()

	if !h.shared.gate.lockWithin(h.timer, h.lockTimeout) {
		fail(h.t, &DeadlockError{Name: h.shared.name, Operation: "dispatch of " + callText(method, args)})
	}

	defer h.shared.gate.unlock()

	d := dispatcher{t: h.t, logger: h.logger}

	return d.dispatch(method, args, slices.Values(h.shared.candidates(method.Key())), nil, fallback)
}

// Env returns the Env the handle registers static expectations in.
func (h *Handle) Env() *Env {
	return h.env
}

// Expect registers an expectation for method and returns its builder. The expectation
// joins the ambient sequence, if any, and is registered immediately, so registration
// order is the order of Expect calls.
func (h *Handle) Expect(method Method) *Builder {
	h.t.Helper()

	ex := newExpectation(method)
	if seq := h.env.CurrentSequence(); seq != nil {
		ex.sequences = []*SequenceHandle{seq.CreateHandle()}
	}

	if !h.shared.gate.lockWithin(h.timer, h.lockTimeout) {
		fail(h.t, &DeadlockError{Name: h.shared.name, Operation: "registration of " + method.String()})
	}

	h.shared.add(ex)
	h.shared.gate.unlock()

	if method.Static {
		h.env.Push(method.Key(), ex)
	}

	builder := &Builder{t: h.t, ex: ex}
	h.env.track(builder)

	return builder
}

// Name returns the name of the mocked object.
func (h *Handle) Name() string {
	return h.shared.name
}

// Pending returns the number of expectations registered since the last checkpoint.
func (h *Handle) Pending() int {
	h.t.Helper()

	if !h.shared.gate.lockWithin(h.timer, h.lockTimeout) {
		fail(h.t, &DeadlockError{Name: h.shared.name, Operation: "inspection"})
	}

	defer h.shared.gate.unlock()

	return h.shared.size()
}

// Release disables the checkpoint Close would run.
func (h *Handle) Release() {
	h.released.Store(true)
}
