package core

import (
	"iter"
	"slices"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Env is the ambient state shared by the mocks of one test: the sequence new
// expectations join by default, the stack of local contexts for static methods, and
// the builders that are still being configured.
//
// Use EnvFor to get the Env of a test, or DefaultEnv outside of tests.
type Env struct {
	t           TestReporter
	timer       Timer
	lockTimeout time.Duration
	logger      *charmlog.Logger

	mu       sync.Mutex
	sequence *Sequence
	scope    *LocalContext
	open     []*Builder
}

// NewEnv creates an Env that reports failures to t. A nil t makes failures panic.
func NewEnv(t TestReporter) *Env {
	cfg := processConfig()

	return &Env{
		t:           orPanicReporter(t),
		timer:       realTimer{},
		lockTimeout: cfg.LockTimeout,
		logger:      newLogger(cfg, "static"),
	}
}

// CurrentScope returns the innermost local context, or nil when none is open.
func (e *Env) CurrentScope() *LocalContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.scope
}

// CurrentSequence returns the ambient sequence, or nil when none is active.
func (e *Env) CurrentSequence() *Sequence {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sequence
}

// DispatchStatic answers a call to a static method with the first acceptable
// expectation found through Lookup. Each candidate is locked while it is inspected, and
// the selected one stays locked while its action runs.
func (e *Env) DispatchStatic(method Method, args []any, fallback Fallback) []any {
	e.t.Helper()
	e.releaseOpen()

	d := dispatcher{t: e.t, logger: e.logger}

	lock := func(ex *Expectation) func() {
		if !ex.gate.lockWithin(e.timer, e.lockTimeout) {
			e.t.Helper()
			fail(e.t, &DeadlockError{Name: ex.method.Receiver, Operation: "dispatch of " + callText(method, args)})
		}

		return ex.gate.unlock
	}

	return d.dispatch(method, args, e.Lookup(method.Key()), lock, fallback)
}

// EnterNewSequence makes a new sequence ambient.
func (e *Env) EnterNewSequence() *SequenceScope {
	return e.EnterSequence(NewSequence())
}

// EnterScope opens a local context nested in the current one.
func (e *Env) EnterScope() *LocalContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scope = &LocalContext{env: e, parent: e.scope, entries: make(weakEntries)}

	return e.scope
}

// EnterSequence makes seq the sequence new expectations join, until the returned scope
// is closed.
func (e *Env) EnterSequence(seq *Sequence) *SequenceScope {
	e.mu.Lock()
	defer e.mu.Unlock()

	scope := &SequenceScope{env: e, sequence: seq, parent: e.sequence}
	e.sequence = seq

	return scope
}

// Lookup yields the live expectations registered for key in the innermost local
// context, then in each enclosing one. Without an open context it yields the
// process-wide entries instead.
func (e *Env) Lookup(key MethodKey) iter.Seq[*Expectation] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.scope == nil {
		return liveValues(globalEntries.snapshot(key))
	}

	var refs []weakRef
	for scope := e.scope; scope != nil; scope = scope.parent {
		refs = append(refs, scope.entries[key]...)
	}

	return liveValues(refs)
}

// Push registers a weak reference to ex under key in the innermost local context, or
// process-wide when no context is open.
func (e *Env) Push(key MethodKey, ex *Expectation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.scope == nil {
		globalEntries.push(key, ex)

		return
	}

	e.scope.entries.push(key, ex)
}

// releaseOpen releases every builder still being configured, so that calls and
// checkpoints only ever see finished expectations.
func (e *Env) releaseOpen() {
	e.mu.Lock()
	open := slices.Clone(e.open)
	e.open = nil
	e.mu.Unlock()

	for _, builder := range open {
		builder.Release()
	}
}

func (e *Env) track(builder *Builder) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = append(e.open, builder)
}
