package core

import (
	"fmt"
	"iter"
	"sync"
	"weak"
)

// LocalContext is a scope for expectations of static methods. Expectations registered
// while it is the innermost scope of its Env are visible to static dispatches in it and
// in the scopes nested inside it, and nowhere else.
//
// Contexts only hold weak references: the registry of the Handle that created an
// expectation owns it, and a checkpoint of that Handle expires the reference.
type LocalContext struct {
	env     *Env
	parent  *LocalContext
	entries weakEntries
	closed  bool
}

// Close leaves the context, making its parent the innermost scope again. Closing a
// context that is not the innermost one fails the test.
func (c *LocalContext) Close() {
	c.env.mu.Lock()

	if c.closed {
		c.env.mu.Unlock()

		return
	}

	if c.env.scope != c {
		c.env.mu.Unlock()
		c.env.t.Helper()
		fail(c.env.t, fmt.Errorf("%w: another context was entered after this one and is still open", ErrScopeOrder))

		return
	}

	c.closed = true
	c.env.scope = c.parent
	c.env.mu.Unlock()
}

// Parent returns the enclosing context, or nil for an outermost one.
func (c *LocalContext) Parent() *LocalContext {
	return c.parent
}

// unexported variables.
var (
	//nolint:gochecknoglobals // process-wide fallback for static expectations outside any scope
	globalEntries = &lockedEntries{entries: make(weakEntries)}
)

type lockedEntries struct {
	mu      sync.Mutex
	entries weakEntries
}

func (l *lockedEntries) push(key MethodKey, ex *Expectation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries.push(key, ex)
}

func (l *lockedEntries) snapshot(key MethodKey) []weakRef {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]weakRef(nil), l.entries[key]...)
}

type weakEntries map[MethodKey][]weakRef

// push appends ex, dropping entries that expired since the last push.
func (w weakEntries) push(key MethodKey, ex *Expectation) {
	live := w[key][:0]

	for _, ref := range w[key] {
		if ref.value() != nil {
			live = append(live, ref)
		}
	}

	w[key] = append(live, weakRef{ptr: weak.Make(ex)})
}

// weakRef expires when the expectation is collected or retired, whichever comes first.
type weakRef struct {
	ptr weak.Pointer[Expectation]
}

func (r weakRef) value() *Expectation {
	ex := r.ptr.Value()
	if ex == nil || ex.Retired() {
		return nil
	}

	return ex
}

func liveValues(refs []weakRef) iter.Seq[*Expectation] {
	return func(yield func(*Expectation) bool) {
		for _, ref := range refs {
			ex := ref.value()
			if ex == nil {
				continue
			}

			if !yield(ex) {
				return
			}
		}
	}
}
