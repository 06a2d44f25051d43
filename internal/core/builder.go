package core

import (
	"fmt"
	"sync"
)

// Builder configures a freshly registered Expectation.
//
// A builder is open until it is released, either explicitly, by WillOnce or
// WillRepeatedly, or automatically by the next dispatch or checkpoint in its Env.
// Releasing attaches the rendered expectation to its sequence slots, and marks them
// ready if the expectation accepts zero calls. Configuring a released builder fails the test.
type Builder struct {
	mu       sync.Mutex
	t        TestReporter
	ex       *Expectation
	released bool
}

// AddSequence adds a slot in seq to the sequences the expectation takes part in.
func (b *Builder) AddSequence(seq *Sequence) *Builder {
	b.mutate(func(ex *Expectation) {
		ex.sequences = append(ex.sequences, seq.CreateHandle())
	})

	return b
}

// Description sets the text shown after the call in diagnostics.
func (b *Builder) Description(text string) *Builder {
	b.mutate(func(ex *Expectation) {
		ex.description = text
	})

	return b
}

// Expectation returns the expectation being configured.
func (b *Builder) Expectation() *Expectation {
	return b.ex
}

// InSequence replaces the sequences of the expectation with a single slot in seq.
// Slots it held before are released.
func (b *Builder) InSequence(seq *Sequence) *Builder {
	b.mutate(func(ex *Expectation) {
		previous := ex.sequences
		ex.sequences = []*SequenceHandle{seq.CreateHandle()}

		releaseHandles(previous)
	})

	return b
}

// NoSequences removes the expectation from every sequence, including the ambient one.
func (b *Builder) NoSequences() *Builder {
	b.mutate(func(ex *Expectation) {
		previous := ex.sequences
		ex.sequences = nil

		releaseHandles(previous)
	})

	return b
}

// Release finishes configuration. Calling it more than once has no effect.
func (b *Builder) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}

	b.released = true

	text := b.ex.String()
	ready := b.ex.times.IsReady()

	for _, handle := range b.ex.sequences {
		handle.SetDescription(text)

		if ready {
			handle.SetReady()
		}
	}
}

// Released reports whether configuration has finished.
func (b *Builder) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.released
}

// Times sets the number of calls the expectation accepts. The default is AtLeast(1).
func (b *Builder) Times(r Range) *Builder {
	b.mutate(func(ex *Expectation) {
		ex.times.setRange(r)
	})

	return b
}

// With sets the matcher for the call arguments, replacing any earlier one. An ArgsMatcher
// for a different number of arguments than the method takes fails the test.
func (b *Builder) With(matcher Matcher) *Builder {
	if sized, ok := matcher.(ArgsMatcher); ok && sized.Arity() != b.ex.method.Arity {
		b.t.Helper()
		fail(b.t, fmt.Errorf("%w: %s takes %d arguments, got matchers for %d (%s)",
			ErrArity, b.ex.method, b.ex.method.Arity, sized.Arity(), matcher))

		return b
	}

	b.mutate(func(ex *Expectation) {
		ex.matcher = matcher
	})

	return b
}

// WillOnce accepts exactly one call, answered by action, and releases the builder.
func (b *Builder) WillOnce(action Action) {
	b.mutate(func(ex *Expectation) {
		ex.times.setRange(Exactly(1))
		ex.action = NewOnetimeAction(action)
	})

	b.Release()
}

// WillRepeatedly answers every accepted call with a clone of action and releases the builder.
func (b *Builder) WillRepeatedly(action Cloneable) {
	b.mutate(func(ex *Expectation) {
		ex.action = NewRepeatedAction(action)
	})

	b.Release()
}

func (b *Builder) mutate(change func(ex *Expectation)) {
	b.mu.Lock()

	if b.released {
		b.mu.Unlock()
		b.t.Helper()
		fail(b.t, fmt.Errorf("%w: %s", ErrBuilderReleased, b.ex))

		return
	}

	defer b.mu.Unlock()

	change(b.ex)
}
