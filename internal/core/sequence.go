package core

import (
	"iter"
	"sync"
	"sync/atomic"
)

// Sequence orders expectations: the expectation holding slot i+1 cannot be selected
// until slot i is ready. One Sequence may span several mocked objects.
type Sequence struct {
	state *sequenceState
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{state: newSequenceState()}
}

// CreateHandle reserves the next slot in the sequence.
func (s *Sequence) CreateHandle() *SequenceHandle {
	return s.state.createHandle()
}

// ID returns the process-unique id of the sequence.
func (s *Sequence) ID() uint64 {
	return s.state.id
}

// SequenceHandle is a reserved slot in a Sequence. Handles share the sequence state;
// none of them owns it.
//
// A slot is inactive while earlier slots are not ready, active when it is the next one
// to be processed, ready once its expectation met its lower call bound, and done once
// the sequence moved past it.
type SequenceHandle struct {
	id       int
	state    *sequenceState
	released atomic.Bool
}

// IsActive reports whether the slot is the current one. Querying moves the sequence
// past any ready slots before this one.
func (h *SequenceHandle) IsActive() bool {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	for {
		switch {
		case h.state.current == h.id:
			return true
		case h.state.current < h.id && h.state.items[h.state.current].ready:
			h.state.current++
		default:
			return false
		}
	}
}

// IsDone reports whether the sequence has moved past the slot.
func (h *SequenceHandle) IsDone() bool {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	return h.state.current > h.id
}

// Release marks the slot ready. It is called when the owning expectation goes away,
// so a discarded expectation never blocks the rest of the sequence.
func (h *SequenceHandle) Release() {
	if h.released.Swap(true) {
		return
	}

	h.SetReady()
}

// SequenceID returns the id of the sequence the handle belongs to.
func (h *SequenceHandle) SequenceID() uint64 {
	return h.state.id
}

// SetDescription sets the text used for the slot in diagnostics.
func (h *SequenceHandle) SetDescription(description string) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.items[h.id].description = description
}

// SetDone moves the sequence past the slot, but only if the slot is the current one.
func (h *SequenceHandle) SetDone() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if h.state.current == h.id {
		h.state.current++
	}
}

// SetReady marks the slot ready.
func (h *SequenceHandle) SetReady() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.items[h.id].ready = true
}

// Unsatisfied yields the descriptions of the not-ready slots between the current slot
// and this one. The sequence is locked while the iteration runs.
func (h *SequenceHandle) Unsatisfied() iter.Seq[string] {
	return func(yield func(string) bool) {
		h.state.mu.Lock()
		defer h.state.mu.Unlock()

		for id := h.state.current; id < h.id && id < len(h.state.items); id++ {
			item := h.state.items[id]
			if item.ready {
				continue
			}

			if !yield(item.description) {
				return
			}
		}
	}
}

// SequenceScope is the guard returned when entering an ambient sequence.
type SequenceScope struct {
	env      *Env
	sequence *Sequence
	parent   *Sequence
	closed   atomic.Bool
}

// Close restores the ambient sequence that was active before the scope was entered.
func (s *SequenceScope) Close() {
	if s.closed.Swap(true) {
		return
	}

	s.env.mu.Lock()
	s.env.sequence = s.parent
	s.env.mu.Unlock()
}

// Sequence returns the sequence the scope made ambient.
func (s *SequenceScope) Sequence() *Sequence {
	return s.sequence
}

// unexported variables.
var (
	//nolint:gochecknoglobals // process-wide counter, like the ids it hands out
	nextSequenceID atomic.Uint64
)

type sequenceSlot struct {
	ready       bool
	description string
}

type sequenceState struct {
	mu      sync.Mutex
	items   []sequenceSlot
	current int
	id      uint64
}

func (s *sequenceState) createHandle() *SequenceHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, sequenceSlot{})

	return &SequenceHandle{id: len(s.items) - 1, state: s}
}

// newSequenceState starts with a ready root slot so the first real slot can activate.
func newSequenceState() *sequenceState {
	return &sequenceState{
		id:    nextSequenceID.Add(1) - 1,
		items: []sequenceSlot{{ready: true, description: "root"}},
	}
}
