package core

import (
	"slices"
)

// Shared is the expectation registry of one mocked object, shared by its Handle and
// every clone. Expectations are kept per method in registration order.
type Shared struct {
	name  string
	gate  gate
	lists map[MethodKey][]*Expectation
	order []MethodKey
}

func newShared(name string) *Shared {
	return &Shared{
		name:  name,
		gate:  newGate(),
		lists: make(map[MethodKey][]*Expectation),
	}
}

// Name returns the name of the mocked object used in diagnostics.
func (s *Shared) Name() string {
	return s.name
}

// add appends ex. The caller holds the gate.
func (s *Shared) add(ex *Expectation) {
	key := ex.method.Key()
	if _, ok := s.lists[key]; !ok {
		s.order = append(s.order, key)
	}

	s.lists[key] = append(s.lists[key], ex)
}

// candidates returns the expectations for key. The caller holds the gate.
func (s *Shared) candidates(key MethodKey) []*Expectation {
	return slices.Clone(s.lists[key])
}

// checkpoint verifies and clears the registry, returning the descriptions of the
// expectations that were not ready. Ready expectations finish their sequence slots so
// later expectations in those sequences are not blocked. The caller holds the gate.
func (s *Shared) checkpoint() []string {
	var unmet []string

	for _, key := range s.order {
		for _, ex := range s.lists[key] {
			if ex.times.IsReady() {
				ex.setDone()
			} else {
				unmet = append(unmet, ex.String())
			}
		}
	}

	for _, key := range s.order {
		for _, ex := range s.lists[key] {
			ex.retire()
		}
	}

	s.lists = make(map[MethodKey][]*Expectation)
	s.order = nil

	return unmet
}

// size returns the number of registered expectations. The caller holds the gate.
func (s *Shared) size() int {
	total := 0
	for _, list := range s.lists {
		total += len(list)
	}

	return total
}
