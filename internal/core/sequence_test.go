package core_test

import (
	"slices"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive
	"pgregory.net/rapid"

	"github.com/toejough/expecto/internal/core"
)

func TestSequence_FirstHandleIsActive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	seq := core.NewSequence()
	first := seq.CreateHandle()
	second := seq.CreateHandle()

	g.Expect(first.IsActive()).To(BeTrue())
	g.Expect(second.IsActive()).To(BeFalse())
	g.Expect(first.IsDone()).To(BeFalse())
}

func TestSequence_IdsAreUnique(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	a, b := core.NewSequence(), core.NewSequence()

	g.Expect(a.ID()).NotTo(Equal(b.ID()))
	g.Expect(a.CreateHandle().SequenceID()).To(Equal(a.ID()))
}

func TestSequence_ReleaseMarksReady(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	seq := core.NewSequence()
	first := seq.CreateHandle()
	second := seq.CreateHandle()

	first.Release()
	first.Release()

	g.Expect(second.IsActive()).To(BeTrue())
	g.Expect(first.IsDone()).To(BeTrue())
}

func TestSequence_SetDoneOnlyAdvancesCurrent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	seq := core.NewSequence()
	first := seq.CreateHandle()
	second := seq.CreateHandle()

	g.Expect(first.IsActive()).To(BeTrue())

	second.SetDone()
	g.Expect(second.IsDone()).To(BeFalse(), "a later handle cannot be completed out of order")

	first.SetDone()
	g.Expect(first.IsDone()).To(BeTrue())
	g.Expect(second.IsActive()).To(BeTrue())
}

func TestSequence_Unsatisfied(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	seq := core.NewSequence()
	first := seq.CreateHandle()
	second := seq.CreateHandle()
	third := seq.CreateHandle()

	first.SetDescription("Store.Open()")
	second.SetDescription("Store.Write(_)")
	third.SetDescription("Store.Close()")

	g.Expect(slices.Collect(third.Unsatisfied())).To(Equal([]string{"Store.Open()", "Store.Write(_)"}))

	first.SetReady()
	g.Expect(slices.Collect(third.Unsatisfied())).To(Equal([]string{"Store.Write(_)"}))
	g.Expect(slices.Collect(third.Unsatisfied())).To(Equal([]string{"Store.Write(_)"}), "restartable")
	g.Expect(slices.Collect(first.Unsatisfied())).To(BeEmpty())
}

// TestSequence_ActivationOrder_Rapid checks that a handle is active exactly when every
// handle before it is ready, and that readying a handle never reactivates earlier ones.
func TestSequence_ActivationOrder_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		seq := core.NewSequence()

		handles := make([]*core.SequenceHandle, count)
		for i := range handles {
			handles[i] = seq.CreateHandle()
		}

		ready := make([]bool, count)
		order := rapid.Permutation(indexes(count)).Draw(rt, "order")

		for _, next := range order {
			handles[next].SetReady()
			ready[next] = true

			first := slices.Index(ready, false)
			if first < 0 {
				first = count - 1
			}

			for k := first + 1; k < count; k++ {
				if handles[k].IsActive() || handles[k].IsDone() {
					rt.Fatalf("handle %d is reachable before handle %d is ready: %v", k, first, ready)
				}
			}

			if !handles[first].IsActive() {
				rt.Fatalf("handle %d is not active although its predecessors are ready: %v", first, ready)
			}

			for k := range first {
				if !handles[k].IsDone() {
					rt.Fatalf("handle %d is not done after the sequence moved on: %v", k, ready)
				}
			}
		}
	})
}

func indexes(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}

	return result
}
