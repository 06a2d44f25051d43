package core_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/toejough/expecto/internal/core"
)

func TestOnetimeAction_SecondCallFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	action := core.NewOnetimeAction(core.Return(1))

	g.Expect(action.Exec(nil)).To(Equal([]any{1}))

	err := failure(func() { action.Exec([]any{"again"}) })

	var reused *core.ActionReusedError

	g.Expect(errors.As(err, &reused)).To(BeTrue())
	g.Expect(err).To(MatchError(core.ErrActionReused))
	g.Expect(err.Error()).To(ContainSubstring(`"again"`))
}

func TestRepeatedAction_RunsAClonePerCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	calls := 0
	action := core.NewRepeatedAction(core.Invoke(func(args []any) []any {
		calls++

		return []any{args[0].(int) * 2}
	}))

	g.Expect(action.Exec([]any{2})).To(Equal([]any{4}))
	g.Expect(action.Exec([]any{5})).To(Equal([]any{10}))
	g.Expect(calls).To(Equal(2))
}

func TestReturn_ClonesAreIndependent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	action := core.Return(1, "a")
	results := action.Clone().Exec(nil)
	results[0] = 99

	g.Expect(action.Exec(nil)).To(Equal([]any{1, "a"}))
}

func TestReturnPointee_ReadsAtCallTime(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	value := 1
	action := core.NewRepeatedAction(core.ReturnPointee(&value))

	g.Expect(action.Exec(nil)).To(Equal([]any{1}))

	value = 7

	g.Expect(action.Exec(nil)).To(Equal([]any{7}))
}

func TestPanic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() { core.Panic("boom").Exec(nil) }).To(PanicWith("boom"))
}

func TestResult(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	results := []any{3, nil}

	g.Expect(core.Result[int](results, 0)).To(Equal(3))
	g.Expect(core.Result[error](results, 1)).To(BeNil())
	g.Expect(core.Result[string](results, 5)).To(BeEmpty())
	g.Expect(func() { core.Result[string](results, 0) }).To(Panic())
}
