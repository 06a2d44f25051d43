package core_test

import (
	"slices"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/toejough/expecto/internal/core"
	"github.com/toejough/expecto/match"
)

//nolint:gochecknoglobals // fixtures
var (
	parseConfig = core.Method{
		Receiver: "Config", Name: "Parse", Arity: 1, Signature: core.TagOf[func(string) error](), Static: true,
	}
	defaultPort = core.Method{
		Receiver: "Config", Name: "DefaultPort", Arity: 0, Signature: core.TagOf[func() int](), Static: true,
	}
)

func TestLocalContext_LookupWalksOutward(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, _ := newHandle("Config")
	env := handle.Env()

	outer := env.EnterScope()
	outerEx := handle.Expect(parseConfig).With(match.Args("outer")).Expectation()

	inner := env.EnterScope()
	innerEx := handle.Expect(parseConfig).With(match.Args("inner")).Expectation()

	g.Expect(env.CurrentScope()).To(BeIdenticalTo(inner))
	g.Expect(inner.Parent()).To(BeIdenticalTo(outer))
	g.Expect(outer.Parent()).To(BeNil())
	g.Expect(slices.Collect(env.Lookup(parseConfig.Key()))).To(Equal([]*core.Expectation{innerEx, outerEx}))

	inner.Close()

	g.Expect(slices.Collect(env.Lookup(parseConfig.Key()))).To(Equal([]*core.Expectation{outerEx}))

	outer.Close()

	g.Expect(env.CurrentScope()).To(BeNil())
	handle.Release()
}

func TestLocalContext_CheckpointExpiresEntries(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, _ := newHandle("Config")
	env := handle.Env()
	scope := env.EnterScope()

	defer scope.Close()

	handle.Expect(defaultPort).Times(core.AnyTimes()).WillRepeatedly(core.Return(8080))
	g.Expect(slices.Collect(env.Lookup(defaultPort.Key()))).To(HaveLen(1))

	handle.Checkpoint()

	g.Expect(slices.Collect(env.Lookup(defaultPort.Key()))).To(BeEmpty())
}

func TestLocalContext_ClosingOutOfOrderFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &mockTester{}
	env := core.NewEnv(reporter)

	outer := env.EnterScope()
	inner := env.EnterScope()

	g.Expect(failure(outer.Close)).To(MatchError(core.ErrScopeOrder))
	g.Expect(reporter.Messages()).To(HaveLen(1))

	inner.Close()
	outer.Close()
	outer.Close()

	g.Expect(env.CurrentScope()).To(BeNil())
}

func TestLocalContext_InnerScopeIsInvisibleOutside(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, _ := newHandle("Config")
	env := handle.Env()

	outer := env.EnterScope()
	defer outer.Close()

	inner := env.EnterScope()
	handle.Expect(defaultPort).WillOnce(core.Return(1))
	inner.Close()

	err := failure(func() { env.DispatchStatic(defaultPort, []any{}, nil) })

	g.Expect(err).To(MatchError(core.ErrNoMatch))
	handle.Release()
}

func TestDispatchStatic_UsesTheScope(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, _ := newHandle("Config")
	env := handle.Env()
	scope := env.EnterScope()

	defer scope.Close()

	handle.Expect(parseConfig).With(match.Args(match.StartsWith("port="))).WillOnce(core.Return(nil))
	handle.Expect(parseConfig).WillRepeatedly(core.Invoke(func([]any) []any {
		return []any{nil}
	}))

	g.Expect(env.DispatchStatic(parseConfig, []any{"port=1"}, nil)).To(Equal([]any{nil}))
	g.Expect(env.DispatchStatic(parseConfig, []any{"port=2"}, nil)).To(Equal([]any{nil}))

	handle.Checkpoint()

	err := failure(func() { env.DispatchStatic(parseConfig, []any{"port=3"}, nil) })

	g.Expect(err).To(MatchError(core.ErrNoMatch), "checkpoint retired the expectations")
}

func TestDispatchStatic_WithoutScopeUsesTheProcessRegistry(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// A receiver no other test uses, since the process registry is shared.
	unscoped := core.Method{
		Receiver: "Unscoped", Name: "Now", Arity: 0, Signature: core.TagOf[func() int64](), Static: true,
	}

	handle, _ := newHandle("Unscoped")
	handle.Expect(unscoped).WillOnce(core.Return(int64(42)))

	other := core.NewEnv(nil)

	g.Expect(other.DispatchStatic(unscoped, []any{}, nil)).To(Equal([]any{int64(42)}))
	handle.Checkpoint()
}

func TestEnvFor_SameT_ReturnsSameEnv(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.EnvFor(t)).To(BeIdenticalTo(core.EnvFor(t)))
	g.Expect(core.EnvFor(nil)).To(BeIdenticalTo(core.DefaultEnv()))
}

func TestEnvFor_DifferentT_ReturnsDifferentEnv(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var env1, env2 *core.Env

	t.Run("subtest1", func(t *testing.T) {
		env1 = core.EnvFor(t)
	})

	t.Run("subtest2", func(t *testing.T) {
		env2 = core.EnvFor(t)
	})

	g.Expect(env1).NotTo(BeIdenticalTo(env2))
}

func TestEnv_SequenceScopesNest(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	env := core.NewEnv(&mockTester{})
	first := env.EnterNewSequence()
	second := env.EnterSequence(core.NewSequence())

	g.Expect(env.CurrentSequence()).To(BeIdenticalTo(second.Sequence()))

	second.Close()
	g.Expect(env.CurrentSequence()).To(BeIdenticalTo(first.Sequence()))

	first.Close()
	g.Expect(env.CurrentSequence()).To(BeNil())
}
