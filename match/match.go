// Package match provides argument matchers for expecto expectations.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/expecto/match"
//	)
//
//	mock.ExpectAdd(Gt(0), Any()).WillOnce(expecto.Return(42))
//
// Matchers from go.uber.org/mock (gomock.Eq, gomock.Any, ...) already satisfy Matcher,
// and gomega matchers are adapted automatically by Value and Args.
package match

import (
	"github.com/onsi/gomega/types"

	"github.com/toejough/expecto/internal/core"
)

// Matcher decides whether a value is acceptable and describes itself for diagnostics.
type Matcher = core.Matcher

// Any matches every value. It renders as "_".
func Any() Matcher {
	return anyMatcher{}
}

// Args builds the matcher for a whole argument list, one entry per argument. Entries
// that are matchers are used as-is, gomega matchers are adapted, and any other value must
// be equal to the argument. Without entries it matches calls without arguments.
func Args(values ...any) Matcher {
	if len(values) == 0 {
		return NoArgs()
	}

	matchers := make([]Matcher, len(values))
	for i, value := range values {
		matchers[i] = Value(value)
	}

	return Multi(matchers...)
}

// Value converts v into a matcher: matchers pass through, gomega matchers are adapted,
// and anything else becomes Eq(v).
func Value(v any) Matcher {
	switch value := v.(type) {
	case Matcher:
		return value
	case types.GomegaMatcher:
		return FromGomega(value)
	default:
		return Eq(v)
	}
}

// anyMatcher is the implementation of the Any matcher.
type anyMatcher struct{}

func (anyMatcher) Matches(any) bool {
	return true
}

func (anyMatcher) String() string {
	return "_"
}
