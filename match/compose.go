package match

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/onsi/gomega/types"
)

// InspectLogger receives the lines written by Inspect matchers.
//
//nolint:gochecknoglobals // shared by every Inspect matcher; replace it to capture output
var InspectLogger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "inspect"})

// Closure matches values of type T accepted by predicate. description is used in
// diagnostics; an empty one renders as "Closure".
func Closure[T any](description string, predicate func(T) bool) Matcher {
	return &closureMatcher[T]{description: description, predicate: predicate}
}

// Deref matches non-nil pointers whose pointee matches inner.
func Deref(inner Matcher) Matcher {
	return &derefMatcher{inner: inner}
}

// FromGomega adapts a gomega matcher. Matcher errors count as a mismatch.
func FromGomega(matcher types.GomegaMatcher) Matcher {
	return &gomegaAdapter{matcher: matcher}
}

// Inspect logs every value inner is asked about, and the answer, to InspectLogger.
func Inspect(inner Matcher) Matcher {
	return &inspectMatcher{inner: inner}
}

// Multi matches an argument list with one matcher per argument. The list must have
// exactly as many arguments as there are matchers; they are checked left to right and
// the first mismatch stops the check.
func Multi(matchers ...Matcher) Matcher {
	return &multiMatcher{matchers: matchers}
}

// NoArgs matches the argument list of a call without arguments.
func NoArgs() Matcher {
	return noArgsMatcher{}
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	mock.ExpectAdd(Satisfies(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}), Any())
func Satisfies[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

type closureMatcher[T any] struct {
	description string
	predicate   func(T) bool
}

func (m *closureMatcher[T]) Matches(actual any) bool {
	value, ok := actual.(T)

	return ok && m.predicate(value)
}

func (m *closureMatcher[T]) String() string {
	if m.description == "" {
		return "Closure"
	}

	return m.description
}

type derefMatcher struct {
	inner Matcher
}

func (m *derefMatcher) Matches(actual any) bool {
	value := reflect.ValueOf(actual)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return false
	}

	return m.inner.Matches(value.Elem().Interface())
}

func (m *derefMatcher) String() string {
	return fmt.Sprintf("Deref(%s)", m.inner)
}

type gomegaAdapter struct {
	matcher types.GomegaMatcher
}

func (m *gomegaAdapter) Matches(actual any) bool {
	success, err := m.matcher.Match(actual)

	return err == nil && success
}

func (m *gomegaAdapter) String() string {
	return fmt.Sprintf("FromGomega(%T)", m.matcher)
}

type inspectMatcher struct {
	inner Matcher
}

func (m *inspectMatcher) Matches(actual any) bool {
	matched := m.inner.Matches(actual)
	InspectLogger.Infof("expect %s to match %#v: %t", m.inner, actual, matched)

	return matched
}

func (m *inspectMatcher) String() string {
	return fmt.Sprintf("Inspect(%s)", m.inner)
}

type multiMatcher struct {
	matchers []Matcher
}

func (m *multiMatcher) Matches(actual any) bool {
	args, ok := actual.([]any)
	if !ok || len(args) != len(m.matchers) {
		return false
	}

	for i, matcher := range m.matchers {
		if !matcher.Matches(args[i]) {
			return false
		}
	}

	return true
}

func (m *multiMatcher) Arity() int {
	return len(m.matchers)
}

func (m *multiMatcher) String() string {
	parts := make([]string, len(m.matchers))
	for i, matcher := range m.matchers {
		parts[i] = matcher.String()
	}

	return strings.Join(parts, ", ")
}

type noArgsMatcher struct{}

func (noArgsMatcher) Arity() int {
	return 0
}

func (noArgsMatcher) Matches(actual any) bool {
	args, ok := actual.([]any)

	return ok && len(args) == 0
}

func (noArgsMatcher) String() string {
	return ""
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
}

func (m *satisfyMatcher[T]) Matches(actual any) bool {
	value, ok := actual.(T)
	if !ok {
		return false
	}

	return m.predicate(value) == nil
}

func (m *satisfyMatcher[T]) String() string {
	return fmt.Sprintf("Satisfies(%s)", reflect.TypeFor[T]())
}
