package core

import "strings"

// Matcher decides whether the arguments of a call are acceptable for an expectation.
// Matchers must not change engine state; they may be evaluated any number of times.
//
// The method set is the same as gomock's Matcher, so those can be used directly.
type Matcher interface {
	Matches(actual any) bool
	String() string
}

// ArgsMatcher is a Matcher for a whole argument list of a fixed length. Builders reject
// one whose arity differs from the method's.
type ArgsMatcher interface {
	Matcher
	Arity() int
}

// placeholders renders the argument list of an expectation without a matcher: "_, _".
func placeholders(arity int) string {
	return strings.TrimSuffix(strings.Repeat("_, ", arity), ", ")
}
