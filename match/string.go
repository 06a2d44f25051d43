package match

import (
	"fmt"
	"reflect"
	"strings"
)

// Contains matches strings containing substr.
func Contains(substr string) Matcher {
	return &stringMatcher{name: "Contains", operand: substr, test: strings.Contains}
}

// EndsWith matches strings ending in suffix.
func EndsWith(suffix string) Matcher {
	return &stringMatcher{name: "EndsWith", operand: suffix, test: strings.HasSuffix}
}

// IsEmpty matches empty strings, slices, maps, arrays and channels.
func IsEmpty() Matcher {
	return emptyMatcher{}
}

// StartsWith matches strings beginning with prefix.
func StartsWith(prefix string) Matcher {
	return &stringMatcher{name: "StartsWith", operand: prefix, test: strings.HasPrefix}
}

type emptyMatcher struct{}

func (emptyMatcher) Matches(actual any) bool {
	value := reflect.ValueOf(actual)

	switch value.Kind() { //nolint:exhaustive // only kinds with a length can be empty
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return value.Len() == 0
	default:
		return false
	}
}

func (emptyMatcher) String() string {
	return "IsEmpty"
}

type stringMatcher struct {
	name    string
	operand string
	test    func(s, operand string) bool
}

func (m *stringMatcher) Matches(actual any) bool {
	text, ok := asString(actual)

	return ok && m.test(text, m.operand)
}

func (m *stringMatcher) String() string {
	return fmt.Sprintf("%s(%q)", m.name, m.operand)
}

// asString accepts strings, byte slices, and string-kinded named types.
func asString(actual any) (string, bool) {
	switch value := actual.(type) {
	case string:
		return value, true
	case []byte:
		return string(value), true
	}

	reflected := reflect.ValueOf(actual)
	if reflected.Kind() == reflect.String {
		return reflected.String(), true
	}

	return "", false
}
