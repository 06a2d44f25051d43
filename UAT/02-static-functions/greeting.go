// Package greeting builds greetings from package-level functions that tests replace.
package greeting

import "time"

// Package-level lookups. Tests swap them for forwarders to static expectations.
//
//nolint:gochecknoglobals // replaced in tests
var (
	Hour   = func() int { return time.Now().Hour() }
	Locale = func() string { return "en" }
)

// Greet greets name according to the time of day and the locale.
func Greet(name string) string {
	hour := Hour()

	if Locale() == "fr" {
		if hour < 18 {
			return "Bonjour, " + name
		}

		return "Bonsoir, " + name
	}

	switch {
	case hour < 12:
		return "Good morning, " + name
	case hour < 18:
		return "Good afternoon, " + name
	default:
		return "Good evening, " + name
	}
}
