package core

import "time"

// TestReporter is the part of *testing.T the engine reports failures through.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Timer lets tests replace the clock used for lock timeouts.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// failedReporter is satisfied by *testing.T, which knows whether the test already failed.
type failedReporter interface {
	Failed() bool
}

// panicReporter stands in when no TestReporter is available. It reports nothing, so
// fail panics with the error itself.
type panicReporter struct{}

func (panicReporter) Fatalf(string, ...any) {}

func (panicReporter) Helper() {}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// fail reports err and stops the caller. Reporters whose Fatalf returns (fakes, loggers)
// still never get control back, because fail panics with err afterwards.
func fail(t TestReporter, err error) {
	t.Helper()
	t.Fatalf("%s", err)

	panic(err)
}

func orPanicReporter(t TestReporter) TestReporter {
	if t == nil {
		return panicReporter{}
	}

	return t
}

func hasFailed(t TestReporter) bool {
	reporter, ok := t.(failedReporter)

	return ok && reporter.Failed()
}
