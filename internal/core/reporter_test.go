package core_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/toejough/expecto/internal/core"
)

// failure runs fn and returns the error it failed with, or nil if it returned normally.
func failure(fn func()) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var ok bool

			err, ok = recovered.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", recovered)
			}
		}
	}()

	fn()

	return nil
}

// firedTimer is a Timer whose deadline has always passed.
type firedTimer struct{}

func (firedTimer) After(time.Duration) <-chan time.Time {
	fired := make(chan time.Time, 1)
	fired <- time.Time{}

	return fired
}

// mockTester records fatal messages. It returns from Fatalf, so the engine's own panic
// is what stops the failing call.
type mockTester struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockTester) Fatalf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

func (m *mockTester) Helper() {}

func (m *mockTester) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.messages...)
}

// newHandle returns a handle reporting to a fresh mockTester, in an Env of its own.
func newHandle(name string) (*core.Handle, *mockTester) {
	reporter := &mockTester{}

	return core.NewHandle(reporter, core.WithName(name), core.WithEnv(core.NewEnv(reporter))), reporter
}
