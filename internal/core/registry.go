package core

import (
	"sync"
)

// EnvFor returns the Env for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Env instance, so the
// mocks of one test share their ambient sequence and local contexts.
//
// If the TestReporter supports Cleanup (like *testing.T), the Env is
// automatically removed from the registry when the test completes.
// A nil TestReporter gets DefaultEnv.
func EnvFor(t TestReporter) *Env {
	if t == nil {
		return DefaultEnv()
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if env, ok := registry[t]; ok {
		return env
	}

	env := NewEnv(t)
	registry[t] = env

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return env
}

// DefaultEnv returns the process-wide Env used when there is no test to attach to.
func DefaultEnv() *Env {
	return defaultEnv()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Env)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
	//nolint:gochecknoglobals // created on first use, lives as long as the process
	defaultEnv = sync.OnceValue(func() *Env { return NewEnv(nil) })
)
