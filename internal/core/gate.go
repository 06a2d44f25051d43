package core

import "time"

// gate is a mutex that can be tried, or waited on with a deadline.
// sync.Mutex only offers TryLock, so a blocked dispatch could not give up with a diagnostic.
type gate chan struct{}

func newGate() gate {
	return make(gate, 1)
}

// lockWithin waits up to timeout for the gate. A zero timeout waits forever.
func (g gate) lockWithin(timer Timer, timeout time.Duration) bool {
	if g.tryLock() {
		return true
	}

	if timeout <= 0 {
		g <- struct{}{}

		return true
	}

	select {
	case g <- struct{}{}:
		return true
	case <-timer.After(timeout):
		return false
	}
}

func (g gate) tryLock() bool {
	select {
	case g <- struct{}{}:
		return true
	default:
		return false
	}
}

func (g gate) unlock() {
	<-g
}
