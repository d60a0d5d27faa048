package syncengine

import (
	"sync"
	"time"
)

// RetryScheduler arms at most one deferred retry at a time. A fixed delay, no
// exponential growth; retry budgets are enforced by the engine, not here.
type RetryScheduler struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

func NewRetryScheduler() *RetryScheduler {
	return &RetryScheduler{}
}

// Schedule arms a one-shot timer invoking op after delay. While a retry is
// pending, further calls are no-ops; returns whether the retry was armed.
func (s *RetryScheduler) Schedule(delay time.Duration, op func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return false
	}
	s.pending = true
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		s.pending = false
		s.timer = nil
		s.mu.Unlock()
		op()
	})
	return true
}

// CancelPending disarms the timer without invoking the operation.
func (s *RetryScheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}

// Pending reports whether a retry is armed.
func (s *RetryScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
