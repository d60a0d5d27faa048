package syncengine

import (
	"sync"
	"time"
)

// RefreshScheduler fires a periodic re-synchronization tick. One ticker per
// engine; restarting replaces the previous ticker so duplicates cannot stack.
type RefreshScheduler struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewRefreshScheduler() *RefreshScheduler {
	return &RefreshScheduler{}
}

// Start arms a repeating timer invoking onTick every interval. A non-positive
// interval disables periodic refresh.
func (s *RefreshScheduler) Start(interval time.Duration, onTick func()) {
	if interval <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				onTick()
			}
		}
	}()
}

// Stop disarms the timer. Safe to call repeatedly.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// Running reports whether the ticker is armed.
func (s *RefreshScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}
