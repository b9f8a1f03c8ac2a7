package wheel

import (
	"sync"
	"time"
)

// Dispatcher runs fn on the goroutine that owns the view. The UI passes
// fyne.Do; tests call fn directly.
type Dispatcher func(fn func())

func directDispatch(fn func()) { fn() }

// Settler debounces scroll events: fn runs once the wheel has been still
// for the configured delay. Each Restart cancels the pending run.
type Settler struct {
	mu       sync.Mutex
	delay    time.Duration
	dispatch Dispatcher
	timer    *time.Timer
	gen      uint64
	closed   bool
}

// NewSettler returns a settler with the given quiet period.
func NewSettler(delay time.Duration, dispatch Dispatcher) *Settler {
	if dispatch == nil {
		dispatch = directDispatch
	}
	return &Settler{delay: delay, dispatch: dispatch}
}

// Restart schedules fn after the delay, replacing any pending run.
func (s *Settler) Restart(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(gen, fn)
	})
}

// Pending reports whether a run is scheduled.
func (s *Settler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Stop cancels the pending run, if any.
func (s *Settler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Close cancels the pending run and ignores every later Restart.
func (s *Settler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}

func (s *Settler) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Settler) fire(gen uint64, fn func()) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	dispatch := s.dispatch
	s.mu.Unlock()

	dispatch(fn)
}
