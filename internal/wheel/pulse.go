package wheel

import (
	"sync"
	"time"
)

// Haptics is an optional tactile feedback capability. A nil Haptics is
// valid everywhere and simply produces no cue.
type Haptics interface {
	Vibrate(d time.Duration)
}

// Pulse fires short haptic cues, swallowing any cue that arrives within
// window of the previous one so rapid value changes do not buzz.
type Pulse struct {
	mu       sync.Mutex
	haptics  Haptics
	duration time.Duration
	window   time.Duration
	now      func() time.Time
	last     time.Time
	closed   bool
}

// NewPulse returns a limiter that vibrates h for duration per accepted cue.
func NewPulse(h Haptics, duration, window time.Duration) *Pulse {
	return &Pulse{
		haptics:  h,
		duration: duration,
		window:   window,
		now:      time.Now,
	}
}

// Fire emits a cue unless one was emitted within the window. It reports
// whether the haptics capability was invoked.
func (p *Pulse) Fire() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	if p.closed || p.haptics == nil {
		p.mu.Unlock()
		return false
	}
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.window {
		p.mu.Unlock()
		return false
	}
	p.last = now
	h, d := p.haptics, p.duration
	p.mu.Unlock()

	h.Vibrate(d)
	return true
}

// Close silences the pulse for good.
func (p *Pulse) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
