package wheel

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// offsetEpsilon is how far, in layout units, an offset may sit from its
// target before a re-centre is issued.
const offsetEpsilon = 0.5

// Scroller moves the rendered wheel. animate selects an eased transition
// over an instant jump.
type Scroller interface {
	ScrollTo(offset float64, animate bool)
}

// State is the selector lifecycle state.
type State int

const (
	Uninitialized State = iota
	Centered
)

func (s State) String() string {
	if s == Centered {
		return "Centered"
	}
	return "Uninitialized"
}

// Config is the wheel geometry and timing.
type Config struct {
	Sequence      Sequence
	ItemWidth     float64
	ViewportWidth float64
	Padding       float64
	Strategy      Strategy
	SettleDelay   time.Duration
	PulseWindow   time.Duration
	PulseDuration time.Duration
}

// ConfigFromApp derives the wheel config from the application config.
func ConfigFromApp(cfg model.AppConfig) Config {
	cfg = cfg.Validate()
	return Config{
		Sequence:      NewSequence(cfg.SequenceLength),
		ItemWidth:     cfg.ItemWidth,
		ViewportWidth: cfg.ViewportWidth,
		Padding:       cfg.Padding,
		Strategy:      NewStrategy(cfg.WheelStrategy, cfg.ZoneFraction, cfg.OverlapThreshold),
		SettleDelay:   cfg.SettleDelay(),
		PulseWindow:   cfg.PulseWindow(),
		PulseDuration: cfg.WheelPulse(),
	}
}

// Selector maps scroll positions on the wheel to margin values.
//
// It starts Uninitialized and becomes Centered on Mount. From then on a
// settled user scroll that lands on a new index notifies the change
// handler, fires a feedback pulse and animates back to the item centre;
// an external SetValue only re-centres. Callbacks run outside the
// selector lock so they may call back into the selector.
type Selector struct {
	mu       sync.Mutex
	seq      Sequence
	layout   Layout
	strategy Strategy
	lo, hi   int

	state  State
	index  int
	offset float64
	closed bool

	onChange func(value int)
	scroller Scroller
	pulse    *Pulse
	settler  *Settler
	logger   *zap.Logger

	haptics  Haptics
	dispatch Dispatcher
}

// Option configures a Selector.
type Option func(*Selector)

// WithChangeHandler sets the function told about user-driven value changes.
func WithChangeHandler(fn func(value int)) Option {
	return func(s *Selector) { s.onChange = fn }
}

// WithHaptics sets the feedback capability. nil disables tactile cues.
func WithHaptics(h Haptics) Option {
	return func(s *Selector) { s.haptics = h }
}

// WithDispatcher routes settle timer callbacks onto the view goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Selector) { s.dispatch = d }
}

// WithScroller sets the view that is moved on re-centre.
func WithScroller(sc Scroller) Option {
	return func(s *Selector) { s.scroller = sc }
}

// WithSelectorLogger sets the logger. A nil logger discards output.
func WithSelectorLogger(l *zap.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector returns an Uninitialized selector tracking value.
func NewSelector(cfg Config, value int, opts ...Option) *Selector {
	seq := cfg.Sequence
	if len(seq) == 0 {
		seq = NewSequence(model.MaxMargin)
	}
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = Nearest{}
	}
	s := &Selector{
		seq: seq,
		layout: Layout{
			ItemWidth:     cfg.ItemWidth,
			ViewportWidth: cfg.ViewportWidth,
			Padding:       cfg.Padding,
			Count:         len(seq),
		},
		strategy: strategy,
		logger:   zap.NewNop(),
	}
	s.lo, s.hi = seq.selectable()
	for _, opt := range opts {
		opt(s)
	}
	s.index = s.clamp(seq.IndexForValue(value))
	s.offset = s.layout.ScrollOffsetForIndex(s.index)
	s.pulse = NewPulse(s.haptics, cfg.PulseDuration, cfg.PulseWindow)
	s.settler = NewSettler(cfg.SettleDelay, s.dispatch)
	return s
}

// SetScroller attaches the view after construction.
func (s *Selector) SetScroller(sc Scroller) {
	s.mu.Lock()
	s.scroller = sc
	s.mu.Unlock()
}

// Layout returns the wheel geometry.
func (s *Selector) Layout() Layout { return s.layout }

// Sequence returns a copy of the candidate values.
func (s *Selector) Sequence() Sequence {
	out := make(Sequence, len(s.seq))
	copy(out, s.seq)
	return out
}

// State returns the lifecycle state.
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ActiveIndex returns the index of the selected item.
func (s *Selector) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Value returns the selected margin.
func (s *Selector) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[s.index]
}

// Offset returns the last known scroll offset.
func (s *Selector) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Mount centres the current index with an instant jump. Only the first
// call has an effect.
func (s *Selector) Mount() {
	s.mu.Lock()
	if s.closed || s.state == Centered {
		s.mu.Unlock()
		return
	}
	s.state = Centered
	target := s.layout.ScrollOffsetForIndex(s.index)
	s.offset = target
	sc := s.scroller
	s.mu.Unlock()

	s.logger.Debug("wheel mounted", zap.Int("index", s.ActiveIndex()))
	if sc != nil {
		sc.ScrollTo(target, false)
	}
}

// Scroll records a user-driven offset and restarts the settle timer.
// Events before Mount or after Close are ignored.
func (s *Selector) Scroll(offset float64) {
	s.mu.Lock()
	if s.closed || s.state != Centered {
		s.mu.Unlock()
		return
	}
	s.offset = offset
	s.mu.Unlock()

	s.settler.Restart(s.Settle)
}

// Settle samples the current offset and applies the resolved index.
func (s *Selector) Settle() {
	s.mu.Lock()
	if s.closed || s.state != Centered {
		s.mu.Unlock()
		return
	}
	idx, ok := s.strategy.Resolve(s.layout, s.offset)
	if !ok {
		offset := s.offset
		s.mu.Unlock()
		s.logger.Debug("wheel unresolved", zap.Float64("offset", offset))
		return
	}
	s.apply(s.clamp(idx))
}

// Nudge moves the selection by delta items as if the user had scrolled there.
func (s *Selector) Nudge(delta int) {
	s.mu.Lock()
	if s.closed || s.state != Centered {
		s.mu.Unlock()
		return
	}
	s.settler.Stop()
	s.apply(s.clamp(s.index + delta))
}

// apply is called with the lock held and releases it.
func (s *Selector) apply(idx int) {
	target := s.layout.ScrollOffsetForIndex(idx)
	changed := idx != s.index
	recenter := changed || math.Abs(s.offset-target) > offsetEpsilon
	s.index = idx
	s.offset = target
	value := s.seq[idx]
	onChange, sc := s.onChange, s.scroller
	s.mu.Unlock()

	if changed {
		s.logger.Debug("wheel value changed", zap.Int("index", idx), zap.Int("value", value))
		s.pulse.Fire()
		if onChange != nil {
			onChange(value)
		}
	}
	if recenter && sc != nil {
		sc.ScrollTo(target, true)
	}
}

// SetValue follows an external change of the margin. It never notifies
// the change handler or fires feedback. Before Mount it only records the
// index; afterwards it animates to the new item.
func (s *Selector) SetValue(v int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	idx := s.clamp(s.seq.IndexForValue(v))
	if idx == s.index {
		s.mu.Unlock()
		return
	}
	s.index = idx
	target := s.layout.ScrollOffsetForIndex(idx)
	s.offset = target
	mounted := s.state == Centered
	sc := s.scroller
	s.mu.Unlock()

	if mounted {
		s.settler.Stop()
		if sc != nil {
			sc.ScrollTo(target, true)
		}
	}
}

// Close cancels pending timers; every later call is a no-op.
func (s *Selector) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.settler.Close()
	s.pulse.Close()
}

func (s *Selector) clamp(i int) int {
	if i < s.lo {
		return s.lo
	}
	if i > s.hi {
		return s.hi
	}
	return i
}
