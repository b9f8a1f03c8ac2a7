package wheel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PriceWheel/internal/model"
)

type scrollCall struct {
	offset  float64
	animate bool
}

type fakeScroller struct {
	mu    sync.Mutex
	calls []scrollCall
}

func (f *fakeScroller) ScrollTo(offset float64, animate bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, scrollCall{offset, animate})
}

func (f *fakeScroller) snapshot() []scrollCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scrollCall(nil), f.calls...)
}

type fakeHaptics struct {
	mu    sync.Mutex
	count int
	last  time.Duration
}

func (f *fakeHaptics) Vibrate(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	f.last = d
}

func (f *fakeHaptics) pulses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// manualConfig never settles on its own; tests call Settle directly.
func manualConfig() Config {
	return Config{
		Sequence:      NewSequence(99),
		ItemWidth:     56,
		ViewportWidth: 280,
		Strategy:      Nearest{},
		SettleDelay:   time.Hour,
		PulseWindow:   50 * time.Millisecond,
		PulseDuration: 10 * time.Millisecond,
	}
}

type harness struct {
	sel      *Selector
	scroller *fakeScroller
	haptics  *fakeHaptics
	changes  []int
}

func newHarness(t *testing.T, cfg Config, value int) *harness {
	t.Helper()
	h := &harness{scroller: &fakeScroller{}, haptics: &fakeHaptics{}}
	h.sel = NewSelector(cfg, value,
		WithScroller(h.scroller),
		WithHaptics(h.haptics),
		WithChangeHandler(func(v int) { h.changes = append(h.changes, v) }),
	)
	t.Cleanup(h.sel.Close)
	return h
}

func TestSelector_InitialState(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	assert.Equal(t, Uninitialized, h.sel.State())
	assert.Equal(t, 59, h.sel.ActiveIndex())
	assert.Equal(t, 60, h.sel.Value())
	assert.Len(t, h.sel.Sequence(), 99)
}

func TestSelector_InvalidInitialValueUsesDefault(t *testing.T) {
	h := newHarness(t, manualConfig(), 150)
	assert.Equal(t, 60, h.sel.Value())
}

func TestSelector_MountJumpsInstantlyOnce(t *testing.T) {
	h := newHarness(t, manualConfig(), 42)
	h.sel.Mount()
	h.sel.Mount()

	calls := h.scroller.snapshot()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].animate, "mount must not animate")
	assert.InDelta(t, h.sel.Layout().ScrollOffsetForIndex(41), calls[0].offset, 1e-9)
	assert.Equal(t, Centered, h.sel.State())
	assert.Empty(t, h.changes, "mount never notifies")
	assert.Zero(t, h.haptics.pulses())
}

func TestSelector_ScrollBeforeMountIgnored(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(10))
	h.sel.Settle()
	assert.Equal(t, 60, h.sel.Value())
	assert.Empty(t, h.changes)
}

func TestSelector_SettleOnNewIndex(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Mount()

	l := h.sel.Layout()
	h.sel.Scroll(l.ScrollOffsetForIndex(29) + 12)
	h.sel.Settle()

	assert.Equal(t, []int{30}, h.changes)
	assert.Equal(t, 1, h.haptics.pulses())
	assert.Equal(t, 29, h.sel.ActiveIndex())

	calls := h.scroller.snapshot()
	require.Len(t, calls, 2)
	assert.True(t, calls[1].animate, "re-centre after a change is animated")
	assert.InDelta(t, l.ScrollOffsetForIndex(29), calls[1].offset, 1e-9)
}

func TestSelector_RepeatedSettleOnSameIndexIsQuiet(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Mount()

	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(20) + 5)
	for i := 0; i < 5; i++ {
		h.sel.Settle()
	}

	assert.Equal(t, []int{21}, h.changes, "only the first settle notifies")
	assert.LessOrEqual(t, h.haptics.pulses(), 1)
	// mount + one animated re-centre; later settles are already on target
	assert.Len(t, h.scroller.snapshot(), 2)
}

func TestSelector_SettleOffTargetSameIndexRecentresSilently(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Mount()

	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(59) + 10)
	h.sel.Settle()

	assert.Empty(t, h.changes)
	assert.Zero(t, h.haptics.pulses())
	calls := h.scroller.snapshot()
	require.Len(t, calls, 2)
	assert.True(t, calls[1].animate)
}

func TestSelector_UnresolvedKeepsLastValue(t *testing.T) {
	cfg := manualConfig()
	cfg.Strategy = CenterZone{Fraction: 0.1}
	h := newHarness(t, cfg, 60)
	h.sel.Mount()

	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(30) + 25)
	h.sel.Settle()

	assert.Equal(t, 60, h.sel.Value())
	assert.Empty(t, h.changes)
	assert.Len(t, h.scroller.snapshot(), 1, "no re-centre while unresolved")
}

func TestSelector_PaddedSequenceClampsToMaxMargin(t *testing.T) {
	cfg := manualConfig()
	cfg.Sequence = NewSequence(199)
	h := newHarness(t, cfg, 60)
	h.sel.Mount()

	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(150))
	h.sel.Settle()

	assert.Equal(t, []int{99}, h.changes)
	assert.Equal(t, 98, h.sel.ActiveIndex())
}

func TestSelector_SetValueBeforeMount(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.SetValue(25)
	assert.Empty(t, h.scroller.snapshot(), "nothing to move before mount")

	h.sel.Mount()
	calls := h.scroller.snapshot()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].animate)
	assert.InDelta(t, h.sel.Layout().ScrollOffsetForIndex(24), calls[0].offset, 1e-9)
}

func TestSelector_SetValueAfterMountAnimatesWithoutFeedback(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Mount()

	h.sel.SetValue(70)
	h.sel.SetValue(70)

	calls := h.scroller.snapshot()
	require.Len(t, calls, 2, "repeated external value is a no-op")
	assert.True(t, calls[1].animate)
	assert.Equal(t, 70, h.sel.Value())
	assert.Empty(t, h.changes)
	assert.Zero(t, h.haptics.pulses())
}

func TestSelector_ChangeHandlerMayCallBack(t *testing.T) {
	cfg := manualConfig()
	scroller := &fakeScroller{}
	var sel *Selector
	var changes []int
	sel = NewSelector(cfg, 60,
		WithScroller(scroller),
		WithChangeHandler(func(v int) {
			changes = append(changes, v)
			sel.SetValue(v) // the model echoing the value back
		}),
	)
	defer sel.Close()
	sel.Mount()

	sel.Nudge(1)

	assert.Equal(t, []int{61}, changes)
	assert.Len(t, scroller.snapshot(), 2, "echoed value must not re-centre again")
}

func TestSelector_NudgePulsesOncePerWindow(t *testing.T) {
	h := newHarness(t, manualConfig(), 60)
	h.sel.Mount()

	h.sel.Nudge(1)
	h.sel.Nudge(1)
	h.sel.Nudge(-10)

	assert.Equal(t, []int{61, 62, 52}, h.changes)
	assert.Equal(t, 1, h.haptics.pulses(), "changes inside the pulse window are silent")
}

func TestSelector_NudgeClampsAtEdges(t *testing.T) {
	h := newHarness(t, manualConfig(), 99)
	h.sel.Mount()
	h.sel.Nudge(5)
	assert.Empty(t, h.changes)
	assert.Equal(t, 99, h.sel.Value())

	h.sel.SetValue(1)
	h.sel.Nudge(-1)
	assert.Equal(t, 1, h.sel.Value())
}

func TestSelector_SettleTimerFires(t *testing.T) {
	cfg := manualConfig()
	cfg.SettleDelay = 10 * time.Millisecond

	var mu sync.Mutex
	var changes []int
	sel := NewSelector(cfg, 60, WithChangeHandler(func(v int) {
		mu.Lock()
		changes = append(changes, v)
		mu.Unlock()
	}))
	defer sel.Close()
	sel.Mount()

	l := sel.Layout()
	sel.Scroll(l.ScrollOffsetForIndex(5))
	sel.Scroll(l.ScrollOffsetForIndex(7))
	sel.Scroll(l.ScrollOffsetForIndex(9))

	require.Eventually(t, func() bool { return sel.Value() == 10 }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{10}, changes, "only the settled position is applied")
}

func TestSelector_CloseStopsEverything(t *testing.T) {
	cfg := manualConfig()
	cfg.SettleDelay = 20 * time.Millisecond
	h := newHarness(t, cfg, 60)
	h.sel.Mount()

	h.sel.Scroll(h.sel.Layout().ScrollOffsetForIndex(3))
	h.sel.Close()

	assert.False(t, h.sel.settler.Pending())
	time.Sleep(50 * time.Millisecond)
	h.sel.Settle()
	h.sel.SetValue(10)
	h.sel.Nudge(1)

	assert.Equal(t, 60, h.sel.Value())
	assert.Empty(t, h.changes)
}

func TestConfigFromApp(t *testing.T) {
	cfg := ConfigFromApp(appConfigForTest())
	assert.Len(t, cfg.Sequence, 199)
	assert.Equal(t, 76.0, cfg.ItemWidth)
	assert.Equal(t, Nearest{}, cfg.Strategy)
	assert.Equal(t, 120*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 10*time.Millisecond, cfg.PulseDuration)
}

func appConfigForTest() model.AppConfig {
	cfg := model.DefaultAppConfig()
	cfg.SequenceLength = 199
	cfg.ItemWidth = 76
	cfg.WheelStrategy = model.StrategyNearest
	return cfg
}
