package wheel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulse_SwallowsCuesInsideWindow(t *testing.T) {
	h := &fakeHaptics{}
	p := NewPulse(h, 10*time.Millisecond, 50*time.Millisecond)
	clock := time.Unix(1000, 0)
	p.now = func() time.Time { return clock }

	assert.True(t, p.Fire())
	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Fire())
	clock = clock.Add(45 * time.Millisecond)
	assert.True(t, p.Fire(), "window is measured from the last emitted cue")

	assert.Equal(t, 2, h.pulses())
	assert.Equal(t, 10*time.Millisecond, h.last)
}

func TestPulse_NilHapticsIsSilent(t *testing.T) {
	p := NewPulse(nil, time.Millisecond, time.Millisecond)
	assert.False(t, p.Fire())

	var nilPulse *Pulse
	assert.False(t, nilPulse.Fire())
	nilPulse.Close()
}

func TestPulse_Close(t *testing.T) {
	h := &fakeHaptics{}
	p := NewPulse(h, time.Millisecond, 0)
	p.Close()
	assert.False(t, p.Fire())
	assert.Zero(t, h.pulses())
}

func TestSettler_DebouncesRestarts(t *testing.T) {
	var runs atomic.Int32
	s := NewSettler(15*time.Millisecond, nil)
	for i := 0; i < 5; i++ {
		s.Restart(func() { runs.Add(1) })
	}

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, s.Pending())
}

func TestSettler_UsesDispatcher(t *testing.T) {
	var dispatched atomic.Int32
	var runs atomic.Int32
	s := NewSettler(time.Millisecond, func(fn func()) {
		dispatched.Add(1)
		fn()
	})
	s.Restart(func() { runs.Add(1) })

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, int32(1), dispatched.Load())
}

func TestSettler_StopAndClose(t *testing.T) {
	var runs atomic.Int32
	s := NewSettler(10*time.Millisecond, nil)

	s.Restart(func() { runs.Add(1) })
	s.Stop()
	assert.False(t, s.Pending())

	s.Close()
	s.Restart(func() { runs.Add(1) })
	assert.False(t, s.Pending(), "restart after close is ignored")

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, runs.Load())
}
