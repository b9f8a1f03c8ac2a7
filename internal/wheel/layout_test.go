package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PriceWheel/internal/model"
)

func TestNewSequence_CoversMarginRange(t *testing.T) {
	seq := NewSequence(10)
	require.Len(t, seq, model.MaxMargin, "short sequences are raised to the margin range")
	assert.Equal(t, 1, seq[0])
	assert.Equal(t, 99, seq[98])

	padded := NewSequence(199)
	assert.Len(t, padded, 199)
	assert.Equal(t, 199, padded[198])
}

func TestIndexForValue(t *testing.T) {
	seq := NewSequence(99)
	assert.Equal(t, 0, seq.IndexForValue(1))
	assert.Equal(t, 59, seq.IndexForValue(60))
	assert.Equal(t, 98, seq.IndexForValue(99))
	assert.Equal(t, 59, seq.IndexForValue(0), "absent value falls back to the default")
	assert.Equal(t, 59, seq.IndexForValue(250))

	padded := NewSequence(199)
	assert.Equal(t, 59, padded.IndexForValue(150), "padding values are never selectable")
}

func TestSelectableWindow(t *testing.T) {
	lo, hi := NewSequence(199).selectable()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 98, hi)
}

func TestScrollOffsetForIndex_UniformFormula(t *testing.T) {
	l := Layout{ItemWidth: 56, ViewportWidth: 280, Count: 99}
	// offset = i*itemWidth + itemWidth/2 - viewportWidth/2
	assert.InDelta(t, -112.0, l.ScrollOffsetForIndex(0), 1e-9)
	assert.InDelta(t, 59*56+28-140.0, l.ScrollOffsetForIndex(59), 1e-9)

	padded := Layout{ItemWidth: 56, ViewportWidth: 280, Padding: 112, Count: 99}
	assert.InDelta(t, 0.0, padded.ScrollOffsetForIndex(0), 1e-9, "padding lets the first item centre at offset zero")
}

func TestNearestIndexInvertsScrollOffset(t *testing.T) {
	layouts := []Layout{
		{ItemWidth: 56, ViewportWidth: 280, Count: 99},
		{ItemWidth: 76, ViewportWidth: 390, Padding: 157, Count: 199},
		{ItemWidth: 48, ViewportWidth: 208, Padding: 8, Count: 99},
	}
	for _, l := range layouts {
		for i := 0; i < l.Count; i++ {
			require.Equal(t, i, l.NearestIndexForOffset(l.ScrollOffsetForIndex(i)),
				"layout %+v index %d", l, i)
		}
	}
}

func TestNearestIndexForOffset_RoundsAndClamps(t *testing.T) {
	l := Layout{ItemWidth: 56, ViewportWidth: 280, Count: 99}
	base := l.ScrollOffsetForIndex(10)

	assert.Equal(t, 10, l.NearestIndexForOffset(base+27))
	assert.Equal(t, 11, l.NearestIndexForOffset(base+29))
	assert.Equal(t, 9, l.NearestIndexForOffset(base-29))
	assert.Equal(t, 0, l.NearestIndexForOffset(-10000))
	assert.Equal(t, 98, l.NearestIndexForOffset(10000))
}

func TestClampOffset(t *testing.T) {
	l := Layout{ItemWidth: 56, ViewportWidth: 280, Count: 99}
	lo, hi := l.OffsetBounds()
	assert.Equal(t, lo, l.ClampOffset(lo-500))
	assert.Equal(t, hi, l.ClampOffset(hi+500))
	assert.Equal(t, 100.0, l.ClampOffset(100))
}
