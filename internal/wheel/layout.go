// Package wheel models the horizontally scrolling margin picker: the
// value sequence, the scroll geometry that centres an item, and the
// selector state machine that turns settled scroll positions into margin
// changes. Nothing here depends on a rendering surface.
package wheel

import (
	"math"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// Sequence is the ordered list of candidate values shown on the wheel.
type Sequence []int

// NewSequence returns the values 1..n. Lengths below the margin range are
// raised so that every margin has an item.
func NewSequence(n int) Sequence {
	if n < model.MaxMargin {
		n = model.MaxMargin
	}
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return seq
}

// IndexForValue returns the position of v, or the position of the default
// margin when v is not on the wheel or not a selectable margin.
func (s Sequence) IndexForValue(v int) int {
	if model.ValidMargin(v) {
		for i, x := range s {
			if x == v {
				return i
			}
		}
	}
	for i, x := range s {
		if x == model.DefaultMargin {
			return i
		}
	}
	return 0
}

// selectable returns the index window whose values are valid margins.
func (s Sequence) selectable() (lo, hi int) {
	lo, hi = -1, -1
	for i, x := range s {
		if !model.ValidMargin(x) {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		return 0, 0
	}
	return lo, hi
}

// Layout is the uniform-width geometry of the wheel. All values are in
// the same unit (device-independent pixels in the UI).
type Layout struct {
	ItemWidth     float64
	ViewportWidth float64
	Padding       float64 // leading space before the first item
	Count         int
}

// ItemCenter is the content-space x coordinate of the centre of item i.
func (l Layout) ItemCenter(i int) float64 {
	return l.Padding + float64(i)*l.ItemWidth + l.ItemWidth/2
}

// ScrollOffsetForIndex is the scroll offset that centres item i in the viewport.
func (l Layout) ScrollOffsetForIndex(i int) float64 {
	return l.ItemCenter(i) - l.ViewportWidth/2
}

// NearestIndexForOffset returns the item whose centre is closest to the
// viewport centre at the given offset, clamped to [0, Count-1].
func (l Layout) NearestIndexForOffset(offset float64) int {
	if l.ItemWidth <= 0 {
		return 0
	}
	center := offset + l.ViewportWidth/2
	i := int(math.Round((center - l.Padding - l.ItemWidth/2) / l.ItemWidth))
	return l.clampIndex(i)
}

// OffsetBounds is the range of offsets that keep some item centred.
func (l Layout) OffsetBounds() (min, max float64) {
	return l.ScrollOffsetForIndex(0), l.ScrollOffsetForIndex(l.Count - 1)
}

// ClampOffset limits offset to OffsetBounds.
func (l Layout) ClampOffset(offset float64) float64 {
	lo, hi := l.OffsetBounds()
	return math.Max(lo, math.Min(hi, offset))
}

func (l Layout) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if l.Count > 0 && i > l.Count-1 {
		return l.Count - 1
	}
	return i
}
