package wheel

import (
	"math"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// Strategy resolves a scroll offset to the index of the selected item.
// The boolean is false when no item qualifies, e.g. mid-fling between
// two items; callers keep the previous selection in that case.
type Strategy interface {
	Resolve(l Layout, offset float64) (int, bool)
}

// Nearest selects the item whose centre is closest to the viewport centre.
type Nearest struct{}

// Resolve implements Strategy. It always resolves.
func (Nearest) Resolve(l Layout, offset float64) (int, bool) {
	return l.NearestIndexForOffset(offset), true
}

// CenterZone selects the item whose centre lies inside a centred zone of
// width Fraction * viewport.
type CenterZone struct {
	Fraction float64
}

// Resolve implements Strategy.
func (z CenterZone) Resolve(l Layout, offset float64) (int, bool) {
	i := l.NearestIndexForOffset(offset)
	center := offset + l.ViewportWidth/2
	half := l.ViewportWidth * z.Fraction / 2
	if math.Abs(l.ItemCenter(i)-center) > half {
		return 0, false
	}
	return i, true
}

// Overlap selects the item whose box overlaps the centred zone by at least
// Threshold of the item width.
type Overlap struct {
	Fraction  float64
	Threshold float64
}

// Resolve implements Strategy. The nearest item always has the largest
// overlap, so it is the only candidate checked.
func (o Overlap) Resolve(l Layout, offset float64) (int, bool) {
	if l.ItemWidth <= 0 {
		return 0, false
	}
	i := l.NearestIndexForOffset(offset)
	center := offset + l.ViewportWidth/2
	half := l.ViewportWidth * o.Fraction / 2

	itemLeft := l.ItemCenter(i) - l.ItemWidth/2
	itemRight := itemLeft + l.ItemWidth
	overlap := math.Min(itemRight, center+half) - math.Max(itemLeft, center-half)
	if overlap <= 0 || overlap/l.ItemWidth < o.Threshold {
		return 0, false
	}
	return i, true
}

// NewStrategy builds the strategy named in the application config.
func NewStrategy(name model.WheelStrategy, fraction, threshold float64) Strategy {
	switch name {
	case model.StrategyNearest:
		return Nearest{}
	case model.StrategyOverlap:
		return Overlap{Fraction: fraction, Threshold: threshold}
	default:
		return CenterZone{Fraction: fraction}
	}
}
