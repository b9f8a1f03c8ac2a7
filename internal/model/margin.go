package model

import (
	"strconv"
	"strings"
)

// Gross margin bounds, in whole percent.
const (
	MinMargin     = 1
	MaxMargin     = 99
	DefaultMargin = 60
)

// ValidMargin reports whether v is a selectable margin.
func ValidMargin(v int) bool {
	return v >= MinMargin && v <= MaxMargin
}

// RestorePolicy decides what happens to a persisted margin that is out of range.
type RestorePolicy string

const (
	// RestoreFallback discards an out-of-range value and keeps the default.
	RestoreFallback RestorePolicy = "fallback"
	// RestoreClamp pulls an out-of-range value to the nearest bound.
	RestoreClamp RestorePolicy = "clamp"
)

// ParseMargin interprets a persisted margin string. The boolean is false
// when the stored value was rejected and DefaultMargin is returned.
// Unparsable text is always rejected, whatever the policy.
func ParseMargin(s string, policy RestorePolicy) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultMargin, false
	}
	if ValidMargin(v) {
		return v, true
	}
	if policy == RestoreClamp {
		return clampMargin(v), true
	}
	return DefaultMargin, false
}

func clampMargin(v int) int {
	if v < MinMargin {
		return MinMargin
	}
	if v > MaxMargin {
		return MaxMargin
	}
	return v
}
