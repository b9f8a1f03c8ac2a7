package model

import "time"

// WheelStrategy names how the margin wheel decides which item is centred.
type WheelStrategy string

const (
	// StrategyNearest picks the item nearest the viewport centre; it always resolves.
	StrategyNearest WheelStrategy = "nearest"
	// StrategyCenterZone picks the item whose centre lies in a centred zone.
	StrategyCenterZone WheelStrategy = "center-zone"
	// StrategyOverlap picks the item whose box covers enough of the centred zone.
	StrategyOverlap WheelStrategy = "overlap"
)

// AppConfig holds application-wide preferences and wheel layout settings.
type AppConfig struct {
	// Persistence
	StorageKey    string        `json:"storage_key"`
	RestorePolicy RestorePolicy `json:"restore_policy"`

	// Margin wheel geometry and behaviour
	WheelStrategy    WheelStrategy `json:"wheel_strategy"`
	SequenceLength   int           `json:"sequence_length"` // candidate values 1..N, N >= 99
	ItemWidth        float64       `json:"item_width"`
	ViewportWidth    float64       `json:"viewport_width"`
	Padding          float64       `json:"padding"`
	ZoneFraction     float64       `json:"zone_fraction"`     // centre zone width / viewport width
	OverlapThreshold float64       `json:"overlap_threshold"` // fraction of an item inside the zone
	SettleDelayMS    int           `json:"settle_delay_ms"`
	PulseWindowMS    int           `json:"pulse_window_ms"`

	// Feedback pulse lengths
	KeypadPulseMS int `json:"keypad_pulse_ms"`
	WheelPulseMS  int `json:"wheel_pulse_ms"`

	// Application preferences
	Theme    string `json:"theme"`     // "light", "dark", "system"
	LogLevel string `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		StorageKey:       DefaultStorageKey,
		RestorePolicy:    RestoreFallback,
		WheelStrategy:    StrategyCenterZone,
		SequenceLength:   MaxMargin,
		ItemWidth:        56,
		ViewportWidth:    280,
		Padding:          0,
		ZoneFraction:     1.0 / 3.0,
		OverlapThreshold: 0.6,
		SettleDelayMS:    120,
		PulseWindowMS:    50,
		KeypadPulseMS:    5,
		WheelPulseMS:     10,
		Theme:            "dark",
		LogLevel:         "info",
	}
}

// Validate returns a copy with every unusable field replaced by its default.
func (c AppConfig) Validate() AppConfig {
	d := DefaultAppConfig()
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	switch c.RestorePolicy {
	case RestoreFallback, RestoreClamp:
	default:
		c.RestorePolicy = d.RestorePolicy
	}
	switch c.WheelStrategy {
	case StrategyNearest, StrategyCenterZone, StrategyOverlap:
	default:
		c.WheelStrategy = d.WheelStrategy
	}
	if c.SequenceLength < MaxMargin {
		c.SequenceLength = d.SequenceLength
	}
	if c.ItemWidth <= 0 {
		c.ItemWidth = d.ItemWidth
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.ZoneFraction <= 0 || c.ZoneFraction > 1 {
		c.ZoneFraction = d.ZoneFraction
	}
	if c.OverlapThreshold <= 0 || c.OverlapThreshold > 1 {
		c.OverlapThreshold = d.OverlapThreshold
	}
	if c.SettleDelayMS <= 0 {
		c.SettleDelayMS = d.SettleDelayMS
	}
	if c.PulseWindowMS < 0 {
		c.PulseWindowMS = d.PulseWindowMS
	}
	if c.KeypadPulseMS < 0 {
		c.KeypadPulseMS = d.KeypadPulseMS
	}
	if c.WheelPulseMS < 0 {
		c.WheelPulseMS = d.WheelPulseMS
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = d.Theme
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
	return c
}

// SettleDelay is how long the wheel must be still before it is sampled.
func (c AppConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// PulseWindow is the quiet period after a wheel feedback pulse.
func (c AppConfig) PulseWindow() time.Duration {
	return time.Duration(c.PulseWindowMS) * time.Millisecond
}

// KeypadPulse is the feedback length for a keypad tap.
func (c AppConfig) KeypadPulse() time.Duration {
	return time.Duration(c.KeypadPulseMS) * time.Millisecond
}

// WheelPulse is the feedback length for a wheel value change.
func (c AppConfig) WheelPulse() time.Duration {
	return time.Duration(c.WheelPulseMS) * time.Millisecond
}
