// Package ui provides the PriceWheel application UI components.
//
// This file defines the application theme: large type for the price and
// keypad, and a near-black background in dark mode.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var darkBackground = color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}

// PriceWheelTheme wraps the default Fyne theme with a fixed or system
// light/dark variant and larger text.
type PriceWheelTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPriceWheelTheme returns a theme for the configured name: "light",
// "dark" or "system".
func NewPriceWheelTheme(name string) *PriceWheelTheme {
	t := &PriceWheelTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between light, dark and system.
func (t *PriceWheelTheme) SetVariantName(name string) {
	t.system = false
	switch name {
	case "light":
		t.variant = theme.VariantLight
	case "dark":
		t.variant = theme.VariantDark
	default:
		t.system = true
	}
}

func (t *PriceWheelTheme) effective(v fyne.ThemeVariant) fyne.ThemeVariant {
	if t.system {
		return v
	}
	return t.variant
}

// Color delegates to the base theme with the selected variant.
func (t *PriceWheelTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	v := t.effective(variant)
	if name == theme.ColorNameBackground && v == theme.VariantDark {
		return darkBackground
	}
	return t.base.Color(name, v)
}

func (t *PriceWheelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PriceWheelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size enlarges text for a calculator read at arm's length.
func (t *PriceWheelTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 16
	case theme.SizeNameHeadingText:
		return 30
	case theme.SizeNameSubHeadingText:
		return 20
	case theme.SizeNameInnerPadding:
		return 10
	default:
		return t.base.Size(name)
	}
}
