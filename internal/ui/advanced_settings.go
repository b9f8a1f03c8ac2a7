package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// showWheelSettingsDialog opens the margin wheel geometry and timing editor.
func (a *App) showWheelSettingsDialog() {
	cfg := a.config

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	strategies := []string{
		string(model.StrategyCenterZone),
		string(model.StrategyOverlap),
		string(model.StrategyNearest),
	}
	strategySelect := widget.NewSelect(strategies, func(selected string) {
		cfg.WheelStrategy = model.WheelStrategy(selected)
	})
	strategySelect.SetSelected(string(cfg.WheelStrategy))

	selectionSection := widget.NewCard("Selection",
		"How the settled wheel decides which margin is centred",
		container.NewGridWithColumns(2,
			widget.NewLabel("Strategy"), strategySelect,
			widget.NewLabel("Centre Zone (fraction of width)"), floatEntry(&cfg.ZoneFraction),
			widget.NewLabel("Overlap Threshold"), floatEntry(&cfg.OverlapThreshold),
		))

	geometrySection := widget.NewCard("Geometry", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Item Width"), floatEntry(&cfg.ItemWidth),
			widget.NewLabel("Viewport Width"), floatEntry(&cfg.ViewportWidth),
			widget.NewLabel("Edge Padding"), floatEntry(&cfg.Padding),
			widget.NewLabel("Values on Wheel (min 99)"), intEntry(&cfg.SequenceLength),
		))

	timingSection := widget.NewCard("Timing", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Settle Delay (ms)"), intEntry(&cfg.SettleDelayMS),
			widget.NewLabel("Pulse Window (ms)"), intEntry(&cfg.PulseWindowMS),
		))

	content := container.NewVScroll(container.NewVBox(
		selectionSection,
		geometrySection,
		timingSection,
	))

	d := dialog.NewCustomConfirm("Wheel Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := a.ApplyConfig(cfg); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save wheel settings: %w", err), a.window)
		}
	}, a.window)
	d.Resize(fyne.NewSize(520, 560))
	d.Show()
}

// wheelChanged reports whether the wheel must be rebuilt to follow next.
func wheelChanged(prev, next model.AppConfig) bool {
	return prev.WheelStrategy != next.WheelStrategy ||
		prev.SequenceLength != next.SequenceLength ||
		prev.ItemWidth != next.ItemWidth ||
		prev.ViewportWidth != next.ViewportWidth ||
		prev.Padding != next.Padding ||
		prev.ZoneFraction != next.ZoneFraction ||
		prev.OverlapThreshold != next.OverlapThreshold ||
		prev.SettleDelayMS != next.SettleDelayMS ||
		prev.PulseWindowMS != next.PulseWindowMS ||
		prev.WheelPulseMS != next.WheelPulseMS
}

// rebuildWheel replaces the selector and its widget, keeping the margin.
func (a *App) rebuildWheel() {
	a.newSelector()
	if a.wheelSlot != nil {
		a.wheelSlot.Objects = []fyne.CanvasObject{a.wheel}
		a.wheelSlot.Refresh()
		a.selector.Mount()
	}
}
