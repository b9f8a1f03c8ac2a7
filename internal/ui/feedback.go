package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"go.uber.org/zap"
)

var flashColor = color.NRGBA{R: 255, G: 255, B: 255, A: 40}

// flashFeedback stands in for a vibration motor on desktop: each cue
// briefly tints a full-window overlay.
type flashFeedback struct {
	overlay  *canvas.Rectangle
	animated bool
	logger   *zap.Logger
}

func newFlashFeedback(logger *zap.Logger, animated bool) *flashFeedback {
	return &flashFeedback{
		overlay:  canvas.NewRectangle(color.Transparent),
		animated: animated,
		logger:   logger,
	}
}

func (f *flashFeedback) Vibrate(d time.Duration) {
	f.logger.Debug("feedback pulse", zap.Duration("duration", d))
	if !f.animated || d <= 0 {
		return
	}
	fyne.Do(func() {
		anim := canvas.NewColorRGBAAnimation(flashColor, color.Transparent, flashLength(d), func(c color.Color) {
			f.overlay.FillColor = c
			f.overlay.Refresh()
		})
		anim.Start()
	})
}

// flashLength stretches a motor pulse into something the eye can catch.
func flashLength(d time.Duration) time.Duration {
	l := d * 12
	if l < 60*time.Millisecond {
		return 60 * time.Millisecond
	}
	if l > 300*time.Millisecond {
		return 300 * time.Millisecond
	}
	return l
}
