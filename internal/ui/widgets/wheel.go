package widgets

import (
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PriceWheel/internal/wheel"
)

const (
	wheelHeight      = 64
	wheelTextSize    = 22
	recenterDuration = 180 * time.Millisecond
)

// Wheel is a horizontally scrolled strip of margin values. It forwards
// drags, scroll-wheel and taps to a wheel.Selector and is moved back by
// the selector through ScrollTo.
type Wheel struct {
	widget.BaseWidget

	selector *wheel.Selector
	layout   wheel.Layout
	seq      wheel.Sequence

	offset   float64
	animated bool
	anim     *fyne.Animation
}

var (
	_ fyne.Draggable  = (*Wheel)(nil)
	_ fyne.Scrollable = (*Wheel)(nil)
	_ fyne.Tappable   = (*Wheel)(nil)
	_ wheel.Scroller  = (*Wheel)(nil)
)

// NewWheel creates the widget and attaches it to sel as its scroller.
func NewWheel(sel *wheel.Selector) *Wheel {
	w := &Wheel{
		selector: sel,
		layout:   sel.Layout(),
		seq:      sel.Sequence(),
		offset:   sel.Offset(),
		animated: true,
	}
	w.ExtendBaseWidget(w)
	sel.SetScroller(w)
	return w
}

// SetAnimated turns eased re-centring on or off. With animation off every
// ScrollTo is an instant jump.
func (w *Wheel) SetAnimated(on bool) {
	w.animated = on
}

// Offset returns the current content offset.
func (w *Wheel) Offset() float64 { return w.offset }

// ScrollTo moves the strip so that offset is at the left edge of the viewport.
func (w *Wheel) ScrollTo(offset float64, animate bool) {
	w.stopAnimation()
	offset = w.layout.ClampOffset(offset)
	if !animate || !w.animated {
		w.offset = offset
		w.Refresh()
		return
	}
	from := w.offset
	w.anim = fyne.NewAnimation(recenterDuration, func(p float32) {
		w.offset = from + (offset-from)*float64(p)
		w.Refresh()
	})
	w.anim.Curve = fyne.AnimationEaseOut
	w.anim.Start()
}

func (w *Wheel) stopAnimation() {
	if w.anim != nil {
		w.anim.Stop()
		w.anim = nil
	}
}

// scrollBy moves the strip by delta layout units as a user gesture.
func (w *Wheel) scrollBy(delta float64) {
	w.stopAnimation()
	w.offset = w.layout.ClampOffset(w.offset + delta)
	w.Refresh()
	w.selector.Scroll(w.offset)
}

func (w *Wheel) Dragged(e *fyne.DragEvent) {
	w.scrollBy(-float64(e.Dragged.DX))
}

func (w *Wheel) DragEnd() {
	w.selector.Scroll(w.offset)
}

func (w *Wheel) Scrolled(e *fyne.ScrollEvent) {
	delta := e.Scrolled.DX
	if delta == 0 {
		delta = -e.Scrolled.DY
	}
	w.scrollBy(float64(delta))
}

// Tapped selects the item under the pointer.
func (w *Wheel) Tapped(e *fyne.PointEvent) {
	x := w.offset + float64(e.Position.X-w.viewportInset())
	target := w.layout.NearestIndexForOffset(x - w.layout.ViewportWidth/2)
	w.selector.Nudge(target - w.selector.ActiveIndex())
}

// viewportInset centres the logical viewport inside a wider widget.
func (w *Wheel) viewportInset() float32 {
	inset := (w.Size().Width - float32(w.layout.ViewportWidth)) / 2
	if inset < 0 {
		return 0
	}
	return inset
}

func (w *Wheel) MinSize() fyne.Size {
	w.ExtendBaseWidget(w)
	return fyne.NewSize(float32(w.layout.ViewportWidth), wheelHeight)
}

func (w *Wheel) CreateRenderer() fyne.WidgetRenderer {
	r := &wheelRenderer{w: w}
	r.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	r.background.CornerRadius = 8
	r.marker = canvas.NewRectangle(color.Transparent)
	r.marker.StrokeColor = theme.Color(theme.ColorNamePrimary)
	r.marker.StrokeWidth = 2
	r.marker.CornerRadius = 6
	r.labels = make([]*canvas.Text, len(w.seq))
	for i, v := range w.seq {
		t := canvas.NewText(strconv.Itoa(v), theme.Color(theme.ColorNameForeground))
		t.Alignment = fyne.TextAlignCenter
		t.TextStyle = fyne.TextStyle{Bold: true}
		r.labels[i] = t
	}
	r.objects = append([]fyne.CanvasObject{r.background, r.marker}, textObjects(r.labels)...)
	return r
}

func textObjects(labels []*canvas.Text) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(labels))
	for i, l := range labels {
		objs[i] = l
	}
	return objs
}

type wheelRenderer struct {
	w          *Wheel
	background *canvas.Rectangle
	marker     *canvas.Rectangle
	labels     []*canvas.Text
	objects    []fyne.CanvasObject
}

func (r *wheelRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	l := r.w.layout
	inset := r.w.viewportInset()
	itemW := float32(l.ItemWidth)

	r.marker.Resize(fyne.NewSize(itemW, size.Height-8))
	r.marker.Move(fyne.NewPos(inset+float32(l.ViewportWidth)/2-itemW/2, 4))

	active := l.NearestIndexForOffset(r.w.offset)
	fg := theme.Color(theme.ColorNameForeground)
	for i, t := range r.labels {
		x := inset + float32(l.ItemCenter(i)-r.w.offset)
		if x < -itemW || x > size.Width+itemW {
			t.Hide()
			continue
		}
		e := wheel.EmphasisFor(i - active)
		t.TextSize = wheelTextSize * e.Scale
		t.Color = withOpacity(fg, e.Opacity)
		t.Resize(fyne.NewSize(itemW, size.Height))
		t.Move(fyne.NewPos(x-itemW/2, (size.Height-t.MinSize().Height)/2))
		t.Show()
	}
}

func withOpacity(c color.Color, opacity float32) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * opacity)
	return n
}

func (r *wheelRenderer) MinSize() fyne.Size {
	return r.w.MinSize()
}

func (r *wheelRenderer) Refresh() {
	r.background.FillColor = theme.Color(theme.ColorNameInputBackground)
	r.marker.StrokeColor = theme.Color(theme.ColorNamePrimary)
	r.Layout(r.w.Size())
	canvas.Refresh(r.w)
}

func (r *wheelRenderer) Destroy()                     { r.w.stopAnimation() }
func (r *wheelRenderer) Objects() []fyne.CanvasObject { return r.objects }
