package ui

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DurationSlider picks a pass duration. The thumb runs from Max on the left
// (slow) to Min on the right (fast), so dragging right speeds the ticker up.
type DurationSlider struct {
	widget.BaseWidget
	Min       time.Duration
	Max       time.Duration
	Step      time.Duration
	Value     time.Duration
	OnChanged func(time.Duration)
}

// NewDurationSlider creates a slider constrained to [min, max].
func NewDurationSlider(min, max time.Duration) *DurationSlider {
	s := &DurationSlider{Min: min, Max: max, Step: 250 * time.Millisecond, Value: max}
	s.ExtendBaseWidget(s)
	return s
}

func (s *DurationSlider) CreateRenderer() fyne.WidgetRenderer {
	r := &durationSliderRenderer{
		s:     s,
		track: canvas.NewRectangle(theme.ShadowColor()),
		fill:  canvas.NewRectangle(theme.PrimaryColor()),
		thumb: canvas.NewCircle(theme.ForegroundColor()),
	}
	r.objs = []fyne.CanvasObject{r.track, r.fill, r.thumb}
	return r
}

// SetValue snaps d to the step grid, refreshes and notifies OnChanged when
// the value actually changed.
func (s *DurationSlider) SetValue(d time.Duration) {
	if s.Max <= s.Min {
		return
	}
	v := normalizeDuration(s.Min, s.Max, s.Step, d)
	if v == s.Value {
		return
	}
	s.Value = v
	s.Refresh()
	if s.OnChanged != nil {
		s.OnChanged(v)
	}
}

func normalizeDuration(min, max, step, d time.Duration) time.Duration {
	if max <= min {
		return min
	}
	v := clampFloat64(float64(d), float64(min), float64(max))
	if step > 0 {
		n := math.Round((v - float64(min)) / float64(step))
		v = clampFloat64(float64(min)+n*float64(step), float64(min), float64(max))
	}
	return time.Duration(v)
}

// speedFraction maps a duration to the thumb position: 0 = slowest (Max),
// 1 = fastest (Min).
func speedFraction(min, max, d time.Duration) float32 {
	if max <= min {
		return 0
	}
	f := float64(max-d) / float64(max-min)
	return float32(clampFloat64(f, 0, 1))
}

// Dragged updates the value based on pointer drag position.
func (s *DurationSlider) Dragged(e *fyne.DragEvent) {
	s.updateFromPos(e.Position.X, s.Size().Width)
}

func (s *DurationSlider) DragEnd() {}

// Tapped moves the thumb to the tapped position.
func (s *DurationSlider) Tapped(e *fyne.PointEvent) {
	s.updateFromPos(e.Position.X, s.Size().Width)
}

// Scrolled nudges the value by one step per wheel notch; up is faster.
func (s *DurationSlider) Scrolled(ev *fyne.ScrollEvent) {
	if ev == nil {
		return
	}
	step := s.Step
	if step <= 0 {
		step = 100 * time.Millisecond
	}
	if ev.Scrolled.DY > 0 {
		s.SetValue(s.Value - step)
	} else if ev.Scrolled.DY < 0 {
		s.SetValue(s.Value + step)
	}
}

func (s *DurationSlider) updateFromPos(px float32, w float32) {
	if w <= 0 || s.Max <= s.Min {
		return
	}
	frac := clampFloat64(float64(px/w), 0, 1)
	s.SetValue(s.Max - time.Duration(frac*float64(s.Max-s.Min)))
}

// MinSize provides a reasonable touch target height.
func (s *DurationSlider) MinSize() fyne.Size {
	return fyne.NewSize(100, theme.IconInlineSize())
}

type durationSliderRenderer struct {
	s     *DurationSlider
	track *canvas.Rectangle
	fill  *canvas.Rectangle
	thumb *canvas.Circle
	objs  []fyne.CanvasObject
}

func (r *durationSliderRenderer) Layout(sz fyne.Size) {
	trackH := float32(4)
	y := (sz.Height - trackH) / 2
	r.track.Move(fyne.NewPos(0, y))
	r.track.Resize(fyne.NewSize(sz.Width, trackH))

	fillW := sz.Width * speedFraction(r.s.Min, r.s.Max, r.s.Value)
	r.fill.Move(fyne.NewPos(0, y))
	r.fill.Resize(fyne.NewSize(fillW, trackH))

	thumbR := theme.IconInlineSize() / 4
	cx := fillW
	if cx < thumbR {
		cx = thumbR
	}
	if cx > sz.Width-thumbR {
		cx = sz.Width - thumbR
	}
	cy := sz.Height / 2
	r.thumb.Resize(fyne.NewSize(thumbR*2, thumbR*2))
	r.thumb.Move(fyne.NewPos(cx-thumbR, cy-thumbR))
}

func (r *durationSliderRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *durationSliderRenderer) Refresh() {
	r.track.FillColor = theme.ShadowColor()
	r.fill.FillColor = theme.PrimaryColor()
	r.thumb.FillColor = theme.ForegroundColor()
	r.Layout(r.s.Size())
	canvas.Refresh(r.track)
	canvas.Refresh(r.fill)
	canvas.Refresh(r.thumb)
}

func (r *durationSliderRenderer) Destroy() {}

func (r *durationSliderRenderer) Objects() []fyne.CanvasObject { return r.objs }
