package ui

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

var indicatorIdle = color.NRGBA{0x60, 0x60, 0x60, 0xFF}

// RunIndicator is a small lamp that pulses through amber hues while the
// ticker scrolls and turns grey when it is stopped.
type RunIndicator struct {
	wrap   *fyne.Container
	lamp   *canvas.Circle
	on     atomic.Bool
	phase  float64 // radians
	period time.Duration
}

// NewRunIndicator constructs a lamp with the given diameter.
func NewRunIndicator(diameter float32) *RunIndicator {
	c := canvas.NewCircle(indicatorIdle)
	c.StrokeColor = color.NRGBA{0, 0, 0, 0}
	inner := container.New(layout.NewGridWrapLayout(fyne.NewSize(diameter, diameter)), c)
	return &RunIndicator{
		wrap:   container.NewCenter(inner),
		lamp:   c,
		period: 90 * time.Millisecond,
	}
}

// CanvasObject returns the fyne object suitable for embedding in layouts.
func (r *RunIndicator) CanvasObject() fyne.CanvasObject { return r.wrap }

// Active reports whether the lamp is pulsing.
func (r *RunIndicator) Active() bool { return r.on.Load() }

// SetActive starts or stops the pulse.
func (r *RunIndicator) SetActive(on bool) {
	prev := r.on.Swap(on)
	if on && !prev {
		go r.pulse()
	} else if !on && prev {
		CallOnMain(func() {
			r.lamp.FillColor = indicatorIdle
			r.lamp.Refresh()
		})
	}
}

func (r *RunIndicator) pulse() {
	t := time.NewTicker(r.period)
	defer t.Stop()
	r.phase = 0
	for r.on.Load() {
		<-t.C
		r.phase += 0.35
		if r.phase >= 2*math.Pi {
			r.phase -= 2 * math.Pi
		}
		col := pulseColor(r.phase)
		CallOnMain(func() {
			if !r.on.Load() {
				return
			}
			r.lamp.FillColor = col
			r.lamp.Refresh()
		})
	}
}

// pulseColor sweeps the hue between orange and yellow with the phase.
func pulseColor(phase float64) color.NRGBA {
	hue := 30 + 15*math.Sin(phase)
	return hsvToNRGBA(hue, 0.85, 0.95)
}

// hsvToNRGBA converts HSV (0..360, 0..1, 0..1) to color.NRGBA.
func hsvToNRGBA(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60.0, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8((r+m)*255 + 0.5),
		G: uint8((g+m)*255 + 0.5),
		B: uint8((b+m)*255 + 0.5),
		A: 0xFF,
	}
}
