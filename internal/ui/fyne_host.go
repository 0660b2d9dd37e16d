package ui

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/edward-ap/miniticker/internal/textmeasure"
	"github.com/edward-ap/miniticker/internal/ticker"
)

// fyneTransitioner runs ticker passes on fyne's animation runner with a
// linear curve. Completion is the tick that reports progress 1.
type fyneTransitioner struct{}

type fyneTransition struct {
	anim     *fyne.Animation
	canceled *atomic.Bool
}

func (t fyneTransition) Cancel() {
	t.canceled.Store(true)
	t.anim.Stop()
}

func (fyneTransitioner) Animate(from, to float32, d time.Duration, step func(float32), done func()) ticker.Transition {
	canceled := &atomic.Bool{}
	finished := false
	anim := fyne.NewAnimation(d, func(p float32) {
		if canceled.Load() || finished {
			return
		}
		step(from + (to-from)*p)
		if p >= 1 {
			finished = true
			done()
		}
	})
	anim.Curve = fyne.AnimationLinear
	anim.Start()
	return fyneTransition{anim: anim, canceled: canceled}
}

// fyneMeasurer measures with the current theme font. Without a running
// driver (headless tools, widgets built before the app) it parses the
// bundled theme font itself.
type fyneMeasurer struct {
	style fyne.TextStyle
}

func (m fyneMeasurer) MeasureText(text string, size float32) ticker.Metrics {
	if size <= 0 {
		return ticker.Metrics{}
	}
	if !haveDriver() {
		return faceMeasurerFor(m.style).MeasureText(text, size)
	}
	sz := fyne.MeasureText(text, size, m.style)
	return ticker.Metrics{Width: sz.Width, Height: sz.Height}
}

func haveDriver() bool {
	app := fyne.CurrentApp()
	return app != nil && app.Driver() != nil
}

var (
	facesMu sync.Mutex
	faces   = map[fyne.TextStyle]*textmeasure.FaceMeasurer{}
)

// faceMeasurerFor returns a measurer for the default theme font of style,
// falling back to Go Regular when the resource does not parse.
func faceMeasurerFor(style fyne.TextStyle) *textmeasure.FaceMeasurer {
	facesMu.Lock()
	defer facesMu.Unlock()
	if m, ok := faces[style]; ok {
		return m
	}
	var m *textmeasure.FaceMeasurer
	if res := themeFont(style); res != nil {
		if data := res.Content(); len(data) > 0 {
			var err error
			if m, err = textmeasure.NewFaceMeasurer(data); err != nil {
				log.Println("ui: theme font:", err)
			}
		}
	}
	if m == nil {
		m = textmeasure.NewGoRegular()
	}
	faces[style] = m
	return m
}

func themeFont(style fyne.TextStyle) fyne.Resource {
	switch {
	case style.Monospace:
		return theme.DefaultTextMonospaceFont()
	case style.Bold && style.Italic:
		return theme.DefaultTextBoldItalicFont()
	case style.Bold:
		return theme.DefaultTextBoldFont()
	case style.Italic:
		return theme.DefaultTextItalicFont()
	}
	return theme.DefaultTextFont()
}
