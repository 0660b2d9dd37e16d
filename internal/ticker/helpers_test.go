package ticker

import (
	"math"
	"sync"
	"time"
	"unicode/utf8"
)

// linearMeasurer gives every rune an advance of size*advance and a line
// height of size*lineHeight.
type linearMeasurer struct {
	advance    float32
	lineHeight float32
}

func (m linearMeasurer) MeasureText(text string, size float32) Metrics {
	return Metrics{
		Width:  float32(utf8.RuneCountInString(text)) * size * m.advance,
		Height: size * m.lineHeight,
	}
}

// hintedMeasurer rounds line heights up to whole pixels, like a hinted
// rasterizer does.
type hintedMeasurer struct{ linearMeasurer }

func (m hintedMeasurer) MeasureText(text string, size float32) Metrics {
	met := m.linearMeasurer.MeasureText(text, size)
	met.Height = float32(math.Ceil(float64(met.Height)))
	return met
}

var testMeasurer = linearMeasurer{advance: 0.5, lineHeight: 1.25}

// moveRecorder collects OnMove positions.
type moveRecorder struct {
	mu  sync.Mutex
	pos []float32
}

func (r *moveRecorder) record(x float32) {
	r.mu.Lock()
	r.pos = append(r.pos, x)
	r.mu.Unlock()
}

func (r *moveRecorder) take() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pos
	r.pos = nil
	return out
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

// lateHost delivers completions even after Cancel, simulating a host whose
// completion notification was already queued when the cycle was cancelled.
type lateHost struct {
	mu      sync.Mutex
	pending []func()
	started int
}

type lateTransition struct{}

func (lateTransition) Cancel() {}

func (h *lateHost) Animate(from, to float32, d time.Duration, step func(float32), done func()) Transition {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
	h.pending = append(h.pending, func() { step(to); done() })
	return lateTransition{}
}

func (h *lateHost) flush() {
	h.mu.Lock()
	p := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, f := range p {
		f()
	}
}

func (h *lateHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}
