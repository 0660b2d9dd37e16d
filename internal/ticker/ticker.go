package ticker

import (
	"image/color"
	"sync"
	"time"
)

// Ticker is the marquee model: it holds the text and configuration, fits
// the text into its bounds and drives an Engine. Hosts render it through
// the OnMove and OnLayout hooks.
type Ticker struct {
	engine   *Engine
	measurer Measurer

	mu       sync.Mutex
	bounds   Rect
	cfg      Config
	text     string
	layout   Layout
	onLayout func(Layout, color.Color)
}

// Option customises a Ticker at construction.
type Option func(*Ticker)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(t *Ticker) { t.cfg = cfg }
}

// WithOnMove registers the hook receiving every content x position.
func WithOnMove(f func(x float32)) Option {
	return func(t *Ticker) { t.engine.OnMove(f) }
}

// WithOnCycle registers the hook called after each completed pass.
func WithOnCycle(f func(n int)) Option {
	return func(t *Ticker) { t.engine.OnCycle(f) }
}

// WithOnLayout registers the hook receiving the fitted layout and text
// colour whenever SetText or Resize re-measures.
func WithOnLayout(f func(Layout, color.Color)) Option {
	return func(t *Ticker) { t.onLayout = f }
}

// New creates an idle ticker for a container of the given bounds.
func New(bounds Rect, m Measurer, host Transitioner, opts ...Option) *Ticker {
	t := &Ticker{
		engine:   NewEngine(host),
		measurer: m,
		bounds:   bounds,
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.engine.SetDuration(t.cfg.Duration)
	return t
}

// SetText stores text, re-fits it under the active policy and puts the
// content box back at the container's trailing edge. A running scroll
// restarts with the new geometry.
func (t *Ticker) SetText(text string) {
	t.mu.Lock()
	t.text = text
	t.relayoutLocked()
	layout, col, hook := t.layout, t.cfg.textColor(), t.onLayout
	t.mu.Unlock()

	if hook != nil {
		hook(layout, col)
	}
	t.restartOrPark(layout.Box.X)
}

// ApplyConfiguration merges the present fields of p into the current
// configuration. Layout and animation are left alone until the next
// SetText or Start.
func (t *Ticker) ApplyConfiguration(p PartialConfig) {
	t.mu.Lock()
	t.cfg = t.cfg.Merge(p)
	d := t.cfg.Duration
	t.mu.Unlock()
	t.engine.SetDuration(d)
}

// Resize changes the container bounds and re-fits the text. A running
// scroll restarts from the new trailing edge.
func (t *Ticker) Resize(width, height float32) {
	t.mu.Lock()
	if t.bounds.Width == width && t.bounds.Height == height {
		t.mu.Unlock()
		return
	}
	t.bounds.Width, t.bounds.Height = width, height
	t.relayoutLocked()
	layout, col, hook := t.layout, t.cfg.textColor(), t.onLayout
	t.mu.Unlock()

	if hook != nil {
		hook(layout, col)
	}
	t.restartOrPark(layout.Box.X)
}

func (t *Ticker) restartOrPark(x float32) {
	if t.engine.State() == Running {
		t.engine.Stop()
		t.engine.Start()
		return
	}
	t.engine.Park(x)
}

// relayoutLocked must be called with mu held.
func (t *Ticker) relayoutLocked() {
	t.layout = Fit(t.text, t.bounds, t.cfg, t.measurer)
	t.engine.SetMetrics(t.bounds.Width, t.layout.Metrics.Width)
}

// Start re-fits the text under the current configuration and begins
// scrolling; a no-op while already running.
func (t *Ticker) Start() {
	if t.engine.State() == Running {
		return
	}
	t.mu.Lock()
	t.relayoutLocked()
	layout, col, hook := t.layout, t.cfg.textColor(), t.onLayout
	d := t.cfg.Duration
	t.mu.Unlock()

	if hook != nil {
		hook(layout, col)
	}
	t.engine.SetDuration(d)
	t.engine.Start()
}

// Stop halts scrolling where the content currently is.
func (t *Ticker) Stop() { t.engine.Stop() }

// Close stops the ticker and detaches its hooks.
func (t *Ticker) Close() {
	t.mu.Lock()
	t.onLayout = nil
	t.mu.Unlock()
	t.engine.Close()
}

// Text is the current text.
func (t *Ticker) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Config is a copy of the current configuration.
func (t *Ticker) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

// Bounds is the container rectangle.
func (t *Ticker) Bounds() Rect {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bounds
}

// Layout is the last fitted layout.
func (t *Ticker) Layout() Layout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

// State reports whether the ticker is scrolling.
func (t *Ticker) State() RunState { return t.engine.State() }

// Position is the content's current x offset.
func (t *Ticker) Position() float32 { return t.engine.Position() }

// Geometry is the scroll path of the current run.
func (t *Ticker) Geometry() Geometry { return t.engine.Geometry() }

// Cycles counts passes completed since the last Start.
func (t *Ticker) Cycles() int { return t.engine.Cycles() }

// Duration is the pass duration of the current run.
func (t *Ticker) Duration() time.Duration { return t.engine.Duration() }
