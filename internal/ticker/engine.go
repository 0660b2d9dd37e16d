package ticker

import (
	"sync"
	"time"
)

// Transition is an in-flight timed move that can be cancelled.
type Transition interface {
	// Cancel stops the move where it is. No further callbacks for this
	// transition should be delivered; the engine ignores any that are.
	Cancel()
}

// Transitioner is the host's timed-transition primitive: interpolate
// linearly from one x to another over d, reporting intermediate positions
// through step and natural completion through done. Implementations must
// not invoke step or done synchronously from inside Animate.
type Transitioner interface {
	Animate(from, to float32, d time.Duration, step func(x float32), done func()) Transition
}

// RunState is the engine's animation state.
type RunState int

const (
	// Idle means no transition is scheduled.
	Idle RunState = iota
	// Running means a cycle is in flight and will reschedule on completion.
	Running
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// Engine owns the scroll geometry and the self-restarting cycle loop.
// All state is guarded by mu; hooks and host calls run without it held.
type Engine struct {
	host Transitioner

	mu             sync.Mutex
	state          RunState
	closed         bool
	token          uint64 // bumped by Start/Stop/Close; stale callbacks compare against it
	cycle          uint64 // bumped per runCycle; identifies the transition in current
	current        Transition
	containerWidth float32
	measuredWidth  float32
	duration       time.Duration
	runDuration    time.Duration // snapshot taken by Start
	geom           Geometry
	x              float32
	cycles         int

	onMove  func(x float32)
	onCycle func(n int)
}

// NewEngine returns an idle engine that animates through host.
func NewEngine(host Transitioner) *Engine {
	return &Engine{
		host:     host,
		duration: DefaultDuration,
	}
}

// OnMove registers the hook that receives every content x position.
func (e *Engine) OnMove(f func(x float32)) {
	e.mu.Lock()
	e.onMove = f
	e.mu.Unlock()
}

// OnCycle registers the hook called after each completed pass with the
// number of passes completed since the last Start.
func (e *Engine) OnCycle(f func(n int)) {
	e.mu.Lock()
	e.onCycle = f
	e.mu.Unlock()
}

// SetMetrics records the widths Start derives the geometry from. It does
// not touch a running cycle.
func (e *Engine) SetMetrics(containerWidth, measuredWidth float32) {
	e.mu.Lock()
	e.containerWidth = containerWidth
	e.measuredWidth = measuredWidth
	e.mu.Unlock()
}

// SetDuration sets the pass duration used by the next Start.
func (e *Engine) SetDuration(d time.Duration) {
	e.mu.Lock()
	e.duration = d
	e.mu.Unlock()
}

// Start begins scrolling from the trailing edge. It is a no-op while
// running or after Close.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.state == Running || e.closed {
		e.mu.Unlock()
		return
	}
	e.geom = NewGeometry(e.containerWidth, e.measuredWidth)
	e.runDuration = clampDuration(e.duration)
	e.x = e.geom.StartX
	e.cycles = 0
	e.state = Running
	e.token++
	token := e.token
	onMove := e.onMove
	x := e.x
	tracef("start span=%.1f duration=%s", e.geom.Span(), e.runDuration)
	e.mu.Unlock()

	if onMove != nil {
		onMove(x)
	}
	e.runCycle(token)
}

// Stop cancels the in-flight transition, leaving content where it is.
// Stopping an idle engine does nothing.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != Running {
		e.mu.Unlock()
		return
	}
	tr := e.halt()
	tracef("stop at x=%.1f", e.x)
	e.mu.Unlock()

	if tr != nil {
		tr.Cancel()
	}
}

// Close stops the engine for good; later calls to Start are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	var tr Transition
	if e.state == Running {
		tr = e.halt()
	}
	e.onMove = nil
	e.onCycle = nil
	e.mu.Unlock()

	if tr != nil {
		tr.Cancel()
	}
}

// halt must be called with mu held.
func (e *Engine) halt() Transition {
	e.state = Idle
	e.token++
	tr := e.current
	e.current = nil
	return tr
}

// State reports whether the engine is running.
func (e *Engine) State() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Position is the content's current x offset.
func (e *Engine) Position() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.x
}

// Geometry is the scroll path computed by the last Start.
func (e *Engine) Geometry() Geometry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.geom
}

// Cycles counts passes completed since the last Start.
func (e *Engine) Cycles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cycles
}

// Duration is the pass duration of the current run.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runDuration
}

// Park moves idle content to x without animating (used when the layout
// changes while stopped).
func (e *Engine) Park(x float32) {
	e.mu.Lock()
	if e.state == Running {
		e.mu.Unlock()
		return
	}
	e.x = x
	onMove := e.onMove
	e.mu.Unlock()
	if onMove != nil {
		onMove(x)
	}
}

func (e *Engine) runCycle(token uint64) {
	e.mu.Lock()
	if e.token != token || e.state != Running || e.host == nil {
		e.mu.Unlock()
		return
	}
	e.cycle++
	cycle := e.cycle
	from, to, d := e.x, e.geom.EndX, e.runDuration
	e.mu.Unlock()

	tr := e.host.Animate(from, to, d,
		func(x float32) { e.step(token, x) },
		func() { e.complete(token, cycle) },
	)

	e.mu.Lock()
	if e.token != token {
		// stopped while Animate was being set up
		e.mu.Unlock()
		if tr != nil {
			tr.Cancel()
		}
		return
	}
	if e.cycle == cycle {
		e.current = tr
	}
	e.mu.Unlock()
}

func (e *Engine) step(token uint64, x float32) {
	e.mu.Lock()
	if e.token != token || e.state != Running {
		e.mu.Unlock()
		return
	}
	e.x = x
	onMove := e.onMove
	e.mu.Unlock()
	if onMove != nil {
		onMove(x)
	}
}

// complete is the continuation of a finished pass. The token check and the
// reset happen under the same lock Stop takes, so a cancelled pass can never
// schedule another.
func (e *Engine) complete(token, cycle uint64) {
	e.mu.Lock()
	if e.token != token || e.state != Running || e.cycle != cycle {
		e.mu.Unlock()
		return
	}
	e.current = nil
	e.x = e.geom.StartX
	e.cycles++
	n := e.cycles
	x := e.x
	onMove, onCycle := e.onMove, e.onCycle
	e.mu.Unlock()

	tracef("cycle %d complete", n)
	if onMove != nil {
		onMove(x)
	}
	if onCycle != nil {
		onCycle(n)
	}
	e.runCycle(token)
}
