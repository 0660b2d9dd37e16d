package ticker

import (
	"testing"
	"time"
)

func newTestEngine(containerWidth, measuredWidth float32, d time.Duration) (*Engine, *SteppedTransitioner, *moveRecorder) {
	clock := NewSteppedTransitioner()
	rec := &moveRecorder{}
	e := NewEngine(clock)
	e.OnMove(rec.record)
	e.SetMetrics(containerWidth, measuredWidth)
	e.SetDuration(d)
	return e, clock, rec
}

func TestEngineStartIsIdempotent(t *testing.T) {
	e, clock, _ := newTestEngine(100, 32, 4*time.Second)

	e.Start()
	e.Start()

	if got := clock.Active(); got != 1 {
		t.Fatalf("active transitions = %d, want 1", got)
	}
	clock.Advance(time.Second)
	// one cycle at normal speed: a quarter of the 132 span
	if got := e.Position(); !approx(got, 67) {
		t.Fatalf("Position after 1s = %v, want 67", got)
	}
	if e.State() != Running {
		t.Fatalf("State = %v, want running", e.State())
	}
}

func TestEngineStopWhenIdle(t *testing.T) {
	e, clock, rec := newTestEngine(100, 10, time.Second)

	e.Stop()
	e.Stop()

	if e.State() != Idle {
		t.Fatalf("State = %v, want idle", e.State())
	}
	if clock.Active() != 0 {
		t.Fatalf("stop on idle engine scheduled a transition")
	}
	if moves := rec.take(); len(moves) != 0 {
		t.Fatalf("stop on idle engine moved content: %v", moves)
	}
}

func TestEngineRestartLoop(t *testing.T) {
	const (
		container = 100
		measured  = 32
		d         = 4 * time.Second
		frame     = 500 * time.Millisecond
	)
	e, clock, rec := newTestEngine(container, measured, d)
	var completed []int
	e.OnCycle(func(n int) { completed = append(completed, n) })

	e.Start()
	if moves := rec.take(); len(moves) != 1 || moves[0] != container {
		t.Fatalf("start moves = %v, want [%v]", moves, container)
	}

	for cycle := 1; cycle <= 3; cycle++ {
		start := clock.Now()
		var traj []float32
		for clock.Now()-start < d {
			clock.Advance(frame)
			traj = append(traj, rec.take()...)
		}
		// a pass ends exactly at -measured, then resets to the trailing edge
		n := len(traj)
		if n < 3 {
			t.Fatalf("cycle %d: trajectory too short: %v", cycle, traj)
		}
		if traj[n-2] != -measured || traj[n-1] != container {
			t.Fatalf("cycle %d: tail = %v, want [-%v %v]", cycle, traj[n-2:], measured, container)
		}
		prev := float32(container)
		for i, x := range traj[:n-1] {
			if x >= prev {
				t.Fatalf("cycle %d: position %d = %v not below %v", cycle, i, x, prev)
			}
			prev = x
		}
		if got := clock.Now() - start; got != d {
			t.Fatalf("cycle %d took %v, want %v", cycle, got, d)
		}
		if e.Cycles() != cycle {
			t.Fatalf("Cycles = %d, want %d", e.Cycles(), cycle)
		}
	}
	if len(completed) != 3 || completed[2] != 3 {
		t.Fatalf("OnCycle calls = %v, want [1 2 3]", completed)
	}
	if clock.Active() != 1 {
		t.Fatalf("active transitions = %d, want 1", clock.Active())
	}
}

func TestEngineStopCancelsFutureResets(t *testing.T) {
	e, clock, rec := newTestEngine(100, 100, 2*time.Second)
	e.Start()
	clock.Advance(500 * time.Millisecond)
	paused := e.Position()
	if !approx(paused, 50) {
		t.Fatalf("Position = %v, want 50", paused)
	}

	e.Stop()
	rec.take()
	clock.Advance(10 * time.Second)

	if moves := rec.take(); len(moves) != 0 {
		t.Fatalf("moves after stop: %v", moves)
	}
	if e.Position() != paused {
		t.Fatalf("Position = %v, want paused at %v", e.Position(), paused)
	}
	if e.Cycles() != 0 {
		t.Fatalf("Cycles = %d, want 0", e.Cycles())
	}
	if clock.Active() != 0 {
		t.Fatalf("active transitions = %d, want 0", clock.Active())
	}
}

func TestEngineStaleCompletionDoesNotResurrect(t *testing.T) {
	host := &lateHost{}
	e := NewEngine(host)
	e.SetMetrics(100, 20)
	e.SetDuration(time.Second)

	e.Start()
	e.Stop()
	host.flush()

	if host.count() != 1 {
		t.Fatalf("transitions started = %d, want 1", host.count())
	}
	if e.State() != Idle {
		t.Fatalf("State = %v, want idle", e.State())
	}
	if e.Position() != 100 {
		t.Fatalf("Position = %v, want 100", e.Position())
	}

	// a stale completion from the first run must not drive the second
	e.Start()
	host.flush()
	if e.Cycles() != 1 {
		t.Fatalf("Cycles = %d, want 1", e.Cycles())
	}
	if host.count() != 3 {
		t.Fatalf("transitions started = %d, want 3", host.count())
	}
}

func TestEngineEmptyTextStillScrolls(t *testing.T) {
	e, clock, rec := newTestEngine(100, 0, time.Second)
	e.Start()

	g := e.Geometry()
	if g.StartX != 100 || g.EndX != 0 {
		t.Fatalf("Geometry = %+v, want 100 -> 0", g)
	}
	clock.Advance(time.Second)
	moves := rec.take()
	if len(moves) < 2 || moves[len(moves)-2] != 0 || moves[len(moves)-1] != 100 {
		t.Fatalf("moves = %v, want a pass ending at 0 then reset to 100", moves)
	}
	if e.Cycles() != 1 {
		t.Fatalf("Cycles = %d, want 1", e.Cycles())
	}
}

func TestEngineZeroWidthContainer(t *testing.T) {
	e, clock, _ := newTestEngine(0, 0, time.Second)
	e.Start()
	clock.Advance(3 * time.Second)
	if e.Position() != 0 {
		t.Fatalf("Position = %v, want 0", e.Position())
	}
	if e.Cycles() != 3 {
		t.Fatalf("Cycles = %d, want 3", e.Cycles())
	}
}

func TestEngineClampsDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		e, clock, _ := newTestEngine(50, 10, d)
		e.Start()
		if e.Duration() != MinDuration {
			t.Fatalf("Duration(%v) = %v, want %v", d, e.Duration(), MinDuration)
		}
		clock.Advance(MinDuration)
		if e.Cycles() != 1 {
			t.Fatalf("Cycles = %d, want 1", e.Cycles())
		}
	}
}

func TestEngineClose(t *testing.T) {
	e, clock, _ := newTestEngine(100, 10, time.Second)
	e.Start()
	e.Close()
	e.Start()

	if e.State() != Idle {
		t.Fatalf("State = %v, want idle", e.State())
	}
	if clock.Active() != 0 {
		t.Fatalf("active transitions = %d, want 0", clock.Active())
	}
}

func TestEngineRestartResetsPosition(t *testing.T) {
	e, clock, _ := newTestEngine(100, 100, 2*time.Second)
	e.Start()
	clock.Advance(time.Second)
	e.Stop()
	e.Start()
	if e.Position() != 100 {
		t.Fatalf("Position = %v, want 100", e.Position())
	}
	if clock.Active() != 1 {
		t.Fatalf("active transitions = %d, want 1", clock.Active())
	}
}

func TestRunStateString(t *testing.T) {
	if Idle.String() != "idle" || Running.String() != "running" || RunState(7).String() != "unknown" {
		t.Fatal("unexpected RunState strings")
	}
}
