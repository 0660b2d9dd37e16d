package ticker

import (
	"sort"
	"sync"
	"time"
)

// SteppedTransitioner is a Transitioner driven by an explicit clock. Nothing
// moves until Advance is called, which makes it suitable both as a fake
// clock in tests and for hosts that deliver frame ticks (the terminal UI).
type SteppedTransitioner struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	active []*steppedTransition
}

type steppedTransition struct {
	owner    *SteppedTransitioner
	seq      uint64
	from, to float32
	startAt  time.Duration
	d        time.Duration
	step     func(float32)
	done     func()
	canceled bool
}

// NewSteppedTransitioner returns a transitioner whose clock starts at zero.
func NewSteppedTransitioner() *SteppedTransitioner {
	return &SteppedTransitioner{}
}

// Animate schedules a transition starting at the current virtual time.
func (s *SteppedTransitioner) Animate(from, to float32, d time.Duration, step func(float32), done func()) Transition {
	if d <= 0 {
		d = MinDuration
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &steppedTransition{
		owner:   s,
		seq:     s.seq,
		from:    from,
		to:      to,
		startAt: s.now,
		d:       d,
		step:    step,
		done:    done,
	}
	s.active = append(s.active, t)
	return t
}

// Cancel removes the transition; its callbacks will not run again.
func (t *steppedTransition) Cancel() {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	t.canceled = true
	s.removeLocked(t)
}

func (t *steppedTransition) at(now time.Duration) float32 {
	p := float32(now-t.startAt) / float32(t.d)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return t.from + (t.to-t.from)*p
}

func (t *steppedTransition) end() time.Duration { return t.startAt + t.d }

// Now is the current virtual time.
func (s *SteppedTransitioner) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Active is the number of transitions in flight.
func (s *SteppedTransitioner) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Advance moves the clock forward by dt. Transitions that end within the
// interval complete at their exact end time, in schedule order, so a
// transition started from a completion callback begins where the previous
// one ended. Transitions still in flight then receive one step at the new
// time.
func (s *SteppedTransitioner) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.mu.Lock()
	target := s.now + dt
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			live := append([]*steppedTransition(nil), s.active...)
			s.mu.Unlock()
			for _, t := range live {
				s.deliverStep(t, target)
			}
			return
		}
		s.now = next.end()
		s.removeLocked(next)
		s.mu.Unlock()

		if next.step != nil {
			next.step(next.to)
		}
		if next.done != nil && !s.isCanceled(next) {
			next.done()
		}
	}
}

func (s *SteppedTransitioner) deliverStep(t *steppedTransition, now time.Duration) {
	// transitions started at this instant have not moved yet
	if now <= t.startAt || t.step == nil || s.isCanceled(t) {
		return
	}
	t.step(t.at(now))
}

func (s *SteppedTransitioner) isCanceled(t *steppedTransition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.canceled
}

// nextDueLocked returns the earliest transition ending at or before target.
func (s *SteppedTransitioner) nextDueLocked(target time.Duration) *steppedTransition {
	due := make([]*steppedTransition, 0, len(s.active))
	for _, t := range s.active {
		if t.end() <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].end() != due[j].end() {
			return due[i].end() < due[j].end()
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *SteppedTransitioner) removeLocked(t *steppedTransition) {
	for i, a := range s.active {
		if a == t {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}
