package controller

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing runs
// until Advance or Flush is called, which makes timer-heavy behaviour
// deterministic in tests and in the headless CLI.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
	posted []func()
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers fn to run once the virtual clock reaches now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Post queues fn for the next Flush or Advance.
func (s *ManualScheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Flush runs posted callbacks, including ones posted while flushing.
func (s *ManualScheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.posted) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.posted[0]
		s.posted = s.posted[1:]
		s.mu.Unlock()
		fn()
	}
}

// Advance moves the clock forward by d, firing due timers in deadline
// order. Timers with equal deadlines fire in registration order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.Flush()

	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			break
		}
		s.now = next.at
		s.remove(next)
		s.mu.Unlock()

		next.fn()
		s.Flush()
	}

	s.Flush()
}

// nextDue must be called with mu held.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at != s.timers[j].at {
			return s.timers[i].at < s.timers[j].at
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	if s.timers[0].at > target {
		return nil
	}
	return s.timers[0]
}

// remove must be called with mu held.
func (s *ManualScheduler) remove(t *manualTimer) {
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range t.s.timers {
		if other == t {
			t.s.timers = append(t.s.timers[:i], t.s.timers[i+1:]...)
			return true
		}
	}
	return false
}
