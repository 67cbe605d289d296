// Package sched provides a cooperative, tick-driven timer registry.
//
// The scheduler owns no goroutines. The platform calls Tick once per frame
// with the elapsed simulated time and every due callback runs to completion,
// one after another, before Tick returns.
package sched

import (
	"time"

	"github.com/charmbracelet/log"
)

// Handle identifies a scheduled entry. The zero Handle is never issued.
type Handle uint64

// Func is a scheduled callback. It receives the simulated time that elapsed
// since the entry last fired (or since it was scheduled).
type Func func(elapsed time.Duration)

type entry struct {
	id        Handle
	delay     time.Duration
	repeat    bool
	fn        Func
	acc       time.Duration
	cancelled bool
}

// Scheduler is a registry of one-shot and looping timers driven by Tick.
// It is not safe for concurrent use.
type Scheduler struct {
	entries []*entry
	byID    map[Handle]*entry
	next    Handle
	now     time.Duration
	ticking bool
	logger  *log.Logger
}

// New creates an empty scheduler. Panics recovered from callbacks are
// reported to logger; a nil logger falls back to the package default.
func New(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		byID:   make(map[Handle]*entry),
		logger: logger,
	}
}

// Schedule registers fn to run after delay.
//
// A zero delay with repeat set fires on every tick and receives that tick's
// elapsed time. A positive delay with repeat set fires on a fixed cadence,
// carrying any overshoot into the next period. Entries scheduled while a tick
// is in progress first run on the following tick.
func (s *Scheduler) Schedule(delay time.Duration, repeat bool, fn Func) Handle {
	if delay < 0 {
		delay = 0
	}
	s.next++
	e := &entry{
		id:     s.next,
		delay:  delay,
		repeat: repeat,
		fn:     fn,
	}
	s.entries = append(s.entries, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel removes the entry. Cancelling an unknown, fired one-shot or
// already cancelled handle is a no-op. An entry cancelled during a tick
// does not fire for the rest of that tick.
func (s *Scheduler) Cancel(h Handle) {
	e, ok := s.byID[h]
	if !ok {
		return
	}
	e.cancelled = true
	delete(s.byID, h)
	if !s.ticking {
		s.compact()
	}
}

// Active reports whether h is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.byID[h]
	return ok
}

// Len returns the number of live entries.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Now returns the total simulated time advanced through Tick.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Tick advances simulated time by dt and runs every due callback in the
// order the entries were scheduled.
func (s *Scheduler) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.ticking = true

	n := len(s.entries)
	for i := 0; i < n; i++ {
		e := s.entries[i]
		if e.cancelled {
			continue
		}

		e.acc += dt
		if e.acc < e.delay {
			continue
		}

		elapsed := e.acc
		if e.delay == 0 {
			elapsed = dt
			e.acc = 0
		} else if e.repeat {
			e.acc -= e.delay
		}
		if !e.repeat {
			e.cancelled = true
			delete(s.byID, e.id)
		}

		s.run(e, elapsed)
	}

	s.ticking = false
	s.compact()
}

// run invokes a callback, keeping a panic from escaping the tick.
func (s *Scheduler) run(e *entry, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled callback panicked",
				"handle", e.id,
				"repeat", e.repeat,
				"panic", r,
			)
		}
	}()
	e.fn(elapsed)
}

// compact drops cancelled entries while keeping scheduling order.
func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}
