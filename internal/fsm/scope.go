package fsm

import (
	"slices"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

// Scope collects everything a state acquires on Enter so that Exit can
// release it in one call: scheduler entries, input listeners and cleanup
// functions.
type Scope struct {
	sched     *sched.Scheduler
	handles   []sched.Handle
	listeners []func(input.Event)
	cleanups  []func()
	released  bool
}

// NewScope creates an empty scope bound to s.
func NewScope(s *sched.Scheduler) *Scope {
	return &Scope{sched: s}
}

// Schedule registers a timer that is cancelled when the scope is released.
// Scheduling on a released scope does nothing and returns the zero handle.
func (sc *Scope) Schedule(delay time.Duration, repeat bool, fn sched.Func) sched.Handle {
	if sc.released {
		return 0
	}
	// Fired one-shots are no longer tracked.
	sc.handles = slices.DeleteFunc(sc.handles, func(old sched.Handle) bool {
		return !sc.sched.Active(old)
	})
	h := sc.sched.Schedule(delay, repeat, fn)
	sc.handles = append(sc.handles, h)
	return h
}

// Cancel cancels a timer early. It is safe to call more than once.
func (sc *Scope) Cancel(h sched.Handle) {
	sc.sched.Cancel(h)
	if i := slices.Index(sc.handles, h); i >= 0 {
		sc.handles = slices.Delete(sc.handles, i, i+1)
	}
}

// Listen adds an input listener that lives until the scope is released.
func (sc *Scope) Listen(fn func(input.Event)) {
	if sc.released {
		return
	}
	sc.listeners = append(sc.listeners, fn)
}

// Dispatch passes ev to every listener in registration order.
func (sc *Scope) Dispatch(ev input.Event) {
	for _, fn := range sc.listeners {
		if sc.released {
			return
		}
		fn(ev)
	}
}

// Defer adds a cleanup function run on release, in reverse order of addition.
func (sc *Scope) Defer(fn func()) {
	if sc.released {
		fn()
		return
	}
	sc.cleanups = append(sc.cleanups, fn)
}

// Release cancels all timers, drops all listeners and runs the cleanups.
// Only the first call has any effect.
func (sc *Scope) Release() {
	if sc.released {
		return
	}
	sc.released = true

	for _, h := range sc.handles {
		sc.sched.Cancel(h)
	}
	sc.handles = nil
	sc.listeners = nil

	for i := len(sc.cleanups) - 1; i >= 0; i-- {
		sc.cleanups[i]()
	}
	sc.cleanups = nil
}
