package sched

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestScheduler() *Scheduler {
	return New(log.New(io.Discard))
}

func TestZeroDelayRepeatFiresEveryTick(t *testing.T) {
	s := newTestScheduler()

	var got []time.Duration
	s.Schedule(0, true, func(elapsed time.Duration) {
		got = append(got, elapsed)
	})

	s.Tick(16 * time.Millisecond)
	s.Tick(17 * time.Millisecond)
	s.Tick(0)

	expected := []time.Duration{16 * time.Millisecond, 17 * time.Millisecond, 0}
	if len(got) != len(expected) {
		t.Fatalf("fired %d times, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("fire %d elapsed = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestOneShotFiresOnce(t *testing.T) {
	s := newTestScheduler()

	count := 0
	h := s.Schedule(300*time.Millisecond, false, func(time.Duration) {
		count++
	})

	s.Tick(100 * time.Millisecond)
	s.Tick(100 * time.Millisecond)
	if count != 0 {
		t.Fatalf("one-shot fired early after 200ms")
	}
	s.Tick(100 * time.Millisecond)
	if count != 1 {
		t.Fatalf("one-shot count = %d after 300ms, expected 1", count)
	}
	s.Tick(time.Second)
	if count != 1 {
		t.Errorf("one-shot fired again, count = %d", count)
	}
	if s.Active(h) {
		t.Error("fired one-shot should no longer be active")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestRepeatingCadenceKeepsRemainder(t *testing.T) {
	s := newTestScheduler()

	fires := 0
	s.Schedule(time.Second, true, func(time.Duration) {
		fires++
	})

	// 61 ticks of ~16.7ms is just over a second.
	for range 61 {
		s.Tick(time.Second / 60)
	}
	if fires != 1 {
		t.Fatalf("fires = %d after one second, expected 1", fires)
	}
	for range 120 {
		s.Tick(time.Second / 60)
	}
	if fires != 3 {
		t.Errorf("fires = %d after three seconds, expected 3", fires)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s := newTestScheduler()

	count := 0
	h := s.Schedule(0, true, func(time.Duration) { count++ })

	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(Handle(9999))
	s.Cancel(0)

	s.Tick(time.Millisecond)
	if count != 0 {
		t.Errorf("cancelled entry fired %d times", count)
	}
}

func TestCancelAfterFiringThisTick(t *testing.T) {
	s := newTestScheduler()

	var first Handle
	firstCount := 0
	first = s.Schedule(0, true, func(time.Duration) { firstCount++ })
	s.Schedule(0, true, func(time.Duration) {
		// first already ran this tick, cancelling it is a no-op for this tick
		s.Cancel(first)
	})

	s.Tick(time.Millisecond)
	if firstCount != 1 {
		t.Fatalf("firstCount = %d, expected 1", firstCount)
	}
	s.Tick(time.Millisecond)
	if firstCount != 1 {
		t.Errorf("cancelled entry kept firing, count = %d", firstCount)
	}
}

func TestCancelLaterEntryDuringTick(t *testing.T) {
	s := newTestScheduler()

	var second Handle
	s.Schedule(0, true, func(time.Duration) { s.Cancel(second) })
	secondCount := 0
	second = s.Schedule(0, true, func(time.Duration) { secondCount++ })

	s.Tick(time.Millisecond)
	if secondCount != 0 {
		t.Errorf("entry cancelled earlier in the tick still fired")
	}
}

func TestScheduleDuringTickRunsNextTick(t *testing.T) {
	s := newTestScheduler()

	inner := 0
	s.Schedule(0, false, func(time.Duration) {
		s.Schedule(0, true, func(time.Duration) { inner++ })
	})

	s.Tick(time.Millisecond)
	if inner != 0 {
		t.Fatalf("entry scheduled mid-tick fired in the same tick")
	}
	s.Tick(time.Millisecond)
	if inner != 1 {
		t.Errorf("inner = %d, expected 1", inner)
	}
}

func TestOrderIsSchedulingOrder(t *testing.T) {
	s := newTestScheduler()

	var order []int
	for i := range 5 {
		s.Schedule(0, true, func(time.Duration) { order = append(order, i) })
	}
	s.Tick(time.Millisecond)

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, expected ascending", order)
		}
	}
}

func TestPanicDoesNotEscapeTick(t *testing.T) {
	s := newTestScheduler()

	after := 0
	s.Schedule(0, true, func(time.Duration) { panic("boom") })
	s.Schedule(0, true, func(time.Duration) { after++ })

	s.Tick(time.Millisecond)
	s.Tick(time.Millisecond)
	if after != 2 {
		t.Errorf("entries after a panicking callback ran %d times, expected 2", after)
	}
}

func TestNowAccumulates(t *testing.T) {
	s := newTestScheduler()
	s.Tick(10 * time.Millisecond)
	s.Tick(-5 * time.Millisecond)
	s.Tick(15 * time.Millisecond)

	if s.Now() != 25*time.Millisecond {
		t.Errorf("Now() = %v, expected 25ms", s.Now())
	}
}
