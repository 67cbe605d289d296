// Package fsm runs a flat finite state machine of game phases on top of the
// tick scheduler.
//
// Exactly one state is active. Transitions requested while a tick or an input
// event is being processed are deferred until that work completes; the old
// state's Exit always finishes before the new state's Enter begins.
package fsm

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

// State is one phase of the game.
type State interface {
	// Name returns the name the state is registered under.
	Name() string

	// Enter runs the state's setup. payload is whatever the requester passed.
	// On error the machine calls Exit to release anything acquired so far.
	Enter(m *Machine, payload any) error

	// Exit tears the state down. It must release every timer and listener
	// the state acquired.
	Exit()

	// HandleInput delivers an input event while the state is active.
	HandleInput(ev input.Event)
}

// Factory creates a fresh instance of a state for each entry.
type Factory func() State

type transition struct {
	name    string
	payload any
}

// Machine holds the registered states and the active one.
type Machine struct {
	sched     *sched.Scheduler
	logger    *log.Logger
	factories map[string]Factory
	active    State
	pending   *transition
	lastErr   error
}

// NewMachine creates a machine driven by s.
func NewMachine(s *sched.Scheduler, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Default()
	}
	return &Machine{
		sched:     s,
		logger:    logger,
		factories: make(map[string]Factory),
	}
}

// Register adds a state factory under name.
// Panics if name is already registered.
func (m *Machine) Register(name string, f Factory) {
	if _, exists := m.factories[name]; exists {
		panic(fmt.Sprintf("fsm: state %q already registered", name))
	}
	m.factories[name] = f
}

// Scheduler returns the scheduler states use for their timers.
func (m *Machine) Scheduler() *sched.Scheduler {
	return m.sched
}

// Logger returns the machine's logger.
func (m *Machine) Logger() *log.Logger {
	return m.logger
}

// Active returns the active state, or nil before Start or after a failed Enter.
func (m *Machine) Active() State {
	return m.active
}

// Err returns the error from the most recent failed transition.
func (m *Machine) Err() error {
	return m.lastErr
}

// Start switches to the named state immediately.
func (m *Machine) Start(name string, payload any) error {
	m.pending = nil
	return m.switchTo(name, payload)
}

// Request asks for a transition once the current tick or event completes.
// A later request in the same tick replaces an earlier one.
func (m *Machine) Request(name string, payload any) {
	m.pending = &transition{name: name, payload: payload}
}

// Pending reports the name of a requested but not yet applied transition.
func (m *Machine) Pending() (string, bool) {
	if m.pending == nil {
		return "", false
	}
	return m.pending.name, true
}

// Tick advances the scheduler by dt and then applies any requested transition.
func (m *Machine) Tick(dt time.Duration) {
	m.sched.Tick(dt)
	m.flush()
}

// Dispatch delivers an input event to the active state and then applies any
// requested transition.
func (m *Machine) Dispatch(ev input.Event) {
	if m.active != nil {
		m.active.HandleInput(ev)
	}
	m.flush()
}

// flush applies pending transitions. Enter may itself request another
// transition, which is applied in turn.
func (m *Machine) flush() {
	for m.pending != nil {
		t := m.pending
		m.pending = nil
		if err := m.switchTo(t.name, t.payload); err != nil {
			m.logger.Error("state transition failed", "to", t.name, "error", err)
		}
	}
}

func (m *Machine) switchTo(name string, payload any) error {
	f, ok := m.factories[name]
	if !ok {
		m.lastErr = fmt.Errorf("fsm: unknown state %q", name)
		return m.lastErr
	}

	if m.active != nil {
		from := m.active.Name()
		m.active.Exit()
		m.active = nil
		m.logger.Debug("state exited", "state", from)
	}

	next := f()
	if err := next.Enter(m, payload); err != nil {
		next.Exit()
		m.lastErr = fmt.Errorf("fsm: enter %q: %w", name, err)
		return m.lastErr
	}

	m.active = next
	m.logger.Debug("state entered", "state", name)
	return nil
}
