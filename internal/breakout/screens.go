package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/fsm"
	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

// endScreenArmDelay is how long the game-over and win screens ignore input,
// so a key still held from play does not skip them.
const endScreenArmDelay = 500 * time.Millisecond

// Title is the start screen. Any key-down or click starts a game.
type Title struct {
	scope *fsm.Scope
}

// NewTitle creates the title state.
func NewTitle() *Title {
	return &Title{}
}

// Name implements fsm.State.
func (t *Title) Name() string { return StateTitle }

// Enter implements fsm.State.
func (t *Title) Enter(m *fsm.Machine, _ any) error {
	t.scope = fsm.NewScope(m.Scheduler())
	t.scope.Listen(func(ev input.Event) {
		if input.IsTrigger(ev) {
			m.Request(StatePlay, nil)
		}
	})
	return nil
}

// Exit implements fsm.State.
func (t *Title) Exit() {
	if t.scope != nil {
		t.scope.Release()
	}
}

// HandleInput implements fsm.State.
func (t *Title) HandleInput(ev input.Event) {
	if t.scope != nil {
		t.scope.Dispatch(ev)
	}
}

// EndScreen is the game-over or win screen. It shows the final result and
// returns to the title on any key-down or click. Triggers that arrive during
// the arm delay after Enter are dropped, not queued.
type EndScreen struct {
	ctx     *Context
	name    string
	outcome string
	scope   *fsm.Scope
	result  Result
	armed   bool
}

// NewGameOver creates the game-over state.
func NewGameOver(ctx *Context) *EndScreen {
	return &EndScreen{ctx: ctx, name: StateGameOver, outcome: OutcomeGameOver}
}

// NewWin creates the win state.
func NewWin(ctx *Context) *EndScreen {
	return &EndScreen{ctx: ctx, name: StateWin, outcome: OutcomeWin}
}

// Name implements fsm.State.
func (e *EndScreen) Name() string { return e.name }

// Result returns the result the screen was entered with.
func (e *EndScreen) Result() Result { return e.result }

// Armed reports whether the screen accepts input yet.
func (e *EndScreen) Armed() bool { return e.armed }

// Enter records the final score and waits for input.
func (e *EndScreen) Enter(m *fsm.Machine, payload any) error {
	if r, ok := payload.(Result); ok {
		e.result = r
	}
	e.ctx.log().Info("game finished", "outcome", e.outcome, "score", e.result.Score, "level", e.result.Level)
	e.ctx.recordScore(e.outcome, e.result)

	e.scope = fsm.NewScope(m.Scheduler())
	e.scope.Schedule(endScreenArmDelay, false, func(time.Duration) { e.armed = true })
	e.scope.Listen(func(ev input.Event) {
		if e.armed && input.IsTrigger(ev) {
			m.Request(StateTitle, nil)
		}
	})
	return nil
}

// Exit implements fsm.State.
func (e *EndScreen) Exit() {
	if e.scope != nil {
		e.scope.Release()
	}
}

// HandleInput implements fsm.State.
func (e *EndScreen) HandleInput(ev input.Event) {
	if e.scope != nil {
		e.scope.Dispatch(ev)
	}
}

// NewMachine creates a machine driven by s with the four game states
// registered. Call Start(StateTitle, nil) to begin.
func NewMachine(ctx *Context, s *sched.Scheduler) *fsm.Machine {
	m := fsm.NewMachine(s, ctx.log())
	m.Register(StateTitle, func() fsm.State { return NewTitle() })
	m.Register(StatePlay, func() fsm.State { return NewPlay(ctx) })
	m.Register(StateGameOver, func() fsm.State { return NewGameOver(ctx) })
	m.Register(StateWin, func() fsm.State { return NewWin(ctx) })
	return m
}
