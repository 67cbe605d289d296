package breakout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fsm"
	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

// Launch angles are drawn from this upward cone.
const (
	launchAngleMin = 1.25 * math.Pi
	launchAngleMax = 1.75 * math.Pi
)

// Play is the state in which the game is played. It owns every ball, brick,
// wall and the paddle, and is the only writer of the session counters.
type Play struct {
	ctx     *Context
	machine *fsm.Machine
	scope   *fsm.Scope
	rng     *rand.Rand
	games   uint64 // games started, mixed into the seed

	playground *core.Transform
	session    *Session
	paddle     *Paddle
	walls      []*Wall
	balls      []*Ball
	levels     *LevelManager
	pickups    *PickupManager
	engine     *Engine
	controls   *Controls

	countdown       int
	countdownHandle sched.Handle
	widenHandle     sched.Handle
}

// NewPlay creates the play state.
func NewPlay(ctx *Context) *Play {
	return &Play{ctx: ctx}
}

// Name implements fsm.State.
func (p *Play) Name() string { return StatePlay }

// Enter resets the session and starts the first level.
func (p *Play) Enter(m *fsm.Machine, _ any) error {
	cfg := p.ctx.Config

	p.machine = m
	p.scope = fsm.NewScope(m.Scheduler())
	seed := p.ctx.Seed + p.games
	p.games++
	p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // gameplay RNG, not crypto

	p.playground = &core.Transform{W: cfg.Playfield.Width, H: cfg.Playfield.Height}
	p.session = NewSession(cfg.Gameplay.Lives)
	p.balls = nil

	p.spawnWalls()
	p.scope.Defer(func() {
		for _, w := range p.walls {
			w.Destroy()
		}
		p.walls = nil
	})
	p.paddle = NewPaddle(p.playground,
		cfg.Paddle.Width, cfg.Paddle.Height,
		cfg.Playfield.Height-cfg.Paddle.BottomOffset,
		cfg.Paddle.EdgePct)

	p.levels = NewLevelManager(p.ctx, p.playground, p.ctx.Levels, p.brickDestroyed, p.completeLevel)
	p.scope.Defer(p.levels.Clear)
	if err := p.levels.ValidateAll(); err != nil {
		return fmt.Errorf("breakout: %w", err)
	}
	if err := p.levels.Spawn(0); err != nil {
		return fmt.Errorf("breakout: %w", err)
	}

	p.pickups = NewPickupManager(cfg.Pickups, p.rng, p.playground)
	p.scope.Defer(p.pickups.Clear)
	p.engine = NewEngine(p.ctx, PlayfieldFor(cfg.Playfield), p.paddle, p.walls, p.levels)
	p.controls = NewControls(p.paddle, cfg.Paddle.Speed)
	p.scope.Defer(p.controls.Release)
	p.scope.Listen(p.controls.Handle)

	p.scope.Schedule(0, true, p.controls.Drag)
	p.scope.Schedule(0, true, p.stepBalls)
	p.scope.Schedule(0, true, p.stepPickups)
	p.startCountdown()

	p.ctx.log().Info("game started", "pack", p.ctx.Pack, "levels", p.levels.Count(), "lives", p.session.Lives)
	return nil
}

// Exit releases every timer and listener and destroys the entities.
func (p *Play) Exit() {
	if p.scope != nil {
		p.scope.Release()
	}
	p.balls = nil
	p.countdown = 0
}

// HandleInput implements fsm.State.
func (p *Play) HandleInput(ev input.Event) {
	if p.scope != nil {
		p.scope.Dispatch(ev)
	}
}

// Session returns the session counters.
func (p *Play) Session() *Session {
	return p.session
}

// Countdown returns the countdown ticks left, or 0 when no countdown runs.
func (p *Play) Countdown() int {
	return p.countdown
}

// spawnWalls creates the left, right and top walls along the perimeter.
func (p *Play) spawnWalls() {
	cfg := p.ctx.Config.Playfield
	t := cfg.WallThickness
	cooldown := p.ctx.Config.Gameplay.WallCooldownDuration()

	p.walls = []*Wall{
		NewWall(p.scope, p.playground, WallLeft, core.NewBounds(0, 0, t, cfg.Height), cooldown),
		NewWall(p.scope, p.playground, WallRight, core.NewBounds(cfg.Width-t, 0, t, cfg.Height), cooldown),
		NewWall(p.scope, p.playground, WallTop, core.NewBounds(0, 0, cfg.Width, t), cooldown),
	}
}

// startCountdown (re)starts the countdown that ends in a ball launch.
func (p *Play) startCountdown() {
	p.scope.Cancel(p.countdownHandle)
	p.countdownHandle = 0

	p.countdown = p.ctx.Config.Gameplay.Countdown
	if p.countdown <= 0 {
		p.launchBall()
		return
	}
	p.countdownHandle = p.scope.Schedule(p.ctx.Config.Gameplay.CountdownStep(), true, p.tickCountdown)
}

func (p *Play) tickCountdown(time.Duration) {
	p.countdown--
	p.ctx.cue(audio.CueCountdown)
	if p.countdown > 0 {
		return
	}
	p.scope.Cancel(p.countdownHandle)
	p.countdownHandle = 0
	p.launchBall()
}

// launchBall spawns a ball just above the paddle centre heading upward.
func (p *Play) launchBall() {
	cfg := p.ctx.Config
	r := cfg.Ball.Radius
	x := p.paddle.Transform.X
	y := p.paddle.Bounds().Y - r - 1
	angle := launchAngleMin + p.rng.Float64()*(launchAngleMax-launchAngleMin)

	b := NewBall(p.ctx, p.playground, x, y, r, angle, p.ballSpeed())
	p.balls = append(p.balls, b)
	p.ctx.cue(audio.CueLaunch)
	p.ctx.log().Debug("ball launched", "angle", angle, "speed", b.Speed)
}

// ballSpeed returns the spawn speed for the current difficulty.
func (p *Play) ballSpeed() float64 {
	cfg := p.ctx.Config.Ball
	speed := p.ctx.Config.Difficulty.BallSpeed(cfg.Speed, p.session.Score, p.session.LevelIndex)
	if cfg.MaxSpeed > 0 {
		speed = min(speed, cfg.MaxSpeed)
	}
	return speed
}

// stepBalls moves every ball in spawn order. Balls destroyed earlier in the
// same tick, for example by a level clear, are skipped.
func (p *Play) stepBalls(dt time.Duration) {
	for _, b := range slices.Clone(p.balls) {
		if b.Destroyed() {
			continue
		}
		if p.engine.StepBall(b, dt) == OutcomeLost {
			p.ballLost(b)
		}
	}
}

func (p *Play) ballLost(b *Ball) {
	b.Destroy()
	p.balls = slices.DeleteFunc(p.balls, func(other *Ball) bool { return other == b })
	if len(p.balls) > 0 || p.session.Terminal {
		return
	}

	lives := p.session.LoseLife()
	p.ctx.log().Debug("ball lost", "lives", lives)
	if lives > 0 {
		p.pickups.Clear()
		p.startCountdown()
		return
	}

	p.ctx.cue(audio.CueGameOver)
	p.machine.Request(StateGameOver, p.session.Result())
}

func (p *Play) brickDestroyed(b *Brick) {
	p.session.AddScore(b.Score())
	x, y := b.Bounds().Mid()
	if pk, ok := p.pickups.TrySpawn(x, y); ok {
		p.ctx.log().Debug("pickup dropped", "type", pk.Type)
	}
}

// completeLevel runs when the last brick of the current level is destroyed.
func (p *Play) completeLevel() {
	for _, b := range p.balls {
		b.Destroy()
	}
	p.balls = nil
	p.pickups.Clear()
	p.scope.Cancel(p.countdownHandle)
	p.countdownHandle = 0
	p.countdown = 0

	p.session.LevelIndex++
	if p.session.LevelIndex >= p.levels.Count() {
		p.session.LevelIndex = p.levels.Count() - 1
		p.session.Terminal = true
		p.ctx.cue(audio.CueWin)
		p.machine.Request(StateWin, p.session.Result())
		return
	}

	p.ctx.cue(audio.CueLevelClear)
	if err := p.levels.Spawn(p.session.LevelIndex); err != nil {
		p.ctx.log().Error("failed to spawn level", "index", p.session.LevelIndex, "error", err)
		p.session.Terminal = true
		p.machine.Request(StateTitle, nil)
		return
	}
	p.startCountdown()
}

// stepPickups moves falling pickups and applies the ones caught.
func (p *Play) stepPickups(dt time.Duration) {
	for _, typ := range p.pickups.Update(dt, p.paddle, p.ctx.Config.Playfield.Height) {
		p.applyPickup(typ)
	}
}

func (p *Play) applyPickup(typ PickupType) {
	cfg := p.ctx.Config
	switch typ {
	case PickupWiden:
		p.paddle.SetWidth(cfg.Paddle.Width + cfg.Pickups.WidenAmount)
		p.scope.Cancel(p.widenHandle)
		p.widenHandle = p.scope.Schedule(cfg.Pickups.WidenFor(), false, func(time.Duration) {
			p.paddle.SetWidth(cfg.Paddle.Width)
			p.widenHandle = 0
		})
	case PickupMultiball:
		p.spawnMultiball(cfg.Pickups.MultiballCount)
	case PickupExtraLife:
		p.session.Lives++
	}
	p.ctx.log().Debug("pickup caught", "type", typ)
}

// spawnMultiball adds count balls at the first live ball, fanned out
// around its direction.
func (p *Play) spawnMultiball(count int) {
	var src *Ball
	for _, b := range p.balls {
		if !b.Destroyed() {
			src = b
			break
		}
	}
	if src == nil {
		return
	}

	for i := range count {
		spread := float64(i/2+1) * math.Pi / 6
		if i%2 == 1 {
			spread = -spread
		}
		b := NewBall(p.ctx, p.playground, src.Transform.X, src.Transform.Y, src.Radius,
			SanitizeAngle(src.Angle+spread), src.Speed)
		p.balls = append(p.balls, b)
	}
}
