package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

// Timers schedules and cancels callbacks. Both *sched.Scheduler and
// *fsm.Scope satisfy it.
type Timers interface {
	Schedule(delay time.Duration, repeat bool, fn sched.Func) sched.Handle
	Cancel(h sched.Handle)
}

// Ball is a moving ball. Its transform position is the ball's centre.
type Ball struct {
	Transform core.Transform
	Angle     float64 // Direction of travel in radians
	Speed     float64 // Units per millisecond
	Radius    float64
	Colliding bool // Set while the ball overlaps the paddle

	ctx       *Context
	destroyed bool
}

// NewBall creates a ball centred on (x, y) inside parent.
func NewBall(ctx *Context, parent *core.Transform, x, y, radius, angle, speed float64) *Ball {
	return &Ball{
		Transform: core.Transform{
			X: x, Y: y,
			W: 2 * radius, H: 2 * radius,
			MinX: -radius, MinY: -radius,
			Parent: parent,
		},
		Angle:  angle,
		Speed:  speed,
		Radius: radius,
		ctx:    ctx,
	}
}

// Bounds returns the ball's current bounds.
func (b *Ball) Bounds() core.Bounds {
	return b.Transform.Bounds()
}

// BoundsAt returns the bounds the ball would have centred on (x, y).
func (b *Ball) BoundsAt(x, y float64) core.Bounds {
	return b.Transform.BoundsAt(x, y)
}

// Destroy marks the ball destroyed and plays the loss cue. Only the first
// call has an effect; it reports whether this call destroyed the ball.
func (b *Ball) Destroy() bool {
	if b.destroyed {
		return false
	}
	b.destroyed = true
	if b.ctx != nil {
		b.ctx.cue(audio.CueBallLost)
	}
	return true
}

// Destroyed reports whether the ball has been destroyed.
func (b *Ball) Destroyed() bool {
	return b.destroyed
}

// Brick is a destructible brick placed from a level grid cell.
type Brick struct {
	Transform core.Transform
	Row, Col  int

	ctx       *Context
	hits      int
	score     int
	destroyed bool
	listeners []func(*Brick)
}

// NewBrick creates a brick covering bounds. Negative hits clamp to zero.
func NewBrick(ctx *Context, parent *core.Transform, row, col int, bounds core.Bounds, hits, score int) *Brick {
	return &Brick{
		Transform: core.Transform{
			X: bounds.X, Y: bounds.Y,
			W: bounds.W, H: bounds.H,
			Parent: parent,
		},
		Row:   row,
		Col:   col,
		ctx:   ctx,
		hits:  max(hits, 0),
		score: score,
	}
}

// Bounds returns the brick's bounds.
func (b *Brick) Bounds() core.Bounds {
	return b.Transform.Bounds()
}

// Hits returns the hits remaining.
func (b *Brick) Hits() int { return b.hits }

// Score returns the points awarded when the brick is destroyed.
func (b *Brick) Score() int { return b.score }

// Destroyed reports whether the brick has been destroyed.
func (b *Brick) Destroyed() bool { return b.destroyed }

// OnDestroyed registers fn to run when Hit destroys the brick.
func (b *Brick) OnDestroyed(fn func(*Brick)) {
	b.listeners = append(b.listeners, fn)
}

// Hit takes one hit off the brick. At zero hits the brick is destroyed and
// every OnDestroyed listener runs once. Hitting a destroyed brick does nothing.
func (b *Brick) Hit() {
	if b.destroyed {
		return
	}
	b.hits = max(b.hits-1, 0)
	if b.hits > 0 {
		if b.ctx != nil {
			b.ctx.cue(audio.CueBrickDamaged)
		}
		return
	}

	b.destroyed = true
	if b.ctx != nil {
		b.ctx.cue(audio.CueBrickDestroyed)
	}
	listeners := b.listeners
	b.listeners = nil
	for _, fn := range listeners {
		fn(b)
	}
}

// Remove destroys the brick without notifying listeners.
func (b *Brick) Remove() {
	b.destroyed = true
	b.listeners = nil
}

// WallSide identifies one of the perimeter walls.
type WallSide int

const (
	WallLeft WallSide = iota
	WallRight
	WallTop
)

// String returns the side name.
func (s WallSide) String() string {
	switch s {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	default:
		return "unknown"
	}
}

// WallState is the visual state of a wall.
type WallState int

const (
	WallIdle WallState = iota
	WallHit
)

// Wall is a perimeter wall that lights up briefly when the ball touches it.
type Wall struct {
	Transform core.Transform
	Side      WallSide

	timers    Timers
	cooldown  time.Duration
	state     WallState
	timer     sched.Handle
	destroyed bool
}

// NewWall creates a wall covering bounds. cooldown is how long the wall
// stays in the hit state.
func NewWall(timers Timers, parent *core.Transform, side WallSide, bounds core.Bounds, cooldown time.Duration) *Wall {
	return &Wall{
		Transform: core.Transform{
			X: bounds.X, Y: bounds.Y,
			W: bounds.W, H: bounds.H,
			Parent: parent,
		},
		Side:     side,
		timers:   timers,
		cooldown: cooldown,
	}
}

// Bounds returns the wall's bounds.
func (w *Wall) Bounds() core.Bounds {
	return w.Transform.Bounds()
}

// State returns the wall's current state.
func (w *Wall) State() WallState {
	return w.state
}

// Hit switches an idle wall to the hit state and schedules its return to
// idle. Hits during the cooldown are ignored.
func (w *Wall) Hit() {
	if w.destroyed || w.state == WallHit {
		return
	}
	w.state = WallHit
	w.timer = w.timers.Schedule(w.cooldown, false, func(time.Duration) {
		w.state = WallIdle
		w.timer = 0
	})
}

// Destroy cancels any pending cooldown.
func (w *Wall) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	if w.timer != 0 {
		w.timers.Cancel(w.timer)
		w.timer = 0
	}
}

// Paddle is the player's paddle. Its transform position is the paddle's
// top centre and its horizontal position follows Value.
type Paddle struct {
	Transform core.Transform
	EdgePct   float64 // Travel range inset as a fraction of the parent width

	value float64
}

// NewPaddle creates a centred paddle whose top edge is at y.
func NewPaddle(parent *core.Transform, width, height, y, edgePct float64) *Paddle {
	p := &Paddle{
		Transform: core.Transform{
			Y: y,
			W: width, H: height,
			MinX:   -width / 2,
			Parent: parent,
		},
		EdgePct: edgePct,
	}
	p.SetValue(0.5)
	return p
}

// Bounds returns the paddle's bounds.
func (p *Paddle) Bounds() core.Bounds {
	return p.Transform.Bounds()
}

// Value returns the normalized horizontal position in [0, 1].
func (p *Paddle) Value() float64 {
	return p.value
}

// SetValue clamps v to [0, 1] and, when the parent width is known, moves the
// paddle between the inset edges of the parent.
func (p *Paddle) SetValue(v float64) {
	p.value = core.ClampF(v, 0, 1)
	if pw, ok := p.Transform.ParentWidth(); ok {
		inset := p.EdgePct * pw
		p.Transform.X = core.Lerp(inset, pw-inset, p.value)
	}
}

// Nudge moves the paddle by delta in value units.
func (p *Paddle) Nudge(delta float64) {
	p.SetValue(p.value + delta)
}

// ValueAt converts a playground x coordinate to a paddle value, or false
// when the parent width is unknown.
func (p *Paddle) ValueAt(x float64) (float64, bool) {
	pw, ok := p.Transform.ParentWidth()
	if !ok {
		return 0, false
	}
	inset := p.EdgePct * pw
	span := pw - 2*inset
	if span <= 0 {
		return 0.5, true
	}
	return (x - inset) / span, true
}

// SetWidth resizes the paddle around its centre.
func (p *Paddle) SetWidth(w float64) {
	p.Transform.W = w
	p.Transform.MinX = -w / 2
}
