package breakout

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Playfield holds the edges the ball bounces between. The bottom edge is
// open: crossing it loses the ball.
type Playfield struct {
	Left, Right float64
	Top, Bottom float64
}

// PlayfieldFor derives the playfield edges from the config.
func PlayfieldFor(cfg config.PlayfieldConfig) Playfield {
	return Playfield{
		Left:   cfg.WallThickness,
		Right:  cfg.Width - cfg.WallThickness,
		Top:    cfg.WallThickness,
		Bottom: cfg.Height,
	}
}

// Outcome is the result of stepping a ball for one tick.
type Outcome int

const (
	OutcomeMoved    Outcome = iota // Displacement applied
	OutcomeCollided                // Direction changed, position kept
	OutcomeLost                    // Ball crossed the bottom edge and was destroyed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeCollided:
		return "collided"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// BrickSet provides the bricks the ball can hit. Active must return a slice
// the engine may iterate while bricks are being destroyed.
type BrickSet interface {
	Active() []*Brick
}

// Engine moves balls and resolves their collisions.
type Engine struct {
	Field  Playfield
	Paddle *Paddle
	Walls  []*Wall
	Bricks BrickSet

	ctx *Context
}

// NewEngine creates an engine. Any of paddle, walls and bricks may be nil.
func NewEngine(ctx *Context, field Playfield, paddle *Paddle, walls []*Wall, bricks BrickSet) *Engine {
	return &Engine{
		Field:  field,
		Paddle: paddle,
		Walls:  walls,
		Bricks: bricks,
		ctx:    ctx,
	}
}

// StepBall advances b by dt.
//
// The candidate position is tested against the paddle, the side walls, the
// top and bottom edges and the bricks, in that order. Any collision changes
// the ball's direction instead of moving it; crossing the bottom edge
// destroys the ball and skips the remaining checks.
func (e *Engine) StepBall(b *Ball, dt time.Duration) Outcome {
	if b.Destroyed() {
		return OutcomeLost
	}

	ms := float64(dt) / float64(time.Millisecond)
	dx := math.Cos(b.Angle) * b.Speed * ms
	dy := math.Sin(b.Angle) * b.Speed * ms
	wantX, wantY := b.Transform.X+dx, b.Transform.Y+dy
	want := b.BoundsAt(wantX, wantY)

	angle := b.Angle
	collided := false

	if e.Paddle != nil {
		pb := e.Paddle.Bounds()
		if inter, ok := core.Intersect(want, pb); ok {
			if !b.Colliding {
				b.Colliding = true
				collided = true
				if inter.W >= inter.H {
					midX, _ := inter.Mid()
					t := 0.5
					if pb.W > 0 {
						t = (midX - pb.X) / pb.W
					}
					angle = ReflectAbout(angle, paddleNormal(t))
				} else {
					angle = ReflectHorizontal(angle)
				}
				e.cue(audio.CuePaddle)
			}
		} else {
			b.Colliding = false
		}
	}

	if wantX-b.Radius <= e.Field.Left || wantX+b.Radius >= e.Field.Right {
		e.hitWalls(want)
		angle = ReflectHorizontal(angle)
		collided = true
	}

	if wantY-b.Radius <= e.Field.Top {
		e.hitWalls(want)
		angle = ReflectVertical(angle)
		collided = true
	} else if wantY+b.Radius >= e.Field.Bottom {
		b.Destroy()
		return OutcomeLost
	}

	if e.Bricks != nil {
		base := angle
		for _, br := range e.Bricks.Active() {
			if br.Destroyed() {
				continue
			}
			inter, ok := core.Intersect(want, br.Bounds())
			if !ok {
				continue
			}
			collided = true
			// Each hit brick overwrites the direction; the last one wins.
			if inter.W >= inter.H {
				angle = ReflectVertical(base)
			} else {
				angle = ReflectHorizontal(base)
			}
			br.Hit()
		}
	}

	if collided {
		b.Angle = SanitizeAngle(angle)
		return OutcomeCollided
	}

	b.Transform.X = wantX
	b.Transform.Y = wantY
	return OutcomeMoved
}

// hitWalls notifies every wall overlapping bounds.
func (e *Engine) hitWalls(bounds core.Bounds) {
	hit := false
	for _, w := range e.Walls {
		if core.Overlaps(bounds, w.Bounds()) {
			w.Hit()
			hit = true
		}
	}
	if hit {
		e.cue(audio.CueWall)
	}
}

func (e *Engine) cue(c audio.Cue) {
	if e.ctx != nil {
		e.ctx.cue(c)
	}
}
