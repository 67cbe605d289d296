package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BallView is a read-only view of a ball.
type BallView struct {
	Bounds core.Bounds
	Angle  float64
	Speed  float64
}

// BrickView is a read-only view of a brick.
type BrickView struct {
	Bounds   core.Bounds
	Row, Col int
	Hits     int
}

// WallView is a read-only view of a wall.
type WallView struct {
	Bounds core.Bounds
	Side   WallSide
	Lit    bool
}

// PickupView is a read-only view of a falling pickup.
type PickupView struct {
	Bounds core.Bounds
	Type   PickupType
}

// Snapshot is a copy of the play state for rendering and tests.
type Snapshot struct {
	Width, Height float64

	Score      int
	Lives      int
	LevelIndex int
	LevelCount int
	LevelName  string
	Countdown  int
	Terminal   bool

	Paddle      core.Bounds
	PaddleValue float64

	Balls   []BallView
	Bricks  []BrickView
	Walls   []WallView
	Pickups []PickupView
}

// Snapshot returns the current play state. It is safe to keep after the
// state changes.
func (p *Play) Snapshot() Snapshot {
	snap := Snapshot{
		Width:      p.playground.W,
		Height:     p.playground.H,
		Score:      p.session.Score,
		Lives:      p.session.Lives,
		LevelIndex: p.session.LevelIndex,
		LevelCount: p.levels.Count(),
		Countdown:  p.countdown,
		Terminal:   p.session.Terminal,
	}
	if lvl, ok := p.levels.Level(p.session.LevelIndex); ok {
		snap.LevelName = lvl.Name
	}
	if p.paddle != nil {
		snap.Paddle = p.paddle.Bounds()
		snap.PaddleValue = p.paddle.Value()
	}

	snap.Balls = make([]BallView, 0, len(p.balls))
	for _, b := range p.balls {
		if b.Destroyed() {
			continue
		}
		snap.Balls = append(snap.Balls, BallView{Bounds: b.Bounds(), Angle: b.Angle, Speed: b.Speed})
	}

	active := p.levels.Active()
	snap.Bricks = make([]BrickView, 0, len(active))
	for _, b := range active {
		snap.Bricks = append(snap.Bricks, BrickView{Bounds: b.Bounds(), Row: b.Row, Col: b.Col, Hits: b.Hits()})
	}

	snap.Walls = make([]WallView, 0, len(p.walls))
	for _, w := range p.walls {
		snap.Walls = append(snap.Walls, WallView{Bounds: w.Bounds(), Side: w.Side, Lit: w.State() == WallHit})
	}

	if p.pickups != nil {
		for _, pk := range p.pickups.Pickups() {
			snap.Pickups = append(snap.Pickups, PickupView{Bounds: pk.Bounds(), Type: pk.Type})
		}
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixB := func(b core.Bounds) {
		mixF(b.X)
		mixF(b.Y)
		mixF(b.W)
		mixF(b.H)
	}

	mix(uint64(snap.Score))      //#nosec G115 -- hash computation
	mix(uint64(snap.Lives))      //#nosec G115 -- hash computation
	mix(uint64(snap.LevelIndex)) //#nosec G115 -- hash computation
	mix(uint64(snap.Countdown))  //#nosec G115 -- hash computation
	mixB(snap.Paddle)

	for _, b := range snap.Balls {
		mixB(b.Bounds)
		mixF(b.Angle)
	}
	for _, b := range snap.Bricks {
		mix(uint64(b.Row*LevelCols + b.Col)) //#nosec G115 -- hash computation
		mix(uint64(b.Hits))                  //#nosec G115 -- hash computation
	}
	for _, pk := range snap.Pickups {
		mixB(pk.Bounds)
		mix(uint64(pk.Type)) //#nosec G115 -- hash computation
	}
	return h
}
