package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/input"
)

// Controls turns input events into paddle movement for one play session.
// Arrow keys set a velocity that Drag integrates every tick; mouse movement
// places the paddle directly.
type Controls struct {
	paddle *Paddle
	speed  float64 // Value units per second

	left, right bool
	last        input.Key
}

// NewControls creates controls for p moving at speed value units per second.
func NewControls(p *Paddle, speed float64) *Controls {
	return &Controls{paddle: p, speed: speed}
}

// Handle applies an input event.
func (c *Controls) Handle(ev input.Event) {
	switch ev := ev.(type) {
	case input.KeyDown:
		switch ev.Key {
		case input.KeyLeft:
			c.left = true
			c.last = ev.Key
		case input.KeyRight:
			c.right = true
			c.last = ev.Key
		}
	case input.KeyUp:
		switch ev.Key {
		case input.KeyLeft:
			c.left = false
		case input.KeyRight:
			c.right = false
		}
	case input.MouseMove:
		if v, ok := c.paddle.ValueAt(ev.X); ok {
			c.paddle.SetValue(v)
		}
	}
}

// Velocity returns -1, 0 or 1. With both keys held the last one pressed wins.
func (c *Controls) Velocity() float64 {
	switch {
	case c.left && c.right:
		if c.last == input.KeyLeft {
			return -1
		}
		return 1
	case c.left:
		return -1
	case c.right:
		return 1
	default:
		return 0
	}
}

// Drag moves the paddle by the current velocity over dt.
func (c *Controls) Drag(dt time.Duration) {
	v := c.Velocity()
	if v == 0 {
		return
	}
	c.paddle.Nudge(v * c.speed * dt.Seconds())
}

// Release forgets any held keys.
func (c *Controls) Release() {
	c.left, c.right = false, false
}
