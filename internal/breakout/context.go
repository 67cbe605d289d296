// Package breakout implements the brick-breaker game: entities, the
// collision engine, the level manager and the title/play/game-over/win
// states that run on an fsm.Machine.
//
// Everything in this package runs on the goroutine that ticks the machine
// and is not safe for concurrent use.
package breakout

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
)

// State names registered on the machine.
const (
	StateTitle    = "title"
	StatePlay     = "play"
	StateGameOver = "gameover"
	StateWin      = "win"
)

// Result is the payload passed to the game-over and win states.
type Result struct {
	Score int
	Level int // 1-based level reached
}

// Outcome values recorded with a final score.
const (
	OutcomeGameOver = "gameover"
	OutcomeWin      = "win"
)

// ScoreRecorder persists final scores. Failures are logged by the caller
// and never stop the game.
type ScoreRecorder interface {
	RecordScore(pack, outcome string, r Result) error
}

// ScoreRecorderFunc adapts a function to ScoreRecorder.
type ScoreRecorderFunc func(pack, outcome string, r Result) error

// RecordScore implements ScoreRecorder.
func (f ScoreRecorderFunc) RecordScore(pack, outcome string, r Result) error {
	return f(pack, outcome, r)
}

// Context carries the systems shared by every state and entity of a game.
// It replaces any global lookup: constructors receive it explicitly.
type Context struct {
	Config config.BreakoutConfig
	Logger *log.Logger
	Audio  audio.Player
	Scores ScoreRecorder // Optional

	Pack     string  // Level pack id, used when recording scores
	PackName string  // Display name
	Levels   []Level // Levels played in order
	Seed     uint64  // Launch angle and pickup RNG seed
}

// NewContext creates a context with a quiet audio player and the default logger.
func NewContext(cfg config.BreakoutConfig, levels []Level) *Context {
	return &Context{
		Config: cfg,
		Logger: log.Default(),
		Audio:  audio.Nop{},
		Levels: levels,
	}
}

func (c *Context) log() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// cue plays a sound. A missing or failing player never reaches the caller.
func (c *Context) cue(cue audio.Cue) {
	if c.Audio == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log().Warn("audio cue failed", "cue", cue, "panic", r)
		}
	}()
	c.Audio.Play(cue)
}

// recordScore offers a final result to the score recorder, if any.
func (c *Context) recordScore(outcome string, r Result) {
	if c.Scores == nil {
		return
	}
	if err := c.Scores.RecordScore(c.Pack, outcome, r); err != nil {
		c.log().Warn("failed to record score", "pack", c.Pack, "score", r.Score, "error", err)
	}
}
