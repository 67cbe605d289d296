// Package audio defines the sound cues the game emits and the Player that
// receives them. Device output lives in the synth subpackage.
//
// Cues are fire-and-forget: the game never waits on playback and a missing
// or broken audio device must not affect the simulation.
package audio

// Cue is a tag naming a sound effect.
type Cue string

// Cues emitted by the game.
const (
	CuePaddle         Cue = "paddle"
	CueWall           Cue = "wall"
	CueBrickDamaged   Cue = "brick-damaged"
	CueBrickDestroyed Cue = "brick-destroyed"
	CueBallLost       Cue = "ball-lost"
	CueCountdown      Cue = "countdown"
	CueLaunch         Cue = "launch"
	CueLevelClear     Cue = "level-clear"
	CueGameOver       Cue = "game-over"
	CueWin            Cue = "win"
)

// Player plays cues.
type Player interface {
	Play(c Cue)
}

// Nop is a Player that discards every cue.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(Cue)

// Play implements Player.
func (f PlayerFunc) Play(c Cue) {
	f(c)
}
