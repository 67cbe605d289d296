package config

// Progression types.
const (
	ProgressNone  = "none"
	ProgressScore = "score"
	ProgressLevel = "level"
)

// active reports whether difficulty grows during play.
func (d DifficultyConfig) active() bool {
	return d.Enabled && (d.Progression.Type == ProgressScore || d.Progression.Type == ProgressLevel)
}

// progress returns how far play has come toward max_at, in [0, 1].
func (d DifficultyConfig) progress(score, levelIndex int) float64 {
	reached := score
	if d.Progression.Type == ProgressLevel {
		reached = levelIndex
	}
	return min(max(float64(reached)/float64(max(d.Progression.MaxAt, 1)), 0), 1)
}

// Level returns the difficulty in [0, 1] after reaching score on the
// 0-based level levelIndex. It starts at initial_level and rises linearly
// to 1 at max_at.
func (d DifficultyConfig) Level(score, levelIndex int) float64 {
	start := min(max(d.InitialLevel, 0), 1)
	if !d.active() {
		return start
	}
	return start + d.progress(score, levelIndex)*(1-start)
}

// BallSpeed scales a launch speed by the current difficulty, up to
// base*(1+speed_multiplier) at full difficulty.
func (d DifficultyConfig) BallSpeed(base float64, score, levelIndex int) float64 {
	return base * (1 + d.Level(score, levelIndex)*d.Scaling.SpeedMultiplier)
}
