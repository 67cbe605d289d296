// Package config provides YAML-based game configuration loading and
// difficulty management for the breakout game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Ball       BallConfig       `yaml:"ball"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the playground in simulation units.
type PlayfieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

// BallConfig defines ball parameters.
type BallConfig struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`     // Units per millisecond
	MaxSpeed float64 `yaml:"max_speed"` // Cap applied after difficulty scaling
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	EdgePct      float64 `yaml:"edge_pct"`      // Inset of the travel range, fraction of playground width
	Speed        float64 `yaml:"speed"`         // Normalized value units per second
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the bottom edge to the paddle top
}

// GameplayConfig defines session rules and timings.
type GameplayConfig struct {
	Lives             int `yaml:"lives"`
	Countdown         int `yaml:"countdown"`           // Ticks before a ball launches
	CountdownInterval int `yaml:"countdown_interval"`  // Milliseconds per countdown tick
	WallCooldown      int `yaml:"wall_cooldown"`       // Milliseconds a wall stays lit after a hit
	BrickScorePerHit  int `yaml:"brick_score_per_hit"` // Brick score = hits * this
}

// CountdownStep returns the countdown interval as a duration.
func (g GameplayConfig) CountdownStep() time.Duration {
	return time.Duration(g.CountdownInterval) * time.Millisecond
}

// WallCooldownDuration returns the wall cooldown as a duration.
func (g GameplayConfig) WallCooldownDuration() time.Duration {
	return time.Duration(g.WallCooldown) * time.Millisecond
}

// PickupConfig defines power-up spawning and effects.
type PickupConfig struct {
	Chance          int     `yaml:"chance"`     // Percent chance to drop on brick destroy (0-100)
	FallSpeed       float64 `yaml:"fall_speed"` // Units per millisecond
	Size            float64 `yaml:"size"`
	WeightWiden     int     `yaml:"weight_widen"`
	WeightMultiball int     `yaml:"weight_multiball"`
	WeightExtraLife int     `yaml:"weight_extra_life"`
	WidenAmount     float64 `yaml:"widen_amount"`   // Paddle width added
	WidenDuration   int     `yaml:"widen_duration"` // Milliseconds
	MultiballCount  int     `yaml:"multiball_count"`
}

// WidenFor returns the widen effect duration.
func (p PickupConfig) WidenFor() time.Duration {
	return time.Duration(p.WidenDuration) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score or level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
}

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid breakout config")

// Validate checks that the config describes a playable game.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield must have a positive size", ErrInvalidConfig)
	case c.Playfield.WallThickness < 0 || 2*c.Playfield.WallThickness >= c.Playfield.Width:
		return fmt.Errorf("%w: wall_thickness %v does not fit the playfield", ErrInvalidConfig, c.Playfield.WallThickness)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidConfig)
	case c.Ball.Speed <= 0:
		return fmt.Errorf("%w: ball speed must be positive", ErrInvalidConfig)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle must have a positive size", ErrInvalidConfig)
	case c.Paddle.EdgePct < 0 || c.Paddle.EdgePct >= 0.5:
		return fmt.Errorf("%w: paddle edge_pct %v outside [0, 0.5)", ErrInvalidConfig, c.Paddle.EdgePct)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", ErrInvalidConfig)
	case c.Gameplay.Countdown < 0 || c.Gameplay.CountdownInterval <= 0:
		return fmt.Errorf("%w: countdown settings must be positive", ErrInvalidConfig)
	case c.Pickups.Chance < 0 || c.Pickups.Chance > 100:
		return fmt.Errorf("%w: pickup chance %d outside [0, 100]", ErrInvalidConfig, c.Pickups.Chance)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
