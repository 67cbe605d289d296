package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Playfield: PlayfieldConfig{
			Width:         480,
			Height:        600,
			WallThickness: 16,
		},
		Ball: BallConfig{
			Radius:   6,
			Speed:    0.3, // 300 units per second
			MaxSpeed: 0.6,
		},
		Paddle: PaddleConfig{
			Width:        80,
			Height:       12,
			EdgePct:      0.12,
			Speed:        1.2,
			BottomOffset: 48,
		},
		Gameplay: GameplayConfig{
			Lives:             3,
			Countdown:         3,
			CountdownInterval: 1000,
			WallCooldown:      300,
			BrickScorePerHit:  100,
		},
		Pickups: PickupConfig{
			Chance:          10,
			FallSpeed:       0.12,
			Size:            12,
			WeightWiden:     45,
			WeightMultiball: 40,
			WeightExtraLife: 15,
			WidenAmount:     32,
			WidenDuration:   10000,
			MultiballCount:  2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 10000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
