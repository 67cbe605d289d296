package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Angles are in radians with y pointing down: 0 is right, π/2 is down,
// π is left and 3π/2 is straight up.

const (
	twoPi = 2 * math.Pi

	// GrazeBand is the half-width of the forbidden zone around horizontal travel.
	GrazeBand = math.Pi / 18

	// Paddle surface normals tilt across this range from left edge to right edge.
	paddleNormalMin = 1.3 * math.Pi
	paddleNormalMax = 1.7 * math.Pi
)

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// ReflectHorizontal flips the horizontal component of travel (a vertical surface).
func ReflectHorizontal(a float64) float64 {
	return math.Pi - a
}

// ReflectVertical flips the vertical component of travel (a horizontal surface).
func ReflectVertical(a float64) float64 {
	return twoPi - a
}

// ReflectAbout mirrors the direction a about a surface with the given normal
// angle using v' = v - 2(v·n)n.
func ReflectAbout(a, normal float64) float64 {
	vx, vy := math.Cos(a), math.Sin(a)
	nx, ny := math.Cos(normal), math.Sin(normal)
	d := vx*nx + vy*ny
	return math.Atan2(vy-2*d*ny, vx-2*d*nx)
}

// SanitizeAngle normalizes a and pushes it out of the near-horizontal bands
// around 0, π and 2π, snapping to the nearest edge of the band. An angle of
// exactly π snaps upward to π+GrazeBand and exactly 0 snaps to GrazeBand.
func SanitizeAngle(a float64) float64 {
	a = NormalizeAngle(a)
	switch {
	case a < GrazeBand:
		return GrazeBand
	case a > twoPi-GrazeBand:
		return twoPi - GrazeBand
	case a > math.Pi-GrazeBand && a < math.Pi:
		return math.Pi - GrazeBand
	case a >= math.Pi && a < math.Pi+GrazeBand:
		return math.Pi + GrazeBand
	}
	return a
}

// paddleNormal maps a hit position t in [0, 1] across the paddle to a
// surface normal.
func paddleNormal(t float64) float64 {
	return core.Lerp(paddleNormalMin, paddleNormalMax, core.ClampF(t, 0, 1))
}
