package breakout

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// sameAngle compares angles modulo 2π.
func sameAngle(a, b float64) bool {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return d < eps || math.Abs(d-twoPi) < eps
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{twoPi, 0},
		{-math.Pi / 2, 1.5 * math.Pi},
		{5 * math.Pi, math.Pi},
		{-4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !near(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestReflectionIsItsOwnInverse(t *testing.T) {
	for i := range 72 {
		a := float64(i) * twoPi / 72
		if got := ReflectHorizontal(ReflectHorizontal(a)); !sameAngle(got, a) {
			t.Errorf("ReflectHorizontal twice(%v) = %v", a, got)
		}
		if got := ReflectVertical(ReflectVertical(a)); !sameAngle(got, a) {
			t.Errorf("ReflectVertical twice(%v) = %v", a, got)
		}
		n := 1.3*math.Pi + float64(i%5)*0.1*math.Pi
		if got := ReflectAbout(ReflectAbout(a, n), n); !sameAngle(got, a) {
			t.Errorf("ReflectAbout twice(%v, %v) = %v", a, n, got)
		}
	}
}

func TestReflectAboutUpwardNormalMatchesVerticalFlip(t *testing.T) {
	for _, a := range []float64{0.3, math.Pi / 2, 2.5, 4.0, 5.5} {
		want := ReflectVertical(a)
		if got := ReflectAbout(a, 1.5*math.Pi); !sameAngle(got, want) {
			t.Errorf("ReflectAbout(%v, 3π/2) = %v, expected %v", a, got, want)
		}
	}
}

func TestSanitizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in, want float64
	}{
		{"zero", 0, GrazeBand},
		{"just above zero", 0.01, GrazeBand},
		{"just below 2π", twoPi - 0.01, twoPi - GrazeBand},
		{"just below π", math.Pi - 0.01, math.Pi - GrazeBand},
		{"exactly π", math.Pi, math.Pi + GrazeBand},
		{"just above π", math.Pi + 0.01, math.Pi + GrazeBand},
		{"straight down", math.Pi / 2, math.Pi / 2},
		{"straight up", 1.5 * math.Pi, 1.5 * math.Pi},
		{"band edge", GrazeBand, GrazeBand},
		{"negative", -0.01, twoPi - GrazeBand},
		{"wrapped", twoPi + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeAngle(tt.in); !near(got, tt.want) {
				t.Errorf("SanitizeAngle(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeAngleLeavesNoGrazingAngles(t *testing.T) {
	for i := range 3600 {
		a := SanitizeAngle(float64(i) * twoPi / 3600)
		if a < 0 || a >= twoPi {
			t.Fatalf("SanitizeAngle gave %v outside [0, 2π)", a)
		}
		for _, center := range []float64{0, math.Pi, twoPi} {
			if d := math.Abs(a - center); d < GrazeBand-eps {
				t.Fatalf("SanitizeAngle gave %v, within %v of %v", a, d, center)
			}
		}
	}
}

func TestPaddleNormalRange(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 1.3 * math.Pi},
		{0.5, 1.5 * math.Pi},
		{1, 1.7 * math.Pi},
		{-1, 1.3 * math.Pi},
		{2, 1.7 * math.Pi},
	}
	for _, tt := range tests {
		if got := paddleNormal(tt.t); !near(got, tt.want) {
			t.Errorf("paddleNormal(%v) = %v, expected %v", tt.t, got, tt.want)
		}
	}
}
