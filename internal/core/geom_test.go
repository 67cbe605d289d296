package core

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Bounds
		expected bool
	}{
		{
			name:     "overlapping",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching horizontal (inclusive)",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(10, 0, 10, 10),
			expected: true,
		},
		{
			name:     "touching vertical (inclusive)",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(0, 10, 10, 10),
			expected: true,
		},
		{
			name:     "touching corner",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(10, 10, 5, 5),
			expected: true,
		},
		{
			name:     "contained",
			a:        NewBounds(0, 0, 20, 20),
			b:        NewBounds(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "just apart",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(10.001, 0, 10, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Overlaps(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			resultReverse := Overlaps(tc.b, tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Bounds
		want   Bounds
		wantOK bool
	}{
		{
			name:   "partial overlap",
			a:      NewBounds(0, 0, 10, 10),
			b:      NewBounds(6, 8, 10, 10),
			want:   NewBounds(6, 8, 4, 2),
			wantOK: true,
		},
		{
			name:   "contained",
			a:      NewBounds(0, 0, 20, 20),
			b:      NewBounds(5, 5, 4, 3),
			want:   NewBounds(5, 5, 4, 3),
			wantOK: true,
		},
		{
			name:   "touching edge gives zero width",
			a:      NewBounds(0, 0, 10, 10),
			b:      NewBounds(10, 2, 5, 5),
			want:   NewBounds(10, 2, 0, 5),
			wantOK: true,
		},
		{
			name:   "disjoint",
			a:      NewBounds(0, 0, 10, 10),
			b:      NewBounds(20, 20, 5, 5),
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Intersect(tc.a, tc.b)
			if ok != tc.wantOK {
				t.Fatalf("Intersect() ok = %v, expected %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.want)
			}
			rev, _ := Intersect(tc.b, tc.a)
			if ok && rev != got {
				t.Errorf("Intersect() is not symmetric: %+v vs %+v", got, rev)
			}
		})
	}
}

func TestBoundsMid(t *testing.T) {
	b := NewBounds(5, 10, 20, 15)

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", b.Bottom())
	}

	mx, my := b.Mid()
	if mx != 15 || my != 17.5 {
		t.Errorf("Mid() = (%v, %v), expected (15, 17.5)", mx, my)
	}
}

func TestNewBoundsClampsNegativeSize(t *testing.T) {
	b := NewBounds(0, 0, -3, -1)
	if b.W != 0 || b.H != 0 {
		t.Errorf("NewBounds(-3, -1) size = (%v, %v), expected (0, 0)", b.W, b.H)
	}
}

func TestTransformBounds(t *testing.T) {
	parent := &Transform{X: 100, Y: 50, W: 400, H: 300}
	ball := &Transform{X: 20, Y: 30, W: 8, H: 8, MinX: -4, MinY: -4, Parent: parent}

	got := ball.Bounds()
	want := NewBounds(16, 26, 8, 8)
	if got != want {
		t.Errorf("Bounds() = %+v, expected %+v", got, want)
	}

	at := ball.BoundsAt(0, 0)
	if at != NewBounds(-4, -4, 8, 8) {
		t.Errorf("BoundsAt(0, 0) = %+v", at)
	}

	wx, wy := ball.World()
	if wx != 120 || wy != 80 {
		t.Errorf("World() = (%v, %v), expected (120, 80)", wx, wy)
	}

	if w, ok := ball.ParentWidth(); !ok || w != 400 {
		t.Errorf("ParentWidth() = (%v, %v), expected (400, true)", w, ok)
	}
	if _, ok := parent.ParentWidth(); ok {
		t.Error("ParentWidth() on a root transform should report false")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-5, 0, 1, 0},
		{2, 0, 1, 1},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %v, expected 15", got)
	}
	if got := Lerp(10, 20, 0); got != 10 {
		t.Errorf("Lerp(10, 20, 0) = %v, expected 10", got)
	}
	if got := Lerp(10, 20, 1); got != 20 {
		t.Errorf("Lerp(10, 20, 1) = %v, expected 20", got)
	}
}
