package input

import "testing"

func TestIsTrigger(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		expected bool
	}{
		{"key down", KeyDown{Key: KeyLeft}, true},
		{"other key down", KeyDown{Key: KeyOther}, true},
		{"click", Click{}, true},
		{"key up", KeyUp{Key: KeyRight}, false},
		{"mouse move", MouseMove{X: 10, Y: 20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTrigger(tc.ev); got != tc.expected {
				t.Errorf("IsTrigger(%T) = %v, expected %v", tc.ev, got, tc.expected)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	if KeyLeft.String() != "Left" || KeyRight.String() != "Right" || KeyOther.String() != "Other" {
		t.Errorf("unexpected key names: %s %s %s", KeyLeft, KeyRight, KeyOther)
	}
}
