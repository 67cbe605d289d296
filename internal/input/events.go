// Package input defines the device-independent input events the game reacts
// to. The platform layer translates terminal key and mouse messages into
// these events; the game never polls devices itself.
package input

// Key identifies a keyboard key relevant to the game.
type Key int

const (
	KeyOther Key = iota // Any key without a game binding
	KeyLeft             // Left arrow, A
	KeyRight            // Right arrow, D
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return "Other"
	}
}

// Event is a single input event delivered to the active game state.
type Event interface {
	inputEvent()
}

// KeyDown is sent when a key is pressed.
type KeyDown struct {
	Key Key
}

func (KeyDown) inputEvent() {}

// KeyUp is sent when a key is released.
type KeyUp struct {
	Key Key
}

func (KeyUp) inputEvent() {}

// MouseMove carries a pointer position in playground-local coordinates.
type MouseMove struct {
	X, Y float64
}

func (MouseMove) inputEvent() {}

// Click is a generic mouse click. It only triggers state transitions.
type Click struct{}

func (Click) inputEvent() {}

// IsTrigger reports whether ev is a key-down or click, the events that
// advance title and end screens.
func IsTrigger(ev Event) bool {
	switch ev.(type) {
	case KeyDown, Click:
		return true
	}
	return false
}
