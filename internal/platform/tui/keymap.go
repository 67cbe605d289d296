package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/input"
)

// defaultKeyHold is how long a movement key stays held after its last press
// or auto-repeat.
const defaultKeyHold = 180 * time.Millisecond

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Start      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Start, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Start},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey returns the game key for msg. Keys without a movement binding map
// to input.KeyOther.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) input.Key {
	switch {
	case key.Matches(msg, km.keys.Left):
		return input.KeyLeft
	case key.Matches(msg, km.keys.Right):
		return input.KeyRight
	default:
		return input.KeyOther
	}
}

// heldKeys emulates key releases. Terminals report presses and auto-repeats
// but never releases, so a movement key counts as held until no repeat has
// arrived for holdFor of simulated time.
type heldKeys struct {
	holdFor time.Duration
	idle    map[input.Key]time.Duration
}

func newHeldKeys(holdFor time.Duration) *heldKeys {
	if holdFor <= 0 {
		holdFor = defaultKeyHold
	}
	return &heldKeys{holdFor: holdFor, idle: make(map[input.Key]time.Duration)}
}

// press marks k held and reports whether it was newly pressed.
func (h *heldKeys) press(k input.Key) bool {
	_, held := h.idle[k]
	h.idle[k] = 0
	return !held
}

// advance ages every held key by dt and returns the keys now released,
// in key order.
func (h *heldKeys) advance(dt time.Duration) []input.Key {
	var released []input.Key
	for k, idle := range h.idle {
		idle += dt
		if idle >= h.holdFor {
			released = append(released, k)
			delete(h.idle, k)
			continue
		}
		h.idle[k] = idle
	}
	slices.Sort(released)
	return released
}

// releaseAll releases every held key, in key order.
func (h *heldKeys) releaseAll() []input.Key {
	released := make([]input.Key, 0, len(h.idle))
	for k := range h.idle {
		released = append(released, k)
	}
	clear(h.idle)
	slices.Sort(released)
	return released
}
