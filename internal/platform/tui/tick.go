// Package tui runs the breakout state machine inside a Bubble Tea program.
// It owns the terminal loop: it maps keys and mouse events to game input,
// advances the machine on a fixed tick and draws snapshots as text.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the game by one step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg after step.
func tickCmd(step time.Duration) tea.Cmd {
	return tea.Tick(step, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
