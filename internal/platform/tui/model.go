package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fsm"
	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/sched"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options configures one game session.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.BreakoutConfig
	Pack    registry.Pack
	Store   *storage.Store // Optional
	Audio   audio.Player   // Optional
	Logger  *log.Logger    // Optional
	KeyHold time.Duration  // Zero uses defaultKeyHold
}

// Model is the Bubble Tea model running one breakout machine.
type Model struct {
	ctx     *breakout.Context
	machine *fsm.Machine
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	keys    GameKeyMap
	mapper  *KeyMapper
	help    help.Model
	held    *heldKeys
	view    viewport

	state     string // Active state name after the last step
	highScore int
	quitting  bool
}

// NewModel builds the game context and machine and enters the title screen.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime.Normalize(time.Now())
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ctx := breakout.NewContext(opts.Config, opts.Pack.Levels)
	ctx.Logger = logger
	ctx.Pack = opts.Pack.ID
	ctx.PackName = opts.Pack.Name
	ctx.Seed = uint64(cfg.Seed) //#nosec G115 -- seed bits, sign is irrelevant
	if opts.Audio != nil {
		ctx.Audio = opts.Audio
	}
	if opts.Store != nil {
		ctx.Scores = opts.Store
	}

	machine := breakout.NewMachine(ctx, sched.New(logger))
	if err := machine.Start(breakout.StateTitle, nil); err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	keys := DefaultGameKeyMap()
	m := Model{
		ctx:     ctx,
		machine: machine,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   opts.Store,
		config:  cfg,
		keys:    keys,
		mapper:  NewKeyMapper(keys),
		help:    help.New(),
		held:    newHeldKeys(opts.KeyHold),
	}
	m = m.layout()
	return m.afterStep(), nil
}

// Machine returns the state machine the model drives.
func (m Model) Machine() *fsm.Machine {
	return m.machine
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.Step())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys send KeyDown only on
// the first press; auto-repeats just keep them held.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout(), nil
	}

	k := m.mapper.MapKey(msg)
	if k == input.KeyOther || m.held.press(k) {
		m.machine.Dispatch(input.KeyDown{Key: k})
	}
	return m.afterStep(), nil
}

// handleMouse moves the paddle with the pointer and turns left clicks into
// game clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.view.valid() {
			x, y := m.view.toPlayground(msg.X, msg.Y)
			m.machine.Dispatch(input.MouseMove{X: x, Y: y})
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.machine.Dispatch(input.Click{})
		}
	}
	return m.afterStep(), nil
}

// handleResize processes window resize events. The simulation runs in
// playground units and is unaffected.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m.layout(), nil
}

// handleTick releases keys whose hold expired and advances the machine by
// one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.Step()
	for _, k := range m.held.advance(dt) {
		m.machine.Dispatch(input.KeyUp{Key: k})
	}
	m.machine.Tick(dt)
	return m.afterStep(), tickCmd(m.config.Step())
}

// layout sizes the screen and viewport for the terminal minus the help rows.
func (m Model) layout() Model {
	helpRows := 1
	if m.help.ShowAll {
		helpRows = len(m.keys.FullHelp()[0])
	}
	h := max(0, m.config.ScreenH-helpRows)
	m.screen.Resize(m.config.ScreenW, h)
	pf := m.ctx.Config.Playfield
	m.view = fitViewport(pf.Width, pf.Height, m.config.ScreenW, h)
	return m
}

// afterStep reacts to state changes made by the last dispatch or tick.
func (m Model) afterStep() Model {
	name := ""
	if st := m.machine.Active(); st != nil {
		name = st.Name()
	}
	if name == m.state {
		return m
	}
	m.state = name

	switch name {
	case breakout.StateTitle:
		m.highScore = m.loadHighScore()
	case breakout.StatePlay:
		// Fresh controls know no held keys; the next repeat must press again.
		m.held.releaseAll()
	case "":
		m.ctx.Logger.Error("no active state", "error", m.machine.Err())
	}
	return m
}

func (m Model) loadHighScore() int {
	if m.store == nil {
		return m.highScore
	}
	score, err := m.store.HighScore(m.ctx.Pack)
	if err != nil {
		m.ctx.Logger.Warn("failed to load high score", "pack", m.ctx.Pack, "error", err)
		return m.highScore
	}
	return score
}

// render draws the active state into the screen buffer.
func (m Model) render() {
	if m.screen.Width() < minScreenW || m.screen.Height() < minScreenH {
		drawTooSmall(m.screen)
		return
	}
	switch st := m.machine.Active().(type) {
	case *breakout.Play:
		drawPlay(m.screen, m.view, st.Snapshot())
	case *breakout.EndScreen:
		drawEnd(m.screen, st.Name() == breakout.StateWin, st.Result(), st.Armed())
	case *breakout.Title:
		drawTitle(m.screen, m.ctx.PackName, m.highScore)
	default:
		drawError(m.screen, m.machine.Err())
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.ctx.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.ctx.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("breakout_%s_%s.txt", m.ctx.Pack, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.ctx.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.ctx.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for one local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()
	return err
}
