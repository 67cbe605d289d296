package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Display characters.
const (
	PaddleChar = '='
	BallChar   = '●'
	WallVert   = '│'
	WallHoriz  = '─'
)

// Minimum terminal size for the playfield.
const (
	minScreenW = 24
	minScreenH = 12
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// styleFor returns the lipgloss style that paints c.
func styleFor(c core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		style = style.Foreground(lipgloss.Color(code))
	}
	return style
}

// brickColors colors bricks by remaining hits.
var brickColors = map[int]core.Color{
	1: core.ColorGreen,
	2: core.ColorYellow,
	3: core.ColorRed,
}

var pickupColors = map[breakout.PickupType]core.Color{
	breakout.PickupWiden:     core.ColorBrightCyan,
	breakout.PickupMultiball: core.ColorBrightMagenta,
	breakout.PickupExtraLife: core.ColorBrightGreen,
}

// RenderScreen styles a frame for the terminal. Each run of same-colored
// cells in a row is rendered once.
func RenderScreen(s *core.Screen) string {
	styles := make(map[core.Color]lipgloss.Style)
	rows := make([]string, s.Height())
	var row, run strings.Builder
	for y := range rows {
		row.Reset()
		for x := 0; x < s.Width(); {
			color := s.At(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.At(x, y).Color == color; x++ {
				run.WriteRune(s.At(x, y).Rune)
			}
			style, ok := styles[color]
			if !ok {
				style = styleFor(color)
				styles[color] = style
			}
			row.WriteString(style.Render(run.String()))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// viewport maps playground units to screen cells. Cells are roughly twice
// as tall as they are wide, so one row covers twice the units of a column.
type viewport struct {
	offX, offY   int     // Top-left cell of the playground
	cols, rows   int     // Cells covered
	unitW, unitH float64 // Playground units per cell
}

// fitViewport scales a w×h playground into the screen area below the HUD,
// keeping its aspect ratio and centering it horizontally.
func fitViewport(w, h float64, screenW, screenH int) viewport {
	fieldH := screenH - hudRows
	if w <= 0 || h <= 0 || screenW <= 0 || fieldH <= 0 {
		return viewport{}
	}
	unitW := math.Max(w/float64(screenW), h/(2*float64(fieldH)))
	v := viewport{
		unitW: unitW,
		unitH: 2 * unitW,
		cols:  min(screenW, int(math.Ceil(w/unitW))),
		rows:  min(fieldH, int(math.Ceil(h/(2*unitW)))),
	}
	v.offX = (screenW - v.cols) / 2
	v.offY = hudRows + (fieldH-v.rows)/2
	return v
}

// valid reports whether the viewport covers any cells.
func (v viewport) valid() bool {
	return v.unitW > 0 && v.cols > 0 && v.rows > 0
}

// cell returns the screen cell containing playground point (x, y).
func (v viewport) cell(x, y float64) (int, int) {
	cx := v.offX + core.Clamp(int(math.Floor(x/v.unitW)), 0, v.cols-1)
	cy := v.offY + core.Clamp(int(math.Floor(y/v.unitH)), 0, v.rows-1)
	return cx, cy
}

// rect returns the cells covered by b, at least one cell.
func (v viewport) rect(b core.Bounds) core.Rect {
	x0, y0 := v.cell(b.X, b.Y)
	x1 := v.offX + int(math.Ceil(b.Right()/v.unitW))
	y1 := v.offY + int(math.Ceil(b.Bottom()/v.unitH))
	x1 = min(x1, v.offX+v.cols)
	y1 = min(y1, v.offY+v.rows)
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// toPlayground returns the playground point at the center of a cell.
func (v viewport) toPlayground(cx, cy int) (float64, float64) {
	return (float64(cx-v.offX) + 0.5) * v.unitW, (float64(cy-v.offY) + 0.5) * v.unitH
}

// drawTooSmall replaces the frame with a resize hint.
func drawTooSmall(s *core.Screen) {
	s.Clear()
	s.TextCentered(s.Height()/2, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorBrightYellow)
}

// drawPlay draws the HUD and the playfield of snap.
func drawPlay(s *core.Screen, v viewport, snap breakout.Snapshot) {
	s.Clear()
	drawHUD(s, snap)
	if !v.valid() {
		return
	}

	for _, w := range snap.Walls {
		glyph := WallVert
		if w.Side == breakout.WallTop {
			glyph = WallHoriz
		}
		color := core.ColorGray
		if w.Lit {
			color = core.ColorBrightYellow
		}
		s.Fill(v.rect(w.Bounds), glyph, color)
	}

	for _, b := range snap.Bricks {
		glyph := '█'
		if (b.Row+b.Col)%2 == 1 {
			glyph = '▓'
		}
		s.Fill(v.rect(b.Bounds), glyph, brickColors[b.Hits])
	}

	for _, pk := range snap.Pickups {
		x, y := v.cell(pk.Bounds.Mid())
		s.Put(x, y, pk.Type.Glyph(), pickupColors[pk.Type])
	}

	paddle := v.rect(snap.Paddle)
	paddle.H = 1
	s.Fill(paddle, PaddleChar, core.ColorBrightCyan)

	for _, b := range snap.Balls {
		x, y := v.cell(b.Bounds.Mid())
		s.Put(x, y, BallChar, core.ColorBrightWhite)
	}

	if snap.Countdown > 0 {
		text := fmt.Sprintf(" %d ", snap.Countdown)
		y := v.offY + v.rows*2/3
		x := v.offX + (v.cols-len(text))/2
		s.Text(x, y, text, core.ColorBrightYellow)
	}
}

// drawHUD draws score, lives and level on the top row.
func drawHUD(s *core.Screen, snap breakout.Snapshot) {
	score := fmt.Sprintf("Score: %d", snap.Score)
	lives := fmt.Sprintf("Lives: %d", snap.Lives)
	level := fmt.Sprintf("Level %d/%d", snap.LevelIndex+1, snap.LevelCount)
	if snap.LevelName != "" {
		level += " " + snap.LevelName
	}

	s.Text(0, 0, score, core.ColorBrightWhite)
	s.Text((s.Width()-len(lives))/2, 0, lives, core.ColorBrightRed)
	s.Text(s.Width()-len([]rune(level)), 0, level, core.ColorBrightCyan)
}

// drawTitle draws the start screen.
func drawTitle(s *core.Screen, packName string, highScore int) {
	s.Clear()
	lines := []string{"B R E A K O U T", "", packName}
	if highScore > 0 {
		lines = append(lines, fmt.Sprintf("High score: %d", highScore))
	}
	lines = append(lines, "", "Press any key or click to start")
	drawCenteredBox(s, lines)
}

// drawEnd draws the game-over or win screen.
func drawEnd(s *core.Screen, won bool, r breakout.Result, armed bool) {
	s.Clear()
	title := "GAME OVER"
	if won {
		title = "YOU WIN!"
	}
	lines := []string{title, "", fmt.Sprintf("Score: %d  |  Level: %d", r.Score, r.Level)}
	if armed {
		lines = append(lines, "", "Press any key to continue")
	}
	drawCenteredBox(s, lines)
}

// drawError shows why the game could not continue.
func drawError(s *core.Screen, err error) {
	s.Clear()
	msg := "No active state"
	if err != nil {
		msg = err.Error()
	}
	drawCenteredBox(s, []string{"ERROR", "", msg})
}

// drawCenteredBox draws lines inside a box centered on the screen.
func drawCenteredBox(s *core.Screen, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := min(width+4, s.Width())
	boxH := min(len(lines)+2, s.Height())
	box := core.NewRect((s.Width()-boxW)/2, (s.Height()-boxH)/2, boxW, boxH)

	s.Fill(box, ' ', core.ColorDefault)
	s.Frame(box, core.ColorGray)
	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightWhite
		}
		s.TextCentered(box.Y+1+i, l, color)
	}
}
