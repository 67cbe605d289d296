package breakout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Level grid dimensions and the largest hit count a cell may hold.
const (
	LevelRows = 11
	LevelCols = 9
	MaxHits   = 3
)

// Level errors.
var (
	ErrLevelSize  = errors.New("breakout: level grid has the wrong size")
	ErrHitValue   = errors.New("breakout: level cell out of range")
	ErrEmptyLevel = errors.New("breakout: level has no bricks")
	ErrNoLevel    = errors.New("breakout: no such level")
)

// Level is a brick layout. Cells holds LevelRows*LevelCols hit counts in
// row-major order (index = col + row*LevelCols); 0 is an empty cell.
type Level struct {
	ID    string
	Name  string
	Cells []int
}

// Validate checks the grid size and every cell value.
func (l Level) Validate() error {
	if len(l.Cells) != LevelRows*LevelCols {
		return fmt.Errorf("%w: level %q has %d cells, expected %d", ErrLevelSize, l.ID, len(l.Cells), LevelRows*LevelCols)
	}
	bricks := 0
	for i, v := range l.Cells {
		if v < 0 || v > MaxHits {
			return fmt.Errorf("%w: level %q cell %d (row %d, col %d) = %d", ErrHitValue, l.ID, i, i/LevelCols, i%LevelCols, v)
		}
		if v > 0 {
			bricks++
		}
	}
	if bricks == 0 {
		return fmt.Errorf("%w: level %q", ErrEmptyLevel, l.ID)
	}
	return nil
}

// Bricks counts the non-empty cells.
func (l Level) Bricks() int {
	n := 0
	for _, v := range l.Cells {
		if v > 0 {
			n++
		}
	}
	return n
}

// ParseLevel creates a level from text rows, one character per cell.
// Characters:
//
//	'.' or '0' = empty
//	'1'-'3'    = brick with that many hits
func ParseLevel(id, name string, rows []string) (Level, error) {
	if len(rows) != LevelRows {
		return Level{}, fmt.Errorf("%w: level %q has %d rows, expected %d", ErrLevelSize, id, len(rows), LevelRows)
	}

	cells := make([]int, 0, LevelRows*LevelCols)
	for r, line := range rows {
		if len(line) != LevelCols {
			return Level{}, fmt.Errorf("%w: level %q row %d has %d cells, expected %d", ErrLevelSize, id, r, len(line), LevelCols)
		}
		for c := range LevelCols {
			ch := line[c]
			switch {
			case ch == '.':
				cells = append(cells, 0)
			case ch >= '0' && ch <= '0'+MaxHits:
				cells = append(cells, int(ch-'0'))
			default:
				return Level{}, fmt.Errorf("%w: level %q row %d col %d = %q", ErrHitValue, id, r, c, ch)
			}
		}
	}

	lvl := Level{ID: id, Name: name, Cells: cells}
	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

func mustParseLevel(id, name string, rows []string) Level {
	lvl, err := ParseLevel(id, name, rows)
	if err != nil {
		panic(err)
	}
	return lvl
}

// BuiltinLevels returns the three levels of the classic pack.
func BuiltinLevels() []Level {
	return []Level{
		mustParseLevel("rows", "Rows", []string{
			".........",
			".........",
			"111111111",
			"111111111",
			"111111111",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		}),

		mustParseLevel("pyramid", "Pyramid", []string{
			"....3....",
			"...222...",
			"..22222..",
			".1111111.",
			"111111111",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		}),

		mustParseLevel("fortress", "Fortress", []string{
			"333333333",
			"3.......3",
			"3.22222.3",
			"3.21112.3",
			"3.22222.3",
			"3.......3",
			"333.3.333",
			".........",
			".........",
			".........",
			".........",
		}),
	}
}

// BrickArea returns the rectangle bricks are laid out in for a playground
// of the given size.
func BrickArea(width, height float64) core.Bounds {
	left := width * 3 / 24
	right := width * 3 / 24
	top := height * 3 / 30
	bottom := height * 16 / 30
	return core.NewBounds(left, top, width-left-right, height-top-bottom)
}

// LevelManager spawns the bricks of a level and tracks the active set.
type LevelManager struct {
	ctx        *Context
	parent     *core.Transform
	levels     []Level
	active     []*Brick
	onBrick    func(*Brick)
	onComplete func()
}

// NewLevelManager creates a manager for levels laid out inside parent.
// onBrick receives each destroyed brick after it leaves the active set, so
// the caller can score it; onComplete runs when the last brick of a level
// is destroyed.
func NewLevelManager(ctx *Context, parent *core.Transform, levels []Level, onBrick func(*Brick), onComplete func()) *LevelManager {
	return &LevelManager{
		ctx:        ctx,
		parent:     parent,
		levels:     levels,
		onBrick:    onBrick,
		onComplete: onComplete,
	}
}

// Count returns the number of levels.
func (lm *LevelManager) Count() int {
	return len(lm.levels)
}

// Level returns the level at index.
func (lm *LevelManager) Level(index int) (Level, bool) {
	if index < 0 || index >= len(lm.levels) {
		return Level{}, false
	}
	return lm.levels[index], true
}

// ValidateAll checks every level.
func (lm *LevelManager) ValidateAll() error {
	if len(lm.levels) == 0 {
		return fmt.Errorf("%w: no levels configured", ErrNoLevel)
	}
	for _, l := range lm.levels {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Spawn replaces the active bricks with the bricks of level index.
// An invalid level fails before any brick is created.
func (lm *LevelManager) Spawn(index int) error {
	lvl, ok := lm.Level(index)
	if !ok {
		return fmt.Errorf("%w: index %d of %d", ErrNoLevel, index, len(lm.levels))
	}
	if err := lvl.Validate(); err != nil {
		return err
	}

	lm.Clear()

	area := BrickArea(lm.parent.W, lm.parent.H)
	cellW := area.W / LevelCols
	cellH := area.H / LevelRows
	perHit := lm.ctx.Config.Gameplay.BrickScorePerHit

	for row := range LevelRows {
		for col := range LevelCols {
			hits := lvl.Cells[col+row*LevelCols]
			if hits == 0 {
				continue
			}
			bounds := core.NewBounds(area.X+float64(col)*cellW, area.Y+float64(row)*cellH, cellW, cellH)
			b := NewBrick(lm.ctx, lm.parent, row, col, bounds, hits, hits*perHit)
			b.OnDestroyed(lm.handleDestroyed)
			lm.active = append(lm.active, b)
		}
	}

	lm.ctx.log().Debug("level spawned", "index", index, "id", lvl.ID, "bricks", len(lm.active))
	return nil
}

// Active returns a copy of the active bricks in spawn order.
func (lm *LevelManager) Active() []*Brick {
	return slices.Clone(lm.active)
}

// Remaining returns the number of active bricks.
func (lm *LevelManager) Remaining() int {
	return len(lm.active)
}

// Clear removes every active brick without scoring it.
func (lm *LevelManager) Clear() {
	for _, b := range lm.active {
		b.Remove()
	}
	lm.active = nil
}

func (lm *LevelManager) handleDestroyed(b *Brick) {
	i := slices.Index(lm.active, b)
	if i < 0 {
		return
	}
	lm.active = slices.Delete(lm.active, i, i+1)

	if lm.onBrick != nil {
		lm.onBrick(b)
	}
	if len(lm.active) == 0 && lm.onComplete != nil {
		lm.onComplete()
	}
}
