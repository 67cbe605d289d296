package breakout

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupWiden     PickupType = iota // Widen paddle for a while
	PickupMultiball                   // Spawn extra balls
	PickupExtraLife                   // Extra life
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupWiden:
		return 'W'
	case PickupMultiball:
		return 'M'
	case PickupExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupWiden:
		return "Widen"
	case PickupMultiball:
		return "Multi"
	case PickupExtraLife:
		return "Life"
	default:
		return "?"
	}
}

// Pickup is a falling power-up. Its transform position is its centre.
type Pickup struct {
	Type      PickupType
	Transform core.Transform
}

// Bounds returns the pickup's bounds.
func (p *Pickup) Bounds() core.Bounds {
	return p.Transform.Bounds()
}

// PickupManager spawns falling pickups from destroyed bricks and reports the
// ones the paddle catches.
type PickupManager struct {
	cfg     config.PickupConfig
	rng     *rand.Rand
	parent  *core.Transform
	pickups []*Pickup
}

// NewPickupManager creates a manager drawing from rng.
func NewPickupManager(cfg config.PickupConfig, rng *rand.Rand, parent *core.Transform) *PickupManager {
	return &PickupManager{cfg: cfg, rng: rng, parent: parent}
}

// TrySpawn rolls the spawn chance and, on success, drops a pickup centred on (x, y).
func (pm *PickupManager) TrySpawn(x, y float64) (*Pickup, bool) {
	if pm.cfg.Chance <= 0 || pm.rng.IntN(100) >= pm.cfg.Chance {
		return nil, false
	}
	typ, ok := pm.roll()
	if !ok {
		return nil, false
	}
	size := pm.cfg.Size
	p := &Pickup{
		Type: typ,
		Transform: core.Transform{
			X: x, Y: y,
			W: size, H: size,
			MinX: -size / 2, MinY: -size / 2,
			Parent: pm.parent,
		},
	}
	pm.pickups = append(pm.pickups, p)
	return p, true
}

// roll picks a type by weight.
func (pm *PickupManager) roll() (PickupType, bool) {
	weights := []struct {
		typ    PickupType
		weight int
	}{
		{PickupWiden, pm.cfg.WeightWiden},
		{PickupMultiball, pm.cfg.WeightMultiball},
		{PickupExtraLife, pm.cfg.WeightExtraLife},
	}
	total := 0
	for _, w := range weights {
		total += max(w.weight, 0)
	}
	if total == 0 {
		return 0, false
	}
	n := pm.rng.IntN(total)
	for _, w := range weights {
		if n < max(w.weight, 0) {
			return w.typ, true
		}
		n -= max(w.weight, 0)
	}
	return 0, false
}

// Update moves every pickup down by dt, removes those that fell past bottom
// and returns the types caught by the paddle, in spawn order.
func (pm *PickupManager) Update(dt time.Duration, paddle *Paddle, bottom float64) []PickupType {
	if len(pm.pickups) == 0 {
		return nil
	}
	fall := pm.cfg.FallSpeed * float64(dt) / float64(time.Millisecond)

	var caught []PickupType
	pm.pickups = slices.DeleteFunc(pm.pickups, func(p *Pickup) bool {
		p.Transform.Y += fall
		if paddle != nil && core.Overlaps(p.Bounds(), paddle.Bounds()) {
			caught = append(caught, p.Type)
			return true
		}
		return p.Bounds().Y > bottom
	})
	return caught
}

// Pickups returns the falling pickups.
func (pm *PickupManager) Pickups() []*Pickup {
	return pm.pickups
}

// Clear removes all falling pickups.
func (pm *PickupManager) Clear() {
	pm.pickups = nil
}
