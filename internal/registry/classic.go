package registry

import "github.com/vovakirdan/tui-breakout/internal/breakout"

// DefaultPack is the pack played when none is chosen.
const DefaultPack = "classic"

func init() {
	Register(DefaultPack, func() Pack {
		return Pack{
			ID:     DefaultPack,
			Name:   "Classic",
			Levels: breakout.BuiltinLevels(),
		}
	})
}
