package modules

import (
	"fmt"

	"scythe/internal/engine"
)

// Resolution (The Wind Gambit): draws the tile that decides how the game ends.
type Resolution struct{}

func (Resolution) Kind() engine.GlobalKind { return engine.GlobalResolution }

func (Resolution) Enabled(opts engine.Options) bool {
	return opts.IncludeWindGambit
}

func (Resolution) Check(c *engine.Catalog, opts engine.Options) error {
	if len(c.Resolutions) == 0 {
		return fmt.Errorf("%w: no resolution tiles", engine.ErrInvalidCatalog)
	}
	return nil
}

func (Resolution) Pick(src engine.IntSource, c *engine.Catalog, opts engine.Options) engine.GlobalItem {
	return engine.GlobalItem{
		Kind:  engine.GlobalResolution,
		Icon:  "🏆",
		Label: engine.Pick(src, c.Resolutions),
	}
}
