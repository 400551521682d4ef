package modules

import (
	"fmt"

	"scythe/internal/engine"
)

// StructureBonus draws the structure bonus tile. It is part of every game.
type StructureBonus struct{}

func (StructureBonus) Kind() engine.GlobalKind          { return engine.GlobalStructureBonus }
func (StructureBonus) Enabled(opts engine.Options) bool { return true }

func (StructureBonus) Check(c *engine.Catalog, opts engine.Options) error {
	if len(c.StructureBonuses) == 0 {
		return fmt.Errorf("%w: no structure bonus tiles", engine.ErrInvalidCatalog)
	}
	return nil
}

func (StructureBonus) Pick(src engine.IntSource, c *engine.Catalog, opts engine.Options) engine.GlobalItem {
	return engine.GlobalItem{
		Kind:  engine.GlobalStructureBonus,
		Icon:  "🏠",
		Label: engine.Pick(src, c.StructureBonuses),
	}
}
