package modules

import (
	"fmt"

	"scythe/internal/engine"
)

// Airship (The Wind Gambit): draws one passive and one aggressive ability.
// Solo games only draw aggressive abilities the automa can play with.
type Airship struct{}

func (Airship) Kind() engine.GlobalKind { return engine.GlobalAirship }

func (Airship) Enabled(opts engine.Options) bool {
	return opts.IncludeWindGambit
}

func (Airship) Check(c *engine.Catalog, opts engine.Options) error {
	if len(c.Airship.Passive) == 0 {
		return fmt.Errorf("%w: no passive airship abilities", engine.ErrInvalidCatalog)
	}
	if len(c.AggressiveAbilities(opts.PlayerCount)) == 0 {
		return fmt.Errorf("%w: no aggressive airship abilities for %d players", engine.ErrInvalidCatalog, opts.PlayerCount)
	}
	return nil
}

func (Airship) Pick(src engine.IntSource, c *engine.Catalog, opts engine.Options) engine.GlobalItem {
	passive := engine.Pick(src, c.Airship.Passive)
	aggressive := engine.Pick(src, c.AggressiveAbilities(opts.PlayerCount)).Label
	return engine.GlobalItem{
		Kind:  engine.GlobalAirship,
		Icon:  "🚢",
		Label: passive + " & " + aggressive,
		Parts: []string{passive, aggressive},
	}
}
