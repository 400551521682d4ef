package engine

import "fmt"

// Options is everything one generation depends on. Callers translate their
// UI or stored settings into it; the engine keeps no state between calls.
type Options struct {
	PlayerCount       int  `json:"player_count"`
	IncludeInvaders   bool `json:"include_invaders"`    // Invaders from Afar factions and boards
	IncludeWindGambit bool `json:"include_wind_gambit"` // resolutions and airships
	WithProximity     bool `json:"with_proximity"`
}

func DefaultOptions() Options {
	return Options{PlayerCount: 2}
}

// Validate checks the player count against the catalog filtered by o.
func (o Options) Validate(c *Catalog) error {
	factions, boards := c.Filter(o.IncludeInvaders)
	if err := checkAssignable(len(factions), len(boards), o.PlayerCount); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}
	return nil
}
