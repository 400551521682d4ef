package engine

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// AirshipAbility is an aggressive airship tile.
type AirshipAbility struct {
	Label             string `json:"label" yaml:"label"`
	SupportedByAutoma bool   `json:"supported_by_automa" yaml:"supported_by_automa"`
}

// AirshipAbilities groups the two airship decks.
type AirshipAbilities struct {
	Passive    []string         `json:"passive" yaml:"passive"`
	Aggressive []AirshipAbility `json:"aggressive" yaml:"aggressive"`
}

// Catalog is the static reference data. It is read-only once loaded and
// safe to share between goroutines.
type Catalog struct {
	Factions         []Faction        `json:"factions" yaml:"factions"`
	PlayerBoards     []PlayerBoard    `json:"player_boards" yaml:"player_boards"`
	StructureBonuses []string         `json:"structure_bonuses" yaml:"structure_bonuses"`
	Resolutions      []string         `json:"resolutions" yaml:"resolutions"`
	Airship          AirshipAbilities `json:"airship" yaml:"airship"`
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
})

// DefaultCatalog returns the embedded base game + expansions catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// MustDefaultCatalog is like DefaultCatalog but panics on error.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks identifiers are unique and every faction sits on its own
// slot of the ring.
func (c *Catalog) Validate() error {
	if len(c.Factions) == 0 {
		return fmt.Errorf("%w: no factions", ErrInvalidCatalog)
	}
	if len(c.StructureBonuses) == 0 {
		return fmt.Errorf("%w: no structure bonuses", ErrInvalidCatalog)
	}

	ids := make(map[string]bool)
	slots := make(map[int]string)
	ring := c.RingSize()
	for _, f := range c.Factions {
		if f.ID == "" || ids[f.ID] {
			return fmt.Errorf("%w: duplicate or empty faction id %q", ErrInvalidCatalog, f.ID)
		}
		ids[f.ID] = true
		if f.Position < 0 || f.Position >= ring {
			return fmt.Errorf("%w: faction %s position %d outside ring of %d", ErrInvalidCatalog, f.ID, f.Position, ring)
		}
		if other, ok := slots[f.Position]; ok {
			return fmt.Errorf("%w: factions %s and %s share position %d", ErrInvalidCatalog, other, f.ID, f.Position)
		}
		slots[f.Position] = f.ID
	}

	ids = make(map[string]bool)
	for _, b := range c.PlayerBoards {
		if b.ID == "" || ids[b.ID] {
			return fmt.Errorf("%w: duplicate or empty player board id %q", ErrInvalidCatalog, b.ID)
		}
		ids[b.ID] = true
	}
	return nil
}

// RingSize is the number of home bases on the board. It counts every
// faction, filtered or not, because positions do not move.
func (c *Catalog) RingSize() int {
	return len(c.Factions)
}

// Filter returns fresh copies of the factions and boards available with or
// without the Invaders from Afar expansion.
func (c *Catalog) Filter(includeInvaders bool) ([]Faction, []PlayerBoard) {
	factions := make([]Faction, 0, len(c.Factions))
	for _, f := range c.Factions {
		if includeInvaders || !f.ExpansionOnly {
			factions = append(factions, f)
		}
	}
	boards := make([]PlayerBoard, 0, len(c.PlayerBoards))
	for _, b := range c.PlayerBoards {
		if includeInvaders || !b.ExpansionOnly {
			boards = append(boards, b)
		}
	}
	return factions, boards
}

// PlayerCountOptions lists the selectable player counts: one per available
// faction.
func (c *Catalog) PlayerCountOptions(includeInvaders bool) []int {
	factions, _ := c.Filter(includeInvaders)
	out := make([]int, len(factions))
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// AggressiveAbilities returns the aggressive airship tiles usable in a game
// of playerCount; solo games only keep those the automa supports.
func (c *Catalog) AggressiveAbilities(playerCount int) []AirshipAbility {
	if playerCount != 1 {
		return append([]AirshipAbility(nil), c.Airship.Aggressive...)
	}
	var out []AirshipAbility
	for _, a := range c.Airship.Aggressive {
		if a.SupportedByAutoma {
			out = append(out, a)
		}
	}
	return out
}
