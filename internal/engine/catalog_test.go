package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scythe/internal/engine"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := engine.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 7, c.RingSize())
	assert.Len(t, c.PlayerBoards, 7)
	assert.NotEmpty(t, c.StructureBonuses)
	assert.NotEmpty(t, c.Resolutions)
	assert.NotEmpty(t, c.Airship.Passive)
	assert.Same(t, c, engine.MustDefaultCatalog())
}

func TestCatalogFilter(t *testing.T) {
	c := engine.MustDefaultCatalog()

	factions, boards := c.Filter(false)
	assert.Len(t, factions, 5)
	assert.Len(t, boards, 5)
	for _, f := range factions {
		assert.False(t, f.ExpansionOnly, f.ID)
	}
	for _, b := range boards {
		assert.False(t, b.ExpansionOnly, b.ID)
	}

	factions, boards = c.Filter(true)
	assert.Len(t, factions, 7)
	assert.Len(t, boards, 7)

	// filtering keeps ring positions and never shrinks the ring
	assert.Equal(t, 7, c.RingSize())
	factions[0].Label = "changed"
	assert.NotEqual(t, "changed", c.Factions[0].Label)
}

func TestPlayerCountOptions(t *testing.T) {
	c := engine.MustDefaultCatalog()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.PlayerCountOptions(false))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, c.PlayerCountOptions(true))
}

func TestAggressiveAbilities(t *testing.T) {
	c := engine.MustDefaultCatalog()

	all := c.AggressiveAbilities(3)
	assert.Len(t, all, len(c.Airship.Aggressive))

	solo := c.AggressiveAbilities(1)
	assert.NotEmpty(t, solo)
	assert.Less(t, len(solo), len(all))
	for _, a := range solo {
		assert.True(t, a.SupportedByAutoma, a.Label)
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "factions: [::"},
		{"no factions", "structure_bonuses: [a]"},
		{"duplicate faction", `
factions:
  - {id: a, position: 0}
  - {id: a, position: 1}
structure_bonuses: [x]`},
		{"position outside ring", `
factions:
  - {id: a, position: 0}
  - {id: b, position: 2}
structure_bonuses: [x]`},
		{"shared position", `
factions:
  - {id: a, position: 1}
  - {id: b, position: 1}
structure_bonuses: [x]`},
		{"duplicate board", `
factions:
  - {id: a, position: 0}
player_boards:
  - {id: p}
  - {id: p}
structure_bonuses: [x]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.LoadCatalog([]byte(tt.yaml))
			require.ErrorIs(t, err, engine.ErrInvalidCatalog)
		})
	}
}
