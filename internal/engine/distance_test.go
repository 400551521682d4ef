package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scythe/internal/engine"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b, ring int
		want       int
	}{
		{2, 8, 10, 4},
		{0, 9, 10, 1},
		{1, 3, 8, 2},
		{1, 6, 8, 3},
		{0, 0, 1, 0},
		{0, 3, 7, 3},
		{0, 4, 7, 3},
		{5, 5, 7, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.Distance(tt.a, tt.b, tt.ring),
			"Distance(%d, %d, %d)", tt.a, tt.b, tt.ring)
	}
}

func TestDistanceProperties(t *testing.T) {
	for ring := 1; ring <= 12; ring++ {
		for a := 0; a < ring; a++ {
			assert.Zero(t, engine.Distance(a, a, ring))
			for b := 0; b < ring; b++ {
				d := engine.Distance(a, b, ring)
				assert.Equal(t, d, engine.Distance(b, a, ring), "symmetry %d,%d ring %d", a, b, ring)
				assert.GreaterOrEqual(t, d, 0)
				assert.LessOrEqual(t, d, ring/2)
				if a != b {
					assert.Positive(t, d, "distinct positions %d,%d ring %d", a, b, ring)
				}
			}
		}
	}
}

func TestDistanceRejectsEmptyRing(t *testing.T) {
	require.Panics(t, func() { engine.Distance(0, 0, 0) })
}
