package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func TestPool(t *testing.T) {
	items := []string{"a", "b", "c"}
	p := newPool(items)

	assert.Equal(t, "b", p.Pick(fixedSource(1)))
	assert.Equal(t, 3, p.Len())

	assert.Equal(t, "b", p.Draw(fixedSource(1)))
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "c", p.Draw(fixedSource(1)))
	assert.Equal(t, "a", p.Draw(fixedSource(0)))
	require.Zero(t, p.Len())

	assert.Equal(t, []string{"a", "b", "c"}, items)
}
