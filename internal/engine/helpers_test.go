package engine_test

import (
	"fmt"

	"scythe/internal/engine"
)

// scriptedSource replays fixed draws, reduced modulo n.
type scriptedSource struct {
	draws []int
	calls int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.draws[s.calls%len(s.draws)] % n
	s.calls++
	return v
}

// countingSource wraps a source and counts draws.
type countingSource struct {
	inner engine.IntSource
	calls int
}

func (s *countingSource) IntN(n int) int {
	s.calls++
	return s.inner.IntN(n)
}

func ringFactions(positions ...int) []engine.Faction {
	out := make([]engine.Faction, len(positions))
	for i, p := range positions {
		out[i] = engine.Faction{
			ID:        fmt.Sprintf("f%d", p),
			Label:     fmt.Sprintf("Faction %d", p),
			Position:  p,
			ClassName: fmt.Sprintf("faction-%d", p),
		}
	}
	return out
}

func boardsN(n int) []engine.PlayerBoard {
	out := make([]engine.PlayerBoard, n)
	for i := range out {
		out[i] = engine.PlayerBoard{ID: fmt.Sprintf("b%d", i), Label: fmt.Sprintf("Board %d", i)}
	}
	return out
}
