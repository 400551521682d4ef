package engine

import "math/rand/v2"

// IntSource draws uniform integers in [0, n).
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource uses the process-wide generator. It is safe for concurrent use.
func DefaultSource() IntSource {
	return globalSource{}
}

// NewSeededSource returns a reproducible source. It must not be shared
// between goroutines.
func NewSeededSource(seed uint64) IntSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](src IntSource, items []T) T {
	return items[src.IntN(len(items))]
}
