package engine

import "fmt"

// Distance returns the number of steps between two positions on a ring of
// ringSize, going whichever way round is shorter.
func Distance(a, b, ringSize int) int {
	if ringSize <= 0 {
		panic(fmt.Sprintf("engine: ring size must be positive, got %d", ringSize))
	}
	clockwise := a - b
	if clockwise < 0 {
		clockwise = -clockwise
	}
	counterClockwise := ringSize - clockwise
	return min(clockwise, counterClockwise)
}
