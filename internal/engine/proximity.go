package engine

import (
	"fmt"
	"math"
)

// ProximityPrecision is the number of decimals proximity scores are shown at.
const ProximityPrecision = 1

// Proximity is the root-mean-square ring distance from target to every
// other seat. others is expected to contain target itself: its zero term is
// summed and the divisor is len(others)-1.
func Proximity(target Faction, others []Assignment, ringSize int) (float64, error) {
	if len(others) <= 1 {
		return 0, fmt.Errorf("%w: got %d", ErrDegenerateScoring, len(others))
	}
	sum := 0
	for _, other := range others {
		d := Distance(target.Position, other.Faction.Position, ringSize)
		sum += d * d
	}
	return math.Sqrt(float64(sum) / float64(len(others)-1)), nil
}

// ScoreProximity scores every seat of result against the whole result,
// automa included.
func ScoreProximity(result SelectionResult, ringSize int) ([]float64, error) {
	if len(result) <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateScoring, len(result))
	}
	scores := make([]float64, len(result))
	for i, a := range result {
		s, err := Proximity(a.Faction, result, ringSize)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// RoundProximity rounds a score to ProximityPrecision decimals.
func RoundProximity(v float64) float64 {
	p := math.Pow(10, ProximityPrecision)
	return math.Round(v*p) / p
}
