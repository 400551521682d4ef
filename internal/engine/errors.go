package engine

import "errors"

var (
	// ErrConfiguration reports a player count the filtered catalog cannot
	// satisfy. Nothing is drawn when it is returned.
	ErrConfiguration = errors.New("configuration error")
	// ErrDegenerateScoring reports a proximity request on fewer than two seats.
	ErrDegenerateScoring = errors.New("proximity needs at least two seats")
	// ErrInvalidCatalog reports catalog data that fails to parse or validate.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
