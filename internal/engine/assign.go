package engine

import "fmt"

// Assigner draws factions and player boards for a table without replacement.
type Assigner struct {
	src IntSource
}

// NewAssigner creates an assigner. A nil source means DefaultSource.
func NewAssigner(src IntSource) *Assigner {
	if src == nil {
		src = DefaultSource()
	}
	return &Assigner{src: src}
}

// Assign gives every player a distinct faction and a distinct board. With a
// single player an automa seat is appended, drawn from the factions left
// over. The input slices are never modified.
func (a *Assigner) Assign(factions []Faction, boards []PlayerBoard, playerCount int) (SelectionResult, error) {
	if err := checkAssignable(len(factions), len(boards), playerCount); err != nil {
		return nil, err
	}

	factionPool := newPool(factions)
	boardPool := newPool(boards)

	out := make(SelectionResult, 0, playerCount+1)
	for i := 0; i < playerCount; i++ {
		faction := factionPool.Draw(a.src)
		board := boardPool.Draw(a.src)
		out = append(out, Assignment{Faction: faction, PlayerBoard: &board})
	}

	if playerCount == 1 {
		// the automa plays one of the factions nobody took
		out = append(out, Assignment{Faction: factionPool.Pick(a.src), IsAutoma: true})
	}

	return out, nil
}

func checkAssignable(factions, boards, playerCount int) error {
	if playerCount < 1 {
		return fmt.Errorf("%w: player count must be positive, got %d", ErrConfiguration, playerCount)
	}
	if playerCount > factions || playerCount > boards {
		return fmt.Errorf("%w: insufficient catalog entries for %d players (%d factions, %d boards)",
			ErrConfiguration, playerCount, factions, boards)
	}
	if playerCount == 1 && factions < 2 {
		return fmt.Errorf("%w: no faction left for the automa", ErrConfiguration)
	}
	return nil
}
