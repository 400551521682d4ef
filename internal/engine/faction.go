package engine

// Faction is a home base on the board ring.
type Faction struct {
	ID            string `json:"id" yaml:"id"`
	Label         string `json:"label" yaml:"label"`
	Position      int    `json:"position" yaml:"position"`     // index on the clockwise ring of all factions
	ClassName     string `json:"class_name" yaml:"class_name"` // styling tag
	ExpansionOnly bool   `json:"expansion_only" yaml:"expansion_only"`
}

// PlayerBoard is a player mat.
type PlayerBoard struct {
	ID            string `json:"id" yaml:"id"`
	Label         string `json:"label" yaml:"label"`
	ExpansionOnly bool   `json:"expansion_only" yaml:"expansion_only"`
}

// Assignment is one seat of a selection. Human seats carry a board, the
// automa seat never does.
type Assignment struct {
	Faction     Faction      `json:"faction"`
	PlayerBoard *PlayerBoard `json:"player_board,omitempty"`
	IsAutoma    bool         `json:"is_automa,omitempty"`
}

// SelectionResult holds human seats in draw order, then the automa if any.
type SelectionResult []Assignment

// Humans returns the seats that belong to human players.
func (r SelectionResult) Humans() []Assignment {
	out := make([]Assignment, 0, len(r))
	for _, a := range r {
		if !a.IsAutoma {
			out = append(out, a)
		}
	}
	return out
}

// Automa returns the automa seat, if present.
func (r SelectionResult) Automa() (Assignment, bool) {
	for _, a := range r {
		if a.IsAutoma {
			return a, true
		}
	}
	return Assignment{}, false
}
