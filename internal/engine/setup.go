package engine

import "fmt"

// Seat is an assignment ready for display.
type Seat struct {
	Assignment
	Proximity *float64 `json:"proximity,omitempty"` // rounded, set only when proximity was requested
}

// Setup is the outcome of one generation.
type Setup struct {
	Options Options      `json:"options"`
	Seats   []Seat       `json:"seats"`
	Globals []GlobalItem `json:"globals"`
}

// Result returns the seats as a SelectionResult.
func (s *Setup) Result() SelectionResult {
	out := make(SelectionResult, len(s.Seats))
	for i, seat := range s.Seats {
		out[i] = seat.Assignment
	}
	return out
}

// Generator turns Options into a full Setup.
type Generator struct {
	catalog  *Catalog
	modules  *ModuleRegistry
	assigner *Assigner
	src      IntSource
}

// NewGenerator creates a generator. A nil registry draws no global
// components; a nil source means DefaultSource.
func NewGenerator(catalog *Catalog, modules *ModuleRegistry, src IntSource) *Generator {
	if modules == nil {
		modules = NewModuleRegistry()
	}
	if src == nil {
		src = DefaultSource()
	}
	return &Generator{
		catalog:  catalog,
		modules:  modules,
		assigner: NewAssigner(src),
		src:      src,
	}
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate validates opts and draws a complete setup. On error nothing has
// been drawn.
func (g *Generator) Generate(opts Options) (*Setup, error) {
	if err := opts.Validate(g.catalog); err != nil {
		return nil, err
	}
	modules := g.modules.Enabled(opts)
	for _, m := range modules {
		if err := m.Check(g.catalog, opts); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Kind(), err)
		}
	}

	factions, boards := g.catalog.Filter(opts.IncludeInvaders)
	result, err := g.assigner.Assign(factions, boards, opts.PlayerCount)
	if err != nil {
		return nil, err
	}

	setup := &Setup{
		Options: opts,
		Seats:   make([]Seat, len(result)),
		Globals: make([]GlobalItem, 0, len(modules)),
	}
	for i, a := range result {
		setup.Seats[i] = Seat{Assignment: a}
	}

	if opts.WithProximity {
		scores, err := ScoreProximity(result, g.catalog.RingSize())
		if err != nil {
			return nil, err
		}
		for i, s := range scores {
			rounded := RoundProximity(s)
			setup.Seats[i].Proximity = &rounded
		}
	}

	for _, m := range modules {
		setup.Globals = append(setup.Globals, m.Pick(g.src, g.catalog, opts))
	}
	return setup, nil
}
