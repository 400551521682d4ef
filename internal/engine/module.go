package engine

// GlobalKind identifies a table-wide setup component.
type GlobalKind string

const (
	GlobalStructureBonus GlobalKind = "structure_bonus"
	GlobalResolution     GlobalKind = "resolution"
	GlobalAirship        GlobalKind = "airship"
)

// GlobalItem is one drawn table-wide component.
type GlobalItem struct {
	Kind  GlobalKind `json:"kind"`
	Icon  string     `json:"icon"`
	Label string     `json:"label"`
	// Parts holds the individual tiles when the item combines several
	// (airship: passive then aggressive).
	Parts []string `json:"parts,omitempty"`
}

// Module draws one table-wide component.
type Module interface {
	Kind() GlobalKind
	// Enabled reports whether the module takes part in a game with opts.
	Enabled(opts Options) bool
	// Check validates the catalog can serve opts, before anything is drawn.
	Check(c *Catalog, opts Options) error
	// Pick draws the component.
	Pick(src IntSource, c *Catalog, opts Options) GlobalItem
}

// ModuleRegistry keeps modules in registration order, which is also the
// display order.
type ModuleRegistry struct {
	modules map[GlobalKind]Module
	order   []GlobalKind
}

func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{modules: make(map[GlobalKind]Module)}
}

// Register adds m, replacing any module of the same kind in place.
func (r *ModuleRegistry) Register(m Module) {
	if _, ok := r.modules[m.Kind()]; !ok {
		r.order = append(r.order, m.Kind())
	}
	r.modules[m.Kind()] = m
}

// Enabled returns the modules that apply to opts.
func (r *ModuleRegistry) Enabled(opts Options) []Module {
	var out []Module
	for _, kind := range r.order {
		if m := r.modules[kind]; m.Enabled(opts) {
			out = append(out, m)
		}
	}
	return out
}
