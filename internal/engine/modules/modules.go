// Package modules holds the table-wide setup components drawn next to the
// faction assignment.
package modules

import "scythe/internal/engine"

// Default returns a registry with every module, in display order.
func Default() *engine.ModuleRegistry {
	r := engine.NewModuleRegistry()
	r.Register(StructureBonus{})
	r.Register(Resolution{})
	r.Register(Airship{})
	return r
}
