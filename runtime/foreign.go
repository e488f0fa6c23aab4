package runtime

import (
	"sync"
)

// The foreign export table maps compiled module names to their export
// dicts. Generated FFI shims populate a module's dict from Go init
// functions, which sequences population before any generated code runs.
// The table itself is guarded because package inits of independent
// modules may interleave with early lookups in tests.
var foreignTable = struct {
	sync.RWMutex
	modules map[string]*Dict
}{
	modules: make(map[string]*Dict),
}

// ForeignModule returns the export dict for module, creating it on first
// use. FFI shims call this once and fill in their exports.
func ForeignModule(module string) *Dict {
	foreignTable.Lock()
	defer foreignTable.Unlock()
	d := foreignTable.modules[module]
	if d == nil {
		d = NewDict()
		foreignTable.modules[module] = d
	}
	return d
}

// Foreign looks up a single export. Checked mode faults when the module
// is unknown; a missing export follows Dict.Get semantics.
func Foreign(module, name string) Value {
	foreignTable.RLock()
	d := foreignTable.modules[module]
	foreignTable.RUnlock()
	if d == nil {
		if checksEnabled.Load() {
			fail("Foreign", "unknown module %q", module)
		}
		return Value{}
	}
	return d.Get(name)
}
