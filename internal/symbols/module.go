package symbols

// ModuleKind distinguishes the three built-in module variants (spec §3
// "Module").
type ModuleKind int

const (
	GroupModule ModuleKind = iota
	LegacyNativeModule
	ScriptBackedModule
)

// ModuleLoadFunc/ModuleCleanupFunc are the explicit load/cleanup callbacks
// a legacy-native module provides.
type ModuleLoadFunc func() error
type ModuleCleanupFunc func()

// Module is a named symbol-tree root that can nest submodules. Exactly one
// of the kind-specific fields is meaningful, selected by Kind (spec §3
// "Module").
type Module struct {
	name string
	Kind ModuleKind

	// GlobalNamespace backs group and legacy-native modules; script-backed
	// modules expose Script.Namespace instead.
	GlobalNamespace *Namespace

	// Script backs a script-backed module.
	Script *Script

	// Load/Cleanup back a legacy-native module.
	Load    ModuleLoadFunc
	Cleanup ModuleCleanupFunc

	Children []*Module
	parent   *Module

	loaded bool
}

// NewGroupModule creates a namespace-only container module.
func NewGroupModule(name string) *Module {
	return &Module{name: name, Kind: GroupModule, GlobalNamespace: NewNamespace(name)}
}

// NewLegacyModule creates a module backed by explicit load/cleanup
// callbacks.
func NewLegacyModule(name string, load ModuleLoadFunc, cleanup ModuleCleanupFunc) *Module {
	return &Module{name: name, Kind: LegacyNativeModule, GlobalNamespace: NewNamespace(name), Load: load, Cleanup: cleanup}
}

// NewScriptModule creates a module backed by a compiled Script.
func NewScriptModule(name string, script *Script) *Module {
	return &Module{name: name, Kind: ScriptBackedModule, Script: script}
}

func (m *Module) Name() string { return m.name }

// IsLoaded reports Module's loaded flag.
func (m *Module) IsLoaded() bool { return m.loaded }

// AddChild nests a submodule under m.
func (m *Module) AddChild(child *Module) {
	child.parent = m
	m.Children = append(m.Children, child)
}

// GetGlobalNamespace returns the namespace this module contributes symbols
// into, for either kind.
func (m *Module) GetGlobalNamespace() *Namespace {
	if m.Kind == ScriptBackedModule && m.Script != nil {
		return m.Script.Namespace
	}
	return m.GlobalNamespace
}

// LoadModule idempotently loads m and, recursively, its children (spec
// §4.9 "Modules are loaded lazily"). Circular dependencies among modules
// are not supported (spec §4.9) — this function does not attempt to detect
// them; a host that builds a cyclic module tree will recurse until a stack
// overflow, the same tradeoff the original makes.
func (m *Module) LoadModule() error {
	if m.loaded {
		return nil
	}
	switch m.Kind {
	case LegacyNativeModule:
		if m.Load != nil {
			if err := m.Load(); err != nil {
				return err
			}
		}
	case ScriptBackedModule:
		// Compilation and root-function execution are the engine facade's
		// responsibility (it owns the compiler and interpreter); by the
		// time LoadModule is called the engine has already compiled
		// m.Script and executed its entry point, so this is a no-op here
		// beyond flipping the flag. See internal/engine.Engine.LoadModule.
	case GroupModule:
		for _, child := range m.Children {
			if err := child.LoadModule(); err != nil {
				return err
			}
		}
	}
	m.loaded = true
	return nil
}

// Unload clears the loaded flag. For a legacy-native module it invokes the
// Cleanup callback first.
//
// Open Question (DESIGN.md #6): for a script-backed module, Unload does
// *not* snapshot, clear or restore globals — it is not a true inverse of
// Load. The engine keeps a script's source only until its first
// successful compile, so a later engine LoadModule of the unloaded module
// returns a ModuleLoadingError instead of recompiling it.
func (m *Module) Unload() {
	if m.Kind == LegacyNativeModule && m.Cleanup != nil {
		m.Cleanup()
	}
	m.loaded = false
}
