package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/symbols"
)

// NewScriptModule creates a script-backed module for source, not yet
// compiled (spec §3 "Module", §4.9 "Scripts compile by delegation to the
// compiler front-end"). Call LoadModule to compile and execute it.
func (e *Engine) NewScriptModule(name, path, source string) *symbols.Module {
	script := symbols.NewScript(path)
	m := symbols.NewScriptModule(name, script)
	e.scriptSources[m] = source
	return m
}

// LoadModule loads m, compiling and executing a script-backed module's
// source the first time it is reached (spec §4.9 "Modules are loaded
// lazily"). A no-op if m is already loaded.
func (e *Engine) LoadModule(m *symbols.Module) error {
	if m.IsLoaded() {
		return nil
	}
	if m.Kind == symbols.ScriptBackedModule {
		if err := e.compileAndRunScript(m); err != nil {
			return err
		}
	}
	return m.LoadModule()
}

// compileAndRunScript drives the compile-then-execute-entry-point
// contract: compile m's registered source through e.Compiler, run the
// resulting EntryPoint once through the interpreter, and read back each
// declared global from the shared global slot vector at the offset it
// landed at (spec §4.9; ir.PushGlobal appends to the interpreter's own
// global slice rather than addressing an explicit index, so the base
// offset has to be captured before the entry point runs).
func (e *Engine) compileAndRunScript(m *symbols.Module) error {
	source, ok := e.scriptSources[m]
	if !ok {
		return errkind.New(errkind.ModuleLoadingError, "no source registered for script module "+m.Name())
	}
	if e.Compiler == nil {
		return errkind.New(errkind.ModuleLoadingError, "no compiler configured on this engine")
	}
	path := m.Script.Path

	script, err := e.Compiler.CompileScript(source, path, e.GlobalScope())
	if err != nil {
		return err
	}
	m.Script = script
	if script.HasErrors() {
		text := "script " + path + " failed to compile"
		for _, msg := range script.Messages {
			if msg.Severity == symbols.SeverityError {
				text = msg.Text
				break
			}
		}
		return errkind.New(errkind.Compilation, text)
	}

	base := e.interp.GlobalCount()
	if body, _ := script.EntryPoint.(ir.Stmt); body != nil {
		proto := symbols.NewPrototype(symbols.Void)
		proto.Lock()
		wrapper := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "$entry"), proto)
		wrapper.Body.IR = body
		if _, err := e.interp.Call(wrapper, nil); err != nil {
			return err
		}
	}

	for name, idx := range script.GlobalIndex {
		script.SetGlobal(idx, e.interp.Global(base+idx))
		_ = name
	}

	script.MarkCompiled()
	delete(e.scriptSources, m)
	return nil
}
