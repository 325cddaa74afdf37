package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/scope"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// EvalScope builds the scope.Scope one-shot Eval calls compile against: the
// engine's persistent $eval namespace nested under the global namespace, so
// an expression can both see every declared global and bind new names that
// outlive the call (spec §4.9 "Context").
func (e *Engine) EvalScope() scope.Scope {
	return scope.NewNamespaceScope(e.eval, e.GlobalScope())
}

// Eval compiles and runs source as a single expression (spec §4.9
// "Evaluate: one-shot expression evaluation against a persistent
// variable/namespace context"). A bare assignment to a name not yet known
// in the eval context (e.g. "a = 5") causes the compiler to allocate fresh
// storage for it and report the binding through declare, so a later call
// (e.g. "a + 3") sees the same variable.
func (e *Engine) Eval(source string) (*value.Value, error) {
	if e.Compiler == nil {
		return nil, errkind.New(errkind.EvaluationError, "no compiler configured on this engine")
	}

	declare := func(name string, v *value.Value) {
		e.eval.SetVar(name, v)
	}

	expr, resultType, err := e.Compiler.CompileExpression(source, e.EvalScope(), declare)
	if err != nil {
		return nil, err
	}

	proto := symbols.NewPrototype(resultType)
	proto.Lock()
	wrapper := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "$eval"), proto)
	wrapper.Body.IR = &ir.Return{Value: expr}

	result, err := e.interp.Call(wrapper, nil)
	if err != nil {
		return nil, err
	}
	return result.Deref(), nil
}
