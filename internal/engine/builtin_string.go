package engine

import (
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// registerString installs the built-in String class (spec §4.9 "a minimal
// built-in String type"): default/copy construction, operator+ (concat),
// operator== and operator!=. A String's payload is a plain Go string held
// in its Object.Native field — value.Value has no dedicated string Kind, so
// this is the only place that representation is chosen, and every method
// below type-asserts Native back to string.
func (e *Engine) registerString() {
	class := symbols.NewClass("String", nil)
	id := e.types.NextClassID()
	classType := symbols.NewType(id, symbols.ObjectFlag)
	e.types.RegisterClass(classType, class)
	e.stringClass = class

	addMethod := func(kind symbols.FunctionKind, name symbols.Name, proto *symbols.Prototype, body symbols.NativeCallback) {
		proto.Lock()
		f := symbols.NewFunction(kind, name, proto)
		f.Body.Native = body
		class.AddFunction(f)
	}

	addMethod(symbols.KindConstructor, symbols.NewStringName(symbols.FunctionSymbolKind, "String"),
		symbols.NewPrototype(symbols.Void, symbols.Ref(classType).WithThis()),
		func(cf symbols.CallFrame) (any, error) {
			cf.Arg(0).(*value.Value).Object().Native = ""
			return nil, nil
		})

	addMethod(symbols.KindConstructor, symbols.NewStringName(symbols.FunctionSymbolKind, "String"),
		symbols.NewPrototype(symbols.Void, symbols.Ref(classType).WithThis(), symbols.CRef(classType)),
		func(cf symbols.CallFrame) (any, error) {
			other := cf.Arg(1).(*value.Value).Deref().Object().Native.(string)
			cf.Arg(0).(*value.Value).Object().Native = other
			return nil, nil
		})

	addMethod(symbols.KindOperator, symbols.NewOperatorName(symbols.AdditionOperator),
		symbols.NewPrototype(classType, symbols.CRef(classType).WithThis(), symbols.CRef(classType)),
		func(cf symbols.CallFrame) (any, error) {
			a := cf.Arg(0).(*value.Value).Deref().Object().Native.(string)
			b := cf.Arg(1).(*value.Value).Deref().Object().Native.(string)
			return value.NewObject(classType, a+b, 0), nil
		})

	addMethod(symbols.KindOperator, symbols.NewOperatorName(symbols.EqualOperator),
		symbols.NewPrototype(symbols.Bool, symbols.CRef(classType).WithThis(), symbols.CRef(classType)),
		func(cf symbols.CallFrame) (any, error) {
			a := cf.Arg(0).(*value.Value).Deref().Object().Native.(string)
			b := cf.Arg(1).(*value.Value).Deref().Object().Native.(string)
			return value.NewBool(a == b), nil
		})

	addMethod(symbols.KindOperator, symbols.NewOperatorName(symbols.InequalOperator),
		symbols.NewPrototype(symbols.Bool, symbols.CRef(classType).WithThis(), symbols.CRef(classType)),
		func(cf symbols.CallFrame) (any, error) {
			a := cf.Arg(0).(*value.Value).Deref().Object().Native.(string)
			b := cf.Arg(1).(*value.Value).Deref().Object().Native.(string)
			return value.NewBool(a != b), nil
		})

	addMethod(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "size"),
		symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()),
		func(cf symbols.CallFrame) (any, error) {
			s := cf.Arg(0).(*value.Value).Deref().Object().Native.(string)
			return value.NewInt(int64(len(s))), nil
		})

	e.global.AddClass(class)
}

// NewString constructs a built-in String value directly from a Go string,
// without going through the constructor-invocation machinery — the path a
// host uses to hand a literal into the engine (e.g. for a native function's
// argument).
func (e *Engine) NewString(s string) *value.Value {
	return value.NewObject(e.stringClass.ID, s, 0)
}
