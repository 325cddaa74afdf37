package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/jsonbridge"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// registerJSON installs a built-in JSON class wrapping a *jsonbridge.Value
// (spec §4.9's "the engine ships a small standard library", extended here
// with a JSON bridge per A13) plus a global ParseJSON(String): JSON
// function. A JSON value's payload lives in Object.Native exactly like
// String's, just holding a *jsonbridge.Value instead of a Go string.
func (e *Engine) registerJSON() {
	class := symbols.NewClass("JSON", nil)
	id := e.types.NextClassID()
	classType := symbols.NewType(id, symbols.ObjectFlag)
	e.types.RegisterClass(classType, class)
	e.jsonClass = class

	addMethod := func(name string, proto *symbols.Prototype, body symbols.NativeCallback) {
		proto.Lock()
		f := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, name), proto)
		f.Body.Native = body
		class.AddFunction(f)
	}

	self := func(cf symbols.CallFrame) *jsonbridge.Value {
		return cf.Arg(0).(*value.Value).Deref().Object().Native.(*jsonbridge.Value)
	}

	addMethod("kind", symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		return value.NewInt(int64(self(cf).Kind())), nil
	})
	addMethod("isNull", symbols.NewPrototype(symbols.Bool, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		k := self(cf).Kind()
		return value.NewBool(k == jsonbridge.KindNull || k == jsonbridge.KindUndefined), nil
	})
	addMethod("asString", symbols.NewPrototype(e.stringClass.ID, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		return e.NewString(self(cf).StringValue()), nil
	})
	addMethod("asDouble", symbols.NewPrototype(symbols.Double, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		return value.NewDouble(self(cf).NumberValue()), nil
	})
	addMethod("asInt", symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		return value.NewInt(self(cf).Int64Value()), nil
	})
	addMethod("asBool", symbols.NewPrototype(symbols.Bool, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		return value.NewBool(self(cf).BoolValue()), nil
	})
	addMethod("length", symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		j := self(cf)
		if j.Kind() == jsonbridge.KindObject {
			return value.NewInt(int64(len(j.ObjectKeys()))), nil
		}
		return value.NewInt(int64(j.ArrayLen())), nil
	})
	addMethod("at", symbols.NewPrototype(classType, symbols.CRef(classType).WithThis(), symbols.Int), func(cf symbols.CallFrame) (any, error) {
		idx := cf.Arg(1).(*value.Value).Deref().AsInt()
		child := self(cf).ArrayGet(int(idx))
		if child == nil {
			return nil, errkind.New(errkind.RuntimeError, "JSON array index out of range")
		}
		return value.NewObject(classType, child, 0), nil
	})
	addMethod("get", symbols.NewPrototype(classType, symbols.CRef(classType).WithThis(), e.stringClass.ID), func(cf symbols.CallFrame) (any, error) {
		key := cf.Arg(1).(*value.Value).Deref().Object().Native.(string)
		child := self(cf).ObjectGet(key)
		if child == nil {
			return nil, errkind.New(errkind.RuntimeError, "JSON object has no key "+key)
		}
		return value.NewObject(classType, child, 0), nil
	})
	addMethod("toString", symbols.NewPrototype(e.stringClass.ID, symbols.CRef(classType).WithThis()), func(cf symbols.CallFrame) (any, error) {
		text, err := jsonbridge.Encode(self(cf))
		if err != nil {
			return nil, errkind.Wrap(errkind.RuntimeError, err.Error(), err)
		}
		return e.NewString(text), nil
	})

	e.global.AddClass(class)

	parseProto := symbols.NewPrototype(classType, e.stringClass.ID)
	parseProto.Lock()
	e.RegisterNativeFunction("ParseJSON", parseProto, func(cf symbols.CallFrame) (any, error) {
		text := cf.Arg(0).(*value.Value).Deref().Object().Native.(string)
		doc, err := jsonbridge.Parse(text)
		if err != nil {
			return nil, errkind.Wrap(errkind.RuntimeError, err.Error(), err)
		}
		return value.NewObject(classType, doc, 0), nil
	})
}
