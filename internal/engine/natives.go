package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/natives"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// nativeSignature names the concrete parameter/return types a
// natives.Info's untyped Go Func is bound with (spec §4.9 "the engine
// ships a small standard library"). natives.Registry itself knows nothing
// about symbols.Type or value.Value — this table is the one place that
// knowledge is added, letting internal/natives stay importable without
// this module.
type nativeSignature struct {
	params []symbols.Type
	ret    symbols.Type
}

// registerNatives binds every natives.DefaultRegistry entry this table
// describes into the global namespace as an ordinary native Function.
// Entries the table omits (because the registry grows ahead of this list)
// are simply not exposed to scripts yet.
func (e *Engine) registerNatives() {
	double := symbols.Double
	str := e.stringClass.ID

	sigs := map[string]nativeSignature{
		"Abs":        {params: []symbols.Type{double}, ret: double},
		"Sqrt":       {params: []symbols.Type{double}, ret: double},
		"Sin":        {params: []symbols.Type{double}, ret: double},
		"Cos":        {params: []symbols.Type{double}, ret: double},
		"Exp":        {params: []symbols.Type{double}, ret: double},
		"Ln":         {params: []symbols.Type{double}, ret: double},
		"Floor":      {params: []symbols.Type{double}, ret: double},
		"Ceil":       {params: []symbols.Type{double}, ret: double},
		"Round":      {params: []symbols.Type{double}, ret: double},
		"Pow":        {params: []symbols.Type{double, double}, ret: double},
		"Max":        {params: []symbols.Type{double, double}, ret: double},
		"Min":        {params: []symbols.Type{double, double}, ret: double},
		"UpperCase":  {params: []symbols.Type{str}, ret: str},
		"LowerCase":  {params: []symbols.Type{str}, ret: str},
		"Trim":       {params: []symbols.Type{str}, ret: str},
		"Length":     {params: []symbols.Type{str}, ret: symbols.Int},
		"Pos":        {params: []symbols.Type{str, str}, ret: symbols.Int},
		"IntToStr":   {params: []symbols.Type{symbols.Int}, ret: str},
		"StrToInt":   {params: []symbols.Type{str}, ret: symbols.Int},
		"FloatToStr": {params: []symbols.Type{double}, ret: str},
		"StrToFloat": {params: []symbols.Type{str}, ret: double},
		"BoolToStr":  {params: []symbols.Type{symbols.Bool}, ret: str},

		"CompareLocaleStr": {params: []symbols.Type{str, str, str}, ret: symbols.Int},
		"NormalizeString":  {params: []symbols.Type{str, str}, ret: str},
	}

	for name, sig := range sigs {
		info, ok := natives.DefaultRegistry.Lookup(name)
		if !ok {
			continue
		}
		e.RegisterNativeFunction(info.Name, symbols.NewPrototype(sig.ret, sig.params...), e.bindNative(info, sig))
	}
}

// bindNative adapts a natives.Info's plain-Go Func into a
// symbols.NativeCallback: unbox each CallFrame argument per sig.params,
// invoke the Func, box its result per sig.ret.
func (e *Engine) bindNative(info *natives.Info, sig nativeSignature) symbols.NativeCallback {
	return func(cf symbols.CallFrame) (any, error) {
		args := make([]any, cf.ArgCount())
		for i := 0; i < cf.ArgCount(); i++ {
			args[i] = e.unboxNative(cf.Arg(i).(*value.Value))
		}
		result, err := info.Fn(args)
		if err != nil {
			return nil, errkind.Wrap(errkind.RuntimeError, err.Error(), err)
		}
		return e.boxNative(sig.ret, result), nil
	}
}

// unboxNative converts a *value.Value into the plain Go representation
// internal/natives functions operate on.
func (e *Engine) unboxNative(v *value.Value) any {
	v = v.Deref()
	switch v.Kind() {
	case value.KindFundamental:
		switch v.Type.BaseType() {
		case symbols.BaseBoolean:
			return v.AsBool()
		case symbols.BaseChar:
			return v.AsChar()
		case symbols.BaseInt:
			return v.AsInt()
		case symbols.BaseFloat:
			return float64(v.AsFloat())
		case symbols.BaseDouble:
			return v.AsDouble()
		}
	case value.KindObject:
		if v.Type.BaseType() == e.stringClass.ID.BaseType() {
			if s, ok := v.Object().Native.(string); ok {
				return s
			}
		}
	}
	return nil
}

// boxNative converts a natives.Func result back into a *value.Value of
// type t.
func (e *Engine) boxNative(t symbols.Type, result any) *value.Value {
	if t.BaseType() == e.stringClass.ID.BaseType() {
		s, _ := result.(string)
		return e.NewString(s)
	}
	switch t.BaseType() {
	case symbols.BaseBoolean:
		b, _ := result.(bool)
		return value.NewBool(b)
	case symbols.BaseInt:
		switch n := result.(type) {
		case int64:
			return value.NewInt(n)
		case float64:
			return value.NewInt(int64(n))
		}
	case symbols.BaseFloat:
		f, _ := result.(float64)
		return value.NewFloat(float32(f))
	case symbols.BaseDouble:
		f, _ := result.(float64)
		return value.NewDouble(f)
	}
	return value.Void
}
