package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// installBuiltins registers the fundamental types' operators plus the
// built-in String class and Array<T>/InitializerList<T> templates (spec
// §4.9 "register built-in types ... install built-in operators ... install
// built-in Array<T>/InitializerList<T> templates"). Fundamentals
// (void/bool/char/int/float/double) already exist as symbols.Type values
// with no registration step of their own — only their operators need
// installing here.
func (e *Engine) installBuiltins() {
	e.registerArithmeticOperators()
	e.registerRelationalOperators()
	e.registerBitwiseOperators()
	e.registerUnaryOperators()
	e.registerAssignmentOperators()
	e.registerString()
	e.registerJSON()
	e.registerNatives()
	e.registerArrayTemplate()
	e.registerInitializerListTemplate()
}

var numericFundamentals = []symbols.Type{symbols.Int, symbols.Float, symbols.Double}
var orderedFundamentals = []symbols.Type{symbols.Bool, symbols.Char, symbols.Int, symbols.Float, symbols.Double}

// asFloat64 widens any fundamental to a float64 for arithmetic/relational
// comparison across the numeric table (spec §4.2's 5x5 fundamentalRank
// table gives the same promotion ladder; this mirrors it at the value
// level rather than the type-rank level).
func asFloat64(v *value.Value) float64 {
	switch v.Type.BaseType() {
	case symbols.BaseBoolean:
		if v.AsBool() {
			return 1
		}
		return 0
	case symbols.BaseChar:
		return float64(v.AsChar())
	case symbols.BaseInt:
		return float64(v.AsInt())
	case symbols.BaseFloat:
		return float64(v.AsFloat())
	case symbols.BaseDouble:
		return v.AsDouble()
	default:
		return 0
	}
}

func (e *Engine) addOperator(op symbols.OperatorName, proto *symbols.Prototype, body symbols.NativeCallback) {
	e.global.AddFunction(operatorFunction(op, proto, body))
}

// registerArithmeticOperators installs +, -, *, / over int/float/double and
// % over int (spec §4.9 "install built-in operators ... tabulated").
func (e *Engine) registerArithmeticOperators() {
	for _, t := range numericFundamentals {
		t := t
		e.addOperator(symbols.AdditionOperator, symbols.NewPrototype(t, t, t), arithNative(t, func(a, b float64) float64 { return a + b }))
		e.addOperator(symbols.SubtractionOperator, symbols.NewPrototype(t, t, t), arithNative(t, func(a, b float64) float64 { return a - b }))
		e.addOperator(symbols.MultiplicationOperator, symbols.NewPrototype(t, t, t), arithNative(t, func(a, b float64) float64 { return a * b }))
		e.addOperator(symbols.DivisionOperator, symbols.NewPrototype(t, t, t), divisionNative(t))
	}
	e.addOperator(symbols.RemainderOperator, symbols.NewPrototype(symbols.Int, symbols.Int, symbols.Int), func(cf symbols.CallFrame) (any, error) {
		a := cf.Arg(0).(*value.Value).Deref().AsInt()
		b := cf.Arg(1).(*value.Value).Deref().AsInt()
		if b == 0 {
			return nil, errkind.New(errkind.RuntimeError, "integer remainder by zero")
		}
		return value.NewInt(a % b), nil
	})
}

// fromFloat64 narrows a float64 arithmetic result back to t's concrete
// fundamental representation.
func fromFloat64(t symbols.Type, f float64) *value.Value {
	switch t.BaseType() {
	case symbols.BaseInt:
		return value.NewInt(int64(f))
	case symbols.BaseFloat:
		return value.NewFloat(float32(f))
	default:
		return value.NewDouble(f)
	}
}

func arithNative(t symbols.Type, fn func(a, b float64) float64) symbols.NativeCallback {
	return func(cf symbols.CallFrame) (any, error) {
		a := asFloat64(cf.Arg(0).(*value.Value).Deref())
		b := asFloat64(cf.Arg(1).(*value.Value).Deref())
		return fromFloat64(t, fn(a, b)), nil
	}
}

func divisionNative(t symbols.Type) symbols.NativeCallback {
	return func(cf symbols.CallFrame) (any, error) {
		a := asFloat64(cf.Arg(0).(*value.Value).Deref())
		b := asFloat64(cf.Arg(1).(*value.Value).Deref())
		if b == 0 && t.BaseType() == symbols.BaseInt {
			return nil, errkind.New(errkind.RuntimeError, "integer division by zero")
		}
		return fromFloat64(t, a/b), nil
	}
}

// registerRelationalOperators installs <, >, <=, >=, ==, != over
// bool/char/int/float/double (spec §4.9's operator table).
func (e *Engine) registerRelationalOperators() {
	for _, t := range orderedFundamentals {
		t := t
		e.addOperator(LessOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a < b }))
		e.addOperator(GreaterOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a > b }))
		e.addOperator(LessEqualOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a <= b }))
		e.addOperator(GreaterEqualOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a >= b }))
		e.addOperator(EqualOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a == b }))
		e.addOperator(InequalOp, symbols.NewPrototype(symbols.Bool, t, t), relNative(func(a, b float64) bool { return a != b }))
	}
}

// Aliases keep the operator-table construction above readable without a
// "symbols." prefix on every line.
const (
	LessOp         = symbols.LessOperator
	GreaterOp      = symbols.GreaterOperator
	LessEqualOp    = symbols.LessEqualOperator
	GreaterEqualOp = symbols.GreaterEqualOperator
	EqualOp        = symbols.EqualOperator
	InequalOp      = symbols.InequalOperator
)

func relNative(fn func(a, b float64) bool) symbols.NativeCallback {
	return func(cf symbols.CallFrame) (any, error) {
		a := asFloat64(cf.Arg(0).(*value.Value).Deref())
		b := asFloat64(cf.Arg(1).(*value.Value).Deref())
		return value.NewBool(fn(a, b)), nil
	}
}

// registerBitwiseOperators installs &, |, ^, <<, >> over int.
func (e *Engine) registerBitwiseOperators() {
	bit := func(op symbols.OperatorName, fn func(a, b int64) int64) {
		e.addOperator(op, symbols.NewPrototype(symbols.Int, symbols.Int, symbols.Int), func(cf symbols.CallFrame) (any, error) {
			a := cf.Arg(0).(*value.Value).Deref().AsInt()
			b := cf.Arg(1).(*value.Value).Deref().AsInt()
			return value.NewInt(fn(a, b)), nil
		})
	}
	bit(symbols.BitwiseAndOperator, func(a, b int64) int64 { return a & b })
	bit(symbols.BitwiseOrOperator, func(a, b int64) int64 { return a | b })
	bit(symbols.BitwiseXorOperator, func(a, b int64) int64 { return a ^ b })
	bit(symbols.LeftShiftOperator, func(a, b int64) int64 { return a << uint(b) })
	bit(symbols.RightShiftOperator, func(a, b int64) int64 { return a >> uint(b) })
}

// registerUnaryOperators installs unary +, -, !, ~.
func (e *Engine) registerUnaryOperators() {
	for _, t := range numericFundamentals {
		t := t
		e.addOperator(symbols.UnaryPlusOperator, symbols.NewPrototype(t, t), func(cf symbols.CallFrame) (any, error) {
			return cf.Arg(0).(*value.Value).Deref(), nil
		})
		e.addOperator(symbols.UnaryMinusOperator, symbols.NewPrototype(t, t), func(cf symbols.CallFrame) (any, error) {
			return fromFloat64(t, -asFloat64(cf.Arg(0).(*value.Value).Deref())), nil
		})
	}
	e.addOperator(symbols.LogicalNotOperator, symbols.NewPrototype(symbols.Bool, symbols.Bool), func(cf symbols.CallFrame) (any, error) {
		return value.NewBool(!cf.Arg(0).(*value.Value).Deref().AsBool()), nil
	})
	e.addOperator(symbols.BitwiseNotOperator, symbols.NewPrototype(symbols.Int, symbols.Int), func(cf symbols.CallFrame) (any, error) {
		return value.NewInt(^cf.Arg(0).(*value.Value).Deref().AsInt()), nil
	})
}

// registerAssignmentOperators installs operator= and every compound
// assignment operator over the fundamentals, following DESIGN.md Open
// Question 5: the native body mutates the destination in place via
// value.Assign and hands back the destination wrapped in
// value.NewReference, never the bare lvalue *Value.
func (e *Engine) registerAssignmentOperators() {
	for _, t := range []symbols.Type{symbols.Bool, symbols.Char, symbols.Int, symbols.Float, symbols.Double} {
		t := t
		e.addOperator(symbols.AssignmentOperator, symbols.NewPrototype(symbols.Ref(t), symbols.Ref(t), t), func(cf symbols.CallFrame) (any, error) {
			dest := cf.Arg(0).(*value.Value).Deref()
			src := cf.Arg(1).(*value.Value).Deref()
			if err := value.Assign(dest, src); err != nil {
				return nil, err
			}
			return value.NewReference(symbols.Ref(t), dest), nil
		})
	}

	compound := func(op symbols.OperatorName, t symbols.Type, fn func(a, b float64) float64) {
		e.addOperator(op, symbols.NewPrototype(symbols.Ref(t), symbols.Ref(t), t), func(cf symbols.CallFrame) (any, error) {
			dest := cf.Arg(0).(*value.Value).Deref()
			src := cf.Arg(1).(*value.Value).Deref()
			result := fromFloat64(t, fn(asFloat64(dest), asFloat64(src)))
			if err := value.Assign(dest, result); err != nil {
				return nil, err
			}
			return value.NewReference(symbols.Ref(t), dest), nil
		})
	}
	for _, t := range numericFundamentals {
		compound(symbols.AdditionAssignmentOperator, t, func(a, b float64) float64 { return a + b })
		compound(symbols.SubtractionAssignmentOperator, t, func(a, b float64) float64 { return a - b })
		compound(symbols.MultiplicationAssignmentOperator, t, func(a, b float64) float64 { return a * b })
		compound(symbols.DivisionAssignmentOperator, t, func(a, b float64) float64 { return a / b })
	}

	intCompound := func(op symbols.OperatorName, fn func(a, b int64) int64) {
		e.addOperator(op, symbols.NewPrototype(symbols.Ref(symbols.Int), symbols.Ref(symbols.Int), symbols.Int), func(cf symbols.CallFrame) (any, error) {
			dest := cf.Arg(0).(*value.Value).Deref()
			src := cf.Arg(1).(*value.Value).Deref().AsInt()
			result := value.NewInt(fn(dest.AsInt(), src))
			if err := value.Assign(dest, result); err != nil {
				return nil, err
			}
			return value.NewReference(symbols.Ref(symbols.Int), dest), nil
		})
	}
	intCompound(symbols.RemainderAssignmentOperator, func(a, b int64) int64 { return a % b })
	intCompound(symbols.LeftShiftAssignmentOperator, func(a, b int64) int64 { return a << uint(b) })
	intCompound(symbols.RightShiftAssignmentOperator, func(a, b int64) int64 { return a >> uint(b) })
	intCompound(symbols.BitwiseAndAssignmentOperator, func(a, b int64) int64 { return a & b })
	intCompound(symbols.BitwiseOrAssignmentOperator, func(a, b int64) int64 { return a | b })
	intCompound(symbols.BitwiseXorAssignmentOperator, func(a, b int64) int64 { return a ^ b })
}
