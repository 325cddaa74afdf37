package interp

import (
	"testing"

	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// fakeTypeRegistry is the minimal TypeRegistry double these tests need,
// mirroring internal/value's fakeClasses test helper.
type fakeTypeRegistry struct {
	classes map[symbols.Type]*symbols.Class
}

func (f *fakeTypeRegistry) GetClass(t symbols.Type) *symbols.Class {
	return f.classes[t.WithoutConst().WithoutRef()]
}

func (f *fakeTypeRegistry) GetFunctionType(proto *symbols.Prototype, onCreate func(*symbols.FunctionType)) *symbols.FunctionType {
	ft := symbols.NewFunctionType(proto)
	if onCreate != nil {
		onCreate(ft)
	}
	return ft
}

func literal(t symbols.Type, v *value.Value) *ir.Literal {
	return &ir.Literal{ExprBase: ir.NewExprBase(t), Value: v}
}

func stackValue(t symbols.Type, offset int) *ir.StackValue {
	return &ir.StackValue{ExprBase: ir.NewExprBase(t), Offset: offset}
}

func nativeBinaryOp(retType symbols.Type, fn func(a, b *value.Value) *value.Value) *symbols.Function {
	proto := symbols.NewPrototype(retType, symbols.Int, symbols.Int)
	f := symbols.NewFunction(symbols.KindOperator, symbols.NewStringName(symbols.FunctionSymbolKind, "op"), proto)
	f.Body.Native = func(cf symbols.CallFrame) (any, error) {
		a := cf.Arg(0).(*value.Value)
		b := cf.Arg(1).(*value.Value)
		return fn(a, b), nil
	}
	return f
}

func TestCallNativeFunction(t *testing.T) {
	add := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() + b.AsInt())
	})

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	result, err := in.Call(add, []*value.Value{value.NewInt(2), value.NewInt(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsInt() != 5 {
		t.Fatalf("expected 5, got %d", result.AsInt())
	}
}

func TestCallRecursiveFactorial(t *testing.T) {
	less := nativeBinaryOp(symbols.Bool, func(a, b *value.Value) *value.Value {
		return value.NewBool(a.AsInt() < b.AsInt())
	})
	sub := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() - b.AsInt())
	})
	mul := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() * b.AsInt())
	})

	proto := symbols.NewPrototype(symbols.Int, symbols.Int)
	fact := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "factorial"), proto)

	n := stackValue(symbols.Int, 1)
	fact.Body.IR = &ir.If{
		Cond: &ir.FunctionCall{
			ExprBase: ir.NewExprBase(symbols.Bool),
			Callee:   less,
			Args:     []ir.Expr{n, literal(symbols.Int, value.NewInt(2))},
		},
		Then: &ir.Return{Value: literal(symbols.Int, value.NewInt(1))},
		Else: &ir.Return{Value: &ir.FunctionCall{
			ExprBase: ir.NewExprBase(symbols.Int),
			Callee:   mul,
			Args: []ir.Expr{
				n,
				&ir.FunctionCall{
					ExprBase: ir.NewExprBase(symbols.Int),
					Callee:   fact,
					Args: []ir.Expr{&ir.FunctionCall{
						ExprBase: ir.NewExprBase(symbols.Int),
						Callee:   sub,
						Args:     []ir.Expr{n, literal(symbols.Int, value.NewInt(1))},
					}},
				},
			},
		}},
	}

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	result, err := in.Call(fact, []*value.Value{value.NewInt(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsInt() != 120 {
		t.Fatalf("expected 120, got %d", result.AsInt())
	}
}

func TestWhileLoopWithAssignment(t *testing.T) {
	// Mirrors operator='s C++ convention of returning *this by reference:
	// the native callback hands back a borrowed reference to the mutated
	// lvalue, not the lvalue pointer itself, so the manage-list's release
	// of this call's "fresh temporary" result never touches dest's storage
	// (releasing a KindReference is always a no-op, per value.RefCountManager).
	assignOp := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		if err := value.Assign(a, b); err != nil {
			t.Fatalf("assign failed: %v", err)
		}
		return value.NewReference(a.Type, a)
	})
	less := nativeBinaryOp(symbols.Bool, func(a, b *value.Value) *value.Value {
		return value.NewBool(a.AsInt() < b.AsInt())
	})
	add := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() + b.AsInt())
	})

	// int sum() { int total = 0; int i = 0; while (i < 5) { total = total + i; i = total + 1; } return total; }
	proto := symbols.NewPrototype(symbols.Int)
	sumFn := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "sum"), proto)

	total := stackValue(symbols.Int, 1) // offset 1: first local after the return slot at 0
	i := stackValue(symbols.Int, 2)

	body := &ir.Compound{Statements: []ir.Stmt{
		&ir.PushValue{Expr: literal(symbols.Int, value.NewInt(0))}, // total at offset 1
		&ir.PushValue{Expr: literal(symbols.Int, value.NewInt(0))}, // i at offset 2
		&ir.While{
			Cond: &ir.FunctionCall{ExprBase: ir.NewExprBase(symbols.Bool), Callee: less, Args: []ir.Expr{i, literal(symbols.Int, value.NewInt(5))}},
			Body: &ir.Compound{Statements: []ir.Stmt{
				&ir.ExpressionStatement{Expr: &ir.FunctionCall{
					ExprBase: ir.NewExprBase(symbols.Int),
					Callee:   assignOp,
					Args:     []ir.Expr{total, &ir.FunctionCall{ExprBase: ir.NewExprBase(symbols.Int), Callee: add, Args: []ir.Expr{total, i}}},
				}},
				&ir.ExpressionStatement{Expr: &ir.FunctionCall{
					ExprBase: ir.NewExprBase(symbols.Int),
					Callee:   assignOp,
					Args:     []ir.Expr{i, &ir.FunctionCall{ExprBase: ir.NewExprBase(symbols.Int), Callee: add, Args: []ir.Expr{total, literal(symbols.Int, value.NewInt(1))}}},
				}},
			}},
		},
		&ir.Return{Value: total},
	}}
	sumFn.Body.IR = body

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	result, err := in.Call(sumFn, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// total: 0+0=0, i=1; 0+1=1, i=2; 1+2=3, i=4; 3+4=7, i=8 -> i<5 fails, return 7
	if result.AsInt() != 7 {
		t.Fatalf("expected 7, got %d", result.AsInt())
	}
}

func TestVirtualCallDispatchesToOverride(t *testing.T) {
	base := symbols.NewClass("Shape", nil)
	baseType := symbols.NewType(900, symbols.ObjectFlag)
	base.ID = baseType

	areaProto := symbols.NewPrototype(symbols.Double, baseType.WithThis())
	areaFn := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "area"), areaProto)
	areaFn.Flags.Set(symbols.Virtual)
	areaFn.Body.Native = func(symbols.CallFrame) (any, error) { return value.NewDouble(0), nil }
	base.AddFunction(areaFn)

	derived := symbols.NewClass("Circle", base)
	derivedType := symbols.NewType(901, symbols.ObjectFlag)
	derived.ID = derivedType

	circleAreaProto := symbols.NewPrototype(symbols.Double, derivedType.WithThis())
	circleArea := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "area"), circleAreaProto)
	circleArea.Flags.Set(symbols.Virtual)
	circleArea.Body.Native = func(symbols.CallFrame) (any, error) { return value.NewDouble(3.14), nil }
	derived.AddFunction(circleArea)

	if circleArea.VTableIndex != 0 {
		t.Fatalf("expected Circle.area to override Shape.area at slot 0, got %d", circleArea.VTableIndex)
	}

	obj := value.NewObject(derivedType, nil, 0)

	wrapperProto := symbols.NewPrototype(symbols.Double)
	wrapper := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "call"), wrapperProto)
	wrapper.Body.IR = &ir.Return{Value: &ir.VirtualCall{
		ExprBase:    ir.NewExprBase(symbols.Double),
		Object:      literal(derivedType, obj),
		VTableIndex: 0,
	}}

	reg := &fakeTypeRegistry{classes: map[symbols.Type]*symbols.Class{baseType: base, derivedType: derived}}
	in := New(reg, value.NewRefCountManager())
	result, err := in.Call(wrapper, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsDouble() != 3.14 {
		t.Fatalf("expected virtual dispatch to reach Circle.area (3.14), got %v", result.AsDouble())
	}
}

func TestConstructorCallThenPopValueRunsDestructor(t *testing.T) {
	class := symbols.NewClass("Resource", nil)
	classType := symbols.NewType(902, symbols.ObjectFlag)
	class.ID = classType

	ctorProto := symbols.NewPrototype(symbols.Void, classType.WithThis())
	ctor := symbols.NewFunction(symbols.KindConstructor, symbols.NewStringName(symbols.ConstructorSymbolKind, "Resource"), ctorProto)
	ctor.Body.Native = func(symbols.CallFrame) (any, error) { return nil, nil }
	class.AddFunction(ctor)

	rc := value.NewRefCountManager()
	var destroyed *value.Value
	rc.SetDestructorCallback(func(v *value.Value) error {
		destroyed = v
		return nil
	})

	reg := &fakeTypeRegistry{classes: map[symbols.Type]*symbols.Class{classType: class}}
	in := New(reg, rc)

	proto := symbols.NewPrototype(symbols.Void)
	fn := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "scope"), proto)
	fn.Body.IR = &ir.Compound{Statements: []ir.Stmt{
		&ir.Construction{ObjectType: classType, StackOffset: 1, Constructor: ctor},
		&ir.PopValue{},
	}}

	if _, err := in.Call(fn, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if destroyed == nil {
		t.Fatalf("expected the constructed Resource to be destroyed by pop-value")
	}
}

func TestBindExpressionPartiallyApplies(t *testing.T) {
	add := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() + b.AsInt())
	})

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	frame := &Frame{}
	ml := in.newManageList()

	bound, err := in.evalExpr(frame, ml, &ir.BindExpression{
		ExprBase: ir.NewExprBase(symbols.Int),
		Callee:   literal(symbols.Int, value.NewFunctionValue(symbols.Int, add)),
		Args:     []ir.Expr{literal(symbols.Int, value.NewInt(10))},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := in.Call(bound.Function(), []*value.Value{value.NewInt(5)})
	if err != nil {
		t.Fatalf("unexpected error calling bound function: %v", err)
	}
	if result.AsInt() != 15 {
		t.Fatalf("expected 15, got %d", result.AsInt())
	}
}

func TestClosureCallReadsCapture(t *testing.T) {
	add := nativeBinaryOp(symbols.Int, func(a, b *value.Value) *value.Value {
		return value.NewInt(a.AsInt() + b.AsInt())
	})

	proto := symbols.NewPrototype(symbols.Int, symbols.Int)
	operatorCall := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "operator()"), proto)
	operatorCall.Body.IR = &ir.Return{Value: &ir.FunctionCall{
		ExprBase: ir.NewExprBase(symbols.Int),
		Callee:   add,
		Args: []ir.Expr{
			&ir.CaptureAccess{ExprBase: ir.NewExprBase(symbols.Int), Index: 0},
			stackValue(symbols.Int, 1),
		},
	}}

	closureType := symbols.NewClosureType(proto, symbols.Capture{Type: symbols.Int, Name: "x"})
	closureType.FunctionObject = operatorCall

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	lam := value.NewLambda(symbols.Int, closureType, []*value.Value{value.NewInt(7)})

	result, err := in.CallClosure(lam, []*value.Value{value.NewInt(5)})
	if err != nil {
		t.Fatalf("CallClosure: unexpected error: %v", err)
	}
	if result.AsInt() != 12 {
		t.Fatalf("expected 12, got %d", result.AsInt())
	}

	// Same path through FunctionVariableCall, the route a compiled
	// expression statement actually takes when calling a lambda value.
	frame := &Frame{}
	ml := in.newManageList()
	callResult, err := in.evalExpr(frame, ml, &ir.FunctionVariableCall{
		ExprBase: ir.NewExprBase(symbols.Int),
		Callee:   literal(symbols.Int, lam),
		Args:     []ir.Expr{literal(symbols.Int, value.NewInt(10))},
	})
	if err != nil {
		t.Fatalf("FunctionVariableCall: unexpected error: %v", err)
	}
	if callResult.AsInt() != 17 {
		t.Fatalf("expected 17, got %d", callResult.AsInt())
	}
}

func TestCallStackOverflow(t *testing.T) {
	proto := symbols.NewPrototype(symbols.Void)
	fn := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "loop"), proto)
	fn.Body.IR = &ir.ExpressionStatement{Expr: &ir.FunctionCall{ExprBase: ir.NewExprBase(symbols.Void), Callee: fn}}

	in := New(&fakeTypeRegistry{}, value.NewRefCountManager())
	in.SetCallStackDepth(8)

	if _, err := in.Call(fn, nil); err == nil {
		t.Fatalf("expected a call-stack overflow error")
	}
}
