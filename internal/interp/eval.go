package interp

import (
	"fmt"

	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/value"
)

// manageList is the lightweight RAII "manage" pattern (spec §4.8
// "Expression evaluation"): every fresh temporary a nested expression
// evaluation produces (a constructor call, a copy, a function-call result)
// is tracked here; once the top-level evaluation that owns this list
// returns, release destroys whichever tracked temporaries nobody claimed
// (refcount still 1) and leaves the rest (claimed via assignment,
// returned, or otherwise given an extra owner) alone.
type manageList struct {
	owner *Interpreter
	items []*value.Value
}

func (in *Interpreter) newManageList() *manageList { return &manageList{owner: in} }

func (m *manageList) track(v *value.Value) *value.Value {
	if v != nil && !v.IsNull() {
		m.items = append(m.items, v)
	}
	return v
}

// release destroys every tracked temporary still at refcount 1, except
// keep (typically the statement's overall result, already claimed by its
// caller). Errors from multiple destructors are collapsed to the first,
// matching value.Locals.Drop's policy.
func (m *manageList) release(keep *value.Value) error {
	var first error
	for _, v := range m.items {
		if v == keep || v.RefCount() != 1 {
			continue
		}
		if err := m.owner.refcount.DecrementRef(v); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (in *Interpreter) evalArgs(frame *Frame, ml *manageList, exprs []ir.Expr) ([]*value.Value, error) {
	out := make([]*value.Value, len(exprs))
	for i, e := range exprs {
		v, err := in.evalExpr(frame, ml, e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalExpr dispatches on e's concrete kind, per the expression list and
// "Key evaluators" of spec §4.8.
func (in *Interpreter) evalExpr(frame *Frame, ml *manageList, e ir.Expr) (*value.Value, error) {
	switch ex := e.(type) {
	case *ir.Literal:
		v, _ := ex.Value.(*value.Value)
		return v, nil

	case *ir.VariableAccess:
		return nil, errkind.New(errkind.RuntimeError, "variable-access must be lowered to stack-value before execution: "+ex.Name)

	case *ir.StackValue:
		return in.local(frame, ex.Offset), nil

	case *ir.MemberAccess:
		obj, err := in.evalExpr(frame, ml, ex.Object)
		if err != nil {
			return nil, err
		}
		obj = obj.Deref()
		if obj.Kind() != value.KindObject {
			return nil, errkind.New(errkind.RuntimeError, "member-access target is not an object")
		}
		members := obj.Object().Members
		if ex.Offset < 0 || ex.Offset >= len(members) {
			return nil, errkind.New(errkind.RuntimeError, "member offset out of range")
		}
		return members[ex.Offset], nil

	case *ir.FetchGlobal:
		v := in.Global(ex.Index)
		if v == nil {
			return nil, errkind.New(errkind.RuntimeError, "global index out of range")
		}
		return v, nil

	case *ir.Copy:
		arg, err := in.evalExpr(frame, ml, ex.Arg)
		if err != nil {
			return nil, err
		}
		result, err := value.Copy(arg, in.types, in)
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	case *ir.FunctionCall:
		// A callee that hands back one of its own arguments (operator=
		// returning *this, per C++ convention) must wrap it in a
		// KindReference rather than returning the lvalue's own *Value:
		// track() below treats every call result as a fresh temporary, and
		// releasing a reference is always a no-op (see
		// value.RefCountManager.DecrementRef), so the aliased storage is
		// never torn down out from under its owner.
		args, err := in.evalArgs(frame, ml, ex.Args)
		if err != nil {
			return nil, err
		}
		result, err := in.Call(ex.Callee, args)
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	case *ir.VirtualCall:
		obj, err := in.evalExpr(frame, ml, ex.Object)
		if err != nil {
			return nil, err
		}
		obj = obj.Deref()
		class := in.types.GetClass(obj.Type.WithoutConst().WithoutRef())
		if class == nil {
			return nil, errkind.New(errkind.RuntimeError, "virtual-call target has no runtime class")
		}
		if ex.VTableIndex < 0 || ex.VTableIndex >= len(class.VTable) || class.VTable[ex.VTableIndex] == nil {
			return nil, errkind.New(errkind.RuntimeError, "virtual-call vtable index out of range")
		}
		fn := class.VTable[ex.VTableIndex]
		args, err := in.evalArgs(frame, ml, ex.Args)
		if err != nil {
			return nil, err
		}
		callArgs := append([]*value.Value{obj}, args...)
		result, err := in.Call(fn, callArgs)
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	case *ir.ConstructorCall:
		args, err := in.evalArgs(frame, ml, ex.Args)
		if err != nil {
			return nil, err
		}
		result, err := in.constructWith(ex.ObjectType, ex.Constructor, args)
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	case *ir.FunctionVariableCall:
		calleeVal, err := in.evalExpr(frame, ml, ex.Callee)
		if err != nil {
			return nil, err
		}
		calleeVal = calleeVal.Deref()
		args, err := in.evalArgs(frame, ml, ex.Args)
		if err != nil {
			return nil, err
		}
		var result *value.Value
		switch calleeVal.Kind() {
		case value.KindFunction:
			result, err = in.Call(calleeVal.Function(), args)
		case value.KindLambda:
			result, err = in.CallClosure(calleeVal, args)
		default:
			return nil, errkind.New(errkind.RuntimeError, "function-variable-call target does not hold a function")
		}
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	case *ir.LambdaExpression:
		captures := make([]*value.Value, len(ex.Captures))
		for i, c := range ex.Captures {
			cv, err := in.evalExpr(frame, ml, c)
			if err != nil {
				return nil, err
			}
			copied, err := value.Copy(cv, in.types, in)
			if err != nil {
				return nil, err
			}
			captures[i] = copied
		}
		return ml.track(value.NewLambda(ex.Type(), ex.ClosureType, captures)), nil

	case *ir.CaptureAccess:
		if frame.Lambda == nil {
			return nil, errkind.New(errkind.RuntimeError, "capture-access outside a lambda body")
		}
		lam := frame.Lambda.Lambda()
		if ex.Index < 0 || ex.Index >= len(lam.Captures) {
			return nil, errkind.New(errkind.RuntimeError, "capture index out of range")
		}
		return lam.Captures[ex.Index], nil

	case *ir.ArrayExpression:
		elems, err := in.evalArgs(frame, ml, ex.Elements)
		if err != nil {
			return nil, err
		}
		arr := value.NewArray(ex.Type(), ex.ElementType)
		arr.Array().Elements = elems
		return ml.track(arr), nil

	case *ir.InitializerList:
		elems, err := in.evalArgs(frame, ml, ex.Elements)
		if err != nil {
			return nil, err
		}
		return ml.track(value.NewInitializerList(ex.Type(), elems)), nil

	case *ir.Conditional:
		cond, err := in.evalExpr(frame, ml, ex.Cond)
		if err != nil {
			return nil, err
		}
		if cond.AsBool() {
			return in.evalExpr(frame, ml, ex.Then)
		}
		return in.evalExpr(frame, ml, ex.Else)

	case *ir.LogicalAnd:
		left, err := in.evalExpr(frame, ml, ex.Left)
		if err != nil {
			return nil, err
		}
		if !left.AsBool() {
			return value.NewBool(false), nil
		}
		right, err := in.evalExpr(frame, ml, ex.Right)
		if err != nil {
			return nil, err
		}
		return value.NewBool(right.AsBool()), nil

	case *ir.LogicalOr:
		left, err := in.evalExpr(frame, ml, ex.Left)
		if err != nil {
			return nil, err
		}
		if left.AsBool() {
			return value.NewBool(true), nil
		}
		right, err := in.evalExpr(frame, ml, ex.Right)
		if err != nil {
			return nil, err
		}
		return value.NewBool(right.AsBool()), nil

	case *ir.Comma:
		if _, err := in.evalExpr(frame, ml, ex.Left); err != nil {
			return nil, err
		}
		return in.evalExpr(frame, ml, ex.Right)

	case *ir.BindExpression:
		calleeVal, err := in.evalExpr(frame, ml, ex.Callee)
		if err != nil {
			return nil, err
		}
		calleeVal = calleeVal.Deref()
		if calleeVal.Kind() != value.KindFunction {
			return nil, errkind.New(errkind.RuntimeError, "bind-expression target does not hold a function")
		}
		bound, err := in.evalArgs(frame, ml, ex.Args)
		if err != nil {
			return nil, err
		}
		return ml.track(in.bindFunction(calleeVal.Function(), bound)), nil

	case *ir.FundamentalConversion:
		arg, err := in.evalExpr(frame, ml, ex.Arg)
		if err != nil {
			return nil, err
		}
		result, err := value.Convert(arg, ex.Type(), in.types)
		if err != nil {
			return nil, err
		}
		return ml.track(result), nil

	default:
		return nil, errkind.New(errkind.RuntimeError, fmt.Sprintf("unhandled expression kind %T", e))
	}
}
