package frontend

import (
	"fmt"

	"github.com/strandfield/libscript/internal/conversion"
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/scope"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// expr lowers one AST expression to IR, returning the node plus its
// resolved static type. Grounded on the teacher's internal/semantic
// passes' expression-checking visitor, folded here into a single
// resolve-and-lower pass per expr.go's package-level note in compiler.go.
func (lc *lowering) expr(e Expr) (ir.Expr, symbols.Type, error) {
	switch n := e.(type) {
	case *IntLiteral:
		return lit(symbols.Int, value.NewInt(n.Value)), symbols.Int, nil
	case *FloatLiteral:
		return lit(symbols.Double, value.NewDouble(n.Value)), symbols.Double, nil
	case *BoolLiteral:
		return lit(symbols.Bool, value.NewBool(n.Value)), symbols.Bool, nil
	case *CharLiteral:
		return lit(symbols.Char, value.NewChar(n.Value)), symbols.Char, nil
	case *StringLiteral:
		return lc.stringLiteral(n.Value)
	case *Identifier:
		return lc.identifier(n.Name)
	case *UnaryExpr:
		return lc.unary(n)
	case *BinaryExpr:
		return lc.binary(n)
	case *AssignExpr:
		return lc.assign(n)
	case *LogicalExpr:
		return lc.logical(n)
	case *ConditionalExpr:
		return lc.conditional(n)
	case *CallExpr:
		return lc.call(n)
	case *MemberCallExpr:
		return lc.memberCall(n)
	case *IndexExpr:
		return lc.index(n)
	case *ArrayLiteral:
		return lc.arrayLiteral(n)
	case *MemberAccessExpr:
		return nil, symbols.Void, errkind.New(errkind.Compilation, "data member access is not supported by this front-end outside member-function bodies")
	default:
		return nil, symbols.Void, errkind.New(errkind.Compilation, fmt.Sprintf("unsupported expression %T", e))
	}
}

func lit(t symbols.Type, v *value.Value) ir.Expr {
	return &ir.Literal{ExprBase: ir.NewExprBase(t), Value: v}
}

// stringClassType looks up the built-in String class by name, the way
// every other class/template reference resolves: through scope.Lookup
// against the namespace the engine registered it into.
func (lc *lowering) stringClassType() (symbols.Type, error) {
	lookup := scope.Lookup(lc.scope, "String")
	if lookup.TypeResult.IsNull() {
		return symbols.Void, errkind.New(errkind.Compilation, "no built-in String class is registered on this engine")
	}
	return lookup.TypeResult, nil
}

func (lc *lowering) stringLiteral(s string) (ir.Expr, symbols.Type, error) {
	t, err := lc.stringClassType()
	if err != nil {
		return nil, symbols.Void, err
	}
	return lit(t, value.NewObject(t, s, 0)), t, nil
}

// identifier resolves a bare name through scope.Lookup. A local/global
// binding lowers to StackValue/FetchGlobal by index; a namespace- or
// eval-context variable (ValueResult, opaque *value.Value) lowers to a
// Literal wrapping that same pointer, per the ir.Literal-as-mutable-handle
// convention engine/eval.go already relies on so repeated Eval calls share
// state.
func (lc *lowering) identifier(name string) (ir.Expr, symbols.Type, error) {
	if idx, typ, ok := lc.findGlobal(name); ok {
		return &ir.FetchGlobal{ExprBase: ir.NewExprBase(typ), Index: idx}, typ, nil
	}

	lookup := scope.Lookup(lc.scope, name)
	switch {
	case lookup.LocalIndex >= 0:
		return &ir.StackValue{ExprBase: ir.NewExprBase(lookup.TypeResult), Offset: lookup.LocalIndex}, lookup.TypeResult, nil
	case lookup.GlobalIndex >= 0:
		return &ir.FetchGlobal{ExprBase: ir.NewExprBase(lookup.TypeResult), Index: lookup.GlobalIndex}, lookup.TypeResult, nil
	case lookup.ValueResult != nil:
		v := lookup.ValueResult.(*value.Value)
		return lit(v.Type, v), v.Type, nil
	}

	if lc.declare != nil {
		v := value.NewInt(0)
		lc.declare(name, v)
		return lit(v.Type, v), v.Type, nil
	}

	return nil, symbols.Void, errkind.New(errkind.Compilation, "unknown identifier \""+name+"\"")
}

func (lc *lowering) unary(n *UnaryExpr) (ir.Expr, symbols.Type, error) {
	operand, operandType, err := lc.expr(n.Operand)
	if err != nil {
		return nil, symbols.Void, err
	}
	f, err := lc.selectOperator(n.Op, []symbols.Type{operandType})
	if err != nil {
		return nil, symbols.Void, err
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(f.ReturnType()), Callee: f, Args: []ir.Expr{operand}}, f.ReturnType(), nil
}

func (lc *lowering) binary(n *BinaryExpr) (ir.Expr, symbols.Type, error) {
	left, leftType, err := lc.expr(n.Left)
	if err != nil {
		return nil, symbols.Void, err
	}
	right, rightType, err := lc.expr(n.Right)
	if err != nil {
		return nil, symbols.Void, err
	}
	f, err := lc.selectOperator(n.Op, []symbols.Type{leftType, rightType})
	if err != nil {
		return nil, symbols.Void, err
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(f.ReturnType()), Callee: f, Args: []ir.Expr{left, right}}, f.ReturnType(), nil
}

// assign lowers `=` and every compound-assignment operator. The left
// operand must itself lower to something usable as the mutable first
// argument the built-in assignment operators expect: a StackValue,
// FetchGlobal or the Literal-wrapped-pointer form identifier() produces
// all satisfy this since the interpreter derefs through to the same
// underlying *value.Value either way.
func (lc *lowering) assign(n *AssignExpr) (ir.Expr, symbols.Type, error) {
	left, leftType, err := lc.expr(n.Left)
	if err != nil {
		return nil, symbols.Void, err
	}
	right, rightType, err := lc.expr(n.Right)
	if err != nil {
		return nil, symbols.Void, err
	}
	f, err := lc.selectOperator(n.Op, []symbols.Type{symbols.Ref(leftType), rightType})
	if err != nil {
		return nil, symbols.Void, err
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(f.ReturnType()), Callee: f, Args: []ir.Expr{left, right}}, f.ReturnType(), nil
}

func (lc *lowering) logical(n *LogicalExpr) (ir.Expr, symbols.Type, error) {
	left, _, err := lc.expr(n.Left)
	if err != nil {
		return nil, symbols.Void, err
	}
	right, _, err := lc.expr(n.Right)
	if err != nil {
		return nil, symbols.Void, err
	}
	if n.And {
		return &ir.LogicalAnd{ExprBase: ir.NewExprBase(symbols.Bool), Left: left, Right: right}, symbols.Bool, nil
	}
	return &ir.LogicalOr{ExprBase: ir.NewExprBase(symbols.Bool), Left: left, Right: right}, symbols.Bool, nil
}

// conditional lowers `cond ? then : else`. When Then/Else are distinct
// fundamental types the result widens
// to whichever ranks higher (mirrored here via conversion.ComputeStandard
// against each candidate, the same machinery Compute uses for a single
// argument's conversion rank); a mismatch that cannot be promoted either
// way is reported as a compile error instead of silently picking Then's
// type.
func (lc *lowering) conditional(n *ConditionalExpr) (ir.Expr, symbols.Type, error) {
	cond, _, err := lc.expr(n.Cond)
	if err != nil {
		return nil, symbols.Void, err
	}
	then, thenType, err := lc.expr(n.Then)
	if err != nil {
		return nil, symbols.Void, err
	}
	els, elseType, err := lc.expr(n.Else)
	if err != nil {
		return nil, symbols.Void, err
	}

	resultType := thenType
	if thenType != elseType {
		toElse := conversion.ComputeStandard(thenType, elseType, noClasses{})
		toThen := conversion.ComputeStandard(elseType, thenType, noClasses{})
		if !toElse.IsNotConvertible() && (toThen.IsNotConvertible() || toElse.Rank() <= toThen.Rank()) {
			resultType = elseType
		} else if !toThen.IsNotConvertible() {
			resultType = thenType
		} else {
			return nil, symbols.Void, errkind.New(errkind.Compilation, "conditional expression's branches have incompatible types")
		}
		then = &ir.FundamentalConversion{ExprBase: ir.NewExprBase(resultType), Arg: then}
		els = &ir.FundamentalConversion{ExprBase: ir.NewExprBase(resultType), Arg: els}
	}

	return &ir.Conditional{ExprBase: ir.NewExprBase(resultType), Cond: cond, Then: then, Else: els}, resultType, nil
}

// noClasses is a ClassResolver with no known classes, sufficient for
// ComputeStandard's fundamental-to-fundamental promotion table; a real
// class-to-class conversion in a conditional expression is out of this
// front-end's scope (see package comment).
type noClasses struct{}

func (noClasses) GetClass(symbols.Type) *symbols.Class { return nil }

func (lc *lowering) call(n *CallExpr) (ir.Expr, symbols.Type, error) {
	name, ok := n.Callee.(*Identifier)
	if !ok {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "only calls to a named function are supported by this front-end")
	}

	args := make([]ir.Expr, len(n.Args))
	argTypes := make([]symbols.Type, len(n.Args))
	for i, a := range n.Args {
		out, typ, err := lc.expr(a)
		if err != nil {
			return nil, symbols.Void, err
		}
		args[i] = out
		argTypes[i] = typ
	}

	lookup := scope.Lookup(lc.scope, name.Name)
	f := selectOverload(lookup.Functions, argTypes)
	if f == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "no matching function named \""+name.Name+"\"")
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(f.ReturnType()), Callee: f, Args: args}, f.ReturnType(), nil
}

func (lc *lowering) memberCall(n *MemberCallExpr) (ir.Expr, symbols.Type, error) {
	recv, recvType, err := lc.expr(n.Receiver)
	if err != nil {
		return nil, symbols.Void, err
	}
	class := lc.lookupClass(recvType)
	if class == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "method call on a non-class value")
	}
	f := class.FindMethod(n.Method)
	if f == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "class has no method named \""+n.Method+"\"")
	}

	args := make([]ir.Expr, 0, len(n.Args)+1)
	args = append(args, recv)
	for _, a := range n.Args {
		out, _, err := lc.expr(a)
		if err != nil {
			return nil, symbols.Void, err
		}
		args = append(args, out)
	}

	if f.IsVirtual() {
		return &ir.VirtualCall{ExprBase: ir.NewExprBase(f.ReturnType()), Object: recv, VTableIndex: f.VTableIndex, Args: args[1:]}, f.ReturnType(), nil
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(f.ReturnType()), Callee: f, Args: args}, f.ReturnType(), nil
}

// lookupClass finds t's Class by searching the global namespace reachable
// from lc.scope; used to resolve a member call's receiver type to its
// method table. A real engine would expose its types.Registry directly to
// the compiler; this front-end instead walks the scope chain to the root
// namespace and asks it, keeping Compiler's only collaborator scope.Scope
// per the engine.Compiler interface (see engine/engine.go's doc comment).
func (lc *lowering) lookupClass(t symbols.Type) *symbols.Class {
	root := lc.scope
	for root.HasParent() {
		root = root.Parent()
	}
	return findClassByType(root.AsNamespace(), t)
}

func findClassByType(ns *symbols.Namespace, t symbols.Type) *symbols.Class {
	if ns == nil {
		return nil
	}
	base := t.WithoutConst().WithoutRef()
	for _, c := range ns.Classes {
		if c.ID.BaseType() == base.BaseType() {
			return c
		}
	}
	for _, child := range ns.Namespaces {
		if c := findClassByType(child, t); c != nil {
			return c
		}
	}
	return nil
}

func (lc *lowering) index(n *IndexExpr) (ir.Expr, symbols.Type, error) {
	recv, recvType, err := lc.expr(n.Receiver)
	if err != nil {
		return nil, symbols.Void, err
	}
	idx, _, err := lc.expr(n.Index)
	if err != nil {
		return nil, symbols.Void, err
	}
	class := lc.lookupClass(recvType)
	if class == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "subscript on a non-class value")
	}
	at := class.FindMethod("at")
	if at == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "class has no at() method to support []")
	}
	return &ir.FunctionCall{ExprBase: ir.NewExprBase(at.ReturnType()), Callee: at, Args: []ir.Expr{recv, idx}}, at.ReturnType(), nil
}

// arrayLiteral lowers `[e0, e1, ...]` to an ir.ArrayExpression over the
// first element's type, instantiating the built-in Array<T> class
// template; an empty literal has no element to infer a type from and is
// rejected, matching the teacher's own refusal to infer from zero
// elements.
func (lc *lowering) arrayLiteral(n *ArrayLiteral) (ir.Expr, symbols.Type, error) {
	if len(n.Elements) == 0 {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "cannot infer an empty array literal's element type")
	}
	elems := make([]ir.Expr, len(n.Elements))
	var elemType symbols.Type
	for i, e := range n.Elements {
		out, typ, err := lc.expr(e)
		if err != nil {
			return nil, symbols.Void, err
		}
		elems[i] = out
		if i == 0 {
			elemType = typ
		}
	}

	lookup := scope.Lookup(lc.scope, "Array")
	if lookup.ClassTemplateResult == nil {
		return nil, symbols.Void, errkind.New(errkind.Compilation, "no built-in Array<T> template is registered on this engine")
	}
	class, err := lookup.ClassTemplateResult.GetClassInstance([]symbols.TemplateArgument{symbols.TypeArg(elemType)})
	if err != nil {
		return nil, symbols.Void, err
	}
	return &ir.ArrayExpression{ExprBase: ir.NewExprBase(class.ID), ElementType: elemType, Elements: elems}, class.ID, nil
}

// selectOperator finds the best visible overload of op given argTypes,
// ranking candidates through selectOverload, which uses
// conversion.ComputeStandard with a ClassResolver that knows no classes.
// No user-defined conversion is considered, and an operand whose type is a
// class (such as String) matches no overload.
func (lc *lowering) selectOperator(op symbols.OperatorName, argTypes []symbols.Type) (*symbols.Function, error) {
	candidates := scope.LookupOperator(lc.scope, op)
	f := selectOverload(candidates, argTypes)
	if f == nil {
		return nil, errkind.New(errkind.Compilation, "no matching built-in operator for these operand types")
	}
	return f, nil
}

// selectOverload picks the candidate whose parameter types (skipping a
// leading this-parameter) best match argTypes by conversion rank. Ties
// keep the first encountered candidate (the built-ins are registered in a
// fixed order with no genuine ambiguity among them).
func selectOverload(candidates []*symbols.Function, argTypes []symbols.Type) *symbols.Function {
	var best *symbols.Function
	bestRank := conversion.NotConvertibleRank + 1

	for _, f := range candidates {
		params := f.Prototype.Parameters()
		if f.IsMemberFunction() {
			params = params[1:]
		}
		if len(params) != len(argTypes) {
			continue
		}
		worst := conversion.ExactMatch
		ok := true
		for i, pt := range params {
			sc := conversion.ComputeStandard(argTypes[i], pt, noClasses{})
			if sc.IsNotConvertible() {
				ok = false
				break
			}
			if sc.Rank() > worst {
				worst = sc.Rank()
			}
		}
		if !ok {
			continue
		}
		if worst < bestRank {
			bestRank = worst
			best = f
		}
	}
	return best
}
