package engine

import (
	"strconv"
	"strings"
	"testing"

	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/scope"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return e
}

func findOperator(ops []*symbols.Function, op symbols.OperatorName, arity int) *symbols.Function {
	for _, f := range ops {
		if f.Name.Op == op && f.Prototype.Count() == arity {
			return f
		}
	}
	return nil
}

func TestNewInstallsBuiltins(t *testing.T) {
	e := newTestEngine(t)

	if e.stringClass == nil {
		t.Fatalf("expected the built-in String class to be registered")
	}
	if e.jsonClass == nil {
		t.Fatalf("expected the built-in JSON class to be registered")
	}
	if e.arrayTemplate == nil || e.initListTemplate == nil {
		t.Fatalf("expected Array<T>/InitializerList<T> templates to be registered")
	}

	add := findOperator(e.global.Operators, symbols.AdditionOperator, 2)
	if add == nil {
		t.Fatalf("expected a global binary operator+ to be registered")
	}
}

func TestConstructCopyConvertFundamentals(t *testing.T) {
	e := newTestEngine(t)

	v, err := e.Construct(symbols.Int, []*value.Value{value.NewInt(42)})
	if err != nil {
		t.Fatalf("Construct: unexpected error: %v", err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("expected 42, got %d", v.AsInt())
	}

	cp, err := e.Copy(v)
	if err != nil {
		t.Fatalf("Copy: unexpected error: %v", err)
	}
	if cp.AsInt() != 42 {
		t.Fatalf("expected copy to read 42, got %d", cp.AsInt())
	}

	d, err := e.Convert(v, symbols.Double)
	if err != nil {
		t.Fatalf("Convert: unexpected error: %v", err)
	}
	if d.AsDouble() != 42 {
		t.Fatalf("expected 42.0, got %v", d.AsDouble())
	}
}

func TestGlobalArithmeticOperator(t *testing.T) {
	e := newTestEngine(t)

	add := findOperator(e.global.Operators, symbols.AdditionOperator, 2)
	if add == nil {
		t.Fatalf("expected operator+ on int")
	}
	result, err := e.Invoke(add, []*value.Value{value.NewInt(2), value.NewInt(3)})
	if err != nil {
		t.Fatalf("Invoke: unexpected error: %v", err)
	}
	if result.AsInt() != 5 {
		t.Fatalf("expected 5, got %d", result.AsInt())
	}
}

func TestGlobalAssignmentOperatorMutatesInPlace(t *testing.T) {
	e := newTestEngine(t)

	assign := findOperator(e.global.Operators, symbols.AssignmentOperator, 2)
	if assign == nil {
		t.Fatalf("expected operator= on int")
	}

	dest := value.NewInt(0)
	result, err := e.Invoke(assign, []*value.Value{dest, value.NewInt(7)})
	if err != nil {
		t.Fatalf("Invoke: unexpected error: %v", err)
	}
	if dest.AsInt() != 7 {
		t.Fatalf("expected dest to be mutated to 7, got %d", dest.AsInt())
	}
	if !result.IsReference() {
		t.Fatalf("expected operator= to return a reference to dest")
	}
	if result.Deref() != dest {
		t.Fatalf("expected the returned reference to alias dest")
	}
}

func TestArrayTemplateInstantiation(t *testing.T) {
	e := newTestEngine(t)

	class, err := e.arrayTemplate.GetClassInstance([]symbols.TemplateArgument{symbols.TypeArg(symbols.Int)})
	if err != nil {
		t.Fatalf("GetClassInstance: unexpected error: %v", err)
	}

	arr := value.NewArray(class.ID, symbols.Int)
	arr.Array().Elements = []*value.Value{value.NewInt(10), value.NewInt(20), value.NewInt(30)}

	size := class.FindMethod("size")
	if size == nil {
		t.Fatalf("expected Array<Int> to have a size() method")
	}
	szResult, err := e.Invoke(size, []*value.Value{arr})
	if err != nil {
		t.Fatalf("size(): unexpected error: %v", err)
	}
	if szResult.AsInt() != 3 {
		t.Fatalf("expected size 3, got %d", szResult.AsInt())
	}

	at := class.FindMethod("at")
	if at == nil {
		t.Fatalf("expected Array<Int> to have an at() method")
	}
	atResult, err := e.Invoke(at, []*value.Value{arr, value.NewInt(1)})
	if err != nil {
		t.Fatalf("at(): unexpected error: %v", err)
	}
	if atResult.Deref().AsInt() != 20 {
		t.Fatalf("expected element 1 to be 20, got %d", atResult.Deref().AsInt())
	}

	// Same element type instantiated twice must resolve to the same class.
	again, err := e.arrayTemplate.GetClassInstance([]symbols.TemplateArgument{symbols.TypeArg(symbols.Int)})
	if err != nil {
		t.Fatalf("GetClassInstance (again): unexpected error: %v", err)
	}
	if again != class {
		t.Fatalf("expected Array<Int> instantiated twice to be cached to the same class")
	}
}

func TestStringConcatAndEquality(t *testing.T) {
	e := newTestEngine(t)

	plus := findOperator(e.stringClass.Operators, symbols.AdditionOperator, 2)
	if plus == nil {
		t.Fatalf("expected String to have operator+")
	}
	a := e.NewString("foo")
	b := e.NewString("bar")
	sum, err := e.Invoke(plus, []*value.Value{a, b})
	if err != nil {
		t.Fatalf("operator+: unexpected error: %v", err)
	}
	if sum.Object().Native.(string) != "foobar" {
		t.Fatalf("expected \"foobar\", got %q", sum.Object().Native)
	}

	eq := findOperator(e.stringClass.Operators, symbols.EqualOperator, 2)
	if eq == nil {
		t.Fatalf("expected String to have operator==")
	}
	eqResult, err := e.Invoke(eq, []*value.Value{sum, e.NewString("foobar")})
	if err != nil {
		t.Fatalf("operator==: unexpected error: %v", err)
	}
	if !eqResult.AsBool() {
		t.Fatalf("expected \"foobar\" == \"foobar\" to be true")
	}
}

func TestEvalPersistsVariableAcrossCalls(t *testing.T) {
	e := newTestEngine(t)
	add := findOperator(e.global.Operators, symbols.AdditionOperator, 2)
	e.Compiler = newFakeCompiler(e.eval, add)

	if _, err := e.Eval("a=5"); err != nil {
		t.Fatalf("eval(a=5): unexpected error: %v", err)
	}
	result, err := e.Eval("a+3")
	if err != nil {
		t.Fatalf("eval(a+3): unexpected error: %v", err)
	}
	if result.AsInt() != 8 {
		t.Fatalf("expected 8, got %d", result.AsInt())
	}
}

func TestJSONParseAndNavigate(t *testing.T) {
	e := newTestEngine(t)

	parse := e.global.Functions["ParseJSON"]
	if len(parse) != 1 {
		t.Fatalf("expected exactly one ParseJSON overload, got %d", len(parse))
	}

	doc, err := e.Invoke(parse[0], []*value.Value{e.NewString(`{"name":"tau","count":3}`)})
	if err != nil {
		t.Fatalf("ParseJSON: unexpected error: %v", err)
	}

	get := e.jsonClass.FindMethod("get")
	name, err := e.Invoke(get, []*value.Value{doc, e.NewString("name")})
	if err != nil {
		t.Fatalf("get(\"name\"): unexpected error: %v", err)
	}

	asString := e.jsonClass.FindMethod("asString")
	nameStr, err := e.Invoke(asString, []*value.Value{name})
	if err != nil {
		t.Fatalf("asString(): unexpected error: %v", err)
	}
	if nameStr.Object().Native.(string) != "tau" {
		t.Fatalf("expected \"tau\", got %q", nameStr.Object().Native)
	}
}

// fakeCompiler is the minimal engine.Compiler double these tests drive
// Eval against, building IR by hand the way interp_test.go does rather
// than through internal/frontend's real parser, so these tests stay
// independent of that package. It only understands the expression shapes
// TestEvalPersistsVariableAcrossCalls exercises: "name=<int literal>",
// "name+<int literal>" and a bare "name".
type fakeCompiler struct {
	eval *symbols.Namespace
	add  *symbols.Function
}

func newFakeCompiler(eval *symbols.Namespace, add *symbols.Function) *fakeCompiler {
	return &fakeCompiler{eval: eval, add: add}
}

func (c *fakeCompiler) binding(name string, declare func(string, *value.Value)) *value.Value {
	if v, ok := c.eval.Vars[name]; ok {
		return v.Value.(*value.Value)
	}
	target := value.NewInt(0)
	declare(name, target)
	return target
}

func (c *fakeCompiler) CompileExpression(source string, _ scope.Scope, declare func(name string, v *value.Value)) (ir.Expr, symbols.Type, error) {
	if name, rhs, ok := strings.Cut(source, "="); ok {
		target := c.binding(strings.TrimSpace(name), declare)
		n, _ := strconv.ParseInt(strings.TrimSpace(rhs), 10, 64)
		if err := value.Assign(target, value.NewInt(n)); err != nil {
			return nil, symbols.Void, err
		}
		return &ir.Literal{ExprBase: ir.NewExprBase(symbols.Int), Value: target}, symbols.Int, nil
	}
	if name, rhs, ok := strings.Cut(source, "+"); ok {
		target := c.binding(strings.TrimSpace(name), declare)
		n, _ := strconv.ParseInt(strings.TrimSpace(rhs), 10, 64)
		return &ir.FunctionCall{
			ExprBase: ir.NewExprBase(symbols.Int),
			Callee:   c.add,
			Args: []ir.Expr{
				&ir.Literal{ExprBase: ir.NewExprBase(symbols.Int), Value: target},
				&ir.Literal{ExprBase: ir.NewExprBase(symbols.Int), Value: value.NewInt(n)},
			},
		}, symbols.Int, nil
	}
	target := c.binding(strings.TrimSpace(source), declare)
	return &ir.Literal{ExprBase: ir.NewExprBase(symbols.Int), Value: target}, symbols.Int, nil
}

func (c *fakeCompiler) CompileScript(source, path string, global scope.Scope) (*symbols.Script, error) {
	return symbols.NewScript(path), nil
}
