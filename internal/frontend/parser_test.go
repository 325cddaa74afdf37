package frontend

import (
	"testing"

	"github.com/strandfield/libscript/internal/symbols"
)

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3), not (1 + 2) * 3.
	p := NewParser("1 + 2 * 3")
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	add, ok := expr.(*BinaryExpr)
	if !ok || add.Op != symbols.AdditionOperator {
		t.Fatalf("expected top-level addition, got %#v", expr)
	}
	if _, ok := add.Left.(*IntLiteral); !ok {
		t.Fatalf("expected left operand to be the bare literal 1, got %#v", add.Left)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != symbols.MultiplicationOperator {
		t.Fatalf("expected right operand to be a multiplication, got %#v", add.Right)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	p := NewParser("a = b = 1")
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	outer, ok := expr.(*AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %#v", expr)
	}
	if _, ok := outer.Right.(*AssignExpr); !ok {
		t.Fatalf("expected right-associative nesting, got %#v", outer.Right)
	}
}

func TestParseConditional(t *testing.T) {
	p := NewParser("a > 0 ? 1 : 2")
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cond, ok := expr.(*ConditionalExpr)
	if !ok {
		t.Fatalf("expected ConditionalExpr, got %#v", expr)
	}
	if _, ok := cond.Cond.(*BinaryExpr); !ok {
		t.Fatalf("expected comparison as condition, got %#v", cond.Cond)
	}
}

func TestParsePostfixChain(t *testing.T) {
	p := NewParser("a.b(1, 2)[0]")
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	idx, ok := expr.(*IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr at the top, got %#v", expr)
	}
	call, ok := idx.Receiver.(*MemberCallExpr)
	if !ok {
		t.Fatalf("expected MemberCallExpr as the index receiver, got %#v", idx.Receiver)
	}
	if call.Method != "b" || len(call.Args) != 2 {
		t.Fatalf("unexpected member call shape: %#v", call)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	p := NewParser("[1, 2, 3]")
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	arr, ok := expr.(*ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected a 3-element ArrayLiteral, got %#v", expr)
	}
}

func TestParseProgramStatements(t *testing.T) {
	src := `
	var x = 1;
	if (x > 0) {
		x = x + 1;
	} else {
		x = 0;
	}
	while (x < 10) {
		x = x + 1;
	}
	for (var i = 0; i < 3; i = i + 1) {
		x = x + i;
	}
	return x;
	`
	p := NewParser(src)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(stmts) != 5 {
		t.Fatalf("expected 5 top-level statements, got %d: %#v", len(stmts), stmts)
	}
	if _, ok := stmts[0].(*VarDecl); !ok {
		t.Fatalf("expected first statement to be a VarDecl, got %#v", stmts[0])
	}
	if _, ok := stmts[1].(*IfStmt); !ok {
		t.Fatalf("expected second statement to be an IfStmt, got %#v", stmts[1])
	}
	if _, ok := stmts[2].(*WhileStmt); !ok {
		t.Fatalf("expected third statement to be a WhileStmt, got %#v", stmts[2])
	}
	if _, ok := stmts[3].(*ForStmt); !ok {
		t.Fatalf("expected fourth statement to be a ForStmt, got %#v", stmts[3])
	}
}

func TestParseTypedVarDeclWithTemplateArgs(t *testing.T) {
	p := NewParser("Array<Int> xs;")
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*VarDecl)
	if !ok || decl.Type == nil {
		t.Fatalf("expected a typed VarDecl, got %#v", stmts[0])
	}
	if decl.Type.Name != "Array" || len(decl.Type.Args) != 1 || decl.Type.Args[0].Name != "Int" {
		t.Fatalf("unexpected type name shape: %#v", decl.Type)
	}
	if decl.Name != "xs" {
		t.Fatalf("expected variable name %q, got %q", "xs", decl.Name)
	}
}

func TestParseNestedTemplateArgsSplitsShiftToken(t *testing.T) {
	p := NewParser("Array<Array<Int>> xs;")
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	decl, ok := stmts[0].(*VarDecl)
	if !ok || decl.Type == nil {
		t.Fatalf("expected a typed VarDecl, got %#v", stmts[0])
	}
	inner := decl.Type.Args[0]
	if inner.Name != "Array" || inner.Args[0].Name != "Int" {
		t.Fatalf("expected nested Array<Int>, got %#v", inner)
	}
}
