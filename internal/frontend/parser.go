package frontend

import (
	"fmt"

	"github.com/strandfield/libscript/internal/symbols"
)

// Parser is a Pratt expression parser plus a small recursive-descent
// statement grammar, grounded on the teacher's internal/parser.Parser
// (two-token lookahead, precedence table keyed by token kind) but reading
// straight from Lexer.Next rather than a pre-tokenized slice.
type Parser struct {
	lex  *Lexer
	tok  Token
	next Token
	errs []error
}

func NewParser(src string) *Parser {
	p := &Parser{lex: NewLexer(src)}
	p.tok = p.lex.Next()
	p.next = p.lex.Next()
	return p
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf(format, args...))
}

func (p *Parser) Errors() []error {
	return append(append([]error(nil), p.lex.errs...), p.errs...)
}

func (p *Parser) advance() {
	p.tok = p.next
	p.next = p.lex.Next()
}

func (p *Parser) expect(k Kind, what string) Token {
	if p.tok.Kind != k {
		p.errorf("expected %s, got %q at offset %d", what, p.tok.Text, p.tok.Pos)
		return p.tok
	}
	t := p.tok
	p.advance()
	return t
}

// ParseExpression parses a single expression, the entry point for
// Compiler.CompileExpression.
func (p *Parser) ParseExpression() Expr {
	return p.parseAssignment()
}

// ParseProgram parses a sequence of statements terminated by EOF, the entry
// point for Compiler.CompileScript.
func (p *Parser) ParseProgram() []Stmt {
	var stmts []Stmt
	for p.tok.Kind != EOF {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

// --- Statements ---------------------------------------------------------

func (p *Parser) parseStatement() Stmt {
	switch p.tok.Kind {
	case KwVar:
		return p.parseVarDecl()
	case LBrace:
		return p.parseBlock()
	case KwIf:
		return p.parseIf()
	case KwWhile:
		return p.parseWhile()
	case KwFor:
		return p.parseFor()
	case KwReturn:
		p.advance()
		var v Expr
		if p.tok.Kind != Semicolon {
			v = p.ParseExpression()
		}
		p.expect(Semicolon, `";"`)
		return &ReturnStmt{Value: v}
	case KwBreak:
		p.advance()
		p.expect(Semicolon, `";"`)
		return &BreakStmt{}
	case KwContinue:
		p.advance()
		p.expect(Semicolon, `";"`)
		return &ContinueStmt{}
	default:
		// A leading identifier may start either a typed declaration
		// ("Type name = expr;") or an expression statement; disambiguate by
		// looking for IDENT IDENT, the shape no expression grammar produces.
		if p.tok.Kind == Ident && p.next.Kind == Ident {
			return p.parseVarDeclWithType(p.parseTypeName())
		}
		// IDENT '<' may open a template-argument list ("Array<Int> xs;"):
		// try a type name followed by IDENT, else rewind and parse an
		// expression.
		if p.tok.Kind == Ident && p.next.Kind == Lt {
			saved, savedLex := *p, *p.lex
			t := p.parseTypeName()
			if len(p.errs) == len(saved.errs) && p.tok.Kind == Ident {
				return p.parseVarDeclWithType(t)
			}
			*p, *p.lex = saved, savedLex
		}
		x := p.ParseExpression()
		p.expect(Semicolon, `";"`)
		return &ExprStmt{X: x}
	}
}

func (p *Parser) parseBlock() Stmt {
	p.expect(LBrace, `"{"`)
	var stmts []Stmt
	for p.tok.Kind != RBrace && p.tok.Kind != EOF {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(RBrace, `"}"`)
	return &BlockStmt{Stmts: stmts}
}

func (p *Parser) parseIf() Stmt {
	p.advance()
	p.expect(LParen, `"("`)
	cond := p.ParseExpression()
	p.expect(RParen, `")"`)
	then := p.parseStatement()
	var els Stmt
	if p.tok.Kind == KwElse {
		p.advance()
		els = p.parseStatement()
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() Stmt {
	p.advance()
	p.expect(LParen, `"("`)
	cond := p.ParseExpression()
	p.expect(RParen, `")"`)
	body := p.parseStatement()
	return &WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) parseFor() Stmt {
	p.advance()
	p.expect(LParen, `"("`)
	var init Stmt
	if p.tok.Kind != Semicolon {
		switch {
		case p.tok.Kind == KwVar:
			init = p.parseVarDecl()
		case p.tok.Kind == Ident && p.next.Kind == Ident:
			init = p.parseVarDeclWithType(p.parseTypeName())
		default:
			x := p.ParseExpression()
			init = &ExprStmt{X: x}
			p.expect(Semicolon, `";"`)
		}
	} else {
		p.advance()
	}
	var cond Expr
	if p.tok.Kind != Semicolon {
		cond = p.ParseExpression()
	}
	p.expect(Semicolon, `";"`)
	var step Expr
	if p.tok.Kind != RParen {
		step = p.ParseExpression()
	}
	p.expect(RParen, `")"`)
	body := p.parseStatement()
	var stepStmt Stmt
	if step != nil {
		stepStmt = &ExprStmt{X: step}
	}
	return &ForStmt{Init: init, Cond: cond, Step: stepStmt, Body: body}
}

func (p *Parser) parseVarDecl() Stmt {
	p.advance() // 'var'
	name := p.expect(Ident, "identifier").Text
	var init Expr
	if p.tok.Kind == Assign {
		p.advance()
		init = p.ParseExpression()
	}
	p.expect(Semicolon, `";"`)
	return &VarDecl{Name: name, Init: init}
}

func (p *Parser) parseVarDeclWithType(t *TypeName) Stmt {
	name := p.expect(Ident, "identifier").Text
	var init Expr
	if p.tok.Kind == Assign {
		p.advance()
		init = p.ParseExpression()
	}
	p.expect(Semicolon, `";"`)
	return &VarDecl{Type: t, Name: name, Init: init}
}

func (p *Parser) parseTypeName() *TypeName {
	name := p.expect(Ident, "type name").Text
	t := &TypeName{Name: name}
	if p.tok.Kind == Lt {
		p.advance()
		for {
			t.Args = append(t.Args, p.parseTypeName())
			if p.tok.Kind == Comma {
				p.advance()
				continue
			}
			break
		}
		if p.tok.Kind == Shr {
			// ">>" closing two nested template-argument lists at once
			// ("Array<Array<Int>>"): split it into two Gt tokens.
			p.tok.Kind = Gt
			p.tok.Text = ">"
		} else {
			p.expect(Gt, `">"`)
		}
	}
	return t
}

// --- Expressions (Pratt parser) -----------------------------------------

func binOpFor(k Kind) (symbols.OperatorName, bool) {
	switch k {
	case Plus:
		return symbols.AdditionOperator, true
	case Minus:
		return symbols.SubtractionOperator, true
	case Star:
		return symbols.MultiplicationOperator, true
	case Slash:
		return symbols.DivisionOperator, true
	case Percent:
		return symbols.RemainderOperator, true
	case Lt:
		return symbols.LessOperator, true
	case Gt:
		return symbols.GreaterOperator, true
	case LtEq:
		return symbols.LessEqualOperator, true
	case GtEq:
		return symbols.GreaterEqualOperator, true
	case Eq:
		return symbols.EqualOperator, true
	case NotEq:
		return symbols.InequalOperator, true
	case Amp:
		return symbols.BitwiseAndOperator, true
	case Pipe:
		return symbols.BitwiseOrOperator, true
	case Caret:
		return symbols.BitwiseXorOperator, true
	case Shl:
		return symbols.LeftShiftOperator, true
	case Shr:
		return symbols.RightShiftOperator, true
	default:
		return symbols.InvalidOperator, false
	}
}

func assignOpFor(k Kind) (symbols.OperatorName, bool) {
	switch k {
	case Assign:
		return symbols.AssignmentOperator, true
	case PlusEq:
		return symbols.AdditionAssignmentOperator, true
	case MinusEq:
		return symbols.SubtractionAssignmentOperator, true
	case StarEq:
		return symbols.MultiplicationAssignmentOperator, true
	case SlashEq:
		return symbols.DivisionAssignmentOperator, true
	case PercentEq:
		return symbols.RemainderAssignmentOperator, true
	case ShlEq:
		return symbols.LeftShiftAssignmentOperator, true
	case ShrEq:
		return symbols.RightShiftAssignmentOperator, true
	case AmpEq:
		return symbols.BitwiseAndAssignmentOperator, true
	case PipeEq:
		return symbols.BitwiseOrAssignmentOperator, true
	case CaretEq:
		return symbols.BitwiseXorAssignmentOperator, true
	default:
		return symbols.InvalidOperator, false
	}
}

// precedence gives each binary operator kind its binding power; higher
// binds tighter. Grounded on the teacher's parser precedence table, itself
// grounded on the original grammar's operator-name declaration order
// (symbols.OperatorName's doc comment notes the same ordering).
func precedence(k Kind) int {
	switch k {
	case OrOr:
		return 1
	case AndAnd:
		return 2
	case Pipe:
		return 3
	case Caret:
		return 4
	case Amp:
		return 5
	case Eq, NotEq:
		return 6
	case Lt, Gt, LtEq, GtEq:
		return 7
	case Shl, Shr:
		return 8
	case Plus, Minus:
		return 9
	case Star, Slash, Percent:
		return 10
	default:
		return -1
	}
}

// parseAssignment handles `=` and compound assignment, right-associative
// and lowest precedence (below the ternary).
func (p *Parser) parseAssignment() Expr {
	left := p.parseConditional()
	if op, ok := assignOpFor(p.tok.Kind); ok {
		p.advance()
		right := p.parseAssignment()
		return &AssignExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseConditional() Expr {
	cond := p.parseLogicalOr()
	if p.tok.Kind == Question {
		p.advance()
		then := p.ParseExpression()
		p.expect(Colon, `":"`)
		els := p.parseAssignment()
		return &ConditionalExpr{Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseLogicalOr() Expr {
	left := p.parseLogicalAnd()
	for p.tok.Kind == OrOr {
		p.advance()
		right := p.parseLogicalAnd()
		left = &LogicalExpr{And: false, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() Expr {
	left := p.parseBinary(3)
	for p.tok.Kind == AndAnd {
		p.advance()
		right := p.parseBinary(3)
		left = &LogicalExpr{And: true, Left: left, Right: right}
	}
	return left
}

// parseBinary implements precedence climbing over every binary operator at
// or above minPrec (logical &&/|| are peeled off by the two callers above
// since they lower to ir.LogicalAnd/Or rather than an operator-function
// call).
func (p *Parser) parseBinary(minPrec int) Expr {
	left := p.parseUnary()
	for {
		prec := precedence(p.tok.Kind)
		if prec < minPrec {
			return left
		}
		op, ok := binOpFor(p.tok.Kind)
		if !ok {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() Expr {
	switch p.tok.Kind {
	case Plus:
		p.advance()
		return &UnaryExpr{Op: symbols.UnaryPlusOperator, Operand: p.parseUnary()}
	case Minus:
		p.advance()
		return &UnaryExpr{Op: symbols.UnaryMinusOperator, Operand: p.parseUnary()}
	case Not:
		p.advance()
		return &UnaryExpr{Op: symbols.LogicalNotOperator, Operand: p.parseUnary()}
	case Tilde:
		p.advance()
		return &UnaryExpr{Op: symbols.BitwiseNotOperator, Operand: p.parseUnary()}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() Expr {
	x := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case Dot:
			p.advance()
			name := p.expect(Ident, "member name").Text
			if p.tok.Kind == LParen {
				args := p.parseArgList()
				x = &MemberCallExpr{Receiver: x, Method: name, Args: args}
			} else {
				x = &MemberAccessExpr{Receiver: x, Name: name}
			}
		case LBracket:
			p.advance()
			idx := p.ParseExpression()
			p.expect(RBracket, `"]"`)
			x = &IndexExpr{Receiver: x, Index: idx}
		case LParen:
			args := p.parseArgList()
			x = &CallExpr{Callee: x, Args: args}
		default:
			return x
		}
	}
}

func (p *Parser) parseArgList() []Expr {
	p.expect(LParen, `"("`)
	var args []Expr
	for p.tok.Kind != RParen {
		args = append(args, p.ParseExpression())
		if p.tok.Kind == Comma {
			p.advance()
			continue
		}
		break
	}
	p.expect(RParen, `")"`)
	return args
}

func (p *Parser) parsePrimary() Expr {
	switch p.tok.Kind {
	case IntLit:
		v := p.tok.IntVal
		p.advance()
		return &IntLiteral{Value: v}
	case FloatLit:
		v := p.tok.FloatVal
		p.advance()
		return &FloatLiteral{Value: v}
	case StringLit:
		v := p.tok.StringVal
		p.advance()
		return &StringLiteral{Value: v}
	case CharLit:
		v := p.tok.CharVal
		p.advance()
		return &CharLiteral{Value: v}
	case KwTrue:
		p.advance()
		return &BoolLiteral{Value: true}
	case KwFalse:
		p.advance()
		return &BoolLiteral{Value: false}
	case Ident:
		name := p.tok.Text
		p.advance()
		return &Identifier{Name: name}
	case LParen:
		p.advance()
		x := p.ParseExpression()
		p.expect(RParen, `")"`)
		return x
	case LBracket:
		p.advance()
		var elems []Expr
		for p.tok.Kind != RBracket {
			elems = append(elems, p.ParseExpression())
			if p.tok.Kind == Comma {
				p.advance()
				continue
			}
			break
		}
		p.expect(RBracket, `"]"`)
		return &ArrayLiteral{Elements: elems}
	default:
		p.errorf("unexpected token %q at offset %d", p.tok.Text, p.tok.Pos)
		p.advance()
		return &IntLiteral{}
	}
}
