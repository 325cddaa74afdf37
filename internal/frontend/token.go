// Package frontend implements the engine's own front-end: a lexer and a
// recursive-descent/Pratt expression parser compiling source text directly
// to the IR internal/engine.Engine.Compiler expects. It is the module's
// default Compiler implementation; a host may substitute any other Compiler
// satisfying the same interface.
//
// Grounded on the teacher's internal/lexer + internal/parser split (a
// hand-written scanner producing a flat token stream, consumed by a
// recursive-descent parser with a precedence table for binary operators),
// scaled down to the subset of the grammar this module's front-end phase
// actually commits to: expressions (arithmetic, relational, logical,
// assignment, ternary, calls, member access, array literals) plus a small
// statement/declaration grammar (var and typed variable declarations,
// if/while/for/return/break/continue and blocks). Function and class
// declarations, function/class templates and lambda expressions are not
// parsed by this front-end; scripts needing
// those are built directly against the symbols/value API the way
// engine_test.go does, and a richer front-end can be layered in later
// without changing the Compiler interface.
package frontend

// Kind tags a lexical token, grounded on the teacher's pkg/token.Kind.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLit
	FloatLit
	StringLit
	CharLit

	KwVar
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwNew

	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq
	AndAnd
	OrOr
	Not
	Amp
	AmpEq
	Pipe
	PipeEq
	Caret
	CaretEq
	Tilde
	Shl
	ShlEq
	Shr
	ShrEq
	Question
	Colon
	Comma
	Dot
	Semicolon
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
)

// Token is one lexical unit: its kind, raw text, and (for literals) the
// decoded value.
type Token struct {
	Kind Kind
	Text string
	Pos  int

	IntVal    int64
	FloatVal  float64
	StringVal string
	CharVal   rune
}

var keywords = map[string]Kind{
	"var":      KwVar,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
	"new":      KwNew,
}
