package symbols

// SymbolKind lists the different kinds of symbol in the graph.
//
// Grounded on original_source/include/script/symbol-kind.h.
type SymbolKind int

const (
	NotASymbol SymbolKind = iota
	NamespaceSymbol
	ClassSymbol
	FunctionSymbolKind
	ConstructorSymbolKind
	DestructorSymbolKind
	CastSymbolKind
	OperatorSymbolKind
	LiteralOperatorSymbolKind
	TemplateSymbolKind
	EnumSymbolKind
)

// OperatorName enumerates the operators the language supports, in the same
// order (and implicitly the same precedence) as the original language
// grammar. Grounded on original_source/include/script/operators.h.
type OperatorName int

const (
	InvalidOperator OperatorName = iota
	ScopeResolutionOperator
	PostIncrementOperator
	PostDecrementOperator
	FunctionCallOperator
	SubscriptOperator
	MemberAccessOperator
	PreIncrementOperator
	PreDecrementOperator
	UnaryPlusOperator
	UnaryMinusOperator
	LogicalNotOperator
	BitwiseNotOperator
	MultiplicationOperator
	DivisionOperator
	RemainderOperator
	AdditionOperator
	SubtractionOperator
	LeftShiftOperator
	RightShiftOperator
	LessOperator
	GreaterOperator
	LessEqualOperator
	GreaterEqualOperator
	EqualOperator
	InequalOperator
	BitwiseAndOperator
	BitwiseXorOperator
	BitwiseOrOperator
	LogicalAndOperator
	LogicalOrOperator
	ConditionalOperator
	AssignmentOperator
	MultiplicationAssignmentOperator
	DivisionAssignmentOperator
	RemainderAssignmentOperator
	AdditionAssignmentOperator
	SubtractionAssignmentOperator
	LeftShiftAssignmentOperator
	RightShiftAssignmentOperator
	BitwiseAndAssignmentOperator
	BitwiseOrAssignmentOperator
	BitwiseXorAssignmentOperator
	CommaOperator
)

// Arity returns the expected number of operands for op, used to validate a
// Function symbol's prototype against its operator kind (spec §3 Function
// invariants: "operators' prototypes are validated by arity").
func (op OperatorName) Arity() int {
	switch op {
	case PostIncrementOperator, PostDecrementOperator, PreIncrementOperator, PreDecrementOperator,
		UnaryPlusOperator, UnaryMinusOperator, LogicalNotOperator, BitwiseNotOperator:
		return 1
	case FunctionCallOperator, SubscriptOperator:
		return -1 // variadic / binary depending on overload
	case ConditionalOperator:
		return 3
	default:
		return 2
	}
}

// MemberOnly reports whether op can only be declared as a non-static member
// function (spec §4.3: "some operators are member-only").
func (op OperatorName) MemberOnly() bool {
	switch op {
	case AssignmentOperator, FunctionCallOperator, SubscriptOperator, MemberAccessOperator:
		return true
	default:
		return false
	}
}

// Associativity describes operand-grouping direction.
type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

// Name is the universal symbol-naming type: a plain string, an operator
// name, or a cast target type. Exactly one of these is meaningful,
// selected by Kind.
//
// Grounded on original_source/include/script/name.h (a tagged union in
// C++); Go has no anonymous union, so this is a small tagged struct
// instead — the idiomatic replacement noted in SPEC_FULL.md/DESIGN.md for
// every such union in the original.
type Name struct {
	Kind   SymbolKind
	Str    string
	Op     OperatorName
	CastTo Type
}

// NewStringName builds a Name naming a plain identifier.
func NewStringName(kind SymbolKind, str string) Name {
	return Name{Kind: kind, Str: str}
}

// NewOperatorName builds a Name naming an operator.
func NewOperatorName(op OperatorName) Name {
	return Name{Kind: OperatorSymbolKind, Op: op}
}

// NewCastName builds a Name naming a conversion-cast target type.
func NewCastName(t Type) Name {
	return Name{Kind: CastSymbolKind, CastTo: t}
}

// Equal compares two Names for equality, matching only the field selected
// by Kind (mirrors operator== in the original, which compares storage only
// when kinds agree).
func (n Name) Equal(other Name) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case OperatorSymbolKind:
		return n.Op == other.Op
	case CastSymbolKind:
		return n.CastTo == other.CastTo
	default:
		return n.Str == other.Str
	}
}
