// Package template implements template argument deduction, partial
// ordering, function-template selection and partial-specialization
// selection (§4.6 of SPEC_FULL.md, C6). The cache/instantiate plumbing
// itself (Template.GetClassInstance/GetFunctionInstance) lives on
// symbols.Template; this package supplies the deduction algorithm that
// decides WHICH instantiation to request and from which candidate.
//
// Grounded on _examples/original_source/include/script/private/
// templateargumentdeduction.h (pattern-walk deduction, declared as
// TemplateArgumentDeduction) and src/compiler/dummytemplatenameprocessor.cpp
// (the processor hook that selects/instantiates a template given deduced
// arguments). The original walks an AST; this package walks the small
// Pattern tree below instead, since this module has no AST of its own (the
// external compiler that would produce template-parameter patterns is out
// of scope — see internal/frontend).
package template

import "github.com/strandfield/libscript/internal/symbols"

// PatternKind tags which shape of type-pattern a Pattern node represents,
// per spec §4.6's four pattern forms.
type PatternKind int

const (
	// PatternParameter is a bare reference to one of the template's own
	// parameters, by name ("T").
	PatternParameter PatternKind = iota
	// PatternConcreteType is a fixed, already-resolved type that must match
	// the input exactly (modulo the Const/Ref wrapper logic below).
	PatternConcreteType
	// PatternQualified peels const/ref off both the pattern and the input
	// before recursing into Inner.
	PatternQualified
	// PatternFunctionType matches a function-type input elementwise.
	PatternFunctionType
	// PatternTemplateID matches a class-template-instance input, zipping
	// argument patterns against the instance's own argument vector.
	PatternTemplateID
)

// Pattern is one node of a template parameter pattern tree.
type Pattern struct {
	Kind PatternKind

	// ParameterName is set for PatternParameter.
	ParameterName string

	// ConcreteType is set for PatternConcreteType.
	ConcreteType symbols.Type

	// Const/Ref/RRef and Inner are set for PatternQualified.
	Const bool
	Ref   bool
	RRef  bool
	Inner *Pattern

	// ReturnPattern/ParamPatterns are set for PatternFunctionType.
	ReturnPattern *Pattern
	ParamPatterns []*Pattern

	// TemplateName/ArgPatterns are set for PatternTemplateID.
	TemplateName string
	ArgPatterns  []*Pattern
}

func Param(name string) *Pattern { return &Pattern{Kind: PatternParameter, ParameterName: name} }

func Concrete(t symbols.Type) *Pattern { return &Pattern{Kind: PatternConcreteType, ConcreteType: t} }

func Qualified(constQ, ref, rref bool, inner *Pattern) *Pattern {
	return &Pattern{Kind: PatternQualified, Const: constQ, Ref: ref, RRef: rref, Inner: inner}
}

func FunctionTypePattern(ret *Pattern, params ...*Pattern) *Pattern {
	return &Pattern{Kind: PatternFunctionType, ReturnPattern: ret, ParamPatterns: params}
}

func TemplateID(name string, args ...*Pattern) *Pattern {
	return &Pattern{Kind: PatternTemplateID, TemplateName: name, ArgPatterns: args}
}
