package template

import (
	"testing"

	"github.com/strandfield/libscript/internal/symbols"
)

type fakeTypes struct {
	classes map[symbols.Type]*symbols.Class
	fnTypes map[symbols.Type]*symbols.FunctionType
}

func (f *fakeTypes) GetClass(t symbols.Type) *symbols.Class { return f.classes[t.WithoutConst().WithoutRef()] }
func (f *fakeTypes) GetFunctionTypeByID(t symbols.Type) *symbols.FunctionType {
	return f.fnTypes[t]
}

func TestDeduceSimpleParameter(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}
	params := []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}
	res := d.Process(params, nil, []*Pattern{Param("T")}, []symbols.Type{symbols.Int})

	if !res.Ok {
		t.Fatalf("expected deduction to succeed")
	}
	if res.Arguments[0].Type != symbols.Int {
		t.Fatalf("expected T deduced to int, got %v", res.Arguments[0])
	}
}

func TestDeduceQualifiedReference(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}
	params := []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}
	pat := Qualified(true, true, false, Param("T"))

	res := d.Process(params, nil, []*Pattern{pat}, []symbols.Type{symbols.CRef(symbols.Int)})
	if !res.Ok {
		t.Fatalf("expected cref(int) to satisfy const T&")
	}
	if res.Arguments[0].Type != symbols.Int {
		t.Fatalf("expected T deduced to plain int (const/ref peeled), got %v", res.Arguments[0])
	}

	res2 := d.Process(params, nil, []*Pattern{pat}, []symbols.Type{symbols.Int})
	if res2.Ok {
		t.Fatalf("expected a non-reference, non-const input to fail const T& pattern")
	}
}

func TestDeduceAgglomerationConflict(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}
	params := []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}
	res := d.Process(params, nil, []*Pattern{Param("T"), Param("T")}, []symbols.Type{symbols.Int, symbols.Double})
	if res.Ok {
		t.Fatalf("expected conflicting deductions for T to fail")
	}
}

func TestDeduceUsesDefaultWhenNoInput(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}
	params := []symbols.TemplateParameter{
		{Kind: symbols.TypeParameter, Name: "T", HasDefault: true, Default: symbols.TypeArg(symbols.Double)},
	}
	res := d.Process(params, nil, nil, nil)
	if !res.Ok || res.Arguments[0].Type != symbols.Double {
		t.Fatalf("expected default to fill missing T, got %+v", res)
	}
}

func TestSelectFunctionTemplatePicksMoreSpecialized(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}

	general := FunctionCandidate{
		Template: symbols.NewFunctionTemplate("f", []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}, nil),
		Params:   []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}},
		Patterns: []*Pattern{Param("T")},
	}
	specific := FunctionCandidate{
		Template: symbols.NewFunctionTemplate("f", nil, nil),
		Params:   nil,
		Patterns: []*Pattern{Concrete(symbols.Int)},
	}

	winner, _, ok := d.SelectFunctionTemplate([]FunctionCandidate{general, specific}, nil, []symbols.Type{symbols.Int})
	if !ok {
		t.Fatalf("expected a unique most-specialized candidate")
	}
	if winner.Template != specific.Template {
		t.Fatalf("expected the concrete-int overload to win over the generic T overload")
	}
}

func TestSelectFunctionTemplateNoCandidatesMatch(t *testing.T) {
	d := &Deducer{Types: &fakeTypes{}}
	cand := FunctionCandidate{
		Template: symbols.NewFunctionTemplate("f", nil, nil),
		Patterns: []*Pattern{Concrete(symbols.Double)},
	}
	_, _, ok := d.SelectFunctionTemplate([]FunctionCandidate{cand}, nil, []symbols.Type{symbols.Int})
	if ok {
		t.Fatalf("expected no candidate to match int against a double-only pattern")
	}
}
