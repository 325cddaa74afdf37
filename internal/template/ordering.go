package template

import "github.com/strandfield/libscript/internal/symbols"

// Ordering is the outcome of comparing two templates' parameter lists for
// specialization, per spec §4.6's lattice: "Indistinguishable,
// FirstMoreSpecialized, SecondMoreSpecialized, NotComparable".
type Ordering int

const (
	Indistinguishable Ordering = iota
	FirstMoreSpecialized
	SecondMoreSpecialized
	NotComparable
)

// Candidate pairs a set of parameter patterns (how this template's
// parameter list looks, as patterns another template's parameters could be
// deduced against) with its own TemplateParameter list.
type Candidate struct {
	Params   []symbols.TemplateParameter
	Patterns []*Pattern
}

// Compare partially orders a against b: try deducing b's parameters from
// a's patterns (as if a's patterns were concrete inputs to b) and vice
// versa; the standard "one direction succeeds, the other fails" rule
// decides the winner (spec §4.6 "Partial ordering of templates").
func (d *Deducer) Compare(a, b Candidate) Ordering {
	// aIntoB: synthesize placeholders from a's own patterns and check that
	// b's parameters can be deduced from them — success means a's shape is
	// accepted wherever b's is, i.e. a is at least as specialized as b.
	aIntoB := d.deducesAgainst(a, b)
	bIntoA := d.deducesAgainst(b, a)

	switch {
	case aIntoB && bIntoA:
		return Indistinguishable
	case aIntoB && !bIntoA:
		return FirstMoreSpecialized
	case !aIntoB && bIntoA:
		return SecondMoreSpecialized
	default:
		return NotComparable
	}
}

// deducesAgainst reports whether target's parameters can all be deduced
// using source's patterns as synthetic "inputs" — each of source's
// parameters stands for a unique synthesized type so the deduction engine
// sees distinct, opaque inputs exactly like using distinct placeholder
// types for partial ordering in the original algorithm.
func (d *Deducer) deducesAgainst(source, target Candidate) bool {
	synthesized := make([]symbols.Type, len(source.Patterns))
	for i := range source.Patterns {
		// Synthesized placeholder base indices start high (0xF000) and count up so
		// they can never collide with a real registered type id within one
		// comparison call.
		synthesized[i] = symbols.NewType(symbols.Type(0xF000+i), symbols.NoFlag)
	}
	result := d.Process(target.Params, nil, target.Patterns, synthesized)
	return result.Ok
}
