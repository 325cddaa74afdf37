package template

import "github.com/strandfield/libscript/internal/symbols"

// FunctionCandidate is one overload candidate under consideration for
// function-template selection: the template itself, its parameter
// patterns as they appear in the declared prototype, and the concrete
// prototype types to deduce against.
type FunctionCandidate struct {
	Template *symbols.Template
	Params   []symbols.TemplateParameter
	Patterns []*Pattern
}

// SelectFunctionTemplate implements spec §4.6 "Function template
// selection": deduce each candidate independently against inputTypes,
// discard failures, partial-order the survivors, and return the unique
// most-specialized one. ok is false if zero or more than one candidate
// remains tied for most-specialized.
func (d *Deducer) SelectFunctionTemplate(candidates []FunctionCandidate, explicitArgs []symbols.TemplateArgument, inputTypes []symbols.Type) (winner *FunctionCandidate, args []symbols.TemplateArgument, ok bool) {
	type survivor struct {
		cand *FunctionCandidate
		args []symbols.TemplateArgument
	}
	var survivors []survivor

	for i := range candidates {
		res := d.Process(candidates[i].Params, explicitArgs, candidates[i].Patterns, inputTypes)
		if res.Ok {
			survivors = append(survivors, survivor{cand: &candidates[i], args: res.Arguments})
		}
	}

	if len(survivors) == 0 {
		return nil, nil, false
	}
	if len(survivors) == 1 {
		return survivors[0].cand, survivors[0].args, true
	}

	mostSpecializedIdx := 0
	for i := 1; i < len(survivors); i++ {
		cmp := d.Compare(
			Candidate{Params: survivors[mostSpecializedIdx].cand.Params, Patterns: survivors[mostSpecializedIdx].cand.Patterns},
			Candidate{Params: survivors[i].cand.Params, Patterns: survivors[i].cand.Patterns},
		)
		if cmp == SecondMoreSpecialized {
			mostSpecializedIdx = i
		}
	}

	for i, s := range survivors {
		if i == mostSpecializedIdx {
			continue
		}
		cmp := d.Compare(
			Candidate{Params: survivors[mostSpecializedIdx].cand.Params, Patterns: survivors[mostSpecializedIdx].cand.Patterns},
			Candidate{Params: s.cand.Params, Patterns: s.cand.Patterns},
		)
		if cmp != FirstMoreSpecialized {
			return nil, nil, false // no unique most-specialized candidate
		}
	}

	winner = survivors[mostSpecializedIdx].cand
	return winner, survivors[mostSpecializedIdx].args, true
}

// SpecializationCandidate is one partial specialization under
// consideration, paired with the symbols.PartialSpecialization it would
// instantiate if selected.
type SpecializationCandidate struct {
	Spec     *symbols.PartialSpecialization
	Params   []symbols.TemplateParameter
	Patterns []*Pattern
}

// SelectPartialSpecialization implements spec §4.6 "Partial-specialization
// selection": deduce each partial specialization against args, keep
// successes, partial-order them, and return the unique most-specialized.
// ok is false (meaning "fall back to the primary template") if none match
// or the match is ambiguous.
func (d *Deducer) SelectPartialSpecialization(candidates []SpecializationCandidate, args []symbols.TemplateArgument) (winner *symbols.PartialSpecialization, deduced []symbols.TemplateArgument, ok bool) {
	argTypes := make([]symbols.Type, 0, len(args))
	for _, a := range args {
		if a.Kind == symbols.TypeArgument {
			argTypes = append(argTypes, a.Type)
		}
	}

	type survivor struct {
		cand *SpecializationCandidate
		args []symbols.TemplateArgument
	}
	var survivors []survivor

	for i := range candidates {
		res := d.Process(candidates[i].Params, nil, candidates[i].Patterns, argTypes)
		if res.Ok {
			survivors = append(survivors, survivor{cand: &candidates[i], args: res.Arguments})
		}
	}

	if len(survivors) == 0 {
		return nil, nil, false
	}
	if len(survivors) == 1 {
		return survivors[0].cand.Spec, survivors[0].args, true
	}

	mostSpecializedIdx := 0
	for i := 1; i < len(survivors); i++ {
		cmp := d.Compare(
			Candidate{Params: survivors[mostSpecializedIdx].cand.Params, Patterns: survivors[mostSpecializedIdx].cand.Patterns},
			Candidate{Params: survivors[i].cand.Params, Patterns: survivors[i].cand.Patterns},
		)
		if cmp == SecondMoreSpecialized {
			mostSpecializedIdx = i
		}
	}
	for i, s := range survivors {
		if i == mostSpecializedIdx {
			continue
		}
		cmp := d.Compare(
			Candidate{Params: survivors[mostSpecializedIdx].cand.Params, Patterns: survivors[mostSpecializedIdx].cand.Patterns},
			Candidate{Params: s.cand.Params, Patterns: s.cand.Patterns},
		)
		if cmp != FirstMoreSpecialized {
			return nil, nil, false
		}
	}

	return survivors[mostSpecializedIdx].cand.Spec, survivors[mostSpecializedIdx].args, true
}
