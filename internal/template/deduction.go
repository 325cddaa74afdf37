package template

import "github.com/strandfield/libscript/internal/symbols"

// TypeResolver is the minimal registry capability deduction needs: class
// lookup (to recognize a class-template-instance input) and function-type
// lookup (to recognize a function-type input's prototype). Both methods
// already exist verbatim on *internal/types.Registry, so a Registry value
// satisfies this interface with no adapter.
type TypeResolver interface {
	GetClass(t symbols.Type) *symbols.Class
	GetFunctionTypeByID(t symbols.Type) *symbols.FunctionType
}

// InstanceLookup answers "is class c an instance of some template, and if
// so with which arguments" — needed by the PatternTemplateID case. The
// engine facade is the natural owner of this (it can scan every
// registered Template's instance map), so it is injected rather than
// assumed here.
type InstanceLookup func(c *symbols.Class) (tmpl *symbols.Template, args []symbols.TemplateArgument, ok bool)

// Deducer bundles the registry views the deduction algorithm needs.
type Deducer struct {
	Types     TypeResolver
	Instances InstanceLookup
}

// Result is the outcome of TemplateArgumentDeduction::process (spec §4.6).
type Result struct {
	Ok        bool
	Arguments []symbols.TemplateArgument // full vector, explicit args plus deduced ones, in parameter order
}

// Process walks pairs of (pattern, inputType) and deduces a value for each
// named template parameter, per spec §4.6 "Deduction". explicitArgs[i]
// binds parameter i (non-deduced) for every i < len(explicitArgs); leave
// the slice shorter than params to deduce the remaining parameters.
func (d *Deducer) Process(params []symbols.TemplateParameter, explicitArgs []symbols.TemplateArgument, patterns []*Pattern, inputTypes []symbols.Type) Result {
	deductions := make(map[string][]symbols.TemplateArgument)
	paramIndex := make(map[string]int, len(params))
	for i, p := range params {
		paramIndex[p.Name] = i
	}

	for i := 0; i < len(patterns) && i < len(inputTypes); i++ {
		if !d.deduceOne(patterns[i], inputTypes[i], paramIndex, deductions) {
			return Result{Ok: false}
		}
	}

	out := make([]symbols.TemplateArgument, len(params))
	for i, p := range params {
		if i < len(explicitArgs) {
			out[i] = explicitArgs[i]
			continue
		}
		ds, ok := deductions[p.Name]
		switch {
		case ok && len(ds) > 0:
			agreed := ds[0]
			for _, other := range ds[1:] {
				if !agreed.Equal(other) {
					return Result{Ok: false}
				}
			}
			out[i] = agreed
		case p.HasDefault:
			out[i] = p.Default
		default:
			return Result{Ok: false}
		}
	}

	return Result{Ok: true, Arguments: out}
}

func (d *Deducer) deduceOne(pat *Pattern, input symbols.Type, paramIndex map[string]int, deductions map[string][]symbols.TemplateArgument) bool {
	switch pat.Kind {
	case PatternParameter:
		if _, isParam := paramIndex[pat.ParameterName]; isParam {
			deductions[pat.ParameterName] = append(deductions[pat.ParameterName], symbols.TypeArg(input))
			return true
		}
		// Not a template parameter: accepted without any comparison. A
		// known type that must equal the input is written as
		// PatternConcreteType instead.
		return true

	case PatternConcreteType:
		return pat.ConcreteType.EqualIgnoringTopLevelCVRef(input)

	case PatternQualified:
		if pat.Const && !input.IsConst() {
			return false
		}
		if pat.Ref && !input.IsReference() {
			return false
		}
		if pat.RRef && !input.IsForwardingReference() {
			return false
		}
		return d.deduceOne(pat.Inner, input.WithoutConst().WithoutRef(), paramIndex, deductions)

	case PatternFunctionType:
		ft := d.Types.GetFunctionTypeByID(input)
		if ft == nil {
			return false
		}
		if len(pat.ParamPatterns) != ft.Prototype.Count() {
			return false
		}
		if !d.deduceOne(pat.ReturnPattern, ft.Prototype.ReturnType(), paramIndex, deductions) {
			return false
		}
		for i, pp := range pat.ParamPatterns {
			if !d.deduceOne(pp, ft.Prototype.At(i), paramIndex, deductions) {
				return false
			}
		}
		return true

	case PatternTemplateID:
		class := d.Types.GetClass(input)
		if class == nil || d.Instances == nil {
			return false
		}
		tmpl, args, ok := d.Instances(class)
		if !ok || tmpl.Name() != pat.TemplateName || len(args) != len(pat.ArgPatterns) {
			return false
		}
		for i, ap := range pat.ArgPatterns {
			if args[i].Kind != symbols.TypeArgument {
				continue // non-type args are skipped; only type arguments are matched
			}
			if !d.deduceOne(ap, args[i].Type, paramIndex, deductions) {
				return false
			}
		}
		return true
	}
	return false
}
