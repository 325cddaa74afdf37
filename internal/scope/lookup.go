package scope

import "github.com/strandfield/libscript/internal/symbols"

// NameLookup is the flattened result of resolving one unqualified name,
// mirroring NameLookupImpl's bag of result fields (spec §4.4). At most one
// of the non-Functions fields is meaningful for a given successful lookup;
// Functions alone may hold more than one entry (an overload set).
type NameLookup struct {
	Functions []*symbols.Function

	TypeResult symbols.Type

	// ValueResult is a resolved local/global/context variable's opaque
	// value handle (really *value.Value; any to avoid an import cycle).
	ValueResult any

	StaticDataMemberResult *symbols.StaticDataMember
	MemberOf               *symbols.Class

	ClassTemplateResult    *symbols.Template
	FunctionTemplateResult []*symbols.Template

	ScopeResult Scope

	EnumeratorResult *symbols.Enum
	EnumeratorKey    string

	DataMemberIndex        int
	GlobalIndex            int
	LocalIndex             int
	CaptureIndex           int
	TemplateParameterIndex int
}

func (nl NameLookup) IsEmpty() bool {
	return len(nl.Functions) == 0 &&
		nl.TypeResult.IsNull() &&
		nl.ValueResult == nil &&
		nl.StaticDataMemberResult == nil &&
		nl.ClassTemplateResult == nil &&
		len(nl.FunctionTemplateResult) == 0 &&
		nl.ScopeResult.IsNull() &&
		nl.EnumeratorResult == nil &&
		nl.DataMemberIndex < 0 &&
		nl.GlobalIndex < 0 &&
		nl.LocalIndex < 0 &&
		nl.CaptureIndex < 0 &&
		nl.TemplateParameterIndex < 0
}

func emptyResult() NameLookup {
	return NameLookup{DataMemberIndex: -1, GlobalIndex: -1, LocalIndex: -1, CaptureIndex: -1, TemplateParameterIndex: -1}
}

// Lookup resolves name starting at s and walking outward through parent
// scopes, per spec §4.4's unqualified-lookup procedure: a scope that binds
// name to anything other than a function set hides every outer binding; a
// scope that only contributes functions keeps the search going so
// overloads from enclosing scopes and using-directives accumulate into one
// candidate set (the common behavior unqualified name lookup needs for
// overload resolution to see every visible overload).
func Lookup(s Scope, name string) NameLookup {
	result := emptyResult()
	for cur := s; !cur.IsNull(); cur = cur.Parent() {
		level := lookupOneLevel(cur, name)
		if len(level.Functions) > 0 {
			result.Functions = append(result.Functions, level.Functions...)
		}
		if hasNonFunctionResult(level) {
			mergeNonFunctionResult(&result, level)
			return result
		}
		if !cur.HasParent() {
			break
		}
	}
	return result
}

func hasNonFunctionResult(nl NameLookup) bool {
	return !nl.TypeResult.IsNull() ||
		nl.ValueResult != nil ||
		nl.StaticDataMemberResult != nil ||
		nl.ClassTemplateResult != nil ||
		len(nl.FunctionTemplateResult) > 0 ||
		!nl.ScopeResult.IsNull() ||
		nl.EnumeratorResult != nil ||
		nl.DataMemberIndex >= 0 ||
		nl.GlobalIndex >= 0 ||
		nl.LocalIndex >= 0 ||
		nl.CaptureIndex >= 0 ||
		nl.TemplateParameterIndex >= 0
}

func mergeNonFunctionResult(dst *NameLookup, src NameLookup) {
	dst.TypeResult = src.TypeResult
	dst.ValueResult = src.ValueResult
	dst.StaticDataMemberResult = src.StaticDataMemberResult
	dst.MemberOf = src.MemberOf
	dst.ClassTemplateResult = src.ClassTemplateResult
	dst.FunctionTemplateResult = src.FunctionTemplateResult
	dst.ScopeResult = src.ScopeResult
	dst.EnumeratorResult = src.EnumeratorResult
	dst.EnumeratorKey = src.EnumeratorKey
	dst.DataMemberIndex = src.DataMemberIndex
	dst.GlobalIndex = src.GlobalIndex
	dst.LocalIndex = src.LocalIndex
	dst.CaptureIndex = src.CaptureIndex
	dst.TemplateParameterIndex = src.TemplateParameterIndex
}

// lookupOneLevel resolves name using only the bindings directly visible at
// cur's own level (no recursion into cur.Parent()).
func lookupOneLevel(cur Scope, name string) NameLookup {
	result := emptyResult()

	switch cur.kind {
	case TemplateArgumentScope:
		for i, p := range cur.templateParams {
			if p.Name == name {
				result.TemplateParameterIndex = i
				return result
			}
		}

	case LambdaScope:
		for i, c := range cur.captures {
			if c.Name == name {
				result.CaptureIndex = i
				return result
			}
		}
		for i, l := range cur.locals {
			if l.Name == name {
				result.LocalIndex = i
				result.TypeResult = l.Type
				return result
			}
		}

	case FunctionScope:
		for i, l := range cur.locals {
			if l.Name == name {
				result.LocalIndex = i
				result.TypeResult = l.Type
				return result
			}
		}

	case ContextScope:
		if v, ok := cur.contextVars[name]; ok {
			result.ValueResult = v
			return result
		}

	case EnumClassScope:
		if cur.enum != nil {
			if _, ok := cur.enum.Value(name); ok {
				result.EnumeratorResult = cur.enum
				result.EnumeratorKey = name
				return result
			}
		}

	case ClassScope:
		if cur.class != nil {
			lookupClassLevel(cur.class, name, &result)
			if hasNonFunctionResult(result) || len(result.Functions) > 0 {
				return result
			}
		}

	case NamespaceScope, ScriptScope:
		if cur.namespace != nil {
			lookupNamespaceLevel(cur.namespace, name, &result)
		}
		for _, inj := range cur.injected {
			injResult := emptyResult()
			lookupNamespaceLevel(inj, name, &injResult)
			result.Functions = append(result.Functions, injResult.Functions...)
			if hasNonFunctionResult(injResult) && !hasNonFunctionResult(result) {
				mergeNonFunctionResult(&result, injResult)
			}
		}
	}

	return result
}

func lookupClassLevel(c *symbols.Class, name string, result *NameLookup) {
	for i, dm := range c.DataMembers {
		if dm.Name == name {
			result.DataMemberIndex = i
			result.TypeResult = dm.Type
			result.MemberOf = c
			return
		}
	}
	for i := range c.StaticDataMembers {
		if c.StaticDataMembers[i].Name == name {
			result.StaticDataMemberResult = &c.StaticDataMembers[i]
			result.MemberOf = c
			return
		}
	}
	if fns, ok := c.Typedefs[name]; ok {
		result.TypeResult = fns
		return
	}
	for _, nc := range c.NestedClasses {
		if nc.Name() == name {
			result.TypeResult = nc.ID
			return
		}
	}
	for _, ne := range c.NestedEnums {
		if ne.Name() == name {
			result.TypeResult = ne.ID
			return
		}
	}
	for _, nt := range c.NestedTemplates {
		if nt.Name() == name {
			result.ClassTemplateResult = nt
			return
		}
	}
	for _, f := range c.MemberFunctions {
		if f.Name.Kind == symbols.FunctionSymbolKind && f.Name.Str == name {
			result.Functions = append(result.Functions, f)
		}
	}
	if c.Parent != nil {
		inherited := NameLookup{DataMemberIndex: -1, GlobalIndex: -1, LocalIndex: -1, CaptureIndex: -1, TemplateParameterIndex: -1}
		lookupClassLevel(c.Parent, name, &inherited)
		if len(inherited.Functions) > 0 {
			result.Functions = append(result.Functions, inherited.Functions...)
		}
		if hasNonFunctionResult(inherited) && !hasNonFunctionResult(*result) {
			mergeNonFunctionResult(result, inherited)
		}
	}
}

func lookupNamespaceLevel(ns *symbols.Namespace, name string, result *NameLookup) {
	if v, ok := ns.Vars[name]; ok {
		result.ValueResult = v.Value
		return
	}
	if t, ok := ns.Typedefs[name]; ok {
		result.TypeResult = t
		return
	}
	if c := ns.FindClass(name); c != nil {
		result.TypeResult = c.ID
		return
	}
	if e := ns.FindEnum(name); e != nil {
		result.TypeResult = e.ID
		return
	}
	if child := ns.FindChildNamespace(name); child != nil {
		result.ScopeResult = NewNamespaceScope(child, Scope{})
		return
	}
	for _, t := range ns.Templates {
		if t.Name() == name {
			if t.IsClassTemplate() {
				result.ClassTemplateResult = t
			} else {
				result.FunctionTemplateResult = append(result.FunctionTemplateResult, t)
			}
			return
		}
	}
	if fns, ok := ns.Functions[name]; ok {
		result.Functions = append(result.Functions, fns...)
	}
}

// LookupOperator returns every visible overload of op, searching outward
// through enclosing scopes (operators are never hidden by a same-named
// binding of another kind — spec §4.4 "operator lookup is a distinct
// channel from identifier lookup").
func LookupOperator(s Scope, op symbols.OperatorName) []*symbols.Function {
	var out []*symbols.Function
	for cur := s; !cur.IsNull(); cur = cur.Parent() {
		if cur.class != nil {
			for _, f := range cur.class.Operators {
				if f.Name.Kind == symbols.OperatorSymbolKind && f.Name.Op == op {
					out = append(out, f)
				}
			}
		}
		if cur.namespace != nil {
			for _, f := range cur.namespace.Operators {
				if f.Name.Kind == symbols.OperatorSymbolKind && f.Name.Op == op {
					out = append(out, f)
				}
			}
		}
		if !cur.HasParent() {
			break
		}
	}
	return out
}

// LookupLiteralOperator returns every visible literal-operator overload for
// suffix.
func LookupLiteralOperator(s Scope, suffix string) []*symbols.Function {
	var out []*symbols.Function
	for cur := s; !cur.IsNull(); cur = cur.Parent() {
		if cur.namespace != nil {
			out = append(out, cur.namespace.LiteralOperators[suffix]...)
		}
		if !cur.HasParent() {
			break
		}
	}
	return out
}
