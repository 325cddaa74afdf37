// Package scope implements layered name lookup (§4.4 of SPEC_FULL.md, C4):
// a cons-list of scope kinds (namespace/class/enum/script/function/lambda/
// context/template-argument) each able to resolve an unqualified name to
// whatever entity is visible there, falling back to its parent.
//
// Grounded on _examples/original_source/include/script/scope.h (the Scope
// public surface: child/inject/merge/lookup) and
// _examples/original_source/include/script/private/namelookup_p.h (the
// NameLookupImpl result struct, flattened here into NameLookup). The
// original's std::shared_ptr<ScopeImpl> handle-to-impl indirection is
// unnecessary in Go: Scope is a plain value type wrapping an immutable
// parent pointer, copied by value the way the original copies its
// shared_ptr handle.
package scope

import "github.com/strandfield/libscript/internal/symbols"

// Kind identifies what a Scope wraps, mirroring script::Scope::Type.
type Kind int

const (
	InvalidScope Kind = iota
	ClassScope
	NamespaceScope
	ScriptScope
	EnumClassScope
	FunctionScope
	LambdaScope
	ContextScope
	TemplateArgumentScope
)

// Local is one function-local or lambda-local variable binding.
type Local struct {
	Name string
	Type symbols.Type
}

// Scope is one link in the lookup chain. The zero Scope is the null scope
// (IsNull() true).
type Scope struct {
	kind Kind

	namespace *symbols.Namespace
	class     *symbols.Class
	enum      *symbols.Enum
	script    *symbols.Script

	locals   []Local
	captures []symbols.Capture

	templateParams []symbols.TemplateParameter
	templateArgs   []symbols.TemplateArgument

	// contextVars backs a ContextScope (the interpreter's global/REPL
	// context): name -> opaque value handle. Kept as `any` to avoid this
	// package depending on internal/value.
	contextVars map[string]any

	// injected holds namespaces merged into this scope via inject(Scope)/
	// using-directives, copy-on-write: Inject returns a new Scope whose
	// injected slice is the parent's plus one more, never mutating a scope
	// another Scope value might still be referencing (spec §4.4 "injection
	// never mutates a scope other code may still be holding").
	injected []*symbols.Namespace

	parent *Scope
}

func (s Scope) IsNull() bool { return s.kind == InvalidScope && s.parent == nil }
func (s Scope) Kind() Kind   { return s.kind }

func (s Scope) HasParent() bool { return s.parent != nil }
func (s Scope) Parent() Scope {
	if s.parent == nil {
		return Scope{}
	}
	return *s.parent
}

// NewNamespaceScope builds a scope rooted at ns, chained to parent.
func NewNamespaceScope(ns *symbols.Namespace, parent Scope) Scope {
	return Scope{kind: NamespaceScope, namespace: ns, parent: clone(parent)}
}

// NewClassScope builds a scope rooted at c, chained to parent (typically
// the enclosing namespace/class scope).
func NewClassScope(c *symbols.Class, parent Scope) Scope {
	return Scope{kind: ClassScope, class: c, parent: clone(parent)}
}

// NewEnumScope builds a scope exposing e's enumerators unqualified,
// used only for `enum class` values (spec §4.4 "EnumClassScope").
func NewEnumScope(e *symbols.Enum, parent Scope) Scope {
	return Scope{kind: EnumClassScope, enum: e, parent: clone(parent)}
}

// NewScriptScope builds a scope rooted at a compiled script's global
// namespace.
func NewScriptScope(s *symbols.Script, parent Scope) Scope {
	return Scope{kind: ScriptScope, script: s, namespace: s.Namespace, parent: clone(parent)}
}

// NewFunctionScope builds a scope exposing locals (parameters + local
// variables) by position, chained to the scope the function was declared
// in.
func NewFunctionScope(locals []Local, parent Scope) Scope {
	return Scope{kind: FunctionScope, locals: locals, parent: clone(parent)}
}

// NewLambdaScope builds a scope exposing a closure's captures ahead of its
// own locals, chained to the scope enclosing the lambda expression.
func NewLambdaScope(captures []symbols.Capture, locals []Local, parent Scope) Scope {
	return Scope{kind: LambdaScope, captures: captures, locals: locals, parent: clone(parent)}
}

// NewContextScope builds a scope over a flat name->value map, used by the
// interactive/REPL context (spec §4.9 "ContextScope").
func NewContextScope(vars map[string]any, parent Scope) Scope {
	return Scope{kind: ContextScope, contextVars: vars, parent: clone(parent)}
}

// NewTemplateArgumentScope builds a scope binding each of params[i] to
// args[i], used while instantiating a template body.
func NewTemplateArgumentScope(params []symbols.TemplateParameter, args []symbols.TemplateArgument, parent Scope) Scope {
	return Scope{kind: TemplateArgumentScope, templateParams: params, templateArgs: args, parent: clone(parent)}
}

func clone(s Scope) *Scope {
	if s.IsNull() {
		return nil
	}
	cp := s
	return &cp
}

// EscapeTemplate returns the parent scope if this is a
// TemplateArgumentScope, or s unchanged otherwise (spec §4.4
// "escapeTemplate").
func (s Scope) EscapeTemplate() Scope {
	if s.kind == TemplateArgumentScope {
		return s.Parent()
	}
	return s
}

func (s Scope) IsClass() bool     { return s.kind == ClassScope }
func (s Scope) IsNamespace() bool { return s.kind == NamespaceScope || s.kind == ScriptScope }
func (s Scope) IsScript() bool    { return s.kind == ScriptScope }

func (s Scope) AsClass() *symbols.Class         { return s.class }
func (s Scope) AsNamespace() *symbols.Namespace { return s.namespace }
func (s Scope) AsEnum() *symbols.Enum           { return s.enum }
func (s Scope) AsScript() *symbols.Script       { return s.script }

// Child returns the named nested scope (a nested namespace or class),
// chained to s, or the null Scope if no such child exists.
func (s Scope) Child(name string) Scope {
	if s.namespace != nil {
		if ns := s.namespace.FindChildNamespace(name); ns != nil {
			return NewNamespaceScope(ns, s)
		}
		if c := s.namespace.FindClass(name); c != nil {
			return NewClassScope(c, s)
		}
	}
	if s.class != nil {
		for _, nc := range s.class.NestedClasses {
			if nc.Name() == name {
				return NewClassScope(nc, s)
			}
		}
	}
	return Scope{}
}

// Inject adds ns's members to s's visible names without mutating any other
// Scope value that might share s's backing data (copy-on-write, spec §4.4
// "inject(const Scope&)").
func (s Scope) Inject(ns *symbols.Namespace) Scope {
	cp := s
	cp.injected = append(append([]*symbols.Namespace(nil), s.injected...), ns)
	return cp
}

// Merge folds scp's injected namespaces, and scp's own namespace, into s
// one level deep (spec §4.4
// "merge(const Scope&)").
func (s Scope) Merge(scp Scope) Scope {
	cp := s
	cp.injected = append(append([]*symbols.Namespace(nil), s.injected...), scp.injected...)
	if scp.namespace != nil {
		cp.injected = append(cp.injected, scp.namespace)
	}
	return cp
}
