package symbols

// Var is a namespace- or script-level variable binding: name to current
// value. The value type is kept as `any` (really *value.Value) to avoid an
// import cycle between symbols and value.
type Var struct {
	Name  string
	Value any
}

// Namespace holds nested declarations: vars, enums, classes, functions,
// operators, literal operators, nested namespaces, templates and typedefs
// (spec §3 "Namespace").
type Namespace struct {
	name      string
	enclosing Symbol

	Vars            map[string]*Var
	Enums           []*Enum
	Classes         []*Class
	Functions       map[string][]*Function // overload sets keyed by name
	Operators       []*Function
	LiteralOperators map[string][]*Function // keyed by literal suffix
	Namespaces      []*Namespace
	Templates       []*Template
	Typedefs        map[string]Type
}

// NewNamespace creates an empty namespace. name == "" denotes the global
// namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		name:             name,
		Vars:             make(map[string]*Var),
		Functions:        make(map[string][]*Function),
		LiteralOperators: make(map[string][]*Function),
		Typedefs:         make(map[string]Type),
	}
}

func (n *Namespace) SymbolName() Name      { return NewStringName(NamespaceSymbol, n.name) }
func (n *Namespace) Enclosing() Symbol     { return n.enclosing }
func (n *Namespace) SetEnclosing(s Symbol) { n.enclosing = s }
func (n *Namespace) Name() string          { return n.name }

// GetOrCreateNamespace adds and returns a nested namespace, reusing an existing one
// of the same name if present (namespaces, unlike classes, can be reopened).
func (n *Namespace) GetOrCreateNamespace(name string) *Namespace {
	for _, child := range n.Namespaces {
		if child.name == name {
			return child
		}
	}
	child := NewNamespace(name)
	child.SetEnclosing(n)
	n.Namespaces = append(n.Namespaces, child)
	return child
}

// AddClass registers a nested class and sets its enclosing symbol.
func (n *Namespace) AddClass(c *Class) {
	c.SetEnclosing(n)
	n.Classes = append(n.Classes, c)
}

// AddEnum registers a nested enum and sets its enclosing symbol.
func (n *Namespace) AddEnum(e *Enum) {
	e.SetEnclosing(n)
	n.Enums = append(n.Enums, e)
}

// AddFunction dispatches f into operators/literal-operators/functions by
// kind (spec §4.3 "Adding a function to a parent").
func (n *Namespace) AddFunction(f *Function) {
	f.SetEnclosing(n)
	switch f.Kind {
	case KindOperator:
		n.Operators = append(n.Operators, f)
	case KindLiteralOperator:
		n.LiteralOperators[f.Name.Str] = append(n.LiteralOperators[f.Name.Str], f)
	default:
		n.Functions[f.Name.Str] = append(n.Functions[f.Name.Str], f)
	}
}

// AddTemplate registers a nested template.
func (n *Namespace) AddTemplate(t *Template) {
	t.SetEnclosing(n)
	n.Templates = append(n.Templates, t)
}

// SetVar creates or updates a namespace-level variable binding.
func (n *Namespace) SetVar(name string, value any) {
	if v, ok := n.Vars[name]; ok {
		v.Value = value
		return
	}
	n.Vars[name] = &Var{Name: name, Value: value}
}

// Destroy cascades destruction through the namespace's children, per spec
// §4.3 "Destroying a namespace or class cascades": clear vars, enums,
// nested classes, and function/operator/template/typedef lists. It does
// not unregister types from the registry — that is the registry's job
// (internal/types.Registry.Destroy), which does not call this method; this
// method only clears this Namespace's own bookkeeping.
func (n *Namespace) Destroy() {
	n.Vars = make(map[string]*Var)
	n.Enums = nil
	n.Classes = nil
	n.Functions = make(map[string][]*Function)
	n.Operators = nil
	n.LiteralOperators = make(map[string][]*Function)
	n.Namespaces = nil
	n.Templates = nil
	n.Typedefs = make(map[string]Type)
}

// FindChildNamespace returns a direct child namespace by name, or nil.
func (n *Namespace) FindChildNamespace(name string) *Namespace {
	for _, c := range n.Namespaces {
		if c.name == name {
			return c
		}
	}
	return nil
}

// FindClass returns a direct child class by name, or nil.
func (n *Namespace) FindClass(name string) *Class {
	for _, c := range n.Classes {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// FindEnum returns a direct child enum by name, or nil.
func (n *Namespace) FindEnum(name string) *Enum {
	for _, e := range n.Enums {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// NamespaceAlias is a stored alias from a short name to a resolved
// namespace, installed by `namespace X = A::B::C;` (spec §6).
type NamespaceAlias struct {
	Name   string
	Target *Namespace
}
