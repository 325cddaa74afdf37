package symbols

// TemplateParameterKind distinguishes a type parameter from a non-type
// (value) parameter (spec §3 "Template").
type TemplateParameterKind int

const (
	TypeParameter TemplateParameterKind = iota
	NonTypeParameter
)

// TemplateParameter is one formal parameter of a template.
type TemplateParameter struct {
	Kind TemplateParameterKind
	Name string
	// NonTypeType is the type of a non-type parameter (e.g. `int N`);
	// meaningless for TypeParameter.
	NonTypeType Type
	HasDefault  bool
	Default     TemplateArgument
}

// TemplateArgumentKind tags a TemplateArgument's payload.
type TemplateArgumentKind int

const (
	TypeArgument TemplateArgumentKind = iota
	IntegerArgument
	BoolArgument
	PackArgument
)

// TemplateArgument is a tagged union: a type, an integer, a bool-constant,
// or a pack of further arguments (spec §3 "A template argument is a tagged
// union").
type TemplateArgument struct {
	Kind    TemplateArgumentKind
	Type    Type
	Integer int
	Bool    bool
	Pack    []TemplateArgument
}

func TypeArg(t Type) TemplateArgument        { return TemplateArgument{Kind: TypeArgument, Type: t} }
func IntArg(n int) TemplateArgument          { return TemplateArgument{Kind: IntegerArgument, Integer: n} }
func BoolArg(b bool) TemplateArgument        { return TemplateArgument{Kind: BoolArgument, Bool: b} }
func PackArg(args ...TemplateArgument) TemplateArgument {
	return TemplateArgument{Kind: PackArgument, Pack: args}
}

// Equal compares two template arguments for the purpose of instance-cache
// keying and deduction agglomeration.
func (a TemplateArgument) Equal(b TemplateArgument) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeArgument:
		return a.Type == b.Type
	case IntegerArgument:
		return a.Integer == b.Integer
	case BoolArgument:
		return a.Bool == b.Bool
	case PackArgument:
		if len(a.Pack) != len(b.Pack) {
			return false
		}
		for i := range a.Pack {
			if !a.Pack[i].Equal(b.Pack[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TemplateArgumentKey renders an argument list into a comparable map key
// for instance caches (spec §4.6 "An instance is keyed by its argument
// vector").
func TemplateArgumentKey(args []TemplateArgument) string {
	var sb []byte
	for i, a := range args {
		if i > 0 {
			sb = append(sb, ',')
		}
		sb = appendArgKey(sb, a)
	}
	return string(sb)
}

func appendArgKey(sb []byte, a TemplateArgument) []byte {
	switch a.Kind {
	case TypeArgument:
		sb = append(sb, 'T')
		sb = appendUint(sb, uint32(a.Type))
	case IntegerArgument:
		sb = append(sb, 'I')
		sb = appendUint(sb, uint32(a.Integer))
	case BoolArgument:
		if a.Bool {
			sb = append(sb, 'B', '1')
		} else {
			sb = append(sb, 'B', '0')
		}
	case PackArgument:
		sb = append(sb, 'P', '[')
		for i, p := range a.Pack {
			if i > 0 {
				sb = append(sb, ',')
			}
			sb = appendArgKey(sb, p)
		}
		sb = append(sb, ']')
	}
	return sb
}

func appendUint(sb []byte, v uint32) []byte {
	if v == 0 {
		return append(sb, '0')
	}
	var tmp [10]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(sb, tmp[i:]...)
}

// ClassTemplateInstantiator builds the Class instance for a concrete
// argument vector, either by re-entering the compiler on a stored
// script-defined body or by invoking a native factory. Opaque to this
// package's own data; lives in internal/template.
type ClassTemplateInstantiator func(args []TemplateArgument) (*Class, error)
type FunctionTemplateInstantiator func(args []TemplateArgument) (*Function, error)

// PartialSpecialization is a class-template variant parametrized over a
// pattern that pins some (or all) of the primary template's parameters
// (spec glossary "Partial specialization").
type PartialSpecialization struct {
	Parameters []TemplateParameter
	// ArgumentPatterns mirrors the primary template's argument list but
	// with patterns instead of concrete arguments — opaque pattern AST,
	// interpreted by internal/template's deduction algorithm.
	ArgumentPatterns []any
	Instantiate      ClassTemplateInstantiator
}

// Template is the common representation of class and function templates
// (spec §3 "Template" / §4.6).
type Template struct {
	name       string
	Parameters []TemplateParameter
	scope      any // *scope.Scope, kept opaque to avoid an import cycle
	enclosing  Symbol

	// Exactly one of these instantiators is set, selecting whether this is
	// a class template or a function template.
	ClassInstantiate    ClassTemplateInstantiator
	FunctionInstantiate FunctionTemplateInstantiator

	// ClassInstances/FunctionInstances cache instantiations by argument key
	// (spec §4.6 "Instantiation ... idempotent").
	ClassInstances    map[string]*Class
	FunctionInstances map[string]*Function

	// instanceArgs records the argument vector each cached instance was
	// built from, so InstanceOf/Arguments (spec §8 testable property) can
	// answer "which template, which arguments" for a given instance.
	classInstanceArgs    map[*Class][]TemplateArgument
	functionInstanceArgs map[*Function][]TemplateArgument

	PartialSpecializations []*PartialSpecialization
}

// NewClassTemplate creates a class template.
func NewClassTemplate(name string, params []TemplateParameter, instantiate ClassTemplateInstantiator) *Template {
	return &Template{
		name:              name,
		Parameters:        params,
		ClassInstantiate:  instantiate,
		ClassInstances:    make(map[string]*Class),
		classInstanceArgs: make(map[*Class][]TemplateArgument),
	}
}

// NewFunctionTemplate creates a function template.
func NewFunctionTemplate(name string, params []TemplateParameter, instantiate FunctionTemplateInstantiator) *Template {
	return &Template{
		name:                 name,
		Parameters:           params,
		FunctionInstantiate:  instantiate,
		FunctionInstances:    make(map[string]*Function),
		functionInstanceArgs: make(map[*Function][]TemplateArgument),
	}
}

func (t *Template) SymbolName() Name      { return NewStringName(TemplateSymbolKind, t.name) }
func (t *Template) Enclosing() Symbol     { return t.enclosing }
func (t *Template) SetEnclosing(s Symbol) { t.enclosing = s }
func (t *Template) Name() string          { return t.name }
func (t *Template) IsClassTemplate() bool { return t.ClassInstantiate != nil }

// GetClassInstance returns the cached instance for args, instantiating and
// caching it on first use (spec §4.6 "getInstance(args) is idempotent").
func (t *Template) GetClassInstance(args []TemplateArgument) (*Class, error) {
	key := TemplateArgumentKey(args)
	if c, ok := t.ClassInstances[key]; ok {
		return c, nil
	}
	c, err := t.ClassInstantiate(args)
	if err != nil {
		return nil, err
	}
	t.ClassInstances[key] = c
	t.classInstanceArgs[c] = append([]TemplateArgument(nil), args...)
	return c, nil
}

// GetFunctionInstance returns the cached instance for args, instantiating
// and caching it on first use.
func (t *Template) GetFunctionInstance(args []TemplateArgument) (*Function, error) {
	key := TemplateArgumentKey(args)
	if f, ok := t.FunctionInstances[key]; ok {
		return f, nil
	}
	f, err := t.FunctionInstantiate(args)
	if err != nil {
		return nil, err
	}
	t.FunctionInstances[key] = f
	t.functionInstanceArgs[f] = append([]TemplateArgument(nil), args...)
	return f, nil
}

// InstanceArgumentsOfClass reports whether c was instantiated from t and, if so,
// the argument vector used (spec §8 testable property: "getInstance(A) ...
// returns a function whose instanceOf() is the template and arguments() == A").
func (t *Template) InstanceArgumentsOfClass(c *Class) ([]TemplateArgument, bool) {
	args, ok := t.classInstanceArgs[c]
	return args, ok
}

// InstanceArgumentsOfFunction is the function-template analogue of
// InstanceArgumentsOfClass.
func (t *Template) InstanceArgumentsOfFunction(f *Function) ([]TemplateArgument, bool) {
	args, ok := t.functionInstanceArgs[f]
	return args, ok
}
