package symbols

// DataMember describes one non-static field of a class.
type DataMember struct {
	Type   Type
	Name   string
	Access AccessSpecifier
}

// StaticDataMember is a class-level variable: name, current value (opaque
// — *value.Value from internal/value, kept as any to avoid an import
// cycle) and access.
type StaticDataMember struct {
	Name   string
	Value  any
	Access AccessSpecifier
}

// Cast is a user-defined conversion function (spec §3 Class "casts").
type Cast struct {
	Function *Function
	Dest     Type
}

// Class is a user-defined (or built-in, e.g. String) class type: identifier,
// optional single parent, members, special member functions, nested
// entities, a virtual table, and friend declarations.
//
// Invariants (spec §3):
//   - a non-null Parent is a class already registered;
//   - IsAbstract() ⟺ VTable contains a pure-virtual entry;
//   - data-member access is stored in the member's own Access field (mirrors
//     the type's access bits per spec, exposed directly here rather than
//     re-deriving it from Type.Access on every read);
//   - AttributesOffset() = Parent.CumulatedDataMemberCount().
type Class struct {
	ID     Type // this class's own type id, assigned by the type registry
	name   string
	Parent *Class
	Final  bool

	DataMembers       []DataMember
	StaticDataMembers []StaticDataMember

	Constructors        []*Function
	DefaultConstructor   *Function
	CopyConstructor      *Function
	MoveConstructor      *Function
	Destructor           *Function

	MemberFunctions []*Function
	Operators       []*Function
	Casts           []Cast

	NestedClasses   []*Class
	NestedEnums     []*Enum
	NestedTemplates []*Template
	Typedefs        map[string]Type

	FriendFunctions []*Function
	FriendClasses   []*Class

	// VTable is the ordered list of overridable member functions. Entries
	// below parent.VTable's length either override or reuse the
	// corresponding base entry (spec §8 testable property).
	VTable []*Function

	enclosing Symbol
	UserData  any
}

// NewClass creates an empty, unregistered class. The type registry (§4.1)
// assigns ID when the class is registered.
func NewClass(name string, parent *Class) *Class {
	c := &Class{name: name, Parent: parent, Typedefs: make(map[string]Type)}
	if parent != nil {
		c.VTable = append(c.VTable, parent.VTable...)
	}
	return c
}

func (c *Class) SymbolName() Name      { return NewStringName(ClassSymbol, c.name) }
func (c *Class) Enclosing() Symbol     { return c.enclosing }
func (c *Class) SetEnclosing(s Symbol) { c.enclosing = s }
func (c *Class) Name() string          { return c.name }

// IsAbstract reports whether the vtable holds a pure-virtual entry.
func (c *Class) IsAbstract() bool {
	for _, f := range c.VTable {
		if f != nil && f.IsPure() {
			return true
		}
	}
	return false
}

// CumulatedDataMemberCount returns the total data-member count including
// all ancestors, used by AttributesOffset.
func (c *Class) CumulatedDataMemberCount() int {
	n := len(c.DataMembers)
	if c.Parent != nil {
		n += c.Parent.CumulatedDataMemberCount()
	}
	return n
}

// AttributesOffset is the index at which this class's own data members
// begin within an object's flattened member-value vector: the parent's
// cumulated data-member count (spec §3 Class invariant).
func (c *Class) AttributesOffset() int {
	if c.Parent == nil {
		return 0
	}
	return c.Parent.CumulatedDataMemberCount()
}

// InheritanceDepth returns the number of Parent hops from c to ancestor, 0
// if c == ancestor, or -1 if ancestor is not a base of c. Used by the
// conversion engine (§4.2) to rank derived-to-base conversions.
func (c *Class) InheritanceDepth(ancestor *Class) int {
	depth := 0
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return depth
		}
		depth++
	}
	return -1
}

// IsDerivedFrom reports whether c inherits (directly or indirectly) from
// ancestor, or is itself ancestor.
func (c *Class) IsDerivedFrom(ancestor *Class) bool {
	return c.InheritanceDepth(ancestor) >= 0
}

// AddDataMember appends a new data member and returns its index.
func (c *Class) AddDataMember(dm DataMember) int {
	c.DataMembers = append(c.DataMembers, dm)
	return len(c.DataMembers) - 1
}

// AddFunction dispatches f into the right bucket (operators/casts/
// constructors/destructor/member functions) and, for non-static members,
// updates the virtual table per spec §4.3:
//
//	if the function matches the signature of a base vtable entry, that
//	entry is replaced and the function is marked virtual (re-checking
//	abstractness if the replaced entry was pure); otherwise, if the
//	function is itself marked virtual, it is appended.
func (c *Class) AddFunction(f *Function) {
	f.SetEnclosing(c)

	switch f.Kind {
	case KindOperator:
		c.Operators = append(c.Operators, f)
	case KindCast:
		c.Casts = append(c.Casts, Cast{Function: f, Dest: f.ReturnType()})
	case KindConstructor:
		c.Constructors = append(c.Constructors, f)
		switch classifyConstructor(f.Prototype, c.ID) {
		case ctorDefault:
			c.DefaultConstructor = f
		case ctorCopy:
			c.CopyConstructor = f
		case ctorMove:
			c.MoveConstructor = f
		}
		return
	case KindDestructor:
		c.Destructor = f
		return
	default:
		c.MemberFunctions = append(c.MemberFunctions, f)
	}

	c.updateVTable(f)
}

func (c *Class) updateVTable(f *Function) {
	for i, base := range c.VTable {
		if base != nil && overrides(f, base) {
			c.VTable[i] = f
			f.Flags.Set(Virtual)
			f.VTableIndex = i
			return
		}
	}
	if f.IsVirtual() {
		f.VTableIndex = len(c.VTable)
		c.VTable = append(c.VTable, f)
	}
}

// overrides reports whether candidate has the same name and parameter
// types (ignoring the this-parameter and cv-qualification on it) as base,
// qualifying it to replace base in the vtable.
func overrides(candidate, base *Function) bool {
	if !candidate.Name.Equal(base.Name) {
		return false
	}
	cp, bp := candidate.Prototype, base.Prototype
	if cp.Count() != bp.Count() {
		return false
	}
	// Skip index 0 (this) which differs only in const-qualification
	// between an overrider and its base.
	for i := 1; i < cp.Count(); i++ {
		if !cp.At(i).EqualIgnoringTopLevelCVRef(bp.At(i)) {
			return false
		}
	}
	return true
}

// FindMethod returns the first member function (including inherited, most
// derived first) matching name, or nil.
func (c *Class) FindMethod(name string) *Function {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, f := range cur.MemberFunctions {
			if f.Name.Str == name {
				return f
			}
		}
	}
	return nil
}

// FindDataMember returns the (class, index) of the first data member named
// name found walking from c up through ancestors (most-derived first), or
// (nil, -1).
func (c *Class) FindDataMember(name string) (*Class, int) {
	for cur := c; cur != nil; cur = cur.Parent {
		for i, dm := range cur.DataMembers {
			if dm.Name == name {
				return cur, i
			}
		}
	}
	return nil, -1
}
