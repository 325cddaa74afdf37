package symbols

// FunctionKind distinguishes the different roles a Function symbol can
// play, per spec §3 "Function (symbol)".
type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindConstructor
	KindDestructor
	KindCast
	KindOperator
	KindLiteralOperator
)

// Body is whatever executable payload a Function carries: either compiled
// IR (opaque to this package — see internal/interp) or a native Go
// callback. Exactly one is set for a callable function; both are nil for a
// pure declaration (e.g. a pure-virtual function).
type Body struct {
	IR     any // an ir.Stmt, opaque here to avoid a symbols->interp import cycle
	Native NativeCallback
}

// NativeCallback is the signature every host-registered native function
// implements; Frame is interp's execution frame, exposed here as an
// interface so this package need not import interp.
type NativeCallback func(frame CallFrame) (any, error)

// CallFrame is the minimal view of an execution frame a native callback
// needs: its arguments and a way to signal failure. The concrete type
// lives in internal/interp; this interface breaks the import cycle.
type CallFrame interface {
	ArgCount() int
	Arg(i int) any
}

// Function is a callable symbol: a free function, operator, cast,
// constructor, destructor or literal operator.
//
// Invariants (spec §3):
//   - non-static member functions have a this parameter at position 0
//     carrying ThisFlag;
//   - IsConst() iff that parameter is cref;
//   - a deleted function (Flags.Test(Delete)) must never be invoked — §4.2/§4.7
//     callers check this before dispatch.
type Function struct {
	Kind FunctionKind

	// Name holds a plain identifier for KindFunction/Constructor/Destructor/
	// LiteralOperator, an OperatorName for KindOperator, or a target Type
	// for KindCast.
	Name Name

	Prototype *Prototype
	Flags     FunctionFlags

	enclosing Symbol

	Body Body

	// DefaultArgs are stored in reverse: index 0 is the default for the
	// *last* parameter. Deliberate convention carried over unchanged from
	// the original (see DESIGN.md / spec §9 "Default arguments stored in
	// reverse") because it simplifies "fill missing tail" logic at call
	// sites: callers only ever need DefaultArgs[:missingCount].
	DefaultArgs []DefaultArgumentExpr

	// VTableIndex is this function's slot in its class's virtual table, or
	// -1 if the function is not virtual.
	VTableIndex int

	UserData any
}

// DefaultArgumentExpr is a lazily-evaluated default-argument expression;
// opaque to this package (compiler-produced IR), evaluated by the
// interpreter at call sites when the caller omits the tail of the argument
// list (spec §4.5).
type DefaultArgumentExpr any

// NewFunction constructs a free (non-member) Function with no body yet.
func NewFunction(kind FunctionKind, name Name, proto *Prototype) *Function {
	return &Function{Kind: kind, Name: name, Prototype: proto, VTableIndex: -1}
}

func (f *Function) SymbolName() Name   { return f.Name }
func (f *Function) Enclosing() Symbol  { return f.enclosing }
func (f *Function) SetEnclosing(s Symbol) { f.enclosing = s }

// IsMemberFunction reports whether the function's prototype has a leading
// this-parameter.
func (f *Function) IsMemberFunction() bool {
	return f.Prototype.Count() > 0 && f.Prototype.At(0).IsThis()
}

// IsConst reports whether a non-static member function's this-parameter is
// cref (spec §3 invariant).
func (f *Function) IsConst() bool {
	if !f.IsMemberFunction() {
		return false
	}
	this := f.Prototype.At(0)
	return this.IsConst() && this.IsReference()
}

// SetStatic marks the function static and, per spec §4.5, strips the
// this-parameter if one is present.
func (f *Function) SetStatic() {
	f.Flags.Set(Static)
	if f.IsMemberFunction() {
		params := f.Prototype.Parameters()
		np := NewPrototype(f.Prototype.ReturnType(), params[1:]...)
		f.Prototype = np
	}
}

func (f *Function) IsStatic() bool   { return f.Flags.Test(Static) }
func (f *Function) IsVirtual() bool  { return f.Flags.Test(Virtual) }
func (f *Function) IsPure() bool     { return f.Flags.Test(Pure) }
func (f *Function) IsDeleted() bool  { return f.Flags.Test(Delete) }
func (f *Function) IsDefaulted() bool { return f.Flags.Test(Default) }
func (f *Function) IsExplicit() bool { return f.Flags.Test(Explicit) }

// IsNative reports whether this function invokes a Go callback rather than
// interpreted IR.
func (f *Function) IsNative() bool { return f.Body.Native != nil }

// ReturnType is a convenience accessor.
func (f *Function) ReturnType() Type { return f.Prototype.ReturnType() }

// ParameterCount excluding a leading this-parameter, matching the
// caller-visible arity.
func (f *Function) ParameterCount() int {
	n := f.Prototype.Count()
	if f.IsMemberFunction() {
		return n - 1
	}
	return n
}

// classifyConstructor identifies whether a 1- or 2-parameter constructor is
// the default, copy or move constructor of ownerType, per spec §4.3:
// "1 = default; 2 with second parameter cref(Class) = copy; 2 with
// rref(Class) = move."
func classifyConstructor(proto *Prototype, ownerType Type) ctorRole {
	n := proto.Count()
	// proto includes the leading this-parameter for member functions.
	params := n - 1
	switch params {
	case 0:
		return ctorDefault
	case 1:
		p := proto.At(1)
		base := p.WithoutConst().WithoutRef()
		if base.BaseType() != ownerType.BaseType() {
			return ctorOther
		}
		if p.IsReference() {
			if p.IsConst() && !p.IsForwardingReference() {
				return ctorCopy
			}
			if p.IsForwardingReference() {
				return ctorMove
			}
		}
		return ctorOther
	default:
		return ctorOther
	}
}

type ctorRole int

const (
	ctorOther ctorRole = iota
	ctorDefault
	ctorCopy
	ctorMove
)
