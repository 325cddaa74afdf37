// Package symbols implements the data model at the heart of the engine: the
// Type tag, prototypes, function/namespace/class/enum/template symbols, and
// the cyclic symbol graph that links them together (§3, §4.1, §4.3, §4.5 of
// SPEC_FULL.md).
//
// Type, Class, Enum, Function and Namespace live in one package, mirroring
// the original C++ library's single translation unit for these
// interdependent types (see DESIGN.md "Cyclic symbol graph"): a Class holds
// Functions, a Function's prototype holds Types, a Type may name a Class —
// splitting these across packages would force an artificial one-way
// dependency where the domain has none. The type *registry* (create/
// destroy/reserve/listeners/transactions, §4.1) is a separate concern and
// lives in internal/types, which imports this package.
//
// Grounded on _examples/original_source/include/script/types.h (Type bit
// layout) and _examples/CWBudde-go-dws/internal/interp/types/type_system.go
// (registry-of-registries package-splitting idiom, adapted here to keep the
// data model itself in one place and only the registry split out).
package symbols

// Type is a 32-bit tag: a base-type index plus flag bits for kind, const,
// reference, forwarding-reference, this-parameter and access specifier.
//
// Bit layout (grounded on original_source/include/script/types.h):
//
//	bits 0-15  : base type index (class/enum/closure/function-type id, or a
//	             BuiltIn* constant for fundamentals)
//	bit  16    : EnumFlag
//	bit  17    : ObjectFlag
//	bit  18    : LambdaFlag (closure type)
//	bit  19    : PrototypeFlag (function type)
//	bit  20    : ReferenceFlag
//	bit  21    : ConstFlag
//	bit  22    : ForwardReferenceFlag
//	bit  23    : ThisFlag
//	bits 24-25 : (reserved)
//	bit  26    : ProtectedFlag (access specifier for a data member's type slot)
//	bit  27    : PrivateFlag
type Type uint32

// TypeFlag is one bit of Type's flag region.
type TypeFlag uint32

const (
	NoFlag               TypeFlag = 0
	EnumFlag              TypeFlag = 1 << 16
	ObjectFlag           TypeFlag = 1 << 17
	LambdaFlag           TypeFlag = 1 << 18
	PrototypeFlag        TypeFlag = 1 << 19
	ReferenceFlag        TypeFlag = 1 << 20
	ConstFlag            TypeFlag = 1 << 21
	ForwardReferenceFlag TypeFlag = 1 << 22
	ThisFlag             TypeFlag = 1 << 23
	ProtectedFlag        TypeFlag = 1 << 26
	PrivateFlag          TypeFlag = 1 << 27
)

const baseTypeMask Type = 0x0000FFFF
const categoryMask TypeFlag = EnumFlag | ObjectFlag | LambdaFlag | PrototypeFlag

// Fundamental base-type indices.
const (
	BaseNull Type = iota
	BaseVoid
	BaseBoolean
	BaseChar
	BaseInt
	BaseFloat
	BaseDouble
	_ // reserved, matches original's gap at 7
	BaseInitializerList
	BaseAuto
	// FirstClassType is the base type index of the built-in String class;
	// user classes are registered at higher indices by the type registry.
	FirstClassType
	FirstEnumType Type = 1
)

// NewType constructs a Type from a base-type index and optional flags.
func NewType(base Type, flags TypeFlag) Type {
	return Type(uint32(base&baseTypeMask) | uint32(flags))
}

// Fundamental returns the Type for one of the built-in base types with no
// flags set.
func Fundamental(base Type) Type {
	return NewType(base, NoFlag)
}

var (
	Void   = Fundamental(BaseVoid)
	Bool   = Fundamental(BaseBoolean)
	Char   = Fundamental(BaseChar)
	Int    = Fundamental(BaseInt)
	Float  = Fundamental(BaseFloat)
	Double = Fundamental(BaseDouble)
)

// IsNull reports whether the type is the default zero Type.
func (t Type) IsNull() bool { return t == 0 }

// BaseType strips every flag, returning the bare base-type index wrapped as
// a Type (flags all cleared).
func (t Type) BaseType() Type { return t & baseTypeMask }

// baseIndex is the raw numeric base-type index.
func (t Type) baseIndex() Type { return t & baseTypeMask }

func (t Type) testFlagBits(f TypeFlag) bool { return uint32(t)&uint32(f) != 0 }

// TestFlag reports whether the given flag bit is set.
func (t Type) TestFlag(f TypeFlag) bool { return t.testFlagBits(f) }

// SetFlag returns a copy of t with f set.
func (t Type) SetFlag(f TypeFlag) Type { return t | Type(f) }

// WithFlag is an alias of SetFlag kept for readability at call sites that
// read as "type with flag X".
func (t Type) WithFlag(f TypeFlag) Type { return t.SetFlag(f) }

// WithoutFlag returns a copy of t with f cleared.
func (t Type) WithoutFlag(f TypeFlag) Type { return t &^ Type(f) }

// IsConst reports the const flag.
func (t Type) IsConst() bool { return t.testFlagBits(ConstFlag) }

// WithConst returns a copy of t with the const flag set or cleared.
func (t Type) WithConst(on bool) Type {
	if on {
		return t.SetFlag(ConstFlag)
	}
	return t.WithoutFlag(ConstFlag)
}

// WithoutConst strips the const flag (spec §3 "strip const/ref").
func (t Type) WithoutConst() Type { return t.WithoutFlag(ConstFlag) }

// IsReference reports the reference flag.
//
// Open Question (DESIGN.md #1): a raw forwarding-reference (ForwardReferenceFlag
// set, ReferenceFlag not yet set by deduction collapse) reports false here —
// it is not yet known to be a reference until template argument deduction
// collapses it to either a value type or ref(T).
func (t Type) IsReference() bool { return t.testFlagBits(ReferenceFlag) }

// IsForwardingReference reports the forwarding-reference flag (T&& with T a
// deduced template parameter, before collapse).
func (t Type) IsForwardingReference() bool { return t.testFlagBits(ForwardReferenceFlag) }

// WithoutRef strips the reference flag (spec §3 "strip const/ref").
func (t Type) WithoutRef() Type { return t.WithoutFlag(ReferenceFlag) }

// IsRefRef reports whether t is an rvalue reference, i.e. a forwarding
// reference that has collapsed to a reference.
func (t Type) IsRefRef() bool {
	return t.IsReference() && t.IsForwardingReference()
}

// IsConstRef reports whether t is both const and a reference.
func (t Type) IsConstRef() bool { return t.IsConst() && t.IsReference() }

// IsThis reports the this-parameter flag.
func (t Type) IsThis() bool { return t.testFlagBits(ThisFlag) }

// WithThis returns a copy of t marked as a this-parameter.
func (t Type) WithThis() Type { return t.SetFlag(ThisFlag) }

// Category returns the masked kind bits (enum/object/lambda/prototype or
// NoFlag for a fundamental).
func (t Type) Category() TypeFlag { return TypeFlag(t) & categoryMask }

func (t Type) IsFundamentalType() bool { return t.Category() == NoFlag && !t.IsVoid() }
func (t Type) IsVoid() bool            { return t.BaseType() == Void }
func (t Type) IsObjectType() bool      { return t.testFlagBits(ObjectFlag) }
func (t Type) IsEnumType() bool        { return t.testFlagBits(EnumFlag) }
func (t Type) IsClosureType() bool     { return t.testFlagBits(LambdaFlag) }
func (t Type) IsFunctionType() bool    { return t.testFlagBits(PrototypeFlag) }

// Access returns the access specifier encoded on a data member's type slot.
func (t Type) Access() AccessSpecifier {
	switch {
	case t.testFlagBits(PrivateFlag):
		return Private
	case t.testFlagBits(ProtectedFlag):
		return Protected
	default:
		return Public
	}
}

// WithAccess returns a copy of t with the access bits set to as.
func (t Type) WithAccess(as AccessSpecifier) Type {
	t = t.WithoutFlag(PrivateFlag).WithoutFlag(ProtectedFlag)
	switch as {
	case Private:
		return t.SetFlag(PrivateFlag)
	case Protected:
		return t.SetFlag(ProtectedFlag)
	default:
		return t
	}
}

// Ref constructs a non-const lvalue reference to base.
func Ref(base Type) Type { return base.WithoutConst().SetFlag(ReferenceFlag) }

// CRef constructs a const lvalue reference to base.
func CRef(base Type) Type { return base.WithConst(true).SetFlag(ReferenceFlag) }

// RRef constructs an rvalue (forwarding) reference to base.
func RRef(base Type) Type {
	return base.WithoutConst().SetFlag(ReferenceFlag).SetFlag(ForwardReferenceFlag)
}

// Equal reports strict equality of the full bit pattern.
func (t Type) Equal(other Type) bool { return t == other }

// EqualIgnoringTopLevelCVRef reports equality ignoring const/reference bits,
// used by prototype/overload comparisons that only care about the
// underlying entity.
func (t Type) EqualIgnoringTopLevelCVRef(other Type) bool {
	return t.WithoutConst().WithoutRef() == other.WithoutConst().WithoutRef()
}
