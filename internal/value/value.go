// Package value implements the reference-counted value model (§4.7 of
// SPEC_FULL.md, C7): a cheap-to-copy Value handle wrapping one of several
// concrete payload kinds (fundamentals, strings, user objects, arrays,
// lambdas, function references, enumerators, initializer lists).
//
// Grounded on _examples/original_source/include/script/value.h (the public
// handle) and _examples/original_source/src/value.cpp plus
// include/script/private/value_p.h (the concrete *Value kinds); the
// refcounting discipline itself is adapted from the teacher's
// internal/interp/runtime/refcount.go (RefCountManager), generalized from
// the teacher's two-kind object/interface model to this package's richer
// kind set.
package value

import "github.com/strandfield/libscript/internal/symbols"

// Kind tags which concrete payload a Value wraps.
type Kind int

const (
	KindVoid Kind = iota
	KindFundamental
	KindReference // CppReferenceValue<T>: borrowed, destroy is a no-op
	KindObject    // HybridCppValue<T> or ScriptValue: user-defined class instance
	KindArray
	KindLambda
	KindFunction
	KindEnumerator
	KindInitializerList
)

// Object is the payload of a user-defined class instance: an optional
// opaque native payload (HybridCppValue<T>'s T, nil for pure-script
// classes) plus the flattened script-visible data members, indexed the way
// Class.AttributesOffset/CumulatedDataMemberCount lay them out.
type Object struct {
	Native  any
	Members []*Value
}

// Array is the payload of an Array<T> instance: a dynamically sized slice
// of element values, all of the same element type.
type Array struct {
	ElementType symbols.Type
	Elements    []*Value
}

// Lambda is the payload of a closure instance: the values captured at
// lambda-creation time, parallel to the ClosureType's Captures list.
type Lambda struct {
	ClosureType *symbols.ClosureType
	Captures    []*Value
}

// Enumerator is the payload of an enum value: which Enum, and which
// integer value.
type Enumerator struct {
	Enum  *symbols.Enum
	Value int
}

// InitializerList is the payload of a `{a, b, c}` initializer-list value:
// the element values themselves, in order.
type InitializerList struct {
	Elements []*Value
}

// Value is the public, cheap-to-copy handle: a Type tag plus a pointer to
// shared, refcounted state. Equality of two Values means identity of the
// underlying state (spec §4.7 "Equality is identity of the underlying
// object").
type Value struct {
	Type Type
	data *data
}

// Type is a re-export of symbols.Type, kept as a distinct name in this
// package's public surface to match the spec's vocabulary ("Value.Type")
// without forcing every caller to import internal/symbols just to read it.
type Type = symbols.Type

type data struct {
	kind Kind
	refs int

	fundamental any // bool, rune (char), int64, float32, float64

	ref *Value // KindReference target; destroying never touches it

	object     *Object
	array      *Array
	lambda     *Lambda
	fn         *symbols.Function // KindFunction payload
	enumerator *Enumerator
	initList   *InitializerList
}

// Void is the shared singleton void value (spec §4.7 "the Void singleton
// is exempt" from destruction).
var Void = &Value{Type: symbols.Void, data: &data{kind: KindVoid, refs: 1}}

// IsNull reports whether v is the zero Value (no type, no payload).
func (v *Value) IsNull() bool { return v == nil || v.data == nil }

func (v *Value) Kind() Kind {
	if v.IsNull() {
		return KindVoid
	}
	return v.data.kind
}

// RefCount returns the current reference count, or 0 for a null value.
func (v *Value) RefCount() int {
	if v.IsNull() {
		return 0
	}
	return v.data.refs
}

// IsReference reports whether v is a borrowed reference (CppReferenceValue),
// whose destruction never touches the referent (spec §4.7).
func (v *Value) IsReference() bool { return v.Kind() == KindReference }

// Deref returns the value a KindReference points to, or v itself otherwise.
func (v *Value) Deref() *Value {
	if v.Kind() == KindReference {
		return v.data.ref
	}
	return v
}

func newFundamental(t Type, payload any) *Value {
	return &Value{Type: t, data: &data{kind: KindFundamental, refs: 1, fundamental: payload}}
}

func NewBool(b bool) *Value       { return newFundamental(symbols.Bool, b) }
func NewChar(c rune) *Value       { return newFundamental(symbols.Char, c) }
func NewInt(n int64) *Value       { return newFundamental(symbols.Int, n) }
func NewFloat(f float32) *Value   { return newFundamental(symbols.Float, f) }
func NewDouble(d float64) *Value  { return newFundamental(symbols.Double, d) }

// AsBool/AsChar/AsInt/AsFloat/AsDouble panic if v does not hold that
// concrete fundamental kind — callers are expected to have validated the
// Type before reaching into the payload, mirroring the original's
// unchecked `get<T>()` accessor.
func (v *Value) AsBool() bool      { return v.data.fundamental.(bool) }
func (v *Value) AsChar() rune      { return v.data.fundamental.(rune) }
func (v *Value) AsInt() int64      { return v.data.fundamental.(int64) }
func (v *Value) AsFloat() float32  { return v.data.fundamental.(float32) }
func (v *Value) AsDouble() float64 { return v.data.fundamental.(float64) }

// NewReference wraps target as a borrowed reference of type t (typically
// Ref(target.Type)).
func NewReference(t Type, target *Value) *Value {
	return &Value{Type: t, data: &data{kind: KindReference, refs: 1, ref: target}}
}

// NewObject creates a user-defined class instance with memberCount
// pre-allocated, nil-valued data-member slots.
func NewObject(t Type, native any, memberCount int) *Value {
	return &Value{Type: t, data: &data{kind: KindObject, refs: 1, object: &Object{Native: native, Members: make([]*Value, memberCount)}}}
}

func (v *Value) Object() *Object { return v.data.object }

// NewArray creates an Array<T> instance over elementType with no elements.
func NewArray(t, elementType Type) *Value {
	return &Value{Type: t, data: &data{kind: KindArray, refs: 1, array: &Array{ElementType: elementType}}}
}

func (v *Value) Array() *Array { return v.data.array }

// NewLambda creates a closure instance capturing the given values, in
// Captures order (spec §4.8 "LambdaExpression evaluates each capture
// expression in order, and stores").
func NewLambda(t Type, ct *symbols.ClosureType, captures []*Value) *Value {
	return &Value{Type: t, data: &data{kind: KindLambda, refs: 1, lambda: &Lambda{ClosureType: ct, Captures: captures}}}
}

func (v *Value) Lambda() *Lambda { return v.data.lambda }

// NewFunctionValue wraps a Function symbol as a first-class value (used for
// function pointers/references).
func NewFunctionValue(t Type, f *symbols.Function) *Value {
	return &Value{Type: t, data: &data{kind: KindFunction, refs: 1, fn: f}}
}

func (v *Value) Function() *symbols.Function { return v.data.fn }

// NewEnumerator creates an enum value.
func NewEnumerator(t Type, e *symbols.Enum, val int) *Value {
	return &Value{Type: t, data: &data{kind: KindEnumerator, refs: 1, enumerator: &Enumerator{Enum: e, Value: val}}}
}

func (v *Value) Enumerator() *Enumerator { return v.data.enumerator }

// NewInitializerList wraps a [begin,end) range of already-produced element
// values.
func NewInitializerList(t Type, elements []*Value) *Value {
	return &Value{Type: t, data: &data{kind: KindInitializerList, refs: 1, initList: &InitializerList{Elements: elements}}}
}

func (v *Value) InitializerList() *InitializerList { return v.data.initList }
