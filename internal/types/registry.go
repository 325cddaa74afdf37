// Package types implements the type registry (§4.1 of SPEC_FULL.md, C1):
// assigning and resolving type ids, storing class/enum/closure/function-type
// metadata, notifying listeners on create/destroy, and supporting
// transactional rollback.
//
// Grounded on _examples/CWBudde-go-dws/internal/interp/types/type_system.go
// (a single registry-of-registries struct fronting per-kind maps) and
// _examples/original_source/include/script/typesystem.h (reserve/register/
// destroy/exists contract). Unlike the teacher's case-insensitive
// string-keyed maps (DWScript is Pascal-flavored), this registry is keyed
// by the numeric Type id throughout, per spec §4.1 "parallel vectors
// indexed by the low bits of a type id" — the surface language here is
// case-sensitive C++-flavored, so no identifier-folding layer is needed.
package types

import (
	"fmt"

	"github.com/strandfield/libscript/internal/symbols"
)

// Listener receives Created/Destroyed notifications, exactly once per
// successful registration/unregistration (spec §4.1 "Listeners").
type Listener interface {
	Created(t symbols.Type)
	Destroyed(t symbols.Type)
}

type slotKind int

const (
	slotClass slotKind = iota
	slotEnum
	slotClosure
	slotFunctionType
)

type slot struct {
	kind     slotKind
	class    *symbols.Class
	enum     *symbols.Enum
	closure  *symbols.ClosureType
	fnType   *symbols.FunctionType
	reserved bool // true once the index exists but before register_* fills it
}

// Registry is the type registry: four parallel slices (one per kind,
// conceptually — here unified into one slice of tagged slots, indexed by
// the low bits of the type id) plus listeners and an active-transaction
// guard.
type Registry struct {
	slots []slot
	// nextID starts above the fundamentals/String reserved range (spec §3
	// "Fundamental bases"), matching the original's FirstClassType.
	nextID symbols.Type

	listeners []Listener

	fnTypeByProto map[string]*symbols.FunctionType

	activeTransaction *Transaction
}

// NewRegistry creates an empty registry. Index 0 is never handed out (it
// aliases symbols.BaseNull).
func NewRegistry() *Registry {
	return &Registry{
		slots:         make([]slot, 1, 64),
		nextID:        symbols.FirstClassType,
		fnTypeByProto: make(map[string]*symbols.FunctionType),
	}
}

// AddListener registers l to receive Created/Destroyed callbacks.
func (r *Registry) AddListener(l Listener) { r.listeners = append(r.listeners, l) }

func (r *Registry) notifyCreated(t symbols.Type) {
	for _, l := range r.listeners {
		l.Created(t)
	}
}

func (r *Registry) notifyDestroyed(t symbols.Type) {
	for _, l := range r.listeners {
		l.Destroyed(t)
	}
}

// Exists reports whether the slot is populated and not null for t's kind
// (fundamentals always exist).
func (r *Registry) Exists(t symbols.Type) bool {
	if t.Category() == symbols.NoFlag && t.BaseType() < symbols.FirstClassType {
		return true
	}
	idx := int(t.BaseType())
	if idx <= 0 || idx >= len(r.slots) {
		return false
	}
	s := r.slots[idx]
	if s.reserved {
		return false
	}
	switch {
	case t.IsEnumType():
		return s.kind == slotEnum && s.enum != nil
	case t.IsClosureType():
		return s.kind == slotClosure && s.closure != nil
	case t.IsFunctionType():
		return s.kind == slotFunctionType && s.fnType != nil
	default:
		return s.kind == slotClass && s.class != nil
	}
}

// Reserve allocates count contiguous pending ids for kind and returns the
// first reserved index (spec §4.1 "reserve(kind, count)"). Later calls to
// the matching Register* at those indices complete the reservation.
func (r *Registry) Reserve(kind slotKind, count int) symbols.Type {
	first := r.nextID
	for i := 0; i < count; i++ {
		idx := int(r.nextID)
		r.ensureSlot(idx)
		r.slots[idx] = slot{kind: kind, reserved: true}
		r.nextID++
	}
	return first
}

func (r *Registry) indexOf(t symbols.Type) int { return int(t.BaseType()) }

func (r *Registry) ensureSlot(idx int) {
	for len(r.slots) <= idx {
		r.slots = append(r.slots, slot{})
	}
}

// RegisterClass installs class c at type id t (typically obtained via
// Reserve, or fresh via NextClassID). Fires Created exactly once.
func (r *Registry) RegisterClass(t symbols.Type, c *symbols.Class) {
	idx := r.indexOf(t)
	r.ensureSlot(idx)
	r.slots[idx] = slot{kind: slotClass, class: c}
	c.ID = t
	if r.activeTransaction != nil {
		r.activeTransaction.record(t)
	}
	r.notifyCreated(t)
}

// NextClassID reserves and returns a single fresh id for a class, without
// going through the batch Reserve API.
func (r *Registry) NextClassID() symbols.Type {
	return r.Reserve(slotClass, 1)
}

// NextEnumID reserves and returns a single fresh id for an enum, flagged
// with EnumFlag.
func (r *Registry) NextEnumID() symbols.Type {
	base := r.Reserve(slotEnum, 1)
	return symbols.NewType(base, symbols.EnumFlag)
}

// RegisterEnum installs enum e at type id t.
func (r *Registry) RegisterEnum(t symbols.Type, e *symbols.Enum) {
	idx := r.indexOf(t)
	r.ensureSlot(idx)
	r.slots[idx] = slot{kind: slotEnum, enum: e}
	e.ID = t
	if r.activeTransaction != nil {
		r.activeTransaction.record(t)
	}
	r.notifyCreated(t)
}

// RegisterClosure installs closure type cl at a freshly reserved id and
// returns that id.
func (r *Registry) RegisterClosure(cl *symbols.ClosureType) symbols.Type {
	base := r.Reserve(slotClosure, 1)
	t := symbols.NewType(base, symbols.LambdaFlag)
	idx := r.indexOf(t)
	r.slots[idx] = slot{kind: slotClosure, closure: cl}
	cl.ID = t
	if r.activeTransaction != nil {
		r.activeTransaction.record(t)
	}
	r.notifyCreated(t)
	return t
}

// GetFunctionType returns the existing function-type whose prototype
// equals proto, or creates one (spec §4.1 "get_function_type"). Creation
// also synthesizes a binary assignment operator whose native body copies
// the Function payload — done by the caller (internal/engine, which owns
// the native-callback wiring) via the onCreate hook, since this package
// must not depend on internal/value for Function bodies.
func (r *Registry) GetFunctionType(proto *symbols.Prototype, onCreate func(*symbols.FunctionType)) *symbols.FunctionType {
	key := protoKey(proto)
	if ft, ok := r.fnTypeByProto[key]; ok {
		return ft
	}
	ft := symbols.NewFunctionType(proto)
	base := r.Reserve(slotFunctionType, 1)
	t := symbols.NewType(base, symbols.PrototypeFlag)
	idx := r.indexOf(t)
	r.slots[idx] = slot{kind: slotFunctionType, fnType: ft}
	ft.ID = t
	r.fnTypeByProto[key] = ft
	if onCreate != nil {
		onCreate(ft)
	}
	if r.activeTransaction != nil {
		r.activeTransaction.record(t)
	}
	r.notifyCreated(t)
	return ft
}

func protoKey(p *symbols.Prototype) string {
	s := fmt.Sprintf("%d(", p.ReturnType())
	for i := 0; i < p.Count(); i++ {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", p.At(i))
	}
	return s + ")"
}

// GetClass returns the class metadata for t, or a null (nil) result if t
// is not a class type — this never panics (spec §4.1 "failures for wrong-kind
// return a null handle (never throws)").
func (r *Registry) GetClass(t symbols.Type) *symbols.Class {
	if !t.IsObjectType() {
		return nil
	}
	idx := r.indexOf(t)
	if idx <= 0 || idx >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.kind != slotClass {
		return nil
	}
	return s.class
}

// GetEnum returns the enum metadata for t, or nil.
func (r *Registry) GetEnum(t symbols.Type) *symbols.Enum {
	if !t.IsEnumType() {
		return nil
	}
	idx := r.indexOf(t)
	if idx <= 0 || idx >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.kind != slotEnum {
		return nil
	}
	return s.enum
}

// GetClosure returns the closure-type metadata for t, or nil.
func (r *Registry) GetClosure(t symbols.Type) *symbols.ClosureType {
	if !t.IsClosureType() {
		return nil
	}
	idx := r.indexOf(t)
	if idx <= 0 || idx >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.kind != slotClosure {
		return nil
	}
	return s.closure
}

// GetFunctionTypeByID returns the function-type metadata for t, or nil.
func (r *Registry) GetFunctionTypeByID(t symbols.Type) *symbols.FunctionType {
	if !t.IsFunctionType() {
		return nil
	}
	idx := r.indexOf(t)
	if idx <= 0 || idx >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.kind != slotFunctionType {
		return nil
	}
	return s.fnType
}

// Destroy unregisters the slot at t, cascading through the symbol's
// children (spec §4.1 "destroy(t): unregisters the slot; cascades through
// the symbol's children"). Fires Destroyed exactly once, provided the slot
// existed.
func (r *Registry) Destroy(t symbols.Type) {
	if !r.Exists(t) {
		return
	}
	idx := r.indexOf(t)
	s := r.slots[idx]
	switch s.kind {
	case slotClass:
		// Nested classes/enums cascade first (spec §4.3 "Destroying a
		// namespace or class cascades: destroy vars, enums, nested classes").
		for _, nc := range s.class.NestedClasses {
			if nc != nil {
				r.Destroy(nc.ID)
			}
		}
		for _, ne := range s.class.NestedEnums {
			if ne != nil {
				r.Destroy(ne.ID)
			}
		}
	}
	r.slots[idx] = slot{}
	r.notifyDestroyed(t)
}

// HasActiveTransaction reports whether a Transaction is currently open
// (spec §5 "hasActiveTransaction() forbids concurrent modification and
// nested transactions").
func (r *Registry) HasActiveTransaction() bool { return r.activeTransaction != nil }
