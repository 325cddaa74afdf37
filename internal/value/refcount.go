package value

import "sync"

// DestructorCallback is invoked when a Value's refcount reaches 0 for a
// kind that needs cleanup (objects run a class destructor; everything else
// just drops its payload). Errors are reported to the caller of
// DecrementRef rather than swallowed, unlike the teacher's
// RefCountManager, because a script-level destructor can itself fail
// (spec §4.7 "objects invoke the class's destructor then clear the
// payload").
type DestructorCallback func(v *Value) error

// RefCountManager is this package's adaptation of the teacher's
// RefCountManager interface (internal/interp/runtime/refcount.go):
// increment/decrement entry points plus a single registered destructor
// callback, generalized from the teacher's two fixed kinds
// (ObjectInstance/InterfaceInstance) to every Value kind this package
// defines.
type RefCountManager interface {
	IncrementRef(v *Value) *Value
	DecrementRef(v *Value) error
	SetDestructorCallback(cb DestructorCallback)
}

type manager struct {
	mu       sync.RWMutex
	destruct DestructorCallback
}

// NewRefCountManager creates a default reference count manager.
func NewRefCountManager() RefCountManager { return &manager{} }

func (m *manager) SetDestructorCallback(cb DestructorCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destruct = cb
}

// IncrementRef bumps v's refcount and returns v, for chaining at call
// sites that both store and return a value (spec §4.7 "cheap to copy:
// increments refcount").
func (m *manager) IncrementRef(v *Value) *Value {
	if v.IsNull() || v == Void {
		return v
	}
	v.data.refs++
	return v
}

// DecrementRef decrements v's refcount and, if it reaches 0, runs the
// destructor callback (for KindObject) or simply drops the payload
// (everything else) — spec §4.7 "Destroy: objects invoke the class's
// destructor then clear the payload; fundamental/enum storage is released;
// the Void singleton is exempt." A KindReference's target is never
// touched, matching "destroying never touches the referent".
func (m *manager) DecrementRef(v *Value) error {
	if v.IsNull() || v == Void || v.Kind() == KindReference {
		return nil
	}
	v.data.refs--
	if v.data.refs > 0 {
		return nil
	}
	if v.data.refs < 0 {
		v.data.refs = 0
	}

	if v.Kind() == KindObject {
		m.mu.RLock()
		cb := m.destruct
		m.mu.RUnlock()
		if cb != nil {
			if err := cb(v); err != nil {
				return err
			}
		}
	}

	v.data.fundamental = nil
	v.data.object = nil
	v.data.array = nil
	v.data.lambda = nil
	v.data.fn = nil
	v.data.enumerator = nil
	v.data.initList = nil
	return nil
}
