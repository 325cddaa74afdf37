package value

// Locals is an ownership-taking scope for a batch of values: on Drop, every
// value whose refcount is exactly 1 (meaning this Locals is its sole owner)
// is destroyed, transferring ownership back to the engine (spec §4.7
// "Locals: an ownership-taking scope for a batch of values; on drop, each
// value whose refcount is 1 is destroyed").
type Locals struct {
	refcount RefCountManager
	owned    []*Value
}

// NewLocals creates an empty ownership scope backed by rc.
func NewLocals(rc RefCountManager) *Locals {
	return &Locals{refcount: rc}
}

// Own registers v as owned by this scope and returns v, for chaining at
// the point a temporary is produced.
func (l *Locals) Own(v *Value) *Value {
	if !v.IsNull() && v != Void {
		l.owned = append(l.owned, v)
	}
	return v
}

// Drop releases this scope's reference to every owned value, in reverse
// order of registration (mirroring stack-unwind order), and clears the
// scope: a value whose refcount was 1 is destroyed, a shared one survives
// with one reference fewer. Returns the first error encountered, continuing
// to drop the rest so a failing destructor does not leak the remaining
// locals.
func (l *Locals) Drop() error {
	var firstErr error
	for i := len(l.owned) - 1; i >= 0; i-- {
		if err := l.refcount.DecrementRef(l.owned[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.owned = nil
	return firstErr
}
