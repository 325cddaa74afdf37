package value

import "github.com/strandfield/libscript/internal/errkind"

// Assign copies src's payload into dest in place, preserving dest's
// identity (its *data pointer, and therefore every existing alias of
// dest — a StackValue or MemberAccess result sharing the same pointer
// sees the update). This is what a built-in `operator=` native callback
// calls to implement assignment and compound-assignment over fundamentals,
// enums, objects, arrays, lambdas and function values (spec §4.9: the
// engine facade installs these as ordinary tabulated operators, not
// special interpreter opcodes).
//
// dest must not be the Void singleton or a bare KindReference (the caller
// is expected to have already dereferenced an lvalue down to its concrete
// storage, mirroring how StackValue/MemberAccess hand back the underlying
// Value, not a reference wrapper, for anything but a declared reference
// variable).
func Assign(dest, src *Value) error {
	if dest.IsNull() || dest == Void {
		return errkind.New(errkind.RuntimeError, "cannot assign to a null or void value")
	}
	src = src.Deref()
	dest.data.kind = src.Kind()
	dest.data.fundamental = src.data.fundamental
	dest.data.ref = nil
	dest.data.object = src.data.object
	dest.data.array = src.data.array
	dest.data.lambda = src.data.lambda
	dest.data.fn = src.data.fn
	dest.data.enumerator = src.data.enumerator
	dest.data.initList = src.data.initList
	return nil
}
