package interp

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// TypeRegistry is the minimal registry capability the interpreter needs:
// class lookup (value.ClassResolver, for conversion/construction) plus
// function-type lookup/creation (for bind-expression's synthesized
// function-type values). *internal/types.Registry satisfies this
// structurally, with no import here.
type TypeRegistry interface {
	value.ClassResolver
	GetFunctionType(proto *symbols.Prototype, onCreate func(*symbols.FunctionType)) *symbols.FunctionType
}

// Interpreter is the tree-walking VM: a shared value stack, an engine-owned
// global slot vector, a call stack, and the registries/refcount manager it
// needs to construct, copy and convert values while executing IR.
type Interpreter struct {
	stack     []*value.Value
	globals   []*value.Value
	callStack *CallStack
	types     TypeRegistry
	refcount  value.RefCountManager
	debug     DebugHandler
}

// New creates an Interpreter over the given type registry and refcount
// manager, with the default call-stack depth (1024) and a no-op debug
// handler.
func New(types TypeRegistry, refcount value.RefCountManager) *Interpreter {
	return &Interpreter{
		types:     types,
		refcount:  refcount,
		callStack: NewCallStack(0),
		debug:     noopDebugHandler{},
	}
}

// SetCallStackDepth overrides the default maximum call-stack depth.
func (in *Interpreter) SetCallStackDepth(maxDepth int) {
	in.callStack = NewCallStack(maxDepth)
}

// SetDebugHandler installs h, called whenever an armed Breakpoint
// executes. Passing nil restores the no-op handler.
func (in *Interpreter) SetDebugHandler(h DebugHandler) {
	if h == nil {
		h = noopDebugHandler{}
	}
	in.debug = h
}

// PushGlobalSlot appends a new engine-owned global and returns its index.
func (in *Interpreter) PushGlobalSlot(v *value.Value) int {
	in.globals = append(in.globals, v)
	return len(in.globals) - 1
}

// Global returns the global at index, or nil if out of range.
func (in *Interpreter) Global(index int) *value.Value {
	if index < 0 || index >= len(in.globals) {
		return nil
	}
	return in.globals[index]
}

// GlobalCount returns the number of globals pushed so far, letting a caller
// (internal/engine, running a script's entry point) record where that
// script's own globals begin within the shared slot vector.
func (in *Interpreter) GlobalCount() int { return len(in.globals) }

// Invoke implements value.Invoker, letting Construct/Copy (internal/value)
// call constructors and copy-constructors without importing this package.
func (in *Interpreter) Invoke(f *symbols.Function, args []*value.Value) (*value.Value, error) {
	return in.Call(f, args)
}

// Call implements the invocation procedure (spec §4.8 "Invocation"):
// push a frame, run f's body (native callback or IR), pop the frame, and
// yield Void if nothing was returned.
func (in *Interpreter) Call(f *symbols.Function, args []*value.Value) (*value.Value, error) {
	return in.callFrame(f, args, nil)
}

// CallClosure invokes a closure value's operator(): same invocation
// procedure as Call, but the pushed frame carries lam so that
// CaptureAccess within the closure body can reach the captured values
// (spec §4.8 "Invocation", glossary "Closure type").
func (in *Interpreter) CallClosure(lam *value.Value, args []*value.Value) (*value.Value, error) {
	l := lam.Lambda()
	if l == nil || l.ClosureType == nil || l.ClosureType.FunctionObject == nil {
		return nil, errkind.New(errkind.RuntimeError, "closure value has no operator() to call")
	}
	return in.callFrame(l.ClosureType.FunctionObject, args, lam)
}

func (in *Interpreter) callFrame(f *symbols.Function, args []*value.Value, lambda *value.Value) (*value.Value, error) {
	if f.IsDeleted() {
		return nil, errkind.New(errkind.FunctionIsDeleted, "cannot call a deleted function")
	}

	frame := &Frame{Callee: f, Argc: len(args), StackBase: len(in.stack), Lambda: lambda}
	if err := in.callStack.Push(frame); err != nil {
		return nil, err
	}
	defer in.callStack.Pop()

	in.stack = append(in.stack, nil) // return slot
	in.stack = append(in.stack, args...)
	defer func() { in.stack = in.stack[:frame.StackBase] }()

	if f.IsNative() {
		result, err := f.Body.Native(nativeFrame{interp: in, frame: frame})
		if err != nil {
			return nil, err
		}
		if rv, ok := result.(*value.Value); ok {
			frame.ReturnVal = rv
		}
		frame.Flags = FlagReturn
	} else {
		body, _ := f.Body.IR.(ir.Stmt)
		if body == nil {
			return nil, errkind.New(errkind.RuntimeError, "function has no executable body")
		}
		if err := in.execStmt(frame, body); err != nil {
			return nil, err
		}
	}

	if frame.Flags != FlagReturn || frame.ReturnVal == nil {
		return value.Void, nil
	}
	return frame.ReturnVal, nil
}

func (in *Interpreter) local(frame *Frame, offset int) *value.Value {
	idx := frame.StackBase + offset
	if idx < 0 || idx >= len(in.stack) {
		return nil
	}
	return in.stack[idx]
}

func (in *Interpreter) setLocal(frame *Frame, offset int, v *value.Value) {
	idx := frame.StackBase + offset
	for len(in.stack) <= idx {
		in.stack = append(in.stack, nil)
	}
	in.stack[idx] = v
}

// constructWith builds a value of type t, either by full overload
// resolution (ctor == nil, delegating to value.Construct) or by invoking
// an already-selected constructor directly — the case for IR produced by
// a compiler that has already performed overload resolution at compile
// time (spec §4.8 ConstructorCall/Construction).
func (in *Interpreter) constructWith(t symbols.Type, ctor *symbols.Function, args []*value.Value) (*value.Value, error) {
	if ctor == nil {
		return value.Construct(t, args, in.types, in)
	}
	var memberCount int
	if class := in.types.GetClass(t.WithoutConst().WithoutRef()); class != nil {
		memberCount = class.CumulatedDataMemberCount()
	}
	placeholder := value.NewObject(t, nil, memberCount)
	callArgs := append([]*value.Value{placeholder}, args...)
	if _, err := in.Call(ctor, callArgs); err != nil {
		return nil, err
	}
	return placeholder, nil
}

// bindFunction implements bind-expression by synthesizing a forwarding
// Function whose native callback prepends bound to whatever arguments it
// is eventually called with (spec §4.8 lists bind-expression but leaves
// its mechanics to the engine; this is this module's concrete strategy,
// grounded on the same native-callback indirection ProgramFunction uses
// for host-registered functions).
func (in *Interpreter) bindFunction(fn *symbols.Function, bound []*value.Value) *value.Value {
	remaining := fn.Prototype.Parameters()
	if len(bound) < len(remaining) {
		remaining = remaining[len(bound):]
	} else {
		remaining = nil
	}
	proto := symbols.NewPrototype(fn.ReturnType(), remaining...)

	wrapper := symbols.NewFunction(symbols.KindFunction, fn.Name, proto)
	wrapper.Body.Native = func(cf symbols.CallFrame) (any, error) {
		args := make([]*value.Value, 0, len(bound)+cf.ArgCount())
		args = append(args, bound...)
		for i := 0; i < cf.ArgCount(); i++ {
			args = append(args, cf.Arg(i).(*value.Value))
		}
		return in.Call(fn, args)
	}

	ft := in.types.GetFunctionType(proto, nil)
	var ftType symbols.Type
	if ft != nil {
		ftType = ft.ID
	}
	return value.NewFunctionValue(ftType, wrapper)
}
