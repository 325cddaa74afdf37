package interp

import (
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// DebugHandler is notified when a Breakpoint IR node with a non-zero
// status executes. The default handler does nothing (spec §4.8).
type DebugHandler interface {
	Interrupt(frame *Frame, bp *ir.Breakpoint)
}

// noopDebugHandler is installed by default.
type noopDebugHandler struct{}

func (noopDebugHandler) Interrupt(*Frame, *ir.Breakpoint) {}

// DebugVariable is one live local a Workspace reports to a DebugHandler:
// its declared name, type, stack offset, and current value.
type DebugVariable struct {
	Name        string
	Type        symbols.Type
	StackOffset int
	Value       *value.Value
}

// Workspace lets a DebugHandler enumerate the variables live in a frame at
// the moment a breakpoint fires, resolved from compiler-emitted debug-info
// blocks (spec §4.8 "Workspace helper").
type Workspace struct {
	interp *Interpreter
	frame  *Frame
	info   []DebugInfo
}

// DebugInfo is one compiler-emitted record associating a stack offset with
// a source-level variable name and type, valid for the span of IR
// statements it accompanies, so the debugger can answer "what is live
// here". The frontend emits no such records.
type DebugInfo struct {
	Name        string
	Type        symbols.Type
	StackOffset int
}

// NewWorkspace builds a Workspace over frame's currently live variables, as
// described by info (typically the innermost enclosing Compound's debug
// block).
func NewWorkspace(interp *Interpreter, frame *Frame, info []DebugInfo) *Workspace {
	return &Workspace{interp: interp, frame: frame, info: info}
}

// Variables returns each live variable's name, type, stack offset and
// current value.
func (w *Workspace) Variables() []DebugVariable {
	out := make([]DebugVariable, 0, len(w.info))
	for _, di := range w.info {
		idx := w.frame.StackBase + di.StackOffset
		var v *value.Value
		if idx >= 0 && idx < len(w.interp.stack) {
			v = w.interp.stack[idx]
		}
		out = append(out, DebugVariable{Name: di.Name, Type: di.Type, StackOffset: di.StackOffset, Value: v})
	}
	return out
}
