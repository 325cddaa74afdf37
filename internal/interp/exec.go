package interp

import (
	"fmt"

	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/value"
)

// execStmt dispatches on s's concrete kind and executes it against frame,
// mutating frame.Flags when a Break/Continue/Return is hit (spec §4.8
// "Flow control").
func (in *Interpreter) execStmt(frame *Frame, s ir.Stmt) error {
	switch st := s.(type) {
	case *ir.Compound:
		for _, child := range st.Statements {
			if err := in.execStmt(frame, child); err != nil {
				return err
			}
			if frame.Flags != FlagNone {
				return nil
			}
		}
		return nil

	case *ir.ExpressionStatement:
		ml := in.newManageList()
		_, err := in.evalExpr(frame, ml, st.Expr)
		if err != nil {
			return err
		}
		return ml.release(nil)

	case *ir.If:
		ml := in.newManageList()
		cond, err := in.evalExpr(frame, ml, st.Cond)
		if err != nil {
			return err
		}
		take := cond.AsBool()
		if err := ml.release(nil); err != nil {
			return err
		}
		if take {
			return in.execStmt(frame, st.Then)
		}
		if st.Else != nil {
			return in.execStmt(frame, st.Else)
		}
		return nil

	case *ir.While:
		for {
			ml := in.newManageList()
			cond, err := in.evalExpr(frame, ml, st.Cond)
			if err != nil {
				return err
			}
			proceed := cond.AsBool()
			if err := ml.release(nil); err != nil {
				return err
			}
			if !proceed {
				return nil
			}
			if err := in.execStmt(frame, st.Body); err != nil {
				return err
			}
			switch frame.Flags {
			case FlagBreak:
				frame.Flags = FlagNone
				return nil
			case FlagContinue:
				frame.Flags = FlagNone
			case FlagReturn:
				return nil
			}
		}

	case *ir.For:
		if st.Init != nil {
			if err := in.execStmt(frame, st.Init); err != nil {
				return err
			}
		}
		for {
			if st.Cond != nil {
				ml := in.newManageList()
				cond, err := in.evalExpr(frame, ml, st.Cond)
				if err != nil {
					return err
				}
				proceed := cond.AsBool()
				if err := ml.release(nil); err != nil {
					return err
				}
				if !proceed {
					return nil
				}
			}
			if err := in.execStmt(frame, st.Body); err != nil {
				return err
			}
			switch frame.Flags {
			case FlagBreak:
				frame.Flags = FlagNone
				return nil
			case FlagReturn:
				return nil
			case FlagContinue:
				frame.Flags = FlagNone
			}
			if st.Step != nil {
				if err := in.execStmt(frame, st.Step); err != nil {
					return err
				}
			}
		}

	case *ir.Return:
		if st.Value != nil {
			ml := in.newManageList()
			v, err := in.evalExpr(frame, ml, st.Value)
			if err != nil {
				return err
			}
			if err := ml.release(v); err != nil {
				return err
			}
			frame.ReturnVal = v
		}
		if err := in.runDestructions(frame, st.Destructions); err != nil {
			return err
		}
		frame.Flags = FlagReturn
		return nil

	case *ir.Break:
		if err := in.runDestructions(frame, st.Destructions); err != nil {
			return err
		}
		frame.Flags = FlagBreak
		return nil

	case *ir.Continue:
		if err := in.runDestructions(frame, st.Destructions); err != nil {
			return err
		}
		frame.Flags = FlagContinue
		return nil

	case *ir.InitObject:
		v, err := value.Construct(st.ObjectType, nil, in.types, in)
		if err != nil {
			return err
		}
		in.setLocal(frame, st.StackOffset, v)
		return nil

	case *ir.Construction:
		ml := in.newManageList()
		args, err := in.evalArgs(frame, ml, st.Args)
		if err != nil {
			return err
		}
		v, err := in.constructWith(st.ObjectType, st.Constructor, args)
		if err != nil {
			return err
		}
		if err := ml.release(nil); err != nil {
			return err
		}
		in.setLocal(frame, st.StackOffset, v)
		return nil

	case *ir.PushDataMember:
		this := in.local(frame, 1)
		if this == nil || this.Deref().Kind() != value.KindObject {
			return errkind.New(errkind.RuntimeError, "push-data-member requires an object this")
		}
		members := this.Deref().Object().Members
		if st.Offset < 0 || st.Offset >= len(members) {
			return errkind.New(errkind.RuntimeError, "data member offset out of range")
		}
		in.stack = append(in.stack, members[st.Offset])
		return nil

	case *ir.PopDataMember:
		if len(in.stack) > 0 {
			in.stack = in.stack[:len(in.stack)-1]
		}
		return nil

	case *ir.PushValue:
		ml := in.newManageList()
		v, err := in.evalExpr(frame, ml, st.Expr)
		if err != nil {
			return err
		}
		if err := ml.release(v); err != nil {
			return err
		}
		in.stack = append(in.stack, v)
		return nil

	case *ir.PopValue:
		if len(in.stack) == 0 {
			return nil
		}
		v := in.stack[len(in.stack)-1]
		in.stack = in.stack[:len(in.stack)-1]
		return in.refcount.DecrementRef(v)

	case *ir.PushGlobal:
		ml := in.newManageList()
		v, err := in.evalExpr(frame, ml, st.Expr)
		if err != nil {
			return err
		}
		if err := ml.release(v); err != nil {
			return err
		}
		in.PushGlobalSlot(v)
		return nil

	case *ir.CppReturn:
		result, err := st.Callback(nativeFrame{interp: in, frame: frame})
		if err != nil {
			return err
		}
		if rv, ok := result.(*value.Value); ok {
			frame.ReturnVal = rv
		}
		frame.Flags = FlagReturn
		return nil

	case *ir.Breakpoint:
		if st.Status != nil && *st.Status != 0 {
			frame.Breakpoint = st
			in.debug.Interrupt(frame, st)
		}
		return nil

	default:
		return errkind.New(errkind.RuntimeError, fmt.Sprintf("unhandled statement kind %T", s))
	}
}

func (in *Interpreter) runDestructions(frame *Frame, destructions []ir.Stmt) error {
	for _, d := range destructions {
		if err := in.execStmt(frame, d); err != nil {
			return err
		}
	}
	return nil
}
