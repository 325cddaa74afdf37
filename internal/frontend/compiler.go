package frontend

import (
	"fmt"

	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/ir"
	"github.com/strandfield/libscript/internal/scope"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// Compiler implements engine.Compiler by lowering the AST from parser.go
// straight to internal/ir, resolving names through internal/scope's
// lookup and operators through scope.LookupOperator, the way the teacher's
// internal/semantic passes resolve identifiers against its symbol tables
// before the bytecode compiler ever runs (here folded into one pass since
// this front-end's grammar has no forward-reference cases to stage for).
type Compiler struct{}

// New returns the engine's default front-end Compiler.
func New() *Compiler { return &Compiler{} }

// CompileExpression implements engine.Compiler.
func (c *Compiler) CompileExpression(source string, s scope.Scope, declare func(name string, v *value.Value)) (ir.Expr, symbols.Type, error) {
	p := NewParser(source)
	expr := p.ParseExpression()
	if p.tok.Kind != EOF {
		p.errorf("unexpected trailing token %q at offset %d", p.tok.Text, p.tok.Pos)
	}
	if errs := p.Errors(); len(errs) > 0 {
		return nil, symbols.Void, errkind.New(errkind.Compilation, errs[0].Error())
	}

	lc := &lowering{scope: s, declare: declare}
	out, typ, err := lc.expr(expr)
	if err != nil {
		return nil, symbols.Void, err
	}
	return out, typ, nil
}

// CompileScript implements engine.Compiler.
func (c *Compiler) CompileScript(source, path string, global scope.Scope) (*symbols.Script, error) {
	p := NewParser(source)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errkind.New(errkind.Compilation, errs[0].Error())
	}

	script := symbols.NewScript(path)
	scriptScope := scope.NewScriptScope(script, global)
	lc := &lowering{scope: scriptScope, script: script}

	var body []ir.Stmt
	for _, st := range stmts {
		out, err := lc.topStmt(st)
		if err != nil {
			script.Messages = append(script.Messages, symbols.Diagnostic{Severity: symbols.SeverityError, Text: err.Error()})
			continue
		}
		body = append(body, out)
	}
	if len(script.Messages) > 0 {
		return script, nil
	}
	script.EntryPoint = &ir.Compound{Statements: body}
	return script, nil
}

// lowering holds the per-compile state threaded through one
// CompileExpression or CompileScript call: the scope names resolve
// against, the eval-declare callback (CompileExpression only), the script
// being populated (CompileScript only) and this call's own table of
// script-global names declared so far (script.Namespace carries no Vars
// for top-level script globals — see module.go's PushGlobal contract).
type lowering struct {
	scope   scope.Scope
	declare func(name string, v *value.Value)
	script  *symbols.Script
	globals []globalBinding
}

type globalBinding struct {
	name string
	typ  symbols.Type
}

func (lc *lowering) findGlobal(name string) (int, symbols.Type, bool) {
	for i, g := range lc.globals {
		if g.name == name {
			return i, g.typ, true
		}
	}
	return 0, symbols.Void, false
}

// --- Statements (CompileScript only) ------------------------------------

func (lc *lowering) topStmt(s Stmt) (ir.Stmt, error) {
	if decl, ok := s.(*VarDecl); ok {
		return lc.topVarDecl(decl)
	}
	return lc.stmt(s)
}

func (lc *lowering) topVarDecl(decl *VarDecl) (ir.Stmt, error) {
	var init ir.Expr
	var typ symbols.Type
	var err error
	if decl.Init != nil {
		init, typ, err = lc.expr(decl.Init)
		if err != nil {
			return nil, err
		}
	} else if decl.Type != nil {
		typ, err = lc.resolveType(decl.Type)
		if err != nil {
			return nil, err
		}
		init = &ir.Literal{ExprBase: ir.NewExprBase(typ), Value: zeroValue(typ)}
	} else {
		return nil, errkind.New(errkind.Compilation, "declaration of \""+decl.Name+"\" needs either a type or an initializer")
	}
	idx := lc.script.AddGlobal(decl.Name)
	lc.globals = append(lc.globals, globalBinding{name: decl.Name, typ: typ})
	_ = idx
	return &ir.PushGlobal{Expr: init}, nil
}

func (lc *lowering) stmt(s Stmt) (ir.Stmt, error) {
	switch n := s.(type) {
	case *VarDecl:
		return nil, errkind.New(errkind.Compilation, "local variable declarations are not supported by this front-end outside top-level script scope")
	case *ExprStmt:
		x, _, err := lc.expr(n.X)
		if err != nil {
			return nil, err
		}
		return &ir.ExpressionStatement{Expr: x}, nil
	case *BlockStmt:
		var out []ir.Stmt
		for _, sub := range n.Stmts {
			o, err := lc.stmt(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, o)
		}
		return &ir.Compound{Statements: out}, nil
	case *IfStmt:
		cond, _, err := lc.expr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := lc.stmt(n.Then)
		if err != nil {
			return nil, err
		}
		var els ir.Stmt
		if n.Else != nil {
			els, err = lc.stmt(n.Else)
			if err != nil {
				return nil, err
			}
		}
		return &ir.If{Cond: cond, Then: then, Else: els}, nil
	case *WhileStmt:
		cond, _, err := lc.expr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := lc.stmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ir.While{Cond: cond, Body: body}, nil
	case *ForStmt:
		var init ir.Stmt
		var err error
		if n.Init != nil {
			init, err = lc.stmt(n.Init)
			if err != nil {
				return nil, err
			}
		}
		var cond ir.Expr
		if n.Cond != nil {
			cond, _, err = lc.expr(n.Cond)
			if err != nil {
				return nil, err
			}
		}
		var step ir.Stmt
		if n.Step != nil {
			step, err = lc.stmt(n.Step)
			if err != nil {
				return nil, err
			}
		}
		body, err := lc.stmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ir.For{Init: init, Cond: cond, Step: step, Body: body}, nil
	case *ReturnStmt:
		var v ir.Expr
		if n.Value != nil {
			var err error
			v, _, err = lc.expr(n.Value)
			if err != nil {
				return nil, err
			}
		}
		return &ir.Return{Value: v}, nil
	case *BreakStmt:
		return &ir.Break{}, nil
	case *ContinueStmt:
		return &ir.Continue{}, nil
	default:
		return nil, errkind.New(errkind.Compilation, fmt.Sprintf("unsupported statement %T", s))
	}
}

// --- Types ----------------------------------------------------------------

func (lc *lowering) resolveType(t *TypeName) (symbols.Type, error) {
	switch t.Name {
	case "void":
		return symbols.Void, nil
	case "bool":
		return symbols.Bool, nil
	case "char":
		return symbols.Char, nil
	case "int":
		return symbols.Int, nil
	case "float":
		return symbols.Float, nil
	case "double":
		return symbols.Double, nil
	}

	lookup := scope.Lookup(lc.scope, t.Name)
	if !lookup.TypeResult.IsNull() {
		return lookup.TypeResult, nil
	}
	if lookup.ClassTemplateResult != nil && len(t.Args) == 1 {
		elem, err := lc.resolveType(t.Args[0])
		if err != nil {
			return symbols.Void, err
		}
		class, err := lookup.ClassTemplateResult.GetClassInstance([]symbols.TemplateArgument{symbols.TypeArg(elem)})
		if err != nil {
			return symbols.Void, err
		}
		return class.ID, nil
	}
	return symbols.Void, errkind.New(errkind.Compilation, "unknown type \""+t.Name+"\"")
}

func zeroValue(t symbols.Type) *value.Value {
	switch t.BaseType() {
	case symbols.BaseBoolean:
		return value.NewBool(false)
	case symbols.BaseChar:
		return value.NewChar(0)
	case symbols.BaseInt:
		return value.NewInt(0)
	case symbols.BaseFloat:
		return value.NewFloat(0)
	case symbols.BaseDouble:
		return value.NewDouble(0)
	default:
		return value.NewInt(0)
	}
}
