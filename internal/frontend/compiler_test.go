package frontend_test

import (
	"testing"

	"github.com/strandfield/libscript/internal/engine"
	"github.com/strandfield/libscript/internal/frontend"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New: unexpected error: %v", err)
	}
	e.Compiler = frontend.New()
	return e
}

func TestEvalArithmetic(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Eval("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	if got := result.AsInt(); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestEvalPersistsBindingAcrossCalls(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Eval("a = 5"); err != nil {
		t.Fatalf("Eval(\"a = 5\"): unexpected error: %v", err)
	}
	result, err := e.Eval("a + 3")
	if err != nil {
		t.Fatalf("Eval(\"a + 3\"): unexpected error: %v", err)
	}
	if got := result.AsInt(); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestEvalConditional(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Eval("1 < 2 ? 10 : 20")
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	if got := result.AsInt(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestCompileScriptWithControlFlow(t *testing.T) {
	e := newTestEngine(t)

	src := `
	var total = 0;
	var i = 0;
	for (i = 0; i < 5; i = i + 1) {
		total = total + i;
	}
	`
	m := e.NewScriptModule("sum", "sum.src", src)
	if err := e.LoadModule(m); err != nil {
		t.Fatalf("LoadModule: unexpected error: %v", err)
	}

	idx, ok := m.Script.GlobalIndex["total"]
	if !ok {
		t.Fatalf("expected a global named \"total\"")
	}
	v, ok := m.Script.Global(idx).(interface{ AsInt() int64 })
	if !ok {
		t.Fatalf("expected global \"total\" to support AsInt, got %T", m.Script.Global(idx))
	}
	if got := v.AsInt(); got != 10 {
		t.Fatalf("expected total=10, got %d", got)
	}
}

func TestCompileScriptReportsErrors(t *testing.T) {
	e := newTestEngine(t)

	m := e.NewScriptModule("bad", "bad.src", "var x = undefinedName;")
	if err := e.LoadModule(m); err == nil {
		t.Fatalf("expected an error compiling a reference to an undeclared name")
	}
}

func TestEvalRejectsTrailingTokens(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Eval("1 + 2 3"); err == nil {
		t.Fatalf("expected an error for a trailing token after a complete expression")
	}
}
