package script

import "testing"

func TestRunExecutesScript(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if err := e.Run("<test>", "var x = 1 + 2;"); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
}

func TestRunSurfacesCompileError(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	err = e.Run("<test>", "var x = undefinedName;")
	if err == nil {
		t.Fatalf("expected a compile error for an undeclared identifier")
	}
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected a *CompileError, got %T: %v", err, err)
	}
	if ce.Path != "<test>" {
		t.Fatalf("expected path %q, got %q", "<test>", ce.Path)
	}
	if ce.Text == "" {
		t.Fatalf("expected a non-empty diagnostic message")
	}
}

func TestEvalRoundTrip(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	result, err := e.Eval("2 * 21")
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	if got := result.AsInt(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}
