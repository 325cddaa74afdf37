package enginelog

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerFiltersBelowMin(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, LevelWarn)

	l.Debug("compiling module", "name", "math")
	l.Info("module loaded", "name", "math")
	l.Warn("unused variable", "name", "x")
	l.Error("stack overflow", "depth", 1024)

	out := buf.String()
	if strings.Contains(out, "compiling module") || strings.Contains(out, "module loaded") {
		t.Fatalf("expected debug/info to be filtered, got: %s", out)
	}
	if !strings.Contains(out, "[WARN] unused variable name=x") {
		t.Fatalf("missing warn line, got: %s", out)
	}
	if !strings.Contains(out, "[ERROR] stack overflow depth=1024") {
		t.Fatalf("missing error line, got: %s", out)
	}
}

func TestNoopLoggerDiscardsEverything(t *testing.T) {
	l := NewNoop()
	// Must not panic regardless of argument shape.
	l.Debug("x")
	l.Info("y", "k")
	l.Warn("z", "k", "v", "extra")
	l.Error("w")
}
