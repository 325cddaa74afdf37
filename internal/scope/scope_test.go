package scope

import (
	"testing"

	"github.com/strandfield/libscript/internal/symbols"
)

func TestLookupFindsNamespaceVar(t *testing.T) {
	ns := symbols.NewNamespace("")
	ns.SetVar("x", 42)

	s := NewNamespaceScope(ns, Scope{})
	nl := Lookup(s, "x")
	if nl.ValueResult != 42 {
		t.Fatalf("expected ValueResult 42, got %v", nl.ValueResult)
	}
}

func TestLookupLocalShadowsOuterVar(t *testing.T) {
	ns := symbols.NewNamespace("")
	ns.SetVar("x", "outer")
	outer := NewNamespaceScope(ns, Scope{})

	inner := NewFunctionScope([]Local{{Name: "x", Type: symbols.Int}}, outer)
	nl := Lookup(inner, "x")
	if nl.LocalIndex != 0 {
		t.Fatalf("expected local x to shadow outer namespace var, got LocalIndex=%d ValueResult=%v", nl.LocalIndex, nl.ValueResult)
	}
}

func TestLookupClassDataMember(t *testing.T) {
	c := symbols.NewClass("Point", nil)
	c.AddDataMember(symbols.DataMember{Type: symbols.Int, Name: "x"})

	s := NewClassScope(c, Scope{})
	nl := Lookup(s, "x")
	if nl.DataMemberIndex != 0 || nl.MemberOf != c {
		t.Fatalf("expected data member x at index 0 of Point, got %+v", nl)
	}
}

func TestLookupInheritedMemberFunction(t *testing.T) {
	base := symbols.NewClass("Base", nil)
	proto := symbols.NewPrototype(symbols.Void, symbols.Int.WithThis())
	f := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "speak"), proto)
	base.AddFunction(f)

	derived := symbols.NewClass("Derived", base)
	s := NewClassScope(derived, Scope{})
	nl := Lookup(s, "speak")
	if len(nl.Functions) != 1 || nl.Functions[0] != f {
		t.Fatalf("expected to find inherited member function speak, got %+v", nl.Functions)
	}
}

func TestLookupChildNamespace(t *testing.T) {
	root := symbols.NewNamespace("")
	child := root.GetOrCreateNamespace("math")

	s := NewNamespaceScope(root, Scope{})
	childScope := s.Child("math")
	if childScope.IsNull() || childScope.AsNamespace() != child {
		t.Fatalf("expected Child(\"math\") to resolve to the nested namespace")
	}
}

func TestLookupFunctionOverloadSetAccumulatesAcrossScopes(t *testing.T) {
	outerNs := symbols.NewNamespace("")
	proto1 := symbols.NewPrototype(symbols.Int, symbols.Int)
	f1 := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "f"), proto1)
	outerNs.AddFunction(f1)

	innerNs := outerNs.GetOrCreateNamespace("inner")
	proto2 := symbols.NewPrototype(symbols.Double, symbols.Double)
	f2 := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, "f"), proto2)
	innerNs.AddFunction(f2)

	outer := NewNamespaceScope(outerNs, Scope{})
	inner := NewNamespaceScope(innerNs, outer)

	nl := Lookup(inner, "f")
	if len(nl.Functions) != 2 {
		t.Fatalf("expected both overloads of f visible, got %d", len(nl.Functions))
	}
}

func TestEscapeTemplate(t *testing.T) {
	ns := symbols.NewNamespace("")
	outer := NewNamespaceScope(ns, Scope{})
	tmpl := NewTemplateArgumentScope(nil, nil, outer)

	if tmpl.EscapeTemplate().Kind() != NamespaceScope {
		t.Fatalf("expected EscapeTemplate to return the enclosing namespace scope")
	}
	if outer.EscapeTemplate().Kind() != NamespaceScope {
		t.Fatalf("EscapeTemplate should be a no-op on a non-template scope")
	}
}
