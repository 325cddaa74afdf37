package symbols

// Symbol is implemented by every node of the symbol graph (Namespace,
// Class, Enum, Function, Template). Enclosing returns the symbol's parent
// in the graph, or nil at the root.
//
// The original stores the enclosing pointer weakly to avoid ownership
// cycles (a namespace strongly owns its classes, a class's Enclosing()
// must not strongly own the namespace back). Go's garbage collector
// reclaims cycles on its own, so the weak/strong distinction that matters
// in the original for manual memory management is not needed for
// correctness here; Enclosing is a plain field. It is kept as its own
// concept (rather than, say, embedding structs) because several symbol
// kinds can be a parent (Namespace or Class), so Enclosing must be able to
// hold either.
type Symbol interface {
	SymbolName() Name
	Enclosing() Symbol
}

// Identifier returns the plain-string name of a symbol for display and
// qualified-name construction, or "" if the symbol's Name is not a simple
// string (e.g. an operator or cast).
func Identifier(s Symbol) string {
	if s == nil {
		return ""
	}
	return s.SymbolName().Str
}

// QualifiedName walks Enclosing() to build a "::"-joined qualified name,
// stopping at the first ancestor with an empty identifier (typically the
// global namespace).
func QualifiedName(s Symbol) string {
	if s == nil {
		return ""
	}
	var parts []string
	for cur := s; cur != nil; cur = cur.Enclosing() {
		id := Identifier(cur)
		if id == "" {
			break
		}
		parts = append([]string{id}, parts...)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}
