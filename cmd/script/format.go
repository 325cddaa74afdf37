package main

import (
	"fmt"

	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// formatValue renders a script-side value for eval's stdout the way a
// REPL prints its result: fundamentals print their Go value directly, a
// String object prints its unquoted payload, anything else falls back to
// its base type index.
func formatValue(v *value.Value) string {
	v = v.Deref()
	switch v.Type.BaseType() {
	case symbols.BaseBoolean:
		return fmt.Sprintf("%v", v.AsBool())
	case symbols.BaseChar:
		return fmt.Sprintf("%c", v.AsChar())
	case symbols.BaseInt:
		return fmt.Sprintf("%d", v.AsInt())
	case symbols.BaseFloat:
		return fmt.Sprintf("%v", v.AsFloat())
	case symbols.BaseDouble:
		return fmt.Sprintf("%v", v.AsDouble())
	}
	if v.Kind() == value.KindObject {
		if s, ok := v.Object().Native.(string); ok {
			return s
		}
	}
	return fmt.Sprintf("<value type=%d>", v.Type.BaseType())
}
