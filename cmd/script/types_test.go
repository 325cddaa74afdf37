package main

import (
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/strandfield/libscript/internal/engine"
)

// TestTypesListing snapshots the sorted class/template listing a fresh
// engine exposes, the same data the types subcommand prints. A fresh
// engine's built-in registrations should be stable across runs.
func TestTypesListing(t *testing.T) {
	e, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New: unexpected error: %v", err)
	}

	var names []string
	for _, c := range e.GlobalNamespace().Classes {
		names = append(names, c.Name())
	}
	for _, tmpl := range e.GlobalNamespace().Templates {
		names = append(names, tmpl.Name()+"<T>")
	}
	sort.Strings(names)

	snaps.MatchSnapshot(t, "types_output", strings.Join(names, "\n"))
}
