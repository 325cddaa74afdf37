package symbols

// Attribute is one opaque `[[ ... ]]` bracket-form attribute attached to a
// declaration. The core treats the contents as an opaque token list
// (spec §6 "attributes are opaque to the core but inspectable by hosts");
// only Name and RawArgs are exposed.
type Attribute struct {
	Name    string
	RawArgs string
}

// AttributeTable is the side table mapping a symbol to its attribute list,
// keyed by symbol identity rather than carried inline on every symbol
// struct (spec §4.5 "Attribute lists are opaque AST nodes attached via
// side tables indexed by pointer-to-function or pointer-to-symbol").
//
// Grounded on the same side-table idea as DefaultArgumentTable; kept as a
// distinct type (rather than folding attributes into Function/Class
// fields) because not every symbol kind carries attributes equally often,
// and a side table means zero memory cost for the overwhelming majority of
// symbols that have none — mirrors the original's map-indexed-by-pointer
// design exactly.
type AttributeTable struct {
	byFunction map[*Function][]Attribute
	bySymbol   map[Symbol][]Attribute
}

// NewAttributeTable creates an empty table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{
		byFunction: make(map[*Function][]Attribute),
		bySymbol:   make(map[Symbol][]Attribute),
	}
}

// SetForFunction replaces the attribute list for f.
func (t *AttributeTable) SetForFunction(f *Function, attrs []Attribute) {
	t.byFunction[f] = attrs
}

// ForFunction returns f's attribute list (a view — callers must not mutate
// the returned slice), or nil if f has none.
func (t *AttributeTable) ForFunction(f *Function) []Attribute {
	return t.byFunction[f]
}

// SetForSymbol replaces the attribute list for any other symbol kind.
func (t *AttributeTable) SetForSymbol(s Symbol, attrs []Attribute) {
	t.bySymbol[s] = attrs
}

// ForSymbol returns s's attribute list, or nil if s has none.
func (t *AttributeTable) ForSymbol(s Symbol) []Attribute {
	return t.bySymbol[s]
}
