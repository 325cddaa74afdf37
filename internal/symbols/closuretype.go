package symbols

// Capture describes one named, typed capture of a lambda's closure type.
type Capture struct {
	Type Type
	Name string
}

// ClosureType is the unique class synthesized for a lambda expression: its
// captures become members and its Prototype/FunctionObject form the sole
// `operator()` member (spec §3 "Closure type", glossary "Closure type").
type ClosureType struct {
	ID        Type
	Captures  []Capture
	Prototype *Prototype

	// FunctionObject is the generated operator() Function; its this
	// parameter is this closure type and its remaining parameters come
	// from Prototype.
	FunctionObject *Function

	enclosing Symbol
}

func NewClosureType(proto *Prototype, captures ...Capture) *ClosureType {
	return &ClosureType{Prototype: proto, Captures: append([]Capture(nil), captures...)}
}

func (c *ClosureType) SymbolName() Name  { return Name{} }
func (c *ClosureType) Enclosing() Symbol { return c.enclosing }

// CaptureIndex returns the index of a named capture, or -1.
func (c *ClosureType) CaptureIndex(name string) int {
	for i, cap := range c.Captures {
		if cap.Name == name {
			return i
		}
	}
	return -1
}

// FunctionType is the type synthesized for a function pointer/reference
// value: a Prototype plus a generated binary assignment operator over that
// type (spec §3 "Function-type", §4.1 "get_function_type").
type FunctionType struct {
	ID         Type
	Prototype  *Prototype
	Assignment *Function
}

func NewFunctionType(proto *Prototype) *FunctionType {
	return &FunctionType{Prototype: proto}
}
