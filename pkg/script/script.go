// Package script is the public facade a host embeds: a thin wrapper over
// internal/engine wiring internal/frontend in as the default Compiler, the
// way the teacher's pkg/dwscript wraps its internal lexer/parser/interp
// trio behind one small public surface (its test files — pkg/dwscript
// carries none of its own source, only tests against the public API it
// implicitly documents — are this package's grounding for "what a host
// actually calls").
package script

import (
	"io"
	"os"

	"github.com/strandfield/libscript/internal/engine"
	"github.com/strandfield/libscript/internal/frontend"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// Engine is the embeddable scripting engine a host constructs once and
// reuses across scripts and Eval calls.
type Engine struct {
	e *engine.Engine
}

// New builds an Engine with default tuning and the built-in front-end
// compiler wired in.
func New() (*Engine, error) {
	return NewWithConfig(engine.DefaultConfig())
}

// NewWithConfig builds an Engine from an explicit Config (see LoadConfig
// for loading one from YAML).
func NewWithConfig(cfg engine.Config) (*Engine, error) {
	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	e.Compiler = frontend.New()
	return &Engine{e: e}, nil
}

// LoadConfig parses a YAML configuration document, the format
// cmd/script's --config flag reads.
func LoadConfig(r io.Reader) (*engine.Config, error) {
	return engine.LoadConfigYAML(r)
}

// Value is the host-visible handle to a script-side value.
type Value = value.Value

// RunFile compiles and runs a complete script file, returning any
// top-level compile diagnostics as an error.
func (s *Engine) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Run(path, string(content))
}

// Run compiles and runs source under the given logical path (used only for
// diagnostics — Run does not read the filesystem).
func (s *Engine) Run(path, source string) error {
	m := s.e.NewScriptModule(path, path, source)
	err := s.e.LoadModule(m)
	for _, msg := range m.Script.Messages {
		if msg.Severity == symbols.SeverityError {
			return &CompileError{Path: path, Text: msg.Text}
		}
	}
	return err
}

// Eval evaluates a single expression against this Engine's persistent
// evaluation context, returning its result value.
func (s *Engine) Eval(expr string) (*Value, error) {
	return s.e.Eval(expr)
}

// NewString boxes a Go string as a script-side String value, the usual way
// a host hands a string literal into Eval/RegisterNativeFunction calls.
func (s *Engine) NewString(str string) *Value {
	return s.e.NewString(str)
}

// RegisterNativeFunction extends the engine with a host-implemented free
// function, beyond the built-ins internal/natives already ships.
func (s *Engine) RegisterNativeFunction(name string, proto *symbols.Prototype, body symbols.NativeCallback) *symbols.Function {
	return s.e.RegisterNativeFunction(name, proto, body)
}

// Underlying returns the wrapped internal engine, for advanced hosts that
// need direct access to the type registry or interpreter.
func (s *Engine) Underlying() *engine.Engine { return s.e }

// CompileError reports that a script failed to compile; Text is the first
// error diagnostic recorded on the script.
type CompileError struct {
	Path string
	Text string
}

func (e *CompileError) Error() string {
	return e.Path + ": " + e.Text
}
