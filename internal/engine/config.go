package engine

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/strandfield/libscript/internal/enginelog"
)

// CompileMode records whether the engine is configured for Release or
// Debug. The engine logs the mode when it is created; the mode is not
// passed to the Compiler, and compiled IR is the same in both modes (no
// Breakpoint statements are emitted).
type CompileMode int

const (
	Release CompileMode = iota
	Debug
)

func (m CompileMode) String() string {
	if m == Debug {
		return "debug"
	}
	return "release"
}

// Config holds the engine's tunable capacities and diagnostic sink
// (SPEC_FULL.md §4.11). Zero value is not directly usable — call
// DefaultConfig or LoadConfigYAML, both of which fill in the defaults and
// validate the result.
type Config struct {
	// StackCapacity and CallStackCapacity default to 4096/1024.
	// CallStackCapacity bounds the interpreter's call depth. StackCapacity
	// is validated and logged only: the interpreter's value stack has no
	// fixed bound.
	StackCapacity     int `yaml:"stackCapacity"`
	CallStackCapacity int `yaml:"callStackCapacity"`

	CompileMode CompileMode `yaml:"-"`

	Logger enginelog.Logger `yaml:"-"`
}

// DefaultConfig returns the engine's default tuning: 4096 value-stack slots,
// 1024 call-stack frames, Release compile mode, and a no-op logger.
func DefaultConfig() Config {
	return Config{
		StackCapacity:     4096,
		CallStackCapacity: 1024,
		CompileMode:       Release,
		Logger:            enginelog.NewNoop(),
	}
}

// configDoc mirrors Config's YAML-visible fields plus a string compileMode,
// since CompileMode's Go type has no generated yaml (un)marshaler.
type configDoc struct {
	StackCapacity     int    `yaml:"stackCapacity"`
	CallStackCapacity int    `yaml:"callStackCapacity"`
	CompileMode       string `yaml:"compileMode"`
}

// LoadConfigYAML parses a YAML document from r into a Config, starting from
// DefaultConfig and overriding whatever fields are present, then validates
// that both capacities are positive (spec §4.11 "field-level validation").
func LoadConfigYAML(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("engine: reading config: %w", err)
	}

	cfg := DefaultConfig()
	doc := configDoc{StackCapacity: cfg.StackCapacity, CallStackCapacity: cfg.CallStackCapacity, CompileMode: cfg.CompileMode.String()}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("engine: parsing config: %w", err)
	}

	cfg.StackCapacity = doc.StackCapacity
	cfg.CallStackCapacity = doc.CallStackCapacity
	switch doc.CompileMode {
	case "debug":
		cfg.CompileMode = Debug
	case "release", "":
		cfg.CompileMode = Release
	default:
		return nil, fmt.Errorf("engine: invalid compileMode %q (want \"release\" or \"debug\")", doc.CompileMode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports whether cfg's capacities are positive.
func (cfg Config) Validate() error {
	if cfg.StackCapacity <= 0 {
		return fmt.Errorf("engine: stackCapacity must be positive, got %d", cfg.StackCapacity)
	}
	if cfg.CallStackCapacity <= 0 {
		return fmt.Errorf("engine: callStackCapacity must be positive, got %d", cfg.CallStackCapacity)
	}
	return nil
}
