package formula

import (
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config is the YAML representation of parsing options. Operators and
// functions select from the defaults by symbol and by name, in order; empty
// lists select all defaults. The no-op function for bare parentheses is always
// included.
type Config struct {
	Precision uint             `yaml:"precision,omitempty"`
	Operators []string         `yaml:"operators,omitempty"`
	Functions []string         `yaml:"functions,omitempty"`
	Variables *VariablesConfig `yaml:"variables,omitempty"`
	// Errors is "return" or "panic".
	Errors string `yaml:"errors,omitempty"`
}

// VariablesConfig describes the variable delimiters.
type VariablesConfig struct {
	// Wrap disables variable delimiters when explicitly false.
	Wrap  *bool  `yaml:"wrap,omitempty"`
	Open  string `yaml:"open,omitempty"`
	Close string `yaml:"close,omitempty"`
}

// DefaultConfig returns the configuration equivalent to NewOptions.
func DefaultConfig() *Config {
	c := Config{
		Precision: defaultPrec,
		Variables: &VariablesConfig{
			Open:  string(DefaultDelimiters.Open),
			Close: string(DefaultDelimiters.Close),
		},
		Errors: "return",
	}
	for _, op := range DefaultOperators() {
		c.Operators = append(c.Operators, string(op.Symbol))
	}
	for _, fn := range DefaultFunctions() {
		if fn.Name != "" {
			c.Functions = append(c.Functions, fn.Name)
		}
	}
	return &c
}

// WriteTo writes the configuration to w as YAML.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// LoadConfig reads a YAML configuration and builds options from it.
func LoadConfig(r io.Reader) (*Options, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("formula: decoding config: %w", err)
	}
	return c.Options()
}

// Options builds options from the configuration.
func (c *Config) Options() (*Options, error) {
	o := NewOptions().SetPrec(c.Precision)
	if len(c.Operators) > 0 {
		all := DefaultOperators()
		ops := make([]*Operator, 0, len(c.Operators))
	next:
		for _, sym := range c.Operators {
			r, sz := utf8.DecodeRuneInString(sym)
			if sz == 0 || sz != len(sym) {
				return nil, fmt.Errorf("formula: operator %q is not a single rune", sym)
			}
			for _, op := range all {
				if op.Symbol == r {
					ops = append(ops, op)
					continue next
				}
			}
			return nil, fmt.Errorf("formula: unknown operator %q", sym)
		}
		o.SetOperators(ops...)
	}
	if len(c.Functions) > 0 {
		all := DefaultFunctions()
		fns := []*Function{all[0]}
	nextfn:
		for _, name := range c.Functions {
			for _, fn := range all[1:] {
				if fn.Matches(name) {
					fns = append(fns, fn)
					continue nextfn
				}
			}
			return nil, fmt.Errorf("formula: unknown function %q", name)
		}
		o.SetFunctions(fns...)
	}
	if v := c.Variables; v != nil {
		var open, close rune
		if v.Wrap == nil || *v.Wrap {
			open, close = DefaultDelimiters.Open, DefaultDelimiters.Close
			if v.Open != "" {
				open, _ = utf8.DecodeRuneInString(v.Open)
			}
			if v.Close != "" {
				close, _ = utf8.DecodeRuneInString(v.Close)
			}
		}
		if err := o.SetVariableDelimiters(open, close); err != nil {
			return nil, err
		}
	}
	switch c.Errors {
	case "", "return":
		o.SetErrorMode(ReturnErrors)
	case "panic":
		o.SetErrorMode(PanicOnError)
	default:
		return nil, fmt.Errorf("formula: unknown error mode %q", c.Errors)
	}
	return o, nil
}
