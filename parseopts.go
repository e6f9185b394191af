package formula

import (
	"errors"

	"github.com/rs/zerolog"
)

// Options is the grammar configuration used for parsing: the ordered grammar
// rules and token rules, the operator and function tables, the variable
// delimiters, and the error reporting mode.
//
// Rules, operators, and functions are always consulted in the order they
// were registered; where two entries conflict, the first wins. Options are not
// safe to modify concurrently with a parse that uses them, but an unmodified
// Options may be shared by any number of concurrent parses.
type Options struct {
	rules      []Rule
	tokenRules []TokenRule
	ops        []*Operator
	funcs      []*Function
	vars       Delimiters
	mode       ErrorMode
	prec       uint
	log        zerolog.Logger
}

// ErrorMode selects how Parse reports errors.
type ErrorMode int8

const (
	// ReturnErrors makes Parse return errors.
	ReturnErrors ErrorMode = iota
	// PanicOnError makes Parse panic with the error it would have returned.
	PanicOnError
)

// Delimiters is a pair of runes that wrap variable names. The zero value
// disables wrapping, so that variables are bare identifiers.
type Delimiters struct {
	Open, Close rune
}

// Wrap reports whether variable names are wrapped in delimiters.
func (d Delimiters) Wrap() bool {
	return d.Open != 0 || d.Close != 0
}

// DefaultDelimiters are the default variable delimiters, [ and ].
var DefaultDelimiters = Delimiters{Open: '[', Close: ']'}

// ErrSameDelimiters is returned when setting variable delimiters that cannot
// be told apart.
var ErrSameDelimiters = errors.New("formula: variable delimiters must differ")

// defaultPrec is the default precision of constants and calculations.
const defaultPrec = 64

// NewOptions creates options with the default rules, operators, functions,
// and delimiters.
func NewOptions() *Options {
	return &Options{
		rules:      DefaultRules(),
		tokenRules: DefaultTokenRules(),
		ops:        DefaultOperators(),
		funcs:      DefaultFunctions(),
		vars:       DefaultDelimiters,
		prec:       defaultPrec,
		log:        zerolog.Nop(),
	}
}

// defaults is used when Parse is given nil options. It is never modified.
var defaults = NewOptions()

// Clone creates a copy of o which can be modified independently.
func (o *Options) Clone() *Options {
	n := *o
	n.rules = append([]Rule(nil), o.rules...)
	n.tokenRules = append([]TokenRule(nil), o.tokenRules...)
	n.ops = append([]*Operator(nil), o.ops...)
	n.funcs = append([]*Function(nil), o.funcs...)
	return &n
}

// Register appends a grammar rule. Returns o for chaining.
func (o *Options) Register(r Rule) *Options {
	o.rules = append(o.rules, r)
	return o
}

// Unregister removes the first grammar rule with the given name and reports
// whether there was one.
func (o *Options) Unregister(name string) bool {
	for i, r := range o.rules {
		if r.Name() == name {
			o.rules = append(o.rules[:i:i], o.rules[i+1:]...)
			return true
		}
	}
	return false
}

// SetRules replaces the grammar rules.
func (o *Options) SetRules(rules ...Rule) *Options {
	o.rules = append([]Rule(nil), rules...)
	return o
}

// Rules returns the grammar rules in order.
func (o *Options) Rules() []Rule {
	return append([]Rule(nil), o.rules...)
}

// RegisterTokenRule appends a token rule.
func (o *Options) RegisterTokenRule(r TokenRule) *Options {
	o.tokenRules = append(o.tokenRules, r)
	return o
}

// UnregisterTokenRule removes the first token rule with the given name and
// reports whether there was one.
func (o *Options) UnregisterTokenRule(name string) bool {
	for i, r := range o.tokenRules {
		if r.Name() == name {
			o.tokenRules = append(o.tokenRules[:i:i], o.tokenRules[i+1:]...)
			return true
		}
	}
	return false
}

// TokenRules returns the token rules in order.
func (o *Options) TokenRules() []TokenRule {
	return append([]TokenRule(nil), o.tokenRules...)
}

// SetOperators replaces the binary operators.
func (o *Options) SetOperators(ops ...*Operator) *Options {
	o.ops = append([]*Operator(nil), ops...)
	return o
}

// Operators returns the binary operators in order.
func (o *Options) Operators() []*Operator {
	return append([]*Operator(nil), o.ops...)
}

// SetFunctions replaces the functions.
func (o *Options) SetFunctions(fns ...*Function) *Options {
	o.funcs = append([]*Function(nil), fns...)
	return o
}

// Functions returns the functions in order.
func (o *Options) Functions() []*Function {
	return append([]*Function(nil), o.funcs...)
}

// SetVariableDelimiters sets the runes that wrap variable names. Passing zero
// for both disables wrapping. Returns ErrSameDelimiters if wrapping would be
// enabled with identical runes.
func (o *Options) SetVariableDelimiters(open, close rune) error {
	d := Delimiters{Open: open, Close: close}
	if d.Wrap() && open == close {
		return ErrSameDelimiters
	}
	o.vars = d
	return nil
}

// VariableDelimiters returns the runes that wrap variable names.
func (o *Options) VariableDelimiters() Delimiters {
	return o.vars
}

// SetErrorMode sets how Parse reports errors.
func (o *Options) SetErrorMode(m ErrorMode) *Options {
	o.mode = m
	return o
}

// ErrorMode returns how Parse reports errors.
func (o *Options) ErrorMode() ErrorMode {
	return o.mode
}

// SetPrec sets the precision in bits of constants and of calculations in
// expressions parsed with o. Zero selects the default of 64.
func (o *Options) SetPrec(prec uint) *Options {
	if prec == 0 {
		prec = defaultPrec
	}
	o.prec = prec
	return o
}

// Prec returns the precision of parsed expressions.
func (o *Options) Prec() uint {
	return o.prec
}

// SetLogger sets the logger that traces rule dispatch.
func (o *Options) SetLogger(l zerolog.Logger) *Options {
	o.log = l
	return o
}

// operator finds the first operator with the given symbol.
func (o *Options) operator(sym rune) *Operator {
	for _, op := range o.ops {
		if op.Symbol == sym {
			return op
		}
	}
	return nil
}

// function finds the first function matching name, ignoring case.
func (o *Options) function(name string) *Function {
	for _, fn := range o.funcs {
		if fn.Matches(name) {
			return fn
		}
	}
	return nil
}
