package formula

import (
	"fmt"
	"strconv"
)

// NumberError is an error indicating a malformed numeric literal. It
// implements InputError.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "multiple decimal points in number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket, or empty if a close bracket has no
	// opening.
	Left string
	// Right is the closing bracket, or empty if an open bracket is never
	// closed. If both are set, they are of different kinds.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" closed by "+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// FunctionError is an error indicating a parenthesized expression preceded by
// a name which is not a known function. It implements InputError.
type FunctionError struct {
	// Col is the position of the function name.
	Col int
	// Func is the name.
	Func string
}

func (err *FunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Func))
}

func (err *FunctionError) Pos() int {
	return err.Col
}

// VariableError is an error indicating an invalid variable reference. It
// implements InputError.
type VariableError struct {
	// Col is the position of the variable.
	Col int
	// Text is the variable reference.
	Text string
}

func (err *VariableError) Error() string {
	return errpos(err.Col, "empty variable name in "+strconv.Quote(err.Text))
}

func (err *VariableError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position at which an expression was expected.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "missing expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating input which no grammar rule accepts.
// It implements InputError.
type SyntaxError struct {
	// Col is the position of the start of the input.
	Col int
	// Text is the input.
	Text string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, "cannot parse "+strconv.Quote(err.Text))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// InternalError indicates that a grammar rule panicked. Unlike the other
// parse errors, it does not mean that the input is invalid; it is a bug in
// the rule or its configuration.
type InternalError struct {
	// Rule is the name of the rule that panicked.
	Rule string
	// Value is the value the rule panicked with.
	Value interface{}
}

func (err *InternalError) Error() string {
	return fmt.Sprintf("formula: internal error in rule %q: %v", err.Rule, err.Value)
}

// Unwrap returns the panic value if it is an error.
func (err *InternalError) Unwrap() error {
	e, _ := err.Value.(error)
	return e
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based index of the rune
	// at which the offending text starts.
	Pos() int
}

var (
	_ InputError = (*NumberError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*FunctionError)(nil)
	_ InputError = (*VariableError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
