package formula

import (
	"io"
	"math/big"
	"strings"

	"golang.org/x/text/language"
)

// Result is the result of evaluating an expression. It has the same shape as
// the expression tree and retains the value of every subexpression.
type Result struct {
	Kind NodeKind
	// Value is the value of the subexpression. It must not be modified.
	Value *big.Float
	// Name is the variable name of a variable result.
	Name string
	// Op is the operator of an operation result.
	Op *Operator
	// Func is the function of a parenthesis result.
	Func *Function
	// Left is the left operand of an operation or the contents of a
	// parenthesis. Right is the right operand of an operation.
	Left, Right *Result

	n    *Node
	vars Delimiters
}

// Float64 returns the nearest float64 to the result and the accuracy of the
// conversion.
func (r *Result) Float64() (float64, big.Accuracy) {
	return r.Value.Float64()
}

// Int64 returns the result truncated to an int64 and the accuracy of the
// conversion.
func (r *Result) Int64() (int64, big.Accuracy) {
	return r.Value.Int64()
}

// Big returns a copy of the result.
func (r *Result) Big() *big.Float {
	return new(big.Float).Copy(r.Value)
}

// Rat returns the exact value of the result as a rational. If the result is
// infinite, the result is nil.
func (r *Result) Rat() *big.Rat {
	q, _ := r.Value.Rat(nil)
	return q
}

// String formats the value of the result.
func (r *Result) String() string {
	return r.Value.Text('g', -1)
}

// Pattern writes the subexpression that produced the result as text which
// parses to an equivalent expression. Decimal separators follow the
// convention of loc. If vars is given, its first element replaces the
// variable delimiters that the expression was parsed with.
func (r *Result) Pattern(loc language.Tag, vars ...Delimiters) string {
	return pattern(r.n, loc, r.vars, vars)
}

// Debug formats the result as a tree, one subexpression per line in the form
// "pattern = value", with each level indented by indent.
func (r *Result) Debug(indent string) string {
	var b strings.Builder
	r.debug(&b, indent, 0)
	return b.String()
}

// WriteDebug writes the result formatted as by Debug to w.
func (r *Result) WriteDebug(w io.Writer, indent string) error {
	_, err := io.WriteString(w, r.Debug(indent))
	return err
}

func (r *Result) debug(b *strings.Builder, indent string, depth int) {
	f := patternfmt{sep: '.', vars: r.vars}
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
	r.n.fmt(b, &f)
	b.WriteString(" = ")
	b.WriteString(r.String())
	b.WriteByte('\n')
	if r.Left != nil {
		r.Left.debug(b, indent, depth+1)
	}
	if r.Right != nil {
		r.Right.debug(b, indent, depth+1)
	}
}

// pattern formats n with the separator of loc and either the first of the
// override delimiters or dflt.
func pattern(n *Node, loc language.Tag, dflt Delimiters, override []Delimiters) string {
	f := patternfmt{sep: DecimalSeparator(loc), vars: dflt}
	if len(override) > 0 {
		f.vars = override[0]
	}
	var b strings.Builder
	n.fmt(&b, &f)
	return b.String()
}
