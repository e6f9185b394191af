package formula

import (
	"math/big"
	"strconv"
	"strings"
)

// Node is a node in an expression tree. Nodes are immutable once created,
// so trees may be evaluated concurrently.
type Node struct {
	kind NodeKind

	val  *big.Float
	name string
	op   *Operator
	fn   *Function

	left  *Node
	right *Node
}

// NodeKind is the variant of a node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeConstant    // val
	NodeVariable    // lookup(name)
	NodeOperation   // op(left, right)
	NodeParenthesis // fn(left)
)

func (k NodeKind) String() string {
	switch k {
	case NodeNone:
		return "None"
	case NodeConstant:
		return "Constant"
	case NodeVariable:
		return "Variable"
	case NodeOperation:
		return "Operation"
	case NodeParenthesis:
		return "Parenthesis"
	default:
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Constant creates a node with a constant value. The value is copied.
func Constant(v *big.Float) *Node {
	return &Node{kind: NodeConstant, val: new(big.Float).Copy(v)}
}

// Variable creates a node that looks up a variable by name.
func Variable(name string) *Node {
	return &Node{kind: NodeVariable, name: name}
}

// Operation creates a node applying a binary operator.
func Operation(op *Operator, left, right *Node) *Node {
	return &Node{kind: NodeOperation, op: op, left: left, right: right}
}

// Parenthesis creates a node applying a function to a parenthesized
// expression.
func Parenthesis(fn *Function, inner *Node) *Node {
	return &Node{kind: NodeParenthesis, fn: fn, left: inner}
}

// Kind returns the variant of the node.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Value returns a copy of the value of a constant node, or nil for other
// nodes.
func (n *Node) Value() *big.Float {
	if n.val == nil {
		return nil
	}
	return new(big.Float).Copy(n.val)
}

// Name returns the name of a variable node.
func (n *Node) Name() string {
	return n.name
}

// Operator returns the operator of an operation node.
func (n *Node) Operator() *Operator {
	return n.op
}

// Function returns the function of a parenthesis node.
func (n *Node) Function() *Function {
	return n.fn
}

// Left returns the left operand of an operation or the contents of a
// parenthesis.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right operand of an operation.
func (n *Node) Right() *Node {
	return n.right
}

// patternfmt holds the settings for writing a node as re-parsable text.
type patternfmt struct {
	sep  byte
	vars Delimiters
}

func (n *Node) fmt(b *strings.Builder, f *patternfmt) {
	switch n.kind {
	case NodeConstant:
		s := n.val.Text('f', -1)
		if f.sep != '.' {
			s = strings.Replace(s, ".", string(f.sep), 1)
		}
		b.WriteString(s)
	case NodeVariable:
		if f.vars.Wrap() {
			b.WriteRune(f.vars.Open)
			b.WriteString(n.name)
			b.WriteRune(f.vars.Close)
		} else {
			b.WriteString(n.name)
		}
	case NodeOperation:
		// Operators associate to the left, so the right operand needs
		// parentheses even at equal order.
		n.left.fmtoperand(b, f, n.op.Order, false)
		b.WriteByte(' ')
		b.WriteRune(n.op.Symbol)
		b.WriteByte(' ')
		n.right.fmtoperand(b, f, n.op.Order, true)
	case NodeParenthesis:
		b.WriteString(n.fn.Name)
		b.WriteByte('(')
		n.left.fmt(b, f)
		b.WriteByte(')')
	default:
		panic("formula: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtoperand writes n as an operand of an operator with the given order.
func (n *Node) fmtoperand(b *strings.Builder, f *patternfmt, order int, right bool) {
	wrap := n.kind == NodeOperation && (n.op.Order < order || right && n.op.Order == order)
	if wrap {
		b.WriteByte('(')
	}
	n.fmt(b, f)
	if wrap {
		b.WriteByte(')')
	}
}

// walk calls f on n and each node below it in pre-order.
func (n *Node) walk(f func(*Node)) {
	if n == nil {
		return
	}
	f(n)
	n.left.walk(f)
	n.right.walk(f)
}
