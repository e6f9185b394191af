package formula

import (
	"math/big"
	"strconv"
)

// evaluation holds the state shared by the nodes of one call to Expr.Eval.
type evaluation struct {
	st   Storage
	prec uint
	vars Delimiters
}

// Eval evaluates the expression with variables looked up in st. If st is nil,
// every variable evaluates to zero. The expression is not modified, so Eval
// may be called concurrently with independent storages.
//
// Errors from the storage are returned as-is. An operator or function
// applied outside its domain produces a *DomainError.
func (e *Expr) Eval(st Storage) (*Result, error) {
	if st == nil {
		st = Zero
	}
	ev := evaluation{st: st, prec: e.prec, vars: e.vars}
	return e.n.eval(&ev)
}

// eval evaluates n and its children in post-order.
func (n *Node) eval(ev *evaluation) (*Result, error) {
	r := &Result{Kind: n.kind, n: n, vars: ev.vars}
	switch n.kind {
	case NodeConstant:
		r.Value = new(big.Float).Copy(n.val)
	case NodeVariable:
		v, err := ev.st.Value(n.name)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, &NameError{Name: n.name}
		}
		r.Name = n.name
		r.Value = new(big.Float).SetPrec(ev.prec).Set(v)
	case NodeOperation:
		l, err := n.left.eval(ev)
		if err != nil {
			return nil, err
		}
		rr, err := n.right.eval(ev)
		if err != nil {
			return nil, err
		}
		r.Op, r.Left, r.Right = n.op, l, rr
		r.Value = new(big.Float).SetPrec(ev.prec)
		if err := n.op.apply(r.Value, l.Value, rr.Value); err != nil {
			return nil, err
		}
	case NodeParenthesis:
		in, err := n.left.eval(ev)
		if err != nil {
			return nil, err
		}
		r.Func, r.Left = n.fn, in
		r.Value = new(big.Float).SetPrec(ev.prec)
		if err := n.fn.apply(r.Value, in.Value); err != nil {
			return nil, err
		}
	default:
		panic("formula: invalid node kind " + n.kind.String())
	}
	return r, nil
}

// EvalString is a shortcut to parse a string with the default options and
// evaluate it with the given storage.
func EvalString(src string, st Storage) (*big.Float, error) {
	e, err := Parse(src, nil)
	if err != nil {
		return nil, err
	}
	r, err := e.Eval(st)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

// NameError is an error from a lookup for a variable that is missing from a
// storage.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
