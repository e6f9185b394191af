package formula

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Operator is a binary operator. Operators with higher Order bind more
// tightly; several operators may share an order, in which case they associate
// to the left among each other.
type Operator struct {
	// Symbol is the rune that denotes the operator.
	Symbol rune
	// Order is the precedence of the operator.
	Order int
	// Fn sets z to the result of applying the operator to x and y. The
	// arguments must not be modified. If x and y are outside the domain of
	// the operator, Fn should panic with a *DomainError or big.ErrNaN.
	Fn func(z, x, y *big.Float) *big.Float
}

func (op *Operator) String() string {
	return string(op.Symbol)
}

// apply evaluates the operator, converting domain panics into errors.
func (op *Operator) apply(z, x, y *big.Float) (err error) {
	defer recoverDomain(op.String(), y, &err)
	op.Fn(z, x, y)
	return nil
}

// DefaultOperators returns new instances of the default operators: + and - at
// order 1, *, /, ×, and ÷ at order 2, and ^ at order 3.
func DefaultOperators() []*Operator {
	return []*Operator{
		{Symbol: '+', Order: 1, Fn: (*big.Float).Add},
		{Symbol: '-', Order: 1, Fn: (*big.Float).Sub},
		{Symbol: '*', Order: 2, Fn: (*big.Float).Mul},
		{Symbol: '/', Order: 2, Fn: quo},
		{Symbol: '×', Order: 2, Fn: (*big.Float).Mul},
		{Symbol: '÷', Order: 2, Fn: quo},
		{Symbol: '^', Order: 3, Fn: pow},
	}
}

func quo(z, x, y *big.Float) *big.Float {
	// Guard against invalid divisions, 0/0 or inf/inf.
	if x.Sign() == 0 && y.Sign() == 0 || x.IsInf() && y.IsInf() {
		panic(&DomainError{X: new(big.Float).Copy(y), Arg: 2})
	}
	return z.Quo(x, y)
}

func pow(z, x, y *big.Float) *big.Float {
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact {
			return powi(z, x, n)
		}
		return powbig(z, x, y)
	}
	if y.IsInf() {
		panic(&DomainError{X: new(big.Float).Copy(y), Arg: 2, Func: "^"})
	}
	switch x.Sign() {
	case -1:
		panic(&DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"})
	case 0:
		if y.Sign() < 0 {
			return z.SetInf(false)
		}
		return z.SetInt64(0)
	}
	if x.IsInf() {
		if y.Sign() < 0 {
			return z.SetInt64(0)
		}
		return z.SetInf(false)
	}
	bigfloat.Pow(z, x, y)
	return z
}

// powbig sets z to x^y for an integer y outside the range of int64. Unless
// |x| is 1, the magnitude of such a power is beyond the exponent range of
// big.Float, so it is 0 or infinite.
func powbig(z, x, y *big.Float) *big.Float {
	a := new(big.Float).Abs(x)
	switch c := a.Cmp(big.NewFloat(1)); {
	case c == 0:
		z.SetInt64(1)
	case (c > 0) == (y.Sign() > 0):
		z.SetInf(false)
	default:
		z.SetInt64(0)
	}
	if x.Signbit() {
		if i, _ := y.Int(nil); i.Bit(0) == 1 {
			z.Neg(z)
		}
	}
	return z
}

// powi sets z to x^n by repeated squaring.
func powi(z, x *big.Float, n int64) *big.Float {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	b := new(big.Float).SetPrec(prec).Set(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	for u > 0 {
		if u&1 != 0 {
			r.Mul(r, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if n < 0 {
		r.Quo(new(big.Float).SetInt64(1), r)
	}
	return z.Set(r)
}
