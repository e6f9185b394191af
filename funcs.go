package formula

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Function is a named function of one real argument, applied by writing its
// name or an alias before a parenthesized expression. Names are matched
// without regard to case. The function named "" applies to bare parentheses.
type Function struct {
	Name    string
	Aliases []string
	// Fn sets z to the result of the function at x and must not modify x.
	// If x is outside the function's domain, Fn should panic with a
	// *DomainError or big.ErrNaN.
	Fn func(z, x *big.Float) *big.Float
}

// Matches reports whether name is the function's name or one of its aliases,
// ignoring case.
func (f *Function) Matches(name string) bool {
	if strings.EqualFold(f.Name, name) {
		return true
	}
	for _, a := range f.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func (f *Function) apply(z, x *big.Float) (err error) {
	defer recoverDomain(f.Name, x, &err)
	f.Fn(z, x)
	return nil
}

// Monadic wraps a float64 function into a Function. Results are computed to
// float64 precision regardless of the precision of the expression. A NaN
// result is reported as a domain error.
func Monadic(name string, f func(float64) float64, aliases ...string) *Function {
	fn := func(z, x *big.Float) *big.Float {
		v, _ := x.Float64()
		r := f(v)
		if math.IsNaN(r) {
			panic(&DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: name})
		}
		return z.SetFloat64(r)
	}
	return &Function{Name: name, Aliases: aliases, Fn: fn}
}

// DefaultFunctions returns new instances of the default functions.
func DefaultFunctions() []*Function {
	return []*Function{
		{Name: "", Fn: (*big.Float).Set},
		{Name: "sqrt", Aliases: []string{"√"}, Fn: (*big.Float).Sqrt},
		{Name: "abs", Fn: (*big.Float).Abs},
		{Name: "exp", Fn: bigfloat.Exp},
		{Name: "ln", Fn: bigfloat.Log},
		{Name: "log", Aliases: []string{"lg", "log10"}, Fn: log10},
		{Name: "floor", Fn: floor},
		{Name: "ceil", Fn: ceil},
		Monadic("sin", math.Sin),
		Monadic("cos", math.Cos),
		Monadic("tan", math.Tan),
		Monadic("asin", math.Asin, "arcsin"),
		Monadic("acos", math.Acos, "arccos"),
		Monadic("atan", math.Atan, "arctan"),
	}
}

func log10(z, x *big.Float) *big.Float {
	bigfloat.Log(z, x)
	ten := new(big.Float).SetPrec(z.Prec()).SetInt64(10)
	bigfloat.Log(ten, ten)
	return z.Quo(z, ten)
}

func floor(z, x *big.Float) *big.Float {
	if x.IsInf() || x.IsInt() {
		return z.Set(x)
	}
	i, acc := x.Int(nil)
	if acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	return z.SetInt(i)
}

func ceil(z, x *big.Float) *big.Float {
	if x.IsInf() || x.IsInt() {
		return z.Set(x)
	}
	i, acc := x.Int(nil)
	if acc == big.Below {
		i.Add(i, big.NewInt(1))
	}
	return z.SetInt(i)
}

// recoverDomain recovers a panic from an operator or function. Domain errors
// and big.ErrNaN become the error stored in err, named after the operator or
// function if they don't name one already; anything else panics again.
func recoverDomain(name string, x *big.Float, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		panic(r)
	}
	var de *DomainError
	if errors.As(e, &de) {
		if de.Func == "" {
			de.Func = name
		}
		*err = de
		return
	}
	if errors.As(e, &big.ErrNaN{}) {
		*err = &DomainError{X: new(big.Float).Copy(x), Func: name}
		return
	}
	panic(r)
}

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if unknown.
	Arg int
	// Func is a name identifying the operator or function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}
