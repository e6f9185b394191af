package formula_test

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/language"

	"github.com/zephyrtronium/formula"
)

func Example() {
	var (
		fx   = formula.MustParse("[x]^3/2 - [x]", nil)
		dfx  = formula.MustParse("3*[x]^2/2 - 1", nil)
		ddfx = formula.MustParse("3*[x]", nil)
	)
	st := formula.NewStore()
	for i := 0; i < 4; i++ {
		st.SetFloat64("x", float64(i))
		y, _ := fx.Eval(st)
		yp, _ := dfx.Eval(st)
		ypp, _ := ddfx.Eval(st)
		fmt.Printf("x = %d   y = %-4s  y' = %-4s  y'' = %s\n", i, y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}

func ExampleExpr_Pattern() {
	e := formula.MustParse("1,5*([price]+2)", nil)
	fmt.Println(e.Pattern(language.English))
	fmt.Println(e.Pattern(language.German))
	fmt.Println(e.Pattern(language.English, formula.Delimiters{Open: '{', Close: '}'}))

	// Output:
	// 1.5 * ([price] + 2)
	// 1,5 * ([price] + 2)
	// 1.5 * ({price} + 2)
}

func ExampleResult_Debug() {
	r, _ := formula.MustParse("1+2*(3-4)", nil).Eval(nil)
	fmt.Print(r.Debug("  "))

	// Output:
	// 1 + 2 * (3 - 4) = -1
	//   1 = 1
	//   2 * (3 - 4) = -2
	//     2 = 2
	//     (3 - 4) = -1
	//       3 - 4 = -1
	//         3 = 3
	//         4 = 4
}

// piRule parses the name pi as a constant.
type piRule struct{}

func (piRule) Name() string { return "pi" }

func (piRule) Parse(sp *formula.Span) (*formula.Node, error) {
	if !strings.EqualFold(strings.TrimSpace(sp.Text()), "pi") {
		return nil, nil
	}
	v, _ := new(big.Float).SetPrec(sp.Options().Prec()).SetString("3.14159")
	return formula.Constant(v), nil
}

func ExampleOptions_Register() {
	o := formula.NewOptions().Register(piRule{})
	_, err := formula.EvalString("2*pi", nil)
	fmt.Println(err)
	r, err := formula.MustParse("2*PI", o).Eval(nil)
	fmt.Println(r, err)

	// Output:
	// 3: cannot parse "pi"
	// 6.28318 <nil>
}
