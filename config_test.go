package formula_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/formula"
)

func TestConfigRoundTrip(t *testing.T) {
	var b bytes.Buffer
	n, err := formula.DefaultConfig().WriteTo(&b)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(b.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, b.Len())
	}
	o, err := formula.LoadConfig(&b)
	if err != nil {
		t.Fatalf("default config doesn't load: %v", err)
	}
	d := formula.NewOptions()
	if o.Prec() != d.Prec() || o.VariableDelimiters() != d.VariableDelimiters() || o.ErrorMode() != d.ErrorMode() {
		t.Errorf("wrong settings: prec %d vars %v mode %v", o.Prec(), o.VariableDelimiters(), o.ErrorMode())
	}
	if syms(o.Operators()) != syms(d.Operators()) {
		t.Errorf("wrong operators: want %s, got %s", syms(d.Operators()), syms(o.Operators()))
	}
	if !reflect.DeepEqual(names(o.Functions()), names(d.Functions())) {
		t.Errorf("wrong functions: want %q, got %q", names(d.Functions()), names(o.Functions()))
	}
}

func syms(ops []*formula.Operator) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.String())
	}
	return b.String()
}

func names(fns []*formula.Function) []string {
	r := make([]string, 0, len(fns))
	for _, fn := range fns {
		r = append(r, fn.Name)
	}
	return r
}

func TestLoadConfig(t *testing.T) {
	src := `precision: 128
operators: [+, "-"]
functions: [sqrt, LN]
variables:
  open: "{"
  close: "}"
errors: panic
`
	o, err := formula.LoadConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if o.Prec() != 128 {
		t.Errorf("wrong precision %d", o.Prec())
	}
	if got := syms(o.Operators()); got != "+-" {
		t.Errorf("wrong operators %s", got)
	}
	if got := names(o.Functions()); !reflect.DeepEqual(got, []string{"", "sqrt", "ln"}) {
		t.Errorf("wrong functions %q", got)
	}
	if o.VariableDelimiters() != (formula.Delimiters{Open: '{', Close: '}'}) {
		t.Errorf("wrong delimiters %v", o.VariableDelimiters())
	}
	if o.ErrorMode() != formula.PanicOnError {
		t.Errorf("wrong error mode %v", o.ErrorMode())
	}
	o.SetErrorMode(formula.ReturnErrors)
	a, err := formula.Parse("sqrt({x})-1", o)
	if err != nil {
		t.Fatal(err)
	}
	r, err := a.Eval(formula.NewStore().SetFloat64("x", 9))
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := r.Float64(); f != 2 {
		t.Errorf("want 2, got %v", r)
	}
	if _, err := formula.Parse("2*3", o); err == nil {
		t.Error("2*3 parsed with only + and -")
	}
	if _, err := formula.Parse("abs(1)", o); err == nil {
		t.Error("abs(1) parsed without abs")
	}
}

func TestLoadConfigUnwrapped(t *testing.T) {
	o, err := formula.LoadConfig(strings.NewReader("variables:\n  wrap: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if o.VariableDelimiters().Wrap() {
		t.Errorf("delimiters still wrap: %v", o.VariableDelimiters())
	}
	if got := formula.MustParse("x+1", o).Vars(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("wrong vars %q", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad-op", "operators: ['%']\n"},
		{"long-op", "operators: ['++']\n"},
		{"bad-func", "functions: [mod]\n"},
		{"same-delims", "variables:\n  open: '|'\n  close: '|'\n"},
		{"bad-mode", "errors: ignore\n"},
		{"bad-yaml", "precision: lots\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := formula.LoadConfig(strings.NewReader(c.src)); err == nil {
				t.Errorf("%q loaded without error", c.src)
			}
		})
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	o, err := formula.LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Operators()) != len(formula.DefaultOperators()) || o.Prec() != 64 {
		t.Errorf("empty config isn't the default")
	}
}
