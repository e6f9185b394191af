package formula_test

import (
	"math/big"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/formula"
)

func TestStore(t *testing.T) {
	zero := new(big.Float)
	one := big.NewFloat(1)
	st := formula.NewStore().Set("x", zero)
	if x, err := st.Value("x"); err != nil || x.Cmp(zero) != 0 {
		t.Errorf("x should be %v but is %v (%v)", zero, x, err)
	}
	if y, err := st.Value("y"); err == nil {
		t.Errorf("store has y: %v", y)
	} else if u, ok := err.(*formula.NameError); !ok || u.Name != "y" {
		t.Errorf("wrong error for y: %#v", err)
	}
	st.Set("y", one)
	if y, err := st.Value("y"); err != nil || y.Cmp(one) != 0 {
		t.Errorf("y should be %v but is %v (%v)", one, y, err)
	}
	// Set copies its argument.
	one.SetInt64(5)
	if y, _ := st.Value("y"); y.Cmp(big.NewFloat(1)) != 0 {
		t.Errorf("modifying the argument to Set changed y to %v", y)
	}
	if got := st.Names(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("wrong names %q", got)
	}
	st.Delete("x")
	if _, err := st.Value("x"); err == nil {
		t.Error("x not deleted")
	}
	st.Default(big.NewFloat(-1))
	if x, err := st.Value("x"); err != nil || x.Cmp(big.NewFloat(-1)) != 0 {
		t.Errorf("x should have the default value but is %v (%v)", x, err)
	}
	st.Default(nil)
	if _, err := st.Value("x"); err == nil {
		t.Error("x has a value after removing the default")
	}
}

func TestStoreConcurrent(t *testing.T) {
	st := formula.NewStore()
	a := formula.MustParse("[x]+1", nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				st.SetFloat64("x", float64(k))
			}
		}(i)
		go func() {
			defer wg.Done()
			st.Default(new(big.Float))
			for k := 0; k < 100; k++ {
				if _, err := a.Eval(st); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadStore(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want map[string]float64
		err  bool
	}{
		{"empty", "", map[string]float64{}, false},
		{"nums", "x: 1.5\nrate: 0.25\n", map[string]float64{"x": 1.5, "rate": 0.25}, false},
		{"quoted", "big: \"1e3\"\nneg: -2\n", map[string]float64{"big": 1000, "neg": -2}, false},
		{"spaced-name", "total price: 10\n", map[string]float64{"total price": 10}, false},
		{"bad-value", "x: banana\n", nil, true},
		{"bad-yaml", "- 1\n- 2\n", nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, err := formula.LoadStore(strings.NewReader(c.src), 0)
			if c.err {
				if err == nil {
					t.Errorf("no error, got %v", st.Names())
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(st.Names()) != len(c.want) {
				t.Errorf("wrong names: want %v, got %q", c.want, st.Names())
			}
			for name, want := range c.want {
				v, err := st.Value(name)
				if err != nil {
					t.Errorf("%s: %v", name, err)
					continue
				}
				if f, _ := v.Float64(); f != want {
					t.Errorf("%s: want %g, got %v", name, want, v)
				}
			}
		})
	}
}

func TestLoadStorePrec(t *testing.T) {
	st, err := formula.LoadStore(strings.NewReader("x: 0.1\n"), 200)
	if err != nil {
		t.Fatal(err)
	}
	x, err := st.Value("x")
	if err != nil {
		t.Fatal(err)
	}
	if x.Prec() != 200 {
		t.Errorf("wrong precision %d", x.Prec())
	}
}
