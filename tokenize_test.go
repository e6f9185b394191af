package formula

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	text := func(s string, pos int) Token {
		return Token{Kind: TokenText, Text: s, Pos: pos, End: pos + len(s)}
	}
	op := func(r rune, pos int) Token {
		return Token{Kind: TokenOperator, Text: string(r), Rune: r, Pos: pos, End: pos + len(string(r))}
	}
	open := func(prefix string, pos int) Token {
		return Token{Kind: TokenOpen, Text: prefix, Rune: '(', Delim: DelimParen, Pos: pos, End: pos + len(prefix) + 1}
	}
	close := func(pos int) Token {
		return Token{Kind: TokenClose, Rune: ')', Delim: DelimParen, Pos: pos, End: pos + 1}
	}
	vopen := func(pos int) Token {
		return Token{Kind: TokenOpen, Rune: '[', Delim: DelimVariable, Pos: pos, End: pos + 1}
	}
	vclose := func(pos int) Token {
		return Token{Kind: TokenClose, Rune: ']', Delim: DelimVariable, Pos: pos, End: pos + 1}
	}
	cases := []struct {
		name  string
		src   string
		toks  []Token
		pairs []int
	}{
		{"empty", "", nil, nil},
		{"spaces", " \t ", nil, nil},
		{"num", "1", []Token{text("1", 0)}, []int{-1}},
		{"add", "1+2", []Token{text("1", 0), op('+', 1), text("2", 2)}, []int{-1, -1, -1}},
		{"spaced", "1 + 2", []Token{text("1 ", 0), op('+', 2), text(" 2", 3)}, []int{-1, -1, -1}},
		{"signs", "-1--1", []Token{text("-1", 0), op('-', 2), text("-1", 3)}, []int{-1, -1, -1}},
		{"sign-after-op", "2*-3", []Token{text("2", 0), op('*', 1), text("-3", 2)}, []int{-1, -1, -1}},
		{"spaced-sign", "1 - -2", []Token{text("1 ", 0), op('-', 2), text(" -2", 3)}, []int{-1, -1, -1}},
		{"times", "3×4", []Token{text("3", 0), op('×', 1), text("4", 3)}, []int{-1, -1, -1}},
		{
			"nested-op",
			"2*(3+4)",
			[]Token{text("2", 0), op('*', 1), open("", 2), text("3+4", 3), close(6)},
			[]int{-1, -1, 4, -1, 2},
		},
		{
			"sign-in-paren",
			"(-3)",
			[]Token{open("", 0), text("-3", 1), close(3)},
			[]int{2, -1, 0},
		},
		{
			"func",
			"sqrt(4)",
			[]Token{open("sqrt", 0), text("4", 5), close(6)},
			[]int{2, -1, 0},
		},
		{
			"func-after-op",
			"1+ln(2)",
			[]Token{text("1", 0), op('+', 1), open("ln", 2), text("2", 5), close(6)},
			[]int{-1, -1, 4, -1, 2},
		},
		{
			"nested-parens",
			"((1))",
			[]Token{open("", 0), open("", 1), text("1", 2), close(3), close(4)},
			[]int{4, 3, -1, 1, 0},
		},
		{
			"variable",
			"[a+b]*2",
			[]Token{vopen(0), text("a+b", 1), vclose(4), op('*', 5), text("2", 6)},
			[]int{2, -1, 0, -1, -1},
		},
		{
			"verbatim",
			"[a(b]",
			[]Token{vopen(0), text("a(b", 1), vclose(4)},
			[]int{2, -1, 0},
		},
		{
			"unclosed",
			"(1+2",
			[]Token{open("", 0), text("1+2", 1)},
			[]int{-1, -1},
		},
		{
			"unopened",
			"1)",
			[]Token{text("1", 0), close(1)},
			[]int{-1, -1},
		},
		{
			"mismatched",
			"(]",
			[]Token{open("", 0), vclose(1)},
			[]int{-1, -1},
		},
	}
	o := NewOptions()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tokenize(c.src, 0, len(c.src), o)
			if len(got.toks) != len(c.toks) {
				t.Fatalf("%q: wrong number of tokens: want %v, got %v", c.src, c.toks, got.toks)
			}
			for i, want := range c.toks {
				if got.toks[i] != want {
					t.Errorf("%q: token %d: want %#v, got %#v", c.src, i, want, got.toks[i])
				}
			}
			for i, want := range c.pairs {
				if got.pairs[i] != want {
					t.Errorf("%q: pair of token %d: want %d, got %d", c.src, i, want, got.pairs[i])
				}
			}
		})
	}
}

func TestTokenizeSubspan(t *testing.T) {
	src := "2*(3+4)"
	got := tokenize(src, 3, 6, NewOptions())
	want := []Token{
		{Kind: TokenText, Text: "3", Pos: 3, End: 4},
		{Kind: TokenOperator, Text: "+", Rune: '+', Pos: 4, End: 5},
		{Kind: TokenText, Text: "4", Pos: 5, End: 6},
	}
	if len(got.toks) != len(want) {
		t.Fatalf("wrong tokens: want %v, got %v", want, got.toks)
	}
	for i := range want {
		if got.toks[i] != want[i] {
			t.Errorf("token %d: want %v, got %v", i, want[i], got.toks[i])
		}
	}
}

func TestTokenizeConfigured(t *testing.T) {
	t.Run("operators", func(t *testing.T) {
		o := NewOptions().SetOperators(DefaultOperators()[:2]...)
		got := tokenize("1*2+3", 0, 5, o)
		if len(got.toks) != 3 || got.toks[0].Text != "1*2" || got.toks[1].Rune != '+' {
			t.Errorf("wrong tokens: %v", got.toks)
		}
	})
	t.Run("delimiters", func(t *testing.T) {
		o := NewOptions()
		if err := o.SetVariableDelimiters('{', '}'); err != nil {
			t.Fatal(err)
		}
		got := tokenize("{x}[y]", 0, 6, o)
		if len(got.toks) != 4 {
			t.Fatalf("wrong tokens: %v", got.toks)
		}
		if got.toks[0].Delim != DelimVariable || got.pairs[0] != 2 || got.toks[3].Text != "[y]" {
			t.Errorf("wrong tokens: %v pairs %v", got.toks, got.pairs)
		}
	})
	t.Run("unwrapped", func(t *testing.T) {
		o := NewOptions()
		if err := o.SetVariableDelimiters(0, 0); err != nil {
			t.Fatal(err)
		}
		got := tokenize("[x]+y", 0, 5, o)
		if len(got.toks) != 3 || got.toks[0].Text != "[x]" {
			t.Errorf("wrong tokens: %v", got.toks)
		}
	})
	t.Run("unregistered", func(t *testing.T) {
		o := NewOptions()
		if !o.UnregisterTokenRule("operator") {
			t.Fatal("no operator token rule")
		}
		got := tokenize("1+2", 0, 3, o)
		if len(got.toks) != 1 || got.toks[0].Text != "1+2" {
			t.Errorf("wrong tokens: %v", got.toks)
		}
	})
}
