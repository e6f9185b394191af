package formula

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Expr is a parsed expression that can be evaluated with any storage.
type Expr struct {
	// n is the root node of the expression.
	n *Node
	// names is the sorted list of variable names used in the expression.
	names []string
	// prec is the precision of calculations.
	prec uint
	// vars is the variable delimiters the expression was parsed with.
	vars Delimiters
}

// Rule is a grammar rule. Rules are tried in order on a span of the input
// until one produces a node or an error.
//
// A rule which does not recognize the span returns nil, nil, so that the next
// rule is tried. A rule which recognizes the span as its own form but finds
// the contents invalid returns an error, which ends parsing of the span; it
// must not leave the error for a looser rule to mask. A rule that panics
// produces an *InternalError.
//
// A rule must give the same outcome every time it sees the same span: the
// outcome of each range of the input is computed once per parse and reused.
type Rule interface {
	// Name identifies the rule for registration and in errors.
	Name() string
	// Parse attempts to parse the span.
	Parse(sp *Span) (*Node, error)
}

// Span is a range of the input being parsed, along with its tokens.
type Span struct {
	p          *parser
	start, end int
	t          tokens
}

// parser holds the data shared by all spans of one parse.
type parser struct {
	src  string
	opts *Options
	// memo holds the outcome of every range parsed so far. Each range is
	// dispatched at most once, which keeps parsing polynomial in the input
	// length however many splits the rules try.
	memo map[[2]int]parsed
}

// parsed is the outcome of parsing one range.
type parsed struct {
	n   *Node
	err error
}

// Options returns the options for the parse.
func (sp *Span) Options() *Options {
	return sp.p.opts
}

// Source returns the entire input being parsed.
func (sp *Span) Source() string {
	return sp.p.src
}

// Start returns the byte offset of the span in the input.
func (sp *Span) Start() int {
	return sp.start
}

// End returns the byte offset of the end of the span in the input.
func (sp *Span) End() int {
	return sp.end
}

// Text returns the text of the span.
func (sp *Span) Text() string {
	return sp.p.src[sp.start:sp.end]
}

// Len returns the number of tokens in the span.
func (sp *Span) Len() int {
	return len(sp.t.toks)
}

// Token returns the i'th token of the span.
func (sp *Span) Token(i int) Token {
	return sp.t.toks[i]
}

// Partner returns the index of the delimiter paired with token i, or -1 if
// the token has no partner in the span.
func (sp *Span) Partner(i int) int {
	return sp.t.partner(i)
}

// Col converts a byte offset in the input to a 1-based rune column.
func (sp *Span) Col(pos int) int {
	return sp.p.col(pos)
}

// Parse parses the byte range [start, end) of the input, which must lie
// within the span, by trying each grammar rule in order.
func (sp *Span) Parse(start, end int) (*Node, error) {
	if start < sp.start || end > sp.end || start > end {
		panic("formula: subspan out of range")
	}
	return sp.p.parse(start, end)
}

func (p *parser) col(pos int) int {
	return utf8.RuneCountInString(p.src[:pos]) + 1
}

// parse parses src[start:end], reusing the outcome of an earlier parse of
// the same range.
func (p *parser) parse(start, end int) (*Node, error) {
	k := [2]int{start, end}
	if r, ok := p.memo[k]; ok {
		return r.n, r.err
	}
	n, err := p.dispatch(start, end)
	p.memo[k] = parsed{n: n, err: err}
	return n, err
}

// dispatch tokenizes src[start:end] and tries each rule on it.
func (p *parser) dispatch(start, end int) (*Node, error) {
	sp := &Span{p: p, start: start, end: end, t: tokenize(p.src, start, end, p.opts)}
	if len(sp.t.toks) == 0 {
		return nil, &EmptyExpressionError{Col: p.col(start)}
	}
	for _, rule := range p.opts.rules {
		p.opts.log.Trace().Str("rule", rule.Name()).Str("span", sp.Text()).Msg("trying rule")
		n, err := p.try(rule, sp)
		if err != nil {
			p.opts.log.Debug().Str("rule", rule.Name()).Str("span", sp.Text()).Err(err).Msg("rule rejected span")
			return nil, err
		}
		if n != nil {
			p.opts.log.Debug().Str("rule", rule.Name()).Str("span", sp.Text()).Stringer("kind", n.kind).Msg("rule matched span")
			return n, nil
		}
	}
	if k := sp.t.unpaired(); k >= 0 {
		return nil, p.bracketError(&sp.t, k)
	}
	text := strings.TrimSpace(sp.Text())
	return nil, &SyntaxError{Col: p.col(start + strings.Index(sp.Text(), text)), Text: text}
}

// try calls a rule, converting panics to internal errors.
func (p *parser) try(rule Rule, sp *Span) (n *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, &InternalError{Rule: rule.Name(), Value: r}
		}
	}()
	return rule.Parse(sp)
}

// bracketError creates an error for the unpaired delimiter token k. If the
// nearest unpaired delimiter on its other side is of a different kind, the
// error names both as mismatched.
func (p *parser) bracketError(t *tokens, k int) error {
	tok := t.toks[k]
	if tok.Kind == TokenOpen {
		col := p.col(tok.End - utf8.RuneLen(tok.Rune))
		for i := k + 1; i < len(t.toks); i++ {
			c := t.toks[i]
			if c.Kind == TokenClose && t.pairs[i] < 0 {
				if c.Delim != tok.Delim {
					return &BracketError{Col: col, Left: string(tok.Rune), Right: string(c.Rune)}
				}
				break
			}
		}
		return &BracketError{Col: col, Left: string(tok.Rune)}
	}
	for i := k - 1; i >= 0; i-- {
		o := t.toks[i]
		if o.Kind == TokenOpen && t.pairs[i] < 0 {
			if o.Delim != tok.Delim {
				col := p.col(o.End - utf8.RuneLen(o.Rune))
				return &BracketError{Col: col, Left: string(o.Rune), Right: string(tok.Rune)}
			}
			break
		}
	}
	return &BracketError{Col: p.col(tok.Pos), Right: string(tok.Rune)}
}

// Parse parses an expression so it can be evaluated. If o is nil, the default
// options are used. If o has the PanicOnError mode, Parse panics instead of
// returning an error.
func Parse(src string, o *Options) (*Expr, error) {
	if o == nil {
		o = defaults
	}
	p := parser{src: src, opts: o, memo: make(map[[2]int]parsed)}
	n, err := p.parse(0, len(src))
	if err != nil {
		if o.mode == PanicOnError {
			panic(err)
		}
		return nil, err
	}
	return newExpr(n, o), nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src string, o *Options) *Expr {
	e, err := Parse(src, o)
	if err != nil {
		panic(err)
	}
	return e
}

func newExpr(n *Node, o *Options) *Expr {
	seen := make(map[string]bool)
	ex := Expr{n: n, prec: o.prec, vars: o.vars}
	n.walk(func(m *Node) {
		if m.kind == NodeVariable && !seen[m.name] {
			seen[m.name] = true
			ex.names = append(ex.names, m.name)
		}
	})
	slices.Sort(ex.names)
	return &ex
}

// Root returns the root node of the expression tree.
func (e *Expr) Root() *Node {
	return e.n
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Prec returns the precision of calculations in the expression.
func (e *Expr) Prec() uint {
	return e.prec
}

// Pattern formats the expression as text which parses to an equivalent
// expression. Decimal separators follow the convention of loc. If vars is
// given, its first element replaces the variable delimiters that the
// expression was parsed with.
func (e *Expr) Pattern(loc language.Tag, vars ...Delimiters) string {
	return pattern(e.n, loc, e.vars, vars)
}

// String formats the expression in English notation.
func (e *Expr) String() string {
	return e.Pattern(language.English)
}
