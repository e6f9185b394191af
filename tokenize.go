package formula

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenRule splits source text at the runes it is triggered by. Token rules
// are consulted in registration order, and at most one acts per rune.
type TokenRule interface {
	// Name identifies the rule for registration.
	Name() string
	// Triggers returns the runes which the rule may act on under o.
	Triggers(o *Options) string
	// Split examines the rune r at byte index i. If the rule acts, it must
	// emit tokens through s and return true. Otherwise it returns false and
	// leaves s alone.
	Split(s *Scanner, i int, r rune) bool
}

// Scanner is the state of a single tokenizing pass. Token rules use it to
// emit tokens; it is not retained after tokenizing finishes.
type Scanner struct {
	src  string
	opts *Options
	// begin is the byte offset of the first rune not yet in a token.
	begin int
	t     tokens
	// stack holds the token indices of unclosed openings.
	stack []int
}

// Options returns the options that the scan is configured with.
func (s *Scanner) Options() *Options {
	return s.opts
}

// Depth returns the number of open delimiters that have not been closed.
func (s *Scanner) Depth() int {
	return len(s.stack)
}

// Pending returns the text accumulated since the last emitted token, up to
// byte index i.
func (s *Scanner) Pending(i int) string {
	return s.src[s.begin:i]
}

// Verbatim reports whether the innermost open delimiter is a variable
// bracket, in which case nothing but its closing bracket may split.
func (s *Scanner) Verbatim() bool {
	if len(s.stack) == 0 {
		return false
	}
	return s.t.toks[s.stack[len(s.stack)-1]].Delim == DelimVariable
}

// SignPosition reports whether an operator symbol at byte index i would be
// the sign of an operand rather than a binary operator: nothing but spaces is
// pending, and the previous token is an opening delimiter, an operator, or
// there is no previous token.
func (s *Scanner) SignPosition(i int) bool {
	if !isBlank(s.Pending(i)) {
		return false
	}
	if len(s.t.toks) == 0 {
		return true
	}
	switch s.t.toks[len(s.t.toks)-1].Kind {
	case TokenOpen, TokenOperator:
		return true
	}
	return false
}

// Operator emits pending text followed by an operator token for r at byte
// index i.
func (s *Scanner) Operator(i int, r rune) {
	s.flush(i)
	end := i + utf8.RuneLen(r)
	s.emit(Token{Kind: TokenOperator, Text: string(r), Rune: r, Pos: i, End: end})
	s.begin = end
}

// Open emits an opening delimiter for r at byte index i. If prefix is true,
// the pending text becomes the delimiter's prefix, e.g. a function name;
// otherwise it is emitted as a text token first.
func (s *Scanner) Open(i int, r rune, kind Delim, prefix bool) {
	tok := Token{Kind: TokenOpen, Rune: r, Delim: kind, Pos: i, End: i + utf8.RuneLen(r)}
	if prefix {
		tok.Text = s.Pending(i)
		tok.Pos = s.begin
	} else {
		s.flush(i)
	}
	s.stack = append(s.stack, len(s.t.toks))
	s.emit(tok)
	s.begin = tok.End
}

// Close emits pending text followed by a closing delimiter for r at byte
// index i. If the innermost open delimiter is of the same kind, the two are
// linked as a pair.
func (s *Scanner) Close(i int, r rune, kind Delim) {
	s.flush(i)
	end := i + utf8.RuneLen(r)
	k := len(s.t.toks)
	s.emit(Token{Kind: TokenClose, Rune: r, Delim: kind, Pos: i, End: end})
	if n := len(s.stack); n > 0 {
		if open := s.stack[n-1]; s.t.toks[open].Delim == kind {
			s.t.pairs[open] = k
			s.t.pairs[k] = open
			s.stack = s.stack[:n-1]
		}
	}
	s.begin = end
}

// flush emits pending text up to i as a text token, unless it is blank.
func (s *Scanner) flush(i int) {
	text := s.src[s.begin:i]
	s.begin = i
	if isBlank(text) {
		return
	}
	s.emit(Token{Kind: TokenText, Text: text, Pos: i - len(text), End: i})
}

func (s *Scanner) emit(tok Token) {
	s.t.toks = append(s.t.toks, tok)
	s.t.pairs = append(s.t.pairs, -1)
}

// tokenize splits src[start:end] into tokens using the token rules of o.
// Token positions are offsets into src. Tokenizing never fails; unmatched
// delimiters are left without partners for the parser to reject.
func tokenize(src string, start, end int, o *Options) tokens {
	s := Scanner{src: src[:end], opts: o, begin: start}
	rules := o.tokenRules
	triggers := make([]string, len(rules))
	for k, rule := range rules {
		triggers[k] = rule.Triggers(o)
	}
	for i, r := range src[start:end] {
		i += start
		for k, rule := range rules {
			if !strings.ContainsRune(triggers[k], r) {
				continue
			}
			if rule.Split(&s, i, r) {
				break
			}
		}
	}
	s.flush(end)
	return s.t
}

// ParenTokens is the token rule for parentheses. An opening parenthesis
// captures the text before it as a function name.
type ParenTokens struct{}

func (ParenTokens) Name() string { return "paren" }

func (ParenTokens) Triggers(o *Options) string { return "()" }

func (ParenTokens) Split(s *Scanner, i int, r rune) bool {
	if s.Verbatim() {
		return false
	}
	if r == '(' {
		s.Open(i, r, DelimParen, true)
	} else {
		s.Close(i, r, DelimParen)
	}
	return true
}

// VariableTokens is the token rule for the variable brackets configured in
// the options. It does nothing if variable wrapping is disabled.
type VariableTokens struct{}

func (VariableTokens) Name() string { return "variable" }

func (VariableTokens) Triggers(o *Options) string {
	if !o.vars.Wrap() {
		return ""
	}
	return string([]rune{o.vars.Open, o.vars.Close})
}

func (VariableTokens) Split(s *Scanner, i int, r rune) bool {
	d := s.Options().vars
	switch {
	case r == d.Close:
		s.Close(i, r, DelimVariable)
	case r == d.Open && !s.Verbatim():
		s.Open(i, r, DelimVariable, false)
	default:
		return false
	}
	return true
}

// OperatorTokens is the token rule for binary operators. It only splits
// outside of any delimiters, and it leaves signs attached to their operands.
type OperatorTokens struct{}

func (OperatorTokens) Name() string { return "operator" }

func (OperatorTokens) Triggers(o *Options) string {
	var b strings.Builder
	for _, op := range o.ops {
		b.WriteRune(op.Symbol)
	}
	return b.String()
}

func (OperatorTokens) Split(s *Scanner, i int, r rune) bool {
	if s.Depth() > 0 || s.SignPosition(i) {
		return false
	}
	s.Operator(i, r)
	return true
}

// DefaultTokenRules returns the default token rules in their default order.
func DefaultTokenRules() []TokenRule {
	return []TokenRule{ParenTokens{}, VariableTokens{}, OperatorTokens{}}
}

// isBlank reports whether s contains only whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
