package formula

import "strconv"

// Token is a lexical unit of an expression.
type Token struct {
	Kind TokenKind
	// Text is the literal text of a text token, the symbol of an operator
	// token, or the prefix of an opening delimiter, e.g. a function name.
	Text string
	// Rune is the delimiter or operator rune.
	Rune rune
	// Delim is the kind of a delimiter token.
	Delim Delim
	// Pos and End are the byte offsets of the token in the source. For an
	// opening delimiter, Pos is the start of its prefix.
	Pos, End int
}

func (t Token) String() string {
	s := t.Kind.String() + ":" + t.Text
	if t.Rune != 0 && t.Kind != TokenOperator {
		s += string(t.Rune)
	}
	return s + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenText is anything that is not split further at its level.
	TokenText
	// TokenOperator is a single binary operator symbol.
	TokenOperator
	// TokenOpen is an opening delimiter, possibly with a prefix.
	TokenOpen
	// TokenClose is a closing delimiter.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenText:
		return "Text"
	case TokenOperator:
		return "Operator"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Delim distinguishes the kinds of paired delimiters.
type Delim int8

const (
	delimNone Delim = iota
	// DelimParen is a grouping or function call parenthesis.
	DelimParen
	// DelimVariable is a variable name bracket.
	DelimVariable
)

// tokens is a token sequence together with its pair table. pairs[i] is the
// index of the partner of delimiter token i, or -1 if it has none or is not a
// delimiter. Neither slice is modified once tokenizing finishes.
type tokens struct {
	toks  []Token
	pairs []int
}

// partner returns the partner index of token i, or -1.
func (t *tokens) partner(i int) int {
	if i < 0 || i >= len(t.pairs) {
		return -1
	}
	return t.pairs[i]
}

// unpaired returns the index of the first delimiter with no partner, or -1.
func (t *tokens) unpaired() int {
	for i, tok := range t.toks {
		if (tok.Kind == TokenOpen || tok.Kind == TokenClose) && t.pairs[i] < 0 {
			return i
		}
	}
	return -1
}
