package formula

import (
	"errors"
	"math/big"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRules returns the default grammar rules in their default order:
// constants, variables, parentheses, and binary operators.
func DefaultRules() []Rule {
	return []Rule{ConstantRule{}, VariableRule{}, ParenRule{}, OperatorRule{}}
}

// ConstantRule parses numeric literals: an optional sign followed by digits
// with at most one decimal separator, either '.' or ','.
type ConstantRule struct{}

func (ConstantRule) Name() string { return "constant" }

func (ConstantRule) Parse(sp *Span) (*Node, error) {
	text := strings.TrimSpace(sp.Text())
	var digits, seps int
	for i, r := range text {
		switch {
		case '0' <= r && r <= '9':
			digits++
		case r == '.', r == ',':
			seps++
		case (r == '-' || r == '+') && i == 0:
		default:
			return nil, nil
		}
	}
	if digits == 0 {
		return nil, nil
	}
	if seps > 1 {
		return nil, &NumberError{Col: sp.Col(sp.Start() + strings.Index(sp.Text(), text)), Text: text}
	}
	s := strings.Replace(text, ",", ".", 1)
	v, _, err := new(big.Float).SetPrec(sp.Options().prec).Parse(s, 10)
	if err != nil {
		panic("formula: invalid number: " + s + " (" + err.Error() + ")")
	}
	return &Node{kind: NodeConstant, val: v}, nil
}

// VariableRule parses variable references. If the options wrap variable
// names, the span must be a single pair of variable delimiters, and the text
// between them is the name. Otherwise, the span must be an identifier.
type VariableRule struct{}

func (VariableRule) Name() string { return "variable" }

func (VariableRule) Parse(sp *Span) (*Node, error) {
	if !sp.Options().vars.Wrap() {
		name := strings.TrimSpace(sp.Text())
		if !isIdent(name) {
			return nil, nil
		}
		return Variable(name), nil
	}
	first := sp.Token(0)
	if first.Kind != TokenOpen || first.Delim != DelimVariable {
		return nil, nil
	}
	k := sp.Partner(0)
	switch {
	case k < 0:
		return nil, sp.p.bracketError(&sp.t, 0)
	case k != sp.Len()-1:
		return nil, nil
	}
	last := sp.Token(k)
	name := sp.Source()[first.End:last.Pos]
	if name == "" {
		return nil, &VariableError{Col: sp.Col(first.Pos), Text: sp.Source()[first.Pos:last.End]}
	}
	return Variable(name), nil
}

// isIdent reports whether s is a letter or underscore followed by any number
// of letters, digits, and underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// ParenRule parses a span enclosed in a single pair of parentheses. The text
// before the opening parenthesis names the function applied to the contents.
type ParenRule struct{}

func (ParenRule) Name() string { return "paren" }

func (ParenRule) Parse(sp *Span) (*Node, error) {
	first := sp.Token(0)
	if first.Kind != TokenOpen || first.Delim != DelimParen {
		return nil, nil
	}
	k := sp.Partner(0)
	switch {
	case k < 0:
		return nil, sp.p.bracketError(&sp.t, 0)
	case k != sp.Len()-1:
		// The parentheses close before the end of the span, e.g. (a)+(b).
		return nil, nil
	}
	last := sp.Token(k)
	name := strings.TrimSpace(first.Text)
	fn := sp.Options().function(name)
	if fn == nil {
		col := sp.Col(first.Pos + strings.Index(first.Text, name))
		if r, sz := utf8.DecodeRuneInString(name); sz == len(name) && sp.Options().operator(r) != nil {
			// A sign on a group, like -(1+2). Signs belong only to literals.
			text := strings.TrimSpace(sp.Text())
			return nil, &SyntaxError{Col: col, Text: text}
		}
		return nil, &FunctionError{Col: col, Func: name}
	}
	if isBlank(sp.Source()[first.End:last.Pos]) {
		return nil, &EmptyExpressionError{Col: sp.Col(last.Pos)}
	}
	inner, err := sp.Parse(first.End, last.Pos)
	if err != nil {
		return nil, err
	}
	return Parenthesis(fn, inner), nil
}

// OperatorRule parses binary operations.
//
// For each distinct operator order from lowest to highest, the rule scans the
// span's tokens from right to left for an operator of that order outside of
// any delimiters and splits there. Lower orders thus end up nearer the root,
// and operators of equal order associate to the left. An operator at the
// start of the span or after an opening delimiter or another operator is a
// sign, not a split point. If either side of a split fails to parse, the
// next order is tried.
type OperatorRule struct{}

func (OperatorRule) Name() string { return "operator" }

func (OperatorRule) Parse(sp *Span) (*Node, error) {
	o := sp.Options()
	orders := make([]int, 0, len(o.ops))
	for _, op := range o.ops {
		orders = append(orders, op.Order)
	}
	slices.Sort(orders)
	orders = slices.Compact(orders)

	var first error
next:
	for _, ord := range orders {
		depth := 0
		for i := sp.Len() - 1; i >= 0; i-- {
			tok := sp.Token(i)
			switch tok.Kind {
			case TokenClose:
				depth++
				continue
			case TokenOpen:
				depth--
				continue
			case TokenOperator:
				// do below
			default:
				continue
			}
			if depth != 0 || i == 0 {
				continue
			}
			op := o.operator(tok.Rune)
			if op == nil || op.Order != ord {
				continue
			}
			if prev := sp.Token(i - 1).Kind; prev == TokenOpen || prev == TokenOperator {
				continue
			}
			left, err := sp.Parse(sp.Start(), tok.Pos)
			if err == nil {
				var right *Node
				right, err = sp.Parse(tok.End, sp.End())
				if err == nil {
					return Operation(op, left, right), nil
				}
			}
			var ie *InternalError
			if errors.As(err, &ie) {
				return nil, err
			}
			if first == nil {
				first = err
			}
			continue next
		}
	}
	return nil, first
}
