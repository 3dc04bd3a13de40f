package pattern

import (
	"strconv"

	"github.com/opdeflang/opdef/lexer"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/token"
)

// Parse reads one parameter pattern from ts (spec.md §4.3): a bare NUM
// (NumericLit), a bare IDENT (Named), or a brace group.
func Parse(ts *lexer.TokenStream) (*Pattern, *opdeferr.Error) {
	tok := ts.Peek()
	switch tok.ID {
	case token.NUM:
		ts.Next()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, opdeferr.NewAt(opdeferr.ExpectedNumber, tok.Line, tok.Column, "malformed numeric literal %q", tok.Lexeme)
		}
		return NewNumericLit("", n), nil
	case token.IDENTIFIER:
		ts.Next()
		return NewNamed(tok.Lexeme), nil
	case token.LBRACE:
		return parseBraceGroup(ts)
	default:
		return nil, opdeferr.NewAt(opdeferr.UnexpectedToken, tok.Line, tok.Column, "expected a parameter pattern, got %s", tok.ID)
	}
}

// parseBraceGroup implements spec.md §4.3's inside-braces rules:
//
//	{X}               -> Restricted(X)
//	{k}               -> semantic error (numbers need no restriction)
//	{p1, p2, ..., pk}  -> right-associative Pair chain, k >= 2
func parseBraceGroup(ts *lexer.TokenStream) (*Pattern, *opdeferr.Error) {
	open := ts.Next() // consume '{'

	var elements []*Pattern
	for {
		el, err := Parse(ts)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if ts.Peek().ID == token.COMMA {
			ts.Next()
			continue
		}
		break
	}

	closeTok := ts.Peek()
	if closeTok.ID != token.RBRACE {
		return nil, opdeferr.NewAt(opdeferr.UnmatchedBrace, open.Line, open.Column, "unmatched '{'")
	}
	ts.Next() // consume '}'

	if len(elements) == 1 {
		only := elements[0]
		switch {
		case only.Kind == Named && only.First == nil && only.Rest == nil:
			return NewRestricted(only.Name), nil
		case only.Kind == NumericLit && only.First == nil && only.Rest == nil:
			return nil, opdeferr.NewAt(opdeferr.NumericParamCannotBeRestricted, open.Line, open.Column,
				"a numeric literal does not need to be restricted: %d", only.Lit)
		default:
			// Already a fully-shaped nested pattern (e.g. {{X}} or {{X, Y}}).
			return only, nil
		}
	}
	return RightAssocPair(elements), nil
}
