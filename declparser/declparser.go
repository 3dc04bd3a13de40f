/*
File   : opdef/declparser/declparser.go
Package declparser turns a token stream into a peekable stream of
Statement records (spec.md §4.2): Include, Category, and OperatorDef.
Operator bodies are left as unresolved Body trees (Sequence/Terminal/Pair
from package body); the sequence resolver (package resolve) converts them
once the full operator table context is available.

On a parse error within one declaration, the parser skips tokens until the
next declaration-starter keyword and resumes -- panic-mode recovery,
grounded on the teacher's collected-errors style rather than aborting on
the first problem.
*/
package declparser

import (
	"strconv"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/lexer"
	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/pattern"
	"github.com/opdeflang/opdef/token"
)

// StmtKind distinguishes the three declaration shapes.
type StmtKind int

const (
	IncludeStmt StmtKind = iota
	CategoryStmt
	OperatorDefStmt
)

// OperatorDef carries an operator definition's format, declared priority,
// operator-name token, ordered parameter patterns (length 0/1/2 per
// arity), and unresolved body.
type OperatorDef struct {
	Format      token.ID
	Priority    int
	PriorityTok token.Token
	Name        token.Token
	Patterns    []*pattern.Pattern
	Body        body.PreBody
}

// Statement is one parsed declaration.
type Statement struct {
	Kind     StmtKind
	Filename token.Token  // Include
	Name     token.Token  // Category
	Def      *OperatorDef // OperatorDef
}

// Parser is a one-statement-lookahead stream over a token stream.
type Parser struct {
	ts        *lexer.TokenStream
	lookahead *Statement
	lookErr   *opdeferr.Error
	ready     bool
}

// New wraps a token stream in a statement parser.
func New(ts *lexer.TokenStream) *Parser {
	return &Parser{ts: ts}
}

// HasNext reports whether another declaration remains in the underlying
// token stream.
func (p *Parser) HasNext() bool {
	return p.ts.HasNext()
}

// Peek returns the next statement (or parse error) without consuming it.
func (p *Parser) Peek() (*Statement, *opdeferr.Error) {
	if !p.ready {
		p.lookahead, p.lookErr = p.parseOne()
		p.ready = true
	}
	return p.lookahead, p.lookErr
}

// Next consumes and returns the next statement or parse error.
func (p *Parser) Next() (*Statement, *opdeferr.Error) {
	stmt, err := p.Peek()
	p.ready = false
	return stmt, err
}

func isFormatTag(id token.ID) bool {
	for _, f := range token.FormatIDs {
		if id == f {
			return true
		}
	}
	return false
}

// recover implements the panic-mode skip-to-next-declaration rule of
// spec.md §4.2.
func (p *Parser) recover() {
	for p.ts.HasNext() && !token.IsDeclarationStarter(p.ts.Peek().ID) {
		p.ts.Next()
	}
}

func (p *Parser) parseOne() (*Statement, *opdeferr.Error) {
	tok := p.ts.Peek()
	switch {
	case tok.ID == token.INCLUDE:
		return p.parseInclude()
	case tok.ID == token.CATEGORY:
		return p.parseCategory()
	case isFormatTag(tok.ID):
		return p.parseOperatorDef()
	default:
		err := opdeferr.NewAt(opdeferr.UnexpectedToken, tok.Line, tok.Column, "expected a declaration, got %s", tok.ID)
		p.ts.Next()
		p.recover()
		return nil, err
	}
}

func (p *Parser) parseInclude() (*Statement, *opdeferr.Error) {
	p.ts.Next() // consume 'include'
	nameTok := p.ts.Peek()
	if nameTok.ID != token.IDENTIFIER {
		err := opdeferr.NewAt(opdeferr.ExpectedIdentifier, nameTok.Line, nameTok.Column, "expected a filename after 'include'")
		p.recover()
		return nil, err
	}
	p.ts.Next()
	return &Statement{Kind: IncludeStmt, Filename: nameTok}, nil
}

func (p *Parser) parseCategory() (*Statement, *opdeferr.Error) {
	p.ts.Next() // consume 'category'/'class'
	nameTok := p.ts.Peek()
	if nameTok.ID != token.IDENTIFIER {
		err := opdeferr.NewAt(opdeferr.ExpectedIdentifier, nameTok.Line, nameTok.Column, "expected a name after 'category'")
		p.recover()
		return nil, err
	}
	p.ts.Next()
	return &Statement{Kind: CategoryStmt, Name: nameTok}, nil
}

// parseOperatorDef implements `opdef ::= format NUM sig_tok+ body`
// (spec.md §6.1). The format tag's own letters ('f' for the operator
// name, 'x'/'y' for a parameter pattern) drive the shape and order of the
// signature tokens that follow -- "xfx" reads as pattern, name, pattern;
// "fx" reads as name, pattern; and so on.
func (p *Parser) parseOperatorDef() (*Statement, *opdeferr.Error) {
	formatTok := p.ts.Next()

	priorityTok := p.ts.Peek()
	if priorityTok.ID != token.NUM {
		err := opdeferr.NewAt(opdeferr.ExpectedNumber, priorityTok.Line, priorityTok.Column, "expected a priority number after format %q", formatTok.ID)
		p.recover()
		return nil, err
	}
	p.ts.Next()
	priority, convErr := strconv.Atoi(priorityTok.Lexeme)
	if convErr != nil {
		err := opdeferr.NewAt(opdeferr.ExpectedNumber, priorityTok.Line, priorityTok.Column, "malformed priority %q", priorityTok.Lexeme)
		p.recover()
		return nil, err
	}

	var nameTok token.Token
	var haveName bool
	var patterns []*pattern.Pattern

	for _, ch := range string(formatTok.ID) {
		if ch == 'f' {
			nt := p.ts.Peek()
			if nt.ID != token.IDENTIFIER {
				err := opdeferr.NewAt(opdeferr.ExpectedIdentifier, nt.Line, nt.Column, "expected an operator name")
				p.recover()
				return nil, err
			}
			p.ts.Next()
			nameTok = nt
			haveName = true
			continue
		}
		// 'x' or 'y': a parameter pattern slot.
		pat, err := pattern.Parse(p.ts)
		if err != nil {
			p.recover()
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	if !haveName {
		err := opdeferr.NewAt(opdeferr.UnexpectedToken, formatTok.Line, formatTok.Column, "format %q names no operator", formatTok.ID)
		p.recover()
		return nil, err
	}

	bodyPB, err := parseBody(p.ts)
	if err != nil {
		p.recover()
		return nil, err
	}

	def := &OperatorDef{
		Format:      formatTok.ID,
		Priority:    priority,
		PriorityTok: priorityTok,
		Name:        nameTok,
		Patterns:    patterns,
		Body:        *bodyPB,
	}
	return &Statement{Kind: OperatorDefStmt, Def: def}, nil
}

// isBodyItemStart reports whether tok can start a body_item (spec.md
// §6.1): NUM, IDENT, STRING, or a brace group.
func isBodyItemStart(tok token.Token) bool {
	switch tok.ID {
	case token.NUM, token.IDENTIFIER, token.STRING, token.LBRACE:
		return true
	}
	return false
}

// parseBody implements `body ::= body_item+ ("," body)?`: a flat run of
// body items, optionally continued past a top-level comma into a
// right-associative Pair of bodies.
func parseBody(ts *lexer.TokenStream) (*body.PreBody, *opdeferr.Error) {
	left, err := parseBodyRun(ts)
	if err != nil {
		return nil, err
	}
	if ts.Peek().ID == token.COMMA {
		ts.Next()
		right, err := parseBody(ts)
		if err != nil {
			return nil, err
		}
		pb := body.NewPrePair(*left, *right)
		return &pb, nil
	}
	return left, nil
}

// parseBodyRun reads one maximal run of body_item tokens (no top-level
// comma) into a Sequence.
func parseBodyRun(ts *lexer.TokenStream) (*body.PreBody, *opdeferr.Error) {
	var items []body.PreBody
	for isBodyItemStart(ts.Peek()) {
		item, err := parseBodyItem(ts)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if len(items) == 0 {
		tok := ts.Peek()
		return nil, opdeferr.NewAt(opdeferr.EmptyBody, tok.Line, tok.Column, "operator body must not be empty")
	}
	seq := body.NewSequence(items)
	return &seq, nil
}

// parseBodyItem reads one body_item: a bare token, or a brace-grouped
// sub-body treated as a single forced-atomic item.
//
// String tokens in body position are accepted lexically (spec.md §6.1's
// grammar allows STRING as a body_item) but their pair-desugaring is left
// unimplemented; the sequence resolver surfaces Unsupported when it
// actually encounters one (spec.md §4.2, §9).
func parseBodyItem(ts *lexer.TokenStream) (*body.PreBody, *opdeferr.Error) {
	tok := ts.Peek()
	switch tok.ID {
	case token.NUM, token.IDENTIFIER, token.STRING:
		ts.Next()
		t := body.NewTerminal(tok)
		return &t, nil
	case token.LBRACE:
		open := ts.Next()
		inner, err := parseBody(ts)
		if err != nil {
			return nil, err
		}
		closeTok := ts.Peek()
		if closeTok.ID != token.RBRACE {
			return nil, opdeferr.NewAt(opdeferr.UnmatchedBrace, open.Line, open.Column, "unmatched '{'")
		}
		ts.Next()
		return inner, nil
	default:
		return nil, opdeferr.NewAt(opdeferr.UnexpectedToken, tok.Line, tok.Column, "unexpected token %s in body", tok.ID)
	}
}
