package lexer

import "github.com/opdeflang/opdef/token"

// TokenStream is a forward, peekable stream of tokens (spec.md §4.1):
// Peek, Next, and HasNext. Next is undefined once HasNext is false.
type TokenStream struct {
	lx     *Lexer
	lookah token.Token
	ready  bool
}

// NewTokenStream wraps a Lexer in a one-token-lookahead stream.
func NewTokenStream(lx *Lexer) *TokenStream {
	return &TokenStream{lx: lx}
}

// Peek returns the next token without consuming it.
func (ts *TokenStream) Peek() token.Token {
	if !ts.ready {
		ts.lookah = ts.lx.NextToken()
		ts.ready = true
	}
	return ts.lookah
}

// Next consumes and returns the next token.
func (ts *TokenStream) Next() token.Token {
	tok := ts.Peek()
	ts.ready = false
	return tok
}

// HasNext reports whether a non-EOF token remains.
func (ts *TokenStream) HasNext() bool {
	return ts.Peek().ID != token.EOF
}

// ConsumeAll drains the stream into a slice, excluding the trailing EOF.
// Used by the -l/--lexer CLI dump.
func (ts *TokenStream) ConsumeAll() []token.Token {
	var toks []token.Token
	for ts.HasNext() {
		toks = append(toks, ts.Next())
	}
	return toks
}
