/*
File   : opdef/lexer/lexer.go
Package lexer turns opdef source bytes into a token stream. It recognizes
the include/category/class keywords, the eight operator-definition format
tags, numbers, double-quoted strings, identifiers, braces, and commas; it
drops whitespace and full-line comments.

A line is a comment when, at column 1, its first word is not one of the
declaration keywords immediately followed by a token delimiter (spec.md
§4.1) -- there is no "//"-style comment marker in this language.
*/
package lexer

import (
	"strings"

	"github.com/opdeflang/opdef/opdeferr"
	"github.com/opdeflang/opdef/token"
)

// Lexer scans opdef source text byte by byte, tracking line/column for
// diagnostics. It has no lookahead buffering of its own -- TokenStream
// (stream.go) layers peek/has_next on top of NextToken.
type Lexer struct {
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Line      int
	Column    int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	var cur byte
	if len(src) > 0 {
		cur = src[0]
	}
	return &Lexer{Src: src, Current: cur, Position: 0, SrcLength: len(src), Line: 1, Column: 1}
}

// Peek returns the byte after Current without consuming it, or 0 at EOF.
func (lx *Lexer) Peek() byte {
	if lx.Position+1 >= lx.SrcLength {
		return 0
	}
	return lx.Src[lx.Position+1]
}

// Advance consumes Current and moves to the next byte.
func (lx *Lexer) Advance() {
	lx.Position++
	lx.Column++
	if lx.Position >= lx.SrcLength {
		lx.Current = 0
		lx.Position = lx.SrcLength
	} else {
		lx.Current = lx.Src[lx.Position]
	}
}

// NextToken scans and returns the next token, skipping leading whitespace
// and full-line comments first. Returns an EOF token at end of input, or
// an INVALID token (never panics) on a lexical error. Err converts an
// INVALID token into an *opdeferr.Error; the statement parser does not
// call it and reports an INVALID token as UnexpectedToken.
func (lx *Lexer) NextToken() token.Token {
	lx.skipWhitespaceAndComments()

	line, col := lx.Line, lx.Column

	switch {
	case lx.Current == 0:
		return token.New(token.EOF, "EOF", line, col)
	case lx.Current == '{':
		lx.Advance()
		return token.New(token.LBRACE, "{", line, col)
	case lx.Current == '}':
		lx.Advance()
		return token.New(token.RBRACE, "}", line, col)
	case lx.Current == ',':
		lx.Advance()
		return token.New(token.COMMA, ",", line, col)
	case lx.Current == '"':
		return lx.readString(line, col)
	case isDigit(lx.Current):
		return lx.readNumber(line, col)
	default:
		return lx.readWord(line, col)
	}
}

// Err reports the lexical error associated with an INVALID token produced
// by the most recent NextToken call, if any; callers that want positioned
// diagnostics for bad tokens call this instead of inventing their own
// message.
func (lx *Lexer) Err(tok token.Token) *opdeferr.Error {
	if tok.ID != token.INVALID {
		return nil
	}
	return opdeferr.NewAt(opdeferr.UnrecognizedCharacter, tok.Line, tok.Column, "unrecognized character %q", tok.Lexeme)
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		for isSpace(lx.Current) {
			if lx.Current == '\n' {
				lx.Line++
				lx.Column = 0 // Advance() below brings it to 1
			}
			lx.Advance()
		}
		if lx.Current != 0 && lx.Column == 1 && lx.lineIsComment() {
			lx.skipLine()
			continue
		}
		break
	}
}

// lineIsComment peeks the word starting at the current position (without
// consuming anything) and reports whether it fails to match a declaration
// starter followed immediately by a token delimiter.
func (lx *Lexer) lineIsComment() bool {
	end := lx.Position
	for end < lx.SrcLength && !isLineWordBreak(lx.Src[end]) {
		end++
	}
	word := lx.Src[lx.Position:end]
	id := token.LookupWord(word)
	if !token.IsDeclarationStarter(id) {
		return true
	}
	if end >= lx.SrcLength {
		return false // keyword runs to EOF -- treated as a delimiter
	}
	return !isDelimiter(lx.Src[end])
}

func (lx *Lexer) skipLine() {
	for lx.Current != '\n' && lx.Current != 0 {
		lx.Advance()
	}
}

func (lx *Lexer) readString(line, col int) token.Token {
	lx.Advance() // opening quote
	var b strings.Builder
	for lx.Current != '"' {
		if lx.Current == 0 {
			return token.New(token.INVALID, b.String(), line, col)
		}
		if lx.Current == '\\' {
			lx.Advance()
			switch lx.Current {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(lx.Current)
			}
			lx.Advance()
			continue
		}
		b.WriteByte(lx.Current)
		lx.Advance()
	}
	lx.Advance() // closing quote
	return token.New(token.STRING, b.String(), line, col)
}

func (lx *Lexer) readNumber(line, col int) token.Token {
	start := lx.Position
	for isDigit(lx.Current) {
		lx.Advance()
	}
	return token.New(token.NUM, lx.Src[start:lx.Position], line, col)
}

func (lx *Lexer) readWord(line, col int) token.Token {
	start := lx.Position
	for lx.Current != 0 && !isDelimiter(lx.Current) {
		lx.Advance()
	}
	if lx.Position == start {
		// A delimiter-class byte we don't otherwise recognize (stray
		// quote handled above, so this is a genuinely unknown char).
		bad := string(lx.Current)
		lx.Advance()
		return token.New(token.INVALID, bad, line, col)
	}
	word := lx.Src[start:lx.Position]
	return token.New(token.LookupWord(word), word, line, col)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// isDelimiter reports whether c ends an identifier-shaped word: whitespace,
// braces, commas, or the start of a string literal.
func isDelimiter(c byte) bool {
	return isSpace(c) || c == '{' || c == '}' || c == ',' || c == '"'
}

// isLineWordBreak is isDelimiter widened to also stop at 0 (used only when
// peeking ahead for the comment-line check, where Position may reach EOF).
func isLineWordBreak(c byte) bool {
	return c == 0 || isDelimiter(c)
}
