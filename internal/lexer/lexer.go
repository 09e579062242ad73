// Package lexer produces the token stream the syntax layer extracts call
// sites from. It is deliberately tolerant: unknown bytes become Punct tokens
// and unterminated literals are cut at the end of the window, because the
// analyzer must keep working on source it only partially understands.
package lexer

import (
	"rxguard/internal/source"
	"rxguard/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	hold   []token.Trivia
}

// New creates a lexer over the whole file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file)}
}

// NewRange creates a lexer over the byte window [start, end) of the file.
// Spans of produced tokens stay in whole-file coordinates.
func NewRange(file *source.File, start, end uint32) *Lexer {
	return &Lexer{file: file, cursor: NewRangeCursor(file, start, end)}
}

// Next returns the next significant token with its leading trivia attached.
// After the window is exhausted it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
			Leading: lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStart(ch):
		tok = lx.scanIdent()
	case isDigit(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	default:
		tok = lx.scanPunct()
	}
	tok.Leading = lx.takeHold()
	return tok
}

// Tokens drains the lexer, including the final EOF token.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

// collectLeadingTrivia gathers whitespace, newline runs, and comments in
// front of the next significant token. Spaces and tabs coalesce into one
// TriviaSpace; consecutive newlines coalesce into one TriviaNewline.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' || b == '\r' {
			for lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanComment() {
			continue
		}
		break
	}
}

// scanComment consumes a // line comment or a /* block comment into hold.
// A lone '/' is left for the punct scanner.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	case '*':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				break
			}
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	default:
		lx.cursor.Reset(start)
		return false
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tok(token.Ident, start)
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDigit(b) && b != '.' && b != '_' && !isIdentContinue(b) {
			break
		}
		lx.cursor.Bump()
	}
	return lx.tok(token.IntLit, start)
}

// scanString consumes a quoted literal with backslash escapes. An
// unterminated literal ends at the window boundary.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == quote || b == '\n' {
			break
		}
	}
	return lx.tok(token.StringLit, start)
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Punct
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case '.':
		kind = token.Dot
	case '=':
		if lx.cursor.Eat('>') {
			kind = token.FatArrow
		}
	}
	return lx.tok(kind, start)
}

func (lx *Lexer) tok(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
