package token

import "rxguard/internal/source"

// Token is a single significant token with the trivia that preceded it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsOpener reports whether the token opens a bracketed group.
func (t Token) IsOpener() bool {
	return t.Kind == LParen || t.Kind == LBrace || t.Kind == LBracket
}

// IsCloser reports whether the token closes a bracketed group.
func (t Token) IsCloser() bool {
	return t.Kind == RParen || t.Kind == RBrace || t.Kind == RBracket
}

// Closes reports whether t closes the group opened by open.
func (t Token) Closes(open Kind) bool {
	switch open {
	case LParen:
		return t.Kind == RParen
	case LBrace:
		return t.Kind == RBrace
	case LBracket:
		return t.Kind == RBracket
	default:
		return false
	}
}
