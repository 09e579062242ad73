package token

// Kind enumerates the token kinds of the analyzed surface language. The
// scanner is tolerant: anything it does not classify becomes Punct so that
// call-site extraction can keep walking.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	IntLit
	StringLit
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Lt
	Gt
	Comma
	Colon
	Semicolon
	Dot
	FatArrow // =>
	Punct    // any other operator or punctuation byte
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case IntLit:
		return "IntLit"
	case StringLit:
		return "StringLit"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Lt:
		return "Lt"
	case Gt:
		return "Gt"
	case Comma:
		return "Comma"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case Dot:
		return "Dot"
	case FatArrow:
		return "FatArrow"
	case Punct:
		return "Punct"
	}
	return "Unknown"
}
