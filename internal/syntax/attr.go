package syntax

import "rxguard/internal/source"

// AttrArgKind classifies an attribute argument for constant evaluation.
type AttrArgKind uint8

const (
	AttrArgString AttrArgKind = iota
	AttrArgInt
	AttrArgOther // not a literal; constant-only rules skip the attribute
)

// AttrArg is one argument of an attribute application.
type AttrArg struct {
	Span source.Span
	Text string // verbatim, including quotes for string literals
	Kind AttrArgKind
}

// StringValue returns the unquoted value of a string-literal argument.
func (a AttrArg) StringValue() (string, bool) {
	if a.Kind != AttrArgString || len(a.Text) < 2 {
		return "", false
	}
	return a.Text[1 : len(a.Text)-1], true
}

// Attribute is a bracketed annotation such as [TechDebt("reason", "date")].
type Attribute struct {
	Span source.Span
	Name string
	Args []AttrArg
}
