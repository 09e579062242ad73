package syntax

import (
	"rxguard/internal/source"
	"rxguard/internal/token"
)

// Control-flow keywords whose parenthesized headers look like invocations.
var notCallable = map[string]bool{
	"if": true, "while": true, "for": true, "foreach": true,
	"switch": true, "using": true, "catch": true, "lock": true,
	"fixed": true, "when": true,
}

// scanTokens extracts call sites and attribute applications from a token
// stream. Extraction is tolerant: it never fails, it simply skips what it
// cannot shape. Nested calls are found because every method identifier is
// probed independently.
func scanTokens(file *source.File, toks []token.Token) []Node {
	var nodes []Node
	for i := 0; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LBracket:
			if !attributePosition(toks, i) {
				continue
			}
			if attr, next, ok := parseAttribute(file, toks, i); ok {
				nodes = append(nodes, Node{Kind: NodeAttribute, Attr: attr})
				i = next
			}
		case token.Ident:
			if notCallable[toks[i].Text] {
				continue
			}
			if call, ok := parseCall(file, toks, i); ok {
				nodes = append(nodes, Node{Kind: NodeCall, Call: call})
			}
		}
	}
	return nodes
}

// attributePosition reports whether a '[' at index i sits where a C#-style
// attribute may appear, rather than being an indexing expression.
func attributePosition(toks []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	switch toks[i-1].Kind {
	case token.LBrace, token.RBrace, token.Semicolon, token.RBracket:
		return true
	default:
		return false
	}
}

func parseAttribute(file *source.File, toks []token.Token, i int) (*Attribute, int, bool) {
	if i+1 >= len(toks) || toks[i+1].Kind != token.Ident {
		return nil, i, false
	}
	name := toks[i+1]
	j := i + 2

	var args []AttrArg
	if j < len(toks) && toks[j].Kind == token.LParen {
		j++
		start := j
		depth := 0
		for ; j < len(toks); j++ {
			switch toks[j].Kind {
			case token.LParen, token.LBrace, token.LBracket:
				depth++
			case token.RBrace, token.RBracket:
				depth--
			case token.RParen:
				if depth == 0 {
					if start < j {
						args = append(args, attrArg(file, toks[start:j]))
					}
					goto closed
				}
				depth--
			case token.Comma:
				if depth == 0 {
					if start >= j {
						return nil, i, false
					}
					args = append(args, attrArg(file, toks[start:j]))
					start = j + 1
				}
			case token.EOF:
				return nil, i, false
			}
		}
		return nil, i, false
	closed:
		j++
	}

	if j >= len(toks) || toks[j].Kind != token.RBracket {
		return nil, i, false
	}
	return &Attribute{
		Span: source.Span{File: file.ID, Start: toks[i].Span.Start, End: toks[j].Span.End},
		Name: name.Text,
		Args: args,
	}, j, true
}

// attrArg classifies one attribute argument token run. Anything that is not
// a lone literal is non-constant and marked AttrArgOther.
func attrArg(file *source.File, run []token.Token) AttrArg {
	sp := source.Span{File: file.ID, Start: run[0].Span.Start, End: run[len(run)-1].Span.End}
	arg := AttrArg{
		Span: sp,
		Text: string(file.Content[sp.Start:sp.End]),
		Kind: AttrArgOther,
	}
	if len(run) == 1 {
		switch run[0].Kind {
		case token.StringLit:
			arg.Kind = AttrArgString
		case token.IntLit:
			arg.Kind = AttrArgInt
		}
	}
	return arg
}

// parseCall probes whether the identifier at index i heads an invocation and
// shapes its argument list when it does. The probe is lookahead-only so the
// outer scan still visits nested call sites.
func parseCall(file *source.File, toks []token.Token, i int) (*CallSite, bool) {
	method := toks[i]
	j := i + 1
	typeArgs := 0

	// Optional explicit generic argument list: Subscribe<T>(...).
	if j < len(toks) && toks[j].Kind == token.Lt {
		k := j + 1
		depth := 1
		commas := 0
		for ; k < len(toks) && depth > 0; k++ {
			switch toks[k].Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			case token.Comma:
				if depth == 1 {
					commas++
				}
			case token.Ident, token.Dot, token.LBracket, token.RBracket:
				// allowed inside a type argument list
			default:
				return nil, false
			}
		}
		if depth != 0 || k >= len(toks) || toks[k].Kind != token.LParen {
			return nil, false
		}
		typeArgs = commas + 1
		j = k
	}

	if j >= len(toks) || toks[j].Kind != token.LParen {
		return nil, false
	}
	open := toks[j]

	// Split the argument list on top-level commas up to the matching paren.
	var (
		args     []Argument
		seps     []Separator
		argStart = j + 1
		depth    = 0
		closeIdx = -1
	)
	for k := j + 1; k < len(toks); k++ {
		switch toks[k].Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RBrace, token.RBracket:
			depth--
		case token.RParen:
			if depth == 0 {
				if argStart < k {
					args = append(args, makeArgument(file, toks[argStart:k]))
				}
				closeIdx = k
			} else {
				depth--
			}
		case token.Comma:
			if depth == 0 {
				if argStart >= k {
					return nil, false // empty argument slot
				}
				arg := makeArgument(file, toks[argStart:k])
				arg.Trailing = toks[k].Leading // formatting between argument and comma
				args = append(args, arg)
				seps = append(seps, Separator{
					Span:     toks[k].Span,
					Trailing: toks[k+1].Leading,
				})
				argStart = k + 1
			}
		case token.EOF:
			return nil, false
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 || len(seps) != max(len(args)-1, 0) {
		return nil, false
	}
	closeTok := toks[closeIdx]

	call := &CallSite{
		Span:         source.Span{File: file.ID, Start: method.Span.Start, End: closeTok.Span.End},
		Method:       method.Text,
		MethodSpan:   method.Span,
		Receiver:     receiverText(file, toks, i),
		TypeArgs:     typeArgs,
		ArgListSpan:  source.Span{File: file.ID, Start: open.Span.End, End: closeTok.Span.Start},
		Args:         args,
		Seps:         seps,
		CloseLeading: closeTok.Leading,
	}
	return call, true
}

func makeArgument(file *source.File, run []token.Token) Argument {
	sp := source.Span{File: file.ID, Start: run[0].Span.Start, End: run[len(run)-1].Span.End}
	arg := Argument{
		Span:        sp,
		Text:        string(file.Content[sp.Start:sp.End]),
		Leading:     run[0].Leading,
		LambdaArity: -1,
	}

	expr := run
	if len(run) >= 2 && run[0].Kind == token.Ident && run[1].Kind == token.Colon {
		arg.Name = run[0].Text
		expr = run[2:]
	}
	arg.LambdaArity = lambdaArity(expr)
	return arg
}

// lambdaArity returns the parameter count of a lambda literal expression,
// or -1 when the expression is not a lambda.
func lambdaArity(run []token.Token) int {
	if len(run) == 0 {
		return -1
	}
	if run[0].Kind == token.Ident {
		if len(run) >= 2 && run[1].Kind == token.FatArrow {
			return 1
		}
		return -1
	}
	if run[0].Kind != token.LParen {
		return -1
	}
	depth := 0
	commas := 0
	for k, t := range run {
		switch t.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				if k+1 >= len(run) || run[k+1].Kind != token.FatArrow {
					return -1
				}
				if k == 1 {
					return 0
				}
				return commas + 1
			}
		case token.Comma:
			if depth == 1 {
				commas++
			}
		}
	}
	return -1
}

// receiverText reconstructs the dotted receiver chain written before the
// method name, for display purposes only.
func receiverText(file *source.File, toks []token.Token, methodIdx int) string {
	k := methodIdx
	for k >= 2 && toks[k-1].Kind == token.Dot && toks[k-2].Kind == token.Ident {
		k -= 2
	}
	if k == methodIdx {
		return ""
	}
	return string(file.Content[toks[k].Span.Start:toks[methodIdx-1].Span.Start])
}
