package rxsub

import (
	"errors"
	"fmt"
	"strings"

	"rxguard/internal/diag"
	"rxguard/internal/source"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
	"rxguard/internal/token"
)

var (
	// ErrStaleFinding indicates the document changed since the finding was
	// produced: no call site starts and ends exactly at the recorded span.
	ErrStaleFinding = errors.New("no call site at the recorded span")

	// ErrNotApplicable indicates the call was re-validated at patch time and
	// no longer needs fixing, either because it stopped matching the
	// signature filter or because an error handler is already present.
	ErrNotApplicable = errors.New("call does not need an error handler")
)

const (
	placeholderLambda = "ex => { /* TODO: handle error */ }"
	placeholderNamed  = errorParamName + ": " + placeholderLambda
)

// Patch is the full replacement for a call's argument list. It keeps the
// structured argument and separator sequences rather than a flat string so
// the count invariant can be enforced at render time.
type Patch struct {
	Call    source.Span // re-located call site, method through closing paren
	Span    source.Span // argument-list extent being replaced, parens exclusive
	Args    []syntax.Argument
	Seps    []syntax.Separator
	Close   []token.Trivia // formatting preceding the closing paren, unchanged
	OldText string         // verbatim text currently occupying Span
}

// Render flattens the patch to replacement text. Every byte outside the
// inserted argument and its separator is reproduced verbatim from the
// original trivia and argument text.
//
// Render panics when the separator count is not exactly one less than the
// argument count; a patch in that state is a construction defect, never
// valid output.
func (p *Patch) Render() string {
	if len(p.Args) != len(p.Seps)+1 {
		panic(fmt.Sprintf("patch at %s: %d arguments with %d separators", p.Call, len(p.Args), len(p.Seps)))
	}
	var b strings.Builder
	b.WriteString(token.Render(p.Args[0].Leading))
	b.WriteString(p.Args[0].Text)
	for i := 1; i < len(p.Args); i++ {
		b.WriteString(token.Render(p.Args[i-1].Trailing))
		b.WriteString(",")
		b.WriteString(token.Render(p.Seps[i-1].Trailing))
		b.WriteString(p.Args[i].Text)
	}
	b.WriteString(token.Render(p.Close))
	return b.String()
}

// Edit converts the patch into a guarded text edit.
func (p *Patch) Edit() diag.TextEdit {
	return diag.TextEdit{Span: p.Span, NewText: p.Render(), OldText: p.OldText}
}

// SynthesizePatch builds the argument-list rewrite for a finding, against
// the current state of the tree. The finding's span is required to match a
// call site exactly; anything else means the document moved underneath the
// finding and the caller gets ErrStaleFinding rather than a misplaced edit.
// The call is then re-validated from scratch, so a finding that was fixed
// by hand (or by an earlier patch) yields ErrNotApplicable instead of a
// duplicate handler.
func SynthesizePatch(finding diag.Diagnostic, tree *syntax.Tree, catalog *sym.Catalog) (*Patch, error) {
	call, ok := tree.CallAt(finding.Primary)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStaleFinding, finding.Primary)
	}
	sig, ok := MatchSignature(call, catalog)
	if !ok {
		return nil, fmt.Errorf("%w: signature no longer matches at %s", ErrNotApplicable, call.Span)
	}
	if HasErrorHandler(sig) {
		return nil, fmt.Errorf("%w: handler already present at %s", ErrNotApplicable, call.Span)
	}
	if len(call.Args) == 0 {
		return nil, fmt.Errorf("%w: empty argument list at %s", ErrNotApplicable, call.Span)
	}

	named := call.NamedConvention()
	idx := 1 // positional: the handler goes right after the first argument
	text := placeholderLambda
	if named {
		idx = len(call.Args)
		text = placeholderNamed
	}

	leading := newArgLeading(call, idx)
	at := insertionOffset(call, idx)
	newArg := syntax.Argument{
		Span:        source.Span{File: call.Span.File, Start: at, End: at},
		Text:        text,
		Leading:     leading,
		LambdaArity: 1,
	}
	if named {
		newArg.Name = errorParamName
	}
	newSep := syntax.Separator{
		Span:     source.Span{File: call.Span.File, Start: at, End: at},
		Trailing: leading,
	}

	args := make([]syntax.Argument, 0, len(call.Args)+1)
	args = append(args, call.Args[:idx]...)
	args = append(args, newArg)
	args = append(args, call.Args[idx:]...)

	// The new separator sits between the argument at idx-1 and the new
	// argument; every original separator keeps its position relative to the
	// argument it precedes, so surrounding formatting survives untouched.
	seps := make([]syntax.Separator, 0, len(call.Seps)+1)
	seps = append(seps, call.Seps[:idx-1]...)
	seps = append(seps, newSep)
	seps = append(seps, call.Seps[idx-1:]...)

	old := string(tree.File.Content[call.ArgListSpan.Start:call.ArgListSpan.End])
	return &Patch{
		Call:    call.Span,
		Span:    call.ArgListSpan,
		Args:    args,
		Seps:    seps,
		Close:   call.CloseLeading,
		OldText: old,
	}, nil
}

// newArgLeading decides the formatting in front of the inserted argument.
// When a following argument exists and its own separator breaks the line,
// the insertion mirrors that argument's indentation and breaks the line
// too; when the list is single-line, a lone space keeps it single-line.
// With no following argument, the preceding argument's leading run is the
// template, and a single space is the fallback.
func newArgLeading(call *syntax.CallSite, idx int) []token.Trivia {
	file := call.Span.File
	if idx < len(call.Args) {
		follow := call.Args[idx]
		if token.HasNewline(follow.Leading) {
			run := []token.Trivia{newlineTrivia(file)}
			if indent, ok := token.SpaceRun(follow.Leading); ok {
				run = append(run, spaceTrivia(file, indent))
			}
			return run
		}
		return []token.Trivia{spaceTrivia(file, " ")}
	}
	prev := call.Args[idx-1]
	if token.HasNewline(prev.Leading) {
		run := []token.Trivia{newlineTrivia(file)}
		if indent, ok := token.SpaceRun(prev.Leading); ok {
			run = append(run, spaceTrivia(file, indent))
		}
		return run
	}
	if indent, ok := token.SpaceRun(prev.Leading); ok {
		return []token.Trivia{spaceTrivia(file, indent)}
	}
	return []token.Trivia{spaceTrivia(file, " ")}
}

// insertionOffset is where the new argument lands in the current document,
// used only to give synthesized spans a plausible anchor.
func insertionOffset(call *syntax.CallSite, idx int) uint32 {
	if idx < len(call.Args) {
		return call.Args[idx-1].Span.End
	}
	return call.Args[len(call.Args)-1].Span.End
}

func spaceTrivia(file source.FileID, text string) token.Trivia {
	return token.Trivia{Kind: token.TriviaSpace, Text: text, Span: source.Span{File: file}}
}

func newlineTrivia(file source.FileID) token.Trivia {
	return token.Trivia{Kind: token.TriviaNewline, Text: "\n", Span: source.Span{File: file}}
}
