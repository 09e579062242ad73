package syntax

import (
	"rxguard/internal/source"
	"rxguard/internal/token"
)

// Argument is one element of a call's argument list. Spans and trivia are
// views over the immutable file content; Text carries the verbatim
// expression bytes so a rewritten list reproduces the original exactly.
type Argument struct {
	Span    source.Span    // expression extent, excluding surrounding formatting
	Text    string         // verbatim expression text
	Name    string         // parameter name binding; empty for positional
	Leading []token.Trivia // formatting between the previous separator (or open paren) and the argument

	// Trailing is the formatting between the argument and its following
	// separator. The last argument has none; the formatting in front of the
	// closing paren lives in CallSite.CloseLeading.
	Trailing []token.Trivia

	// LambdaArity is the parameter count when the expression is a lambda
	// literal ("x => ...", "() => ...", "(a, b) => ..."), and -1 otherwise.
	// Overload selection uses it to tell an error handler from a completion
	// callback.
	LambdaArity int
}

// Named reports whether the argument uses the name-bound call convention.
func (a Argument) Named() bool {
	return a.Name != ""
}

// Separator is one comma of an argument list. Trailing holds the formatting
// between the comma and the following argument, which mirrors that
// argument's Leading run.
type Separator struct {
	Span     source.Span
	Trailing []token.Trivia
}

// CallSite is one invocation expression: the resolution target of the
// signature matcher and the anchor of findings and patches.
type CallSite struct {
	Span       source.Span // method name through closing paren
	Method     string
	MethodSpan source.Span
	Receiver   string // dotted receiver chain as written, possibly empty
	TypeArgs   int    // count of explicit generic arguments, 0 when inferred

	ArgListSpan  source.Span // between the parens, exclusive of both
	Args         []Argument
	Seps         []Separator
	CloseLeading []token.Trivia // formatting between the last argument and the closing paren
}

// NamedConvention reports whether the call binds arguments by name,
// determined from the first argument.
func (c *CallSite) NamedConvention() bool {
	return len(c.Args) > 0 && c.Args[0].Named()
}

// ArgNames returns the bound names of a named-convention call, in order.
func (c *CallSite) ArgNames() []string {
	names := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		names = append(names, a.Name)
	}
	return names
}
