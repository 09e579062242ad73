package syntax

import (
	"sort"

	"rxguard/internal/lexer"
	"rxguard/internal/source"
	"rxguard/internal/token"
)

// Tree is one immutable document state: the file content plus the nodes
// extracted from it, ordered by span start. Edits never mutate a Tree; they
// derive the next one through Replace.
type Tree struct {
	File  *source.File
	Nodes []Node
}

// Parse lexes the whole file and extracts its nodes.
func Parse(file *source.File) *Tree {
	toks := lexer.New(file).Tokens()
	nodes := scanTokens(file, toks)
	sortNodes(nodes)
	return &Tree{File: file, Nodes: nodes}
}

// Calls returns the call sites of the tree in span order.
func (t *Tree) Calls() []*CallSite {
	var out []*CallSite
	for _, n := range t.Nodes {
		if n.Kind == NodeCall {
			out = append(out, n.Call)
		}
	}
	return out
}

// Attributes returns the attribute nodes of the tree in span order.
func (t *Tree) Attributes() []*Attribute {
	var out []*Attribute
	for _, n := range t.Nodes {
		if n.Kind == NodeAttribute {
			out = append(out, n.Attr)
		}
	}
	return out
}

// CallAt locates the call site whose span matches exactly. A miss means the
// document has changed since the span was recorded.
func (t *Tree) CallAt(span source.Span) (*CallSite, bool) {
	for _, n := range t.Nodes {
		if n.Kind == NodeCall && n.Call.Span == span {
			return n.Call, true
		}
	}
	return nil, false
}

// Replace derives the tree for the document in which span is substituted by
// newText. Nodes entirely before the edit are shared with the receiver,
// nodes entirely after it are re-anchored by the length delta, and only the
// region covering nodes that intersect the edit is re-scanned.
func (t *Tree) Replace(span source.Span, newText string) *Tree {
	content := make([]byte, 0, len(t.File.Content)+len(newText)-int(span.Len()))
	content = append(content, t.File.Content[:span.Start]...)
	content = append(content, newText...)
	content = append(content, t.File.Content[span.End:]...)
	file := t.File.WithContent(content)

	delta := len(newText) - int(span.Len())

	// Window of content invalidated by the edit, in old coordinates: the
	// edit span unioned with every node that intersects it. Nodes nest or
	// are disjoint, so one widening pass reaches the outermost affected one.
	winStart, winEnd := span.Start, span.End
	for _, n := range t.Nodes {
		ns := n.Span()
		if ns.Overlaps(span) || ns.Contains(span) {
			if ns.Start < winStart {
				winStart = ns.Start
			}
			if ns.End > winEnd {
				winEnd = ns.End
			}
		}
	}

	var before, after []Node
	for _, n := range t.Nodes {
		ns := n.Span()
		switch {
		case ns.End <= winStart:
			before = append(before, n)
		case ns.Start >= winEnd:
			after = append(after, shiftNode(n, delta))
		}
		// Everything else is inside the window and gets re-scanned.
	}

	// Re-scan the affected window in new coordinates.
	newEnd := uint32(int(winEnd) + delta)
	toks := lexer.NewRange(file, winStart, newEnd).Tokens()
	rescanned := scanTokens(file, toks)

	nodes := make([]Node, 0, len(before)+len(rescanned)+len(after))
	nodes = append(nodes, before...)
	nodes = append(nodes, rescanned...)
	nodes = append(nodes, after...)
	sortNodes(nodes)
	return &Tree{File: file, Nodes: nodes}
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		si, sj := nodes[i].Span(), nodes[j].Span()
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		return si.End < sj.End
	})
}

func shiftNode(n Node, delta int) Node {
	switch n.Kind {
	case NodeCall:
		return Node{Kind: NodeCall, Call: shiftCall(n.Call, delta)}
	case NodeAttribute:
		return Node{Kind: NodeAttribute, Attr: shiftAttr(n.Attr, delta)}
	}
	return n
}

func shiftCall(c *CallSite, delta int) *CallSite {
	out := *c
	out.Span = c.Span.ShiftBy(delta)
	out.MethodSpan = c.MethodSpan.ShiftBy(delta)
	out.ArgListSpan = c.ArgListSpan.ShiftBy(delta)
	out.Args = make([]Argument, len(c.Args))
	for i, a := range c.Args {
		a.Span = a.Span.ShiftBy(delta)
		a.Leading = shiftTrivia(a.Leading, delta)
		a.Trailing = shiftTrivia(a.Trailing, delta)
		out.Args[i] = a
	}
	out.Seps = make([]Separator, len(c.Seps))
	for i, s := range c.Seps {
		s.Span = s.Span.ShiftBy(delta)
		s.Trailing = shiftTrivia(s.Trailing, delta)
		out.Seps[i] = s
	}
	out.CloseLeading = shiftTrivia(c.CloseLeading, delta)
	return &out
}

func shiftAttr(a *Attribute, delta int) *Attribute {
	out := *a
	out.Span = a.Span.ShiftBy(delta)
	out.Args = make([]AttrArg, len(a.Args))
	for i, arg := range a.Args {
		arg.Span = arg.Span.ShiftBy(delta)
		out.Args[i] = arg
	}
	return &out
}

func shiftTrivia(run []token.Trivia, delta int) []token.Trivia {
	if len(run) == 0 {
		return run
	}
	out := make([]token.Trivia, len(run))
	for i, tv := range run {
		tv.Span = tv.Span.ShiftBy(delta)
		out[i] = tv
	}
	return out
}
