// Package syntax holds the read-only parsed view the rules run over: call
// sites with their argument formatting, attribute nodes for constant-only
// rules, and the pure span-replacement that derives the next tree state.
package syntax

import "rxguard/internal/source"

// NodeKind tags the closed set of node variants the scanner produces.
// Dispatch over nodes is an explicit switch on the kind, never a type
// hierarchy.
type NodeKind uint8

const (
	NodeCall NodeKind = iota
	NodeAttribute
)

// Node is the tagged union of scanner output. Exactly one payload field is
// set, matching Kind.
type Node struct {
	Kind NodeKind
	Call *CallSite
	Attr *Attribute
}

// Span returns the source extent of the node's payload.
func (n Node) Span() source.Span {
	switch n.Kind {
	case NodeCall:
		return n.Call.Span
	case NodeAttribute:
		return n.Attr.Span
	}
	return source.Span{}
}
