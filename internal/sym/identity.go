// Package sym models the resolved-symbol side of analysis: canonical type
// identities, method signatures, and the declared-signature catalog that
// stands in for a full semantic front-end. Identities compare structurally
// by canonical name, never by how a type happens to be spelled at a call
// site, so aliases and differently-instantiated generics of one declaration
// match.
package sym

import "strings"

// TypeKind classifies a type identity.
type TypeKind uint8

const (
	KindClass TypeKind = iota
	KindInterface
	KindDelegate
	KindStruct
	KindTypeParam
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindDelegate:
		return "delegate"
	case KindStruct:
		return "struct"
	case KindTypeParam:
		return "typeparam"
	}
	return "unknown"
}

// TypeIdentity is a canonical, spelling-independent type reference.
// IsDefinition distinguishes an unconstructed generic definition from a
// constructed instantiation of it.
type TypeIdentity struct {
	Name         string // fully qualified canonical name
	Kind         TypeKind
	IsDefinition bool
	TypeArgs     []TypeIdentity
}

// SameDeclaration reports whether two identities refer to the same original
// declaration under the same construction status, with pairwise-equivalent
// type arguments. Instantiation differences in *nested* arguments still have
// to agree; only the spelling at use sites is irrelevant.
func (t TypeIdentity) SameDeclaration(o TypeIdentity) bool {
	if t.Name != o.Name || t.Kind != o.Kind {
		return false
	}
	if t.IsDefinition != o.IsDefinition {
		return false
	}
	if len(t.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i := range t.TypeArgs {
		if !t.TypeArgs[i].SameDeclaration(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

func (t TypeIdentity) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Class returns a non-generic class identity.
func Class(name string) TypeIdentity {
	return TypeIdentity{Name: name, Kind: KindClass, IsDefinition: true}
}

// Interface returns a non-generic interface identity.
func Interface(name string) TypeIdentity {
	return TypeIdentity{Name: name, Kind: KindInterface, IsDefinition: true}
}

// TypeParam returns a generic type parameter identity.
func TypeParam(name string) TypeIdentity {
	return TypeIdentity{Name: name, Kind: KindTypeParam, IsDefinition: true}
}

// Action returns the System.Action delegate identity: the unconstructed
// definition when no arguments are given, a constructed instantiation
// otherwise.
func Action(args ...TypeIdentity) TypeIdentity {
	return TypeIdentity{
		Name:         "System.Action",
		Kind:         KindDelegate,
		IsDefinition: len(args) == 0,
		TypeArgs:     args,
	}
}
