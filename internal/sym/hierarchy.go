package sym

import "sort"

// TypeDecl is one type declaration in a workspace, with the bases it
// directly derives from or implements.
type TypeDecl struct {
	Identity TypeIdentity
	Bases    []TypeIdentity
}

// Workspace is the set of type declarations available to hierarchy queries.
type Workspace struct {
	Decls []TypeDecl
}

// FindDerivedTypes returns every type in the workspace that derives from
// target, directly or transitively, using declaration-level equivalence:
// two references match when they share name, kind, construction status, and
// pairwise-equivalent type arguments. The result is sorted by canonical name
// for deterministic output.
//
// The rule pipeline does not call this; it exists for hierarchy-aware rules
// layered on the same symbol model.
func FindDerivedTypes(target TypeIdentity, ws *Workspace) []TypeIdentity {
	if ws == nil {
		return nil
	}
	derived := make(map[string]TypeIdentity)
	roots := []TypeIdentity{target}

	// Breadth-first over the declaration graph: each pass promotes types
	// whose base matches the target or an already-derived type.
	for len(roots) > 0 {
		var next []TypeIdentity
		for _, decl := range ws.Decls {
			if _, seen := derived[decl.Identity.Name]; seen {
				continue
			}
			for _, base := range decl.Bases {
				if matchesAny(base, roots) {
					derived[decl.Identity.Name] = decl.Identity
					next = append(next, decl.Identity)
					break
				}
			}
		}
		roots = next
	}

	out := make([]TypeIdentity, 0, len(derived))
	for _, t := range derived {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func matchesAny(base TypeIdentity, against []TypeIdentity) bool {
	for _, t := range against {
		if base.SameDeclaration(t) {
			return true
		}
	}
	return false
}
