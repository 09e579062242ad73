package sym

// Param is one declared parameter of a signature, as seen at the call site
// (an extension method's receiver parameter is not listed).
type Param struct {
	Name     string
	Type     TypeIdentity
	Callback bool // the declared type is a callback (delegate) type
}

// CallbackArity returns the number of values the callback parameter's type
// is generic over, or -1 for non-callback parameters. A plain System.Action
// callback has arity 0.
func (p Param) CallbackArity() int {
	if !p.Callback {
		return -1
	}
	return len(p.Type.TypeArgs)
}

// Signature is the resolved, symbol-level description of a callable,
// independent of how the invocation is spelled.
type Signature struct {
	Owner      TypeIdentity
	Method     string
	TypeParams int // generic arity of the method itself
	Extension  bool
	Params     []Param
	Returns    TypeIdentity
}

// Generic reports whether the method declares type parameters of its own.
func (s *Signature) Generic() bool {
	return s.TypeParams > 0
}

// Same compares two signatures structurally: owner declaration, method name,
// generic shape, and parameter names and types. Textual spelling plays no
// part, so differently aliased or instantiated views of one declaration
// compare equal.
func (s *Signature) Same(o *Signature) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Method != o.Method || s.TypeParams != o.TypeParams || s.Extension != o.Extension {
		return false
	}
	if !s.Owner.SameDeclaration(o.Owner) || !s.Returns.SameDeclaration(o.Returns) {
		return false
	}
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i].Name != o.Params[i].Name || s.Params[i].Callback != o.Params[i].Callback {
			return false
		}
		if !s.Params[i].Type.SameDeclaration(o.Params[i].Type) {
			return false
		}
	}
	return true
}

// ParamNamed returns the parameter with the given declared name.
func (s *Signature) ParamNamed(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
