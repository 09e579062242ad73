package sym

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"rxguard/internal/syntax"
)

// Catalog is the declared-signature table that resolves call sites to
// signatures. It plays the role of the semantic front-end: rules only ever
// see the resolved Signature, never source text.
type Catalog struct {
	byMethod map[string][]*Signature
}

// NewCatalog builds a catalog from the given signatures.
func NewCatalog(sigs ...*Signature) *Catalog {
	c := &Catalog{byMethod: make(map[string][]*Signature)}
	for _, s := range sigs {
		c.Add(s)
	}
	return c
}

// Add registers a signature. Overloads of one method accumulate in
// registration order; Resolve prefers earlier entries on ties.
func (c *Catalog) Add(s *Signature) {
	c.byMethod[s.Method] = append(c.byMethod[s.Method], s)
}

// Merge adds every signature of other into c.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, sigs := range other.byMethod {
		for _, s := range sigs {
			c.Add(s)
		}
	}
}

// Resolve maps a call site to the signature of the invoked method, or
// reports that the catalog knows no matching overload. Named-convention
// calls resolve by bound-name sets; positional calls resolve by argument
// count, with lambda arity disambiguating between callback overloads.
func (c *Catalog) Resolve(call *syntax.CallSite) (*Signature, bool) {
	candidates := c.byMethod[call.Method]
	if len(candidates) == 0 {
		return nil, false
	}
	if call.NamedConvention() {
		return resolveNamed(candidates, call)
	}
	return resolvePositional(candidates, call)
}

func resolveNamed(candidates []*Signature, call *syntax.CallSite) (*Signature, bool) {
	names := call.ArgNames()
	for _, cand := range candidates {
		if len(cand.Params) != len(names) {
			continue
		}
		matched := true
		for _, n := range names {
			if _, ok := cand.ParamNamed(n); !ok {
				matched = false
				break
			}
		}
		if matched {
			return cand, true
		}
	}
	return nil, false
}

func resolvePositional(candidates []*Signature, call *syntax.CallSite) (*Signature, bool) {
	for _, cand := range candidates {
		if len(cand.Params) != len(call.Args) {
			continue
		}
		matched := true
		for i, arg := range call.Args {
			arity := arg.LambdaArity
			if arity < 0 {
				continue // not a lambda literal; assume convertible
			}
			if cand.Params[i].CallbackArity() != arity {
				matched = false
				break
			}
		}
		if matched {
			return cand, true
		}
	}
	return nil, false
}

// DefaultCatalog returns the built-in Rx.NET Subscribe surface: the
// extension overloads declared on System.ObservableExtensions, each generic
// over the element type and returning System.IDisposable.
func DefaultCatalog() *Catalog {
	owner := Class("System.ObservableExtensions")
	disposable := Interface("System.IDisposable")
	onNext := Param{Name: "onNext", Type: Action(TypeParam("T")), Callback: true}
	onError := Param{Name: "onError", Type: Action(Class("System.Exception")), Callback: true}
	onCompleted := Param{Name: "onCompleted", Type: Action(), Callback: true}

	sub := func(params ...Param) *Signature {
		return &Signature{
			Owner:      owner,
			Method:     "Subscribe",
			TypeParams: 1,
			Extension:  true,
			Params:     params,
			Returns:    disposable,
		}
	}

	return NewCatalog(
		sub(),
		sub(onNext),
		sub(onNext, onError),
		sub(onNext, onCompleted),
		sub(onNext, onError, onCompleted),
	)
}

type catalogFile struct {
	Signature []signatureEntry `toml:"signature"`
}

type signatureEntry struct {
	Owner      string       `toml:"owner"`
	Method     string       `toml:"method"`
	Extension  bool         `toml:"extension"`
	TypeParams int          `toml:"typeparams"`
	Returns    typeRefEntry `toml:"returns"`
	Params     []paramEntry `toml:"params"`
}

type typeRefEntry struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
}

type paramEntry struct {
	Name     string   `toml:"name"`
	Type     string   `toml:"type"`
	TypeArgs []string `toml:"typeargs"`
	Callback bool     `toml:"callback"`
}

// LoadCatalog reads additional signatures from a TOML file, so projects can
// teach the resolver about their own subscription surfaces.
func LoadCatalog(path string) (*Catalog, error) {
	var cfg catalogFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	c := NewCatalog()
	for i, entry := range cfg.Signature {
		sig, err := entry.signature()
		if err != nil {
			return nil, fmt.Errorf("%s: signature %d: %w", path, i, err)
		}
		c.Add(sig)
	}
	return c, nil
}

func (e signatureEntry) signature() (*Signature, error) {
	if e.Method == "" {
		return nil, fmt.Errorf("missing method name")
	}
	if e.Owner == "" {
		return nil, fmt.Errorf("missing owner type")
	}
	ret, err := typeRef(e.Returns.Name, e.Returns.Kind)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	params := make([]Param, 0, len(e.Params))
	for _, p := range e.Params {
		if p.Name == "" {
			return nil, fmt.Errorf("parameter without a name")
		}
		ty := TypeIdentity{
			Name:         p.Type,
			Kind:         KindDelegate,
			IsDefinition: len(p.TypeArgs) == 0,
		}
		if !p.Callback {
			ty.Kind = KindClass
		}
		for _, arg := range p.TypeArgs {
			ty.TypeArgs = append(ty.TypeArgs, typeArgRef(arg))
		}
		params = append(params, Param{Name: p.Name, Type: ty, Callback: p.Callback})
	}
	return &Signature{
		Owner:      Class(e.Owner),
		Method:     e.Method,
		TypeParams: e.TypeParams,
		Extension:  e.Extension,
		Params:     params,
		Returns:    ret,
	}, nil
}

func typeRef(name, kind string) (TypeIdentity, error) {
	if name == "" {
		return TypeIdentity{}, fmt.Errorf("missing type name")
	}
	switch kind {
	case "interface":
		return Interface(name), nil
	case "class", "":
		return Class(name), nil
	case "struct":
		return TypeIdentity{Name: name, Kind: KindStruct, IsDefinition: true}, nil
	case "delegate":
		return TypeIdentity{Name: name, Kind: KindDelegate, IsDefinition: true}, nil
	default:
		return TypeIdentity{}, fmt.Errorf("unknown type kind %q", kind)
	}
}

// typeArgRef interprets a type-argument string: an unqualified name is a
// generic type parameter, a dotted name a concrete class.
func typeArgRef(s string) TypeIdentity {
	if strings.Contains(s, ".") {
		return Class(s)
	}
	return TypeParam(s)
}
