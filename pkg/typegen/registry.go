package typegen

// DeclKind identifies the flavor of an emitted declaration.
type DeclKind string

const (
	DeclInterface DeclKind = "interface"
	DeclAlias     DeclKind = "alias"
	DeclEnum      DeclKind = "enum"
)

// Declaration is a single named emitted type definition. It is created once
// per unique name and never rewritten afterwards.
type Declaration struct {
	Name string
	Kind DeclKind
	// Body is the full rendered declaration text, e.g.
	// "export interface User {\n  id: string;\n}".
	Body string
	// DependsOn lists other declaration names referenced by the body. It is
	// filled in by the emitter's import inference pass.
	DependsOn []string
}

// Registry holds the deduplication state for a single generation run:
// materialized declaration names, enum value signatures, and parameter shape
// signatures. Construct a fresh Registry per run; sharing one across runs
// would silently suppress declarations.
type Registry struct {
	seen       map[string]struct{}
	enumIndex  map[string]string // enum value signature -> declaration name
	paramIndex map[string]string // parameter shape signature -> declaration name

	decls     []Declaration
	declByIdx map[string]int
}

// NewRegistry creates an empty registry for one generation run.
func NewRegistry() *Registry {
	return &Registry{
		seen:       map[string]struct{}{},
		enumIndex:  map[string]string{},
		paramIndex: map[string]string{},
		declByIdx:  map[string]int{},
	}
}

// Seen reports whether a declaration name has already been claimed.
func (r *Registry) Seen(name string) bool {
	_, ok := r.seen[name]
	return ok
}

// MarkSeen claims a declaration name. Claiming happens before recursing into
// an object's properties so reference cycles terminate: a back-edge finds the
// name claimed and emits a plain name reference instead of re-entering
// synthesis.
func (r *Registry) MarkSeen(name string) {
	r.seen[name] = struct{}{}
}

// Add appends a declaration in discovery order. The first declaration for a
// name wins; later adds with the same name are ignored.
func (r *Registry) Add(d Declaration) {
	if _, ok := r.declByIdx[d.Name]; ok {
		return
	}
	r.declByIdx[d.Name] = len(r.decls)
	r.decls = append(r.decls, d)
}

// Lookup returns the declaration registered under name, if any.
func (r *Registry) Lookup(name string) (Declaration, bool) {
	idx, ok := r.declByIdx[name]
	if !ok {
		return Declaration{}, false
	}
	return r.decls[idx], true
}

// Declarations returns all materialized declarations in discovery order.
func (r *Registry) Declarations() []Declaration {
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// ParamTypes returns a copy of the parameter-shape signature to declaration
// name mapping, consumed by route/controller generators.
func (r *Registry) ParamTypes() map[string]string {
	out := make(map[string]string, len(r.paramIndex))
	for k, v := range r.paramIndex {
		out[k] = v
	}
	return out
}
