package hir

// EnvId names a slot in an EnvironmentArena.
type EnvId int32

// Environment is one lexical scope: a set of name bindings plus an
// optional parent to walk when a name is not found locally (§3.6).
type Environment struct {
	Parent   *EnvId
	Bindings map[StringId]SymbolId
}

// EnvironmentArena owns every environment created during one compilation.
// Environments are only ever appended and only ever reference an already-
// existing parent id, so the parent chain is acyclic by construction
// (§3.7) — there is no way to construct an EnvId that points forward.
type EnvironmentArena struct {
	envs []Environment
}

// NewEnvironmentArena returns an arena containing one root environment
// (no parent) and returns its id.
func NewEnvironmentArena() (*EnvironmentArena, EnvId) {
	a := &EnvironmentArena{envs: []Environment{{Bindings: map[StringId]SymbolId{}}}}
	return a, EnvId(0)
}

// Child creates a new environment whose parent is id.
func (a *EnvironmentArena) Child(parent EnvId) EnvId {
	a.envs = append(a.envs, Environment{Parent: &parent, Bindings: map[StringId]SymbolId{}})
	return EnvId(len(a.envs) - 1)
}

// Bind introduces name into the environment id's own bindings, shadowing
// any binding of the same name visible from an ancestor.
func (a *EnvironmentArena) Bind(id EnvId, name StringId, sym SymbolId) {
	a.envs[id].Bindings[name] = sym
}

// Lookup walks id's parent chain and returns the nearest binding of name,
// or false if none exists anywhere in the chain.
func (a *EnvironmentArena) Lookup(id EnvId, name StringId) (SymbolId, bool) {
	for {
		env := &a.envs[id]
		if sym, ok := env.Bindings[name]; ok {
			return sym, true
		}
		if env.Parent == nil {
			return 0, false
		}
		id = *env.Parent
	}
}

// LocalBindings returns the names bound directly in id's own scope
// (not its ancestors), for §3.7's "consulted at least once or warn" check.
func (a *EnvironmentArena) LocalBindings(id EnvId) map[StringId]SymbolId {
	return a.envs[id].Bindings
}
