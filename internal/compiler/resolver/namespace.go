package resolver

import "github.com/kieli-lang/kieli/internal/compiler/hir"

// Namespace is a named scope that both binds ordinary environment names
// (via Env) and owns an associated-namespace table for nested definitions
// (submodule contents, a struct/enum/concept's methods). Structures,
// enums, aliases, and concepts each get one; tuples, primitives, and
// references do not (§4.4.4).
type Namespace struct {
	Env      hir.EnvId
	Parent   *Namespace
	Children map[string]*Namespace
}

func newNamespace(env hir.EnvId, parent *Namespace) *Namespace {
	return &Namespace{Env: env, Parent: parent, Children: map[string]*Namespace{}}
}

// child returns the named child namespace, creating it (with a fresh
// child environment) if it does not exist yet — used both for submodules
// declared once and for a struct/enum's method namespace, which may be
// populated across several separate `impl` blocks.
func (c *Context) child(ns *Namespace, name string) *Namespace {
	if existing, ok := ns.Children[name]; ok {
		return existing
	}
	envs := c.info.Environments
	child := newNamespace(envs.Child(ns.Env), ns)
	ns.Children[name] = child
	return child
}
