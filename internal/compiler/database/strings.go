package database

import "github.com/kieli-lang/kieli/internal/compiler/hir"

// stringPool interns StringIds across every document a Database holds
// (§3.1: "two identical strings share one id. Lookup is O(1)"). It
// satisfies resolver.Interner, so one pool backs every document's
// resolution pass rather than each document minting its own disjoint ids.
type stringPool struct {
	ids  map[string]hir.StringId
	strs []string
}

func newStringPool() *stringPool {
	return &stringPool{ids: map[string]hir.StringId{}}
}

// Intern implements resolver.Interner.
func (p *stringPool) Intern(name string) hir.StringId {
	if id, ok := p.ids[name]; ok {
		return id
	}
	id := hir.StringId(len(p.strs))
	p.strs = append(p.strs, name)
	p.ids[name] = id
	return id
}

// String returns the text interned as id.
func (p *stringPool) String(id hir.StringId) string {
	return p.strs[id]
}
