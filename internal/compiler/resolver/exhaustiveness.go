package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

// isExhaustive reports whether a match's arm patterns together cover every
// value of the scrutinee's type. This is a name-based witness check rather
// than a full case-tree construction (§9): it is exact for enum
// scrutinees, where covering every constructor name covers every value,
// and otherwise falls back to requiring at least one wildcard/name arm.
func (c *Context) isExhaustive(scrutinee hir.TypeId, patterns []*ast.Pattern) bool {
	for _, p := range patterns {
		if _, guarded := p.Variant.(ast.PatternGuarded); guarded {
			continue
		}
		if c.isExhaustiveByItself(p) {
			return true
		}
	}

	enumT, ok := c.info.Types.Get(c.info.Types.Find(scrutinee)).(hir.TypeEnumeration)
	if !ok {
		return false
	}
	total := c.enumCtorCount[enumT.Definition]
	covered := map[hir.SymbolId]bool{}
	for _, p := range patterns {
		if _, guarded := p.Variant.(ast.PatternGuarded); guarded {
			continue
		}
		if sym, ok := c.patternSymbols[p]; ok {
			covered[sym] = true
		}
	}
	return total > 0 && len(covered) >= total
}
