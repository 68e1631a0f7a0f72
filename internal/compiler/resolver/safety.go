package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// requireMutablePlace reports a mutability violation if e's resolved place
// mutability is not mutable — the check `&mut e` and a `&mut self` method
// receiver both need (§4.4.6).
func (c *Context) requireMutablePlace(rng source.Range, mut hir.Mutability, context string) {
	m := c.info.Mutabilities.Find(mut)
	if concrete, ok := m.Variant.(hir.MutConcrete); ok && !concrete.IsMutable {
		c.report(diag.New(diag.KindMutabilityViolation, diag.SeverityError, rng,
			"%s requires a mutable place", context))
	}
}
