package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// resolveLoop pushes a loopScope, resolves the body, and yields the type
// any `break e` inside it agreed on — or a fresh unification variable if
// the loop never breaks with a value (§4.4.7).
func (c *Context) resolveLoop(ns *Namespace, env hir.EnvId, v ast.ExprLoop) hir.TypeId {
	scope := &loopScope{whileLoop: v.Origin == ast.LoopOriginWhile}
	c.loopStack = append(c.loopStack, scope)
	c.resolveExpr(ns, env, v.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	if scope.hasResult {
		return scope.result
	}
	id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
	return id
}

// resolveBreak unifies `break e`'s value against the enclosing loop's
// result anchor, or reports the appropriate misuse diagnostic: outside any
// loop, or a value break inside a `while` (which only ever exits through
// the synthetic `break ()` the desugarer inserts, §4.3/§4.4.7).
func (c *Context) resolveBreak(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprBreak) hir.TypeId {
	scope := c.currentLoop()
	if scope == nil {
		c.report(diag.New(diag.KindBreakOutsideLoop, diag.SeverityError, rng, "'break' can not appear outside of a loop"))
		return c.info.Types.Intern(hir.TypeTuple{})
	}

	unit := c.info.Types.Intern(hir.TypeTuple{})
	valType := unit
	if v.Value != nil {
		valType = c.typeOf(c.resolveExpr(ns, env, v.Value))
		if scope.whileLoop && !v.BreakSyntheticUnit {
			c.report(diag.New(diag.KindWhileValueBreak, diag.SeverityError, rng,
				"'while' loops cannot 'break' with a value"))
		}
	}

	if scope.hasResult {
		scope.result = c.unify(rng, scope.result, valType)
	} else {
		scope.result, scope.hasResult = valType, true
	}
	return unit
}
