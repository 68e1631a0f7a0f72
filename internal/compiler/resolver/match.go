package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// resolveMatch resolves `match e { pat -> e, ... }`: every arm's pattern is
// checked against the scrutinee's type in its own child environment (so
// bindings from one arm never leak into another), and every arm's body is
// unified into one common result type (§4.4.5).
func (c *Context) resolveMatch(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprMatch) hir.TypeId {
	scrutinee := c.resolveExpr(ns, env, v.Scrutinee)
	scrutineeType := c.typeOf(scrutinee)

	var resultType hir.TypeId
	hasResult := false
	patterns := make([]*ast.Pattern, len(v.Arms))
	for i, arm := range v.Arms {
		armEnv := c.info.Environments.Child(env)
		c.resolvePattern(ns, armEnv, arm.Pattern, scrutineeType)
		patterns[i] = arm.Pattern

		bodyType := c.typeOf(c.resolveExpr(ns, armEnv, arm.Body))
		if hasResult {
			resultType = c.unify(rng, resultType, bodyType)
		} else {
			resultType = bodyType
			hasResult = true
		}
	}
	if !hasResult {
		resultType = c.info.Types.Intern(hir.TypeTuple{})
	}

	if !c.isExhaustive(scrutineeType, patterns) {
		c.report(diag.New(diag.KindInexhaustivePattern, diag.SeverityError, rng, "match is not exhaustive"))
	}
	return resultType
}
