package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// generalizeSignature promotes every unification variable still reachable
// from a function's parameter/return types into an implicit template
// parameter: an unannotated parameter becomes generic rather than an error
// (§4.4.8). The same variable encountered twice in one signature shares one
// tag, so `fn pair(a, b)`'s two parameters only unify to the same type if
// the call site's arguments do.
func (c *Context) generalizeSignature(sym hir.SymbolId, types []hir.TypeId) {
	seen := map[hir.TypeVarID]hir.TemplateParamTag{}
	for _, t := range types {
		c.generalizeWalk(t, seen)
	}
	if len(seen) == 0 {
		return
	}
	tags := make([]hir.TemplateParamTag, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	c.generalizedParams[sym] = tags
}

func (c *Context) generalizeWalk(t hir.TypeId, seen map[hir.TypeVarID]hir.TemplateParamTag) {
	found := c.info.Types.Find(t)
	switch v := c.info.Types.Get(found).(type) {
	case hir.TypeUnificationVariable:
		tag, ok := seen[v.Var]
		if !ok {
			tag = c.freshTag()
			seen[v.Var] = tag
		}
		c.info.Types.Solve(v.Var, c.info.Types.Intern(hir.TypeTemplateParameterReference{Tag: tag}))
	case hir.TypeTuple:
		for _, e := range v.Elements {
			c.generalizeWalk(e, seen)
		}
	case hir.TypeArrayOf:
		c.generalizeWalk(v.Element, seen)
	case hir.TypeSlice:
		c.generalizeWalk(v.Element, seen)
	case hir.TypeFunction:
		for _, p := range v.Parameters {
			c.generalizeWalk(p, seen)
		}
		c.generalizeWalk(v.Return, seen)
	case hir.TypeReference:
		c.generalizeWalk(v.Referenced, seen)
	case hir.TypePointer:
		c.generalizeWalk(v.Pointee, seen)
	case hir.TypeStructure:
		for _, a := range v.TemplateArguments {
			c.generalizeWalk(a, seen)
		}
	case hir.TypeEnumeration:
		for _, a := range v.TemplateArguments {
			c.generalizeWalk(a, seen)
		}
	}
}

// forbidUnsolvedVariables reports KindUnsolvedVariableInTopLevelDefinition
// for any unification variable still reachable from types. Struct, enum,
// alias, and concept shapes are never generalized the way a function
// signature is (§4.4.8): an uninferred field type there has nothing to
// infer it from, so it is always an error.
func (c *Context) forbidUnsolvedVariables(rng source.Range, types []hir.TypeId) {
	for _, t := range types {
		if c.hasUnsolved(t) {
			c.report(diag.New(diag.KindUnsolvedVariableInTopLevelDefinition, diag.SeverityError, rng,
				"unsolved type variable in a top-level definition"))
			return
		}
	}
}

func (c *Context) hasUnsolved(t hir.TypeId) bool {
	found := c.info.Types.Find(t)
	switch v := c.info.Types.Get(found).(type) {
	case hir.TypeUnificationVariable:
		return true
	case hir.TypeTuple:
		for _, e := range v.Elements {
			if c.hasUnsolved(e) {
				return true
			}
		}
	case hir.TypeArrayOf:
		return c.hasUnsolved(v.Element)
	case hir.TypeSlice:
		return c.hasUnsolved(v.Element)
	case hir.TypeFunction:
		for _, p := range v.Parameters {
			if c.hasUnsolved(p) {
				return true
			}
		}
		return c.hasUnsolved(v.Return)
	case hir.TypeReference:
		return c.hasUnsolved(v.Referenced)
	case hir.TypePointer:
		return c.hasUnsolved(v.Pointee)
	case hir.TypeStructure:
		for _, a := range v.TemplateArguments {
			if c.hasUnsolved(a) {
				return true
			}
		}
	case hir.TypeEnumeration:
		for _, a := range v.TemplateArguments {
			if c.hasUnsolved(a) {
				return true
			}
		}
	}
	return false
}
