package resolver

import (
	"fmt"

	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// bindTemplateParams declares one definition's template parameters into a
// fresh child environment of parent and returns it. A type parameter binds
// a SymbolLocalType whose references resolve to a
// TypeTemplateParameterReference; a mutability parameter binds a
// SymbolLocalMutability resolving to MutParameterized; a value parameter
// binds a SymbolLocalVariable typed by its annotation (§4.4.3).
func (c *Context) bindTemplateParams(ns *Namespace, parent hir.EnvId, params []ast.TemplateParameter) hir.EnvId {
	env := c.info.Environments.Child(parent)
	for _, p := range params {
		switch p.Kind {
		case ast.TemplateParamType:
			sym := c.info.Symbols.Declare(hir.Symbol{Name: p.Name, Range: p.Range, Variant: hir.SymbolLocalType})
			c.info.Environments.Bind(env, c.intern.Intern(p.Name), sym)
			tag := c.freshTag()
			c.templateTypeTags[sym] = tag
			for _, class := range p.Classes {
				concept, ok := c.resolvePath(ns, env, class)
				if ok && c.info.Symbols.Get(concept).Variant != hir.SymbolConcept {
					c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, class.Range,
						"'%s' is not a concept", class.PrimaryName))
				}
			}
		case ast.TemplateParamMutability:
			sym := c.info.Symbols.Declare(hir.Symbol{Name: p.Name, Range: p.Range, Variant: hir.SymbolLocalMutability})
			c.info.Environments.Bind(env, c.intern.Intern(p.Name), sym)
			c.templateMutTags[sym] = c.freshTag()
		case ast.TemplateParamValue:
			typ := c.resolveType(ns, env, p.Type)
			sym := c.info.Symbols.Declare(hir.Symbol{Name: p.Name, Range: p.Range, Variant: hir.SymbolLocalVariable})
			c.info.Environments.Bind(env, c.intern.Intern(p.Name), sym)
			c.symbolTypes[sym] = typ
		}
	}
	return env
}

// requiredTemplateArgCount returns how many leading template parameters
// have no default, i.e. the minimum number of arguments an application must
// supply (§4.4.3).
func requiredTemplateArgCount(params []ast.TemplateParameter) int {
	n := 0
	for _, p := range params {
		if p.Default == nil {
			n++
		}
	}
	return n
}

// checkTemplateArgumentCount reports whether argCount falls within
// required_count..parameter_count, the range §4.4.3 allows once trailing
// defaults are taken into account.
func checkTemplateArgumentCount(params []ast.TemplateParameter, argCount int) bool {
	required := requiredTemplateArgCount(params)
	return argCount >= required && argCount <= len(params)
}

// applyTemplateDefaults checks explicit's length against info's parameter
// list and, if it is short but within range, fills the missing trailing
// arguments from each parameter's own default — resolved in info's
// definition-site environment, so a default may refer to an earlier
// parameter the same way the definition itself does (§4.4.3). A
// too-short or too-long explicit list reports KindTemplateArgumentCount
// and is returned unchanged.
func (c *Context) applyTemplateDefaults(rng source.Range, info templateInfo, explicit []hir.TypeId) []hir.TypeId {
	if !checkTemplateArgumentCount(info.params, len(explicit)) {
		c.report(diag.New(diag.KindTemplateArgumentCount, diag.SeverityError, rng,
			"expected between %d and %d template arguments, got %d",
			requiredTemplateArgCount(info.params), len(info.params), len(explicit)))
		return explicit
	}
	filled := append([]hir.TypeId{}, explicit...)
	for i := len(filled); i < len(info.params); i++ {
		p := info.params[i]
		if p.Default == nil {
			break
		}
		filled = append(filled, c.resolveTemplateArgumentAsType(info.ns, info.env, *p.Default))
	}
	return filled
}

// instantiationKey builds a canonical string key for one application of
// concrete template arguments to a generic definition, used by the
// instantiation cache (§4.4.3) so repeated applications of the same
// arguments share one instantiation rather than minting duplicates.
func (c *Context) instantiationKey(def *ast.Definition, args []hir.TypeId) string {
	key := fmt.Sprintf("%p", def)
	p := &hir.Printer{Types: c.info.Types, Symbols: c.info.Symbols}
	for _, a := range args {
		key += "|" + p.Print(a)
	}
	return key
}

// internTemplateApplication shares one TypeId across repeated applications
// of the same concrete template arguments to the same struct/enum
// definition: it looks args up under instantiationKey in the Context's
// instantiation cache, and only calls build (which constructs the actual
// TypeStructure/TypeEnumeration variant) on a miss (§4.4.3). Definitions
// that defByNS can't locate (there is always one once declare has run, but
// resolveTypePath must still degrade gracefully for an unresolved symbol)
// fall back to an uncached Intern.
func (c *Context) internTemplateApplication(sym hir.SymbolId, args []hir.TypeId, build func() hir.TypeVariant) hir.TypeId {
	def, ok := c.defByNS(sym)
	if !ok {
		return c.info.Types.Intern(build())
	}
	key := c.instantiationKey(def, args)
	if id, ok := c.instantiations[key]; ok {
		return id
	}
	id := c.info.Types.Intern(build())
	c.instantiations[key] = id
	return id
}
