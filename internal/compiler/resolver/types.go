package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// resolveType turns one surface ast.Type into a concrete hir.TypeId,
// consulting ns for qualified lookups and env for template parameters and
// other lexical bindings in scope at the type's position (§4.4.2).
func (c *Context) resolveType(ns *Namespace, env hir.EnvId, t *ast.Type) hir.TypeId {
	if t == nil {
		return c.info.Types.Intern(hir.TypeError{})
	}
	switch v := t.Variant.(type) {
	case ast.TypePrimitive:
		return c.info.Types.Intern(hir.TypePrimitive{Name: v.Name})

	case ast.TypePath:
		return c.resolveTypePath(ns, env, t.Range, v)

	case ast.TypeTuple:
		elems := make([]hir.TypeId, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = c.resolveType(ns, env, e)
		}
		return c.info.Types.Intern(hir.TypeTuple{Elements: elems})

	case ast.TypeArray:
		elem := c.resolveType(ns, env, v.Element)
		length := c.constantArrayLength(ns, env, v.Length)
		return c.info.Types.Intern(hir.TypeArrayOf{Element: elem, Length: length})

	case ast.TypeSlice:
		return c.info.Types.Intern(hir.TypeSlice{Element: c.resolveType(ns, env, v.Element)})

	case ast.TypeFunction:
		params := make([]hir.TypeId, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = c.resolveType(ns, env, p)
		}
		return c.info.Types.Intern(hir.TypeFunction{Parameters: params, Return: c.resolveType(ns, env, v.Return)})

	case ast.TypeTypeof:
		typ, ok := c.info.TypeOf(c.resolveExpr(ns, env, v.Expression))
		if !ok {
			return c.info.Types.Intern(hir.TypeError{})
		}
		return typ

	case ast.TypeReference:
		return c.info.Types.Intern(hir.TypeReference{
			Mutability: c.resolveMutability(ns, env, v.Mutability),
			Referenced: c.resolveType(ns, env, v.Referenced),
		})

	case ast.TypePointer:
		return c.info.Types.Intern(hir.TypePointer{
			Mutability: c.resolveMutability(ns, env, v.Mutability),
			Pointee:    c.resolveType(ns, env, v.Pointee),
		})

	case ast.TypeImplOf:
		return c.freshConstrained(ns, env, v.Concepts)

	case ast.TypeDyn:
		// No distinct trait-object representation is modeled (§9): a `dyn`
		// bound resolves the same way `impl` does, as a constrained
		// unification variable that generalization later promotes to an
		// implicit template parameter.
		return c.freshConstrained(ns, env, v.Concepts)

	case ast.TypeSelf:
		return c.info.Types.Intern(hir.TypeSelfPlaceholder{})

	case ast.TypeWildcard:
		id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		return id

	case ast.TypeError:
		return c.info.Types.Intern(hir.TypeError{})
	}
	return c.info.Types.Intern(hir.TypeError{})
}

// resolveTypePath resolves a named type reference: a primitive stand-in for
// a path is never produced by the parser, so every TypePath names either a
// template parameter, a structure, an enumeration, or an alias (whose
// target is substituted in).
func (c *Context) resolveTypePath(ns *Namespace, env hir.EnvId, rng source.Range, v ast.TypePath) hir.TypeId {
	sym, ok := c.resolvePath(ns, env, v.Path)
	if !ok {
		return c.info.Types.Intern(hir.TypeError{})
	}

	targs := make([]hir.TypeId, 0, len(v.Path.TemplateArguments))
	for _, ta := range v.Path.TemplateArguments {
		targs = append(targs, c.resolveTemplateArgumentAsType(ns, env, ta))
	}
	if info, ok := c.templateInfoOf[sym]; ok {
		targs = c.applyTemplateDefaults(rng, info, targs)
	}

	s := c.info.Symbols.Get(sym)
	switch s.Variant {
	case hir.SymbolLocalType:
		if tag, ok := c.templateTypeTags[sym]; ok {
			return c.info.Types.Intern(hir.TypeTemplateParameterReference{Tag: tag})
		}
		return c.info.Types.Intern(hir.TypeError{})
	case hir.SymbolStructure:
		return c.internTemplateApplication(sym, targs, func() hir.TypeVariant {
			return hir.TypeStructure{Definition: sym, TemplateArguments: targs}
		})
	case hir.SymbolEnumeration:
		return c.internTemplateApplication(sym, targs, func() hir.TypeVariant {
			return hir.TypeEnumeration{Definition: sym, TemplateArguments: targs}
		})
	case hir.SymbolAlias:
		if target, ok := c.aliasTargets[sym]; ok {
			return target
		}
		// Forward reference to an alias not yet resolved in pass 2: force
		// it now, the same way a circular alias chain is caught (§4.4.1).
		if def, ok := c.defByNS(sym); ok {
			c.resolveDefinition(ns, def)
			if target, ok := c.aliasTargets[sym]; ok {
				return target
			}
		}
		return c.info.Types.Intern(hir.TypeError{})
	default:
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, rng,
			"'%s' does not name a type", s.Name))
		return c.info.Types.Intern(hir.TypeError{})
	}
}

// defByNS finds the *ast.Definition a symbol was declared from, so an
// out-of-order alias or struct/enum reference can be force-resolved.
func (c *Context) defByNS(sym hir.SymbolId) (*ast.Definition, bool) {
	for def, st := range c.defStates {
		if st.symbol == sym {
			return def, true
		}
	}
	return nil, false
}

// resolveTemplateArgumentAsType resolves one template argument supplied at
// an application site in type position; non-type arguments (expressions,
// mutabilities, wildcards) are not valid here and resolve to TypeError.
func (c *Context) resolveTemplateArgumentAsType(ns *Namespace, env hir.EnvId, ta ast.TemplateArgument) hir.TypeId {
	if ta.Wildcard {
		id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		return id
	}
	if ta.Type != nil {
		return c.resolveType(ns, env, ta.Type)
	}
	return c.info.Types.Intern(hir.TypeError{})
}

// resolveMutability resolves a surface mutability annotation to its hir
// form: a concrete value, or — inside a template parameter list — a
// reference to a mutability parameter.
func (c *Context) resolveMutability(ns *Namespace, env hir.EnvId, m ast.Mutability) hir.Mutability {
	if m.Parameter == "" {
		return hir.Concrete(m.IsMutable)
	}
	sym, ok := c.info.Environments.Lookup(env, c.intern.Intern(m.Parameter))
	if !ok {
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, m.Range,
			"no definition for '%s' in scope", m.Parameter))
		return hir.Concrete(false)
	}
	c.info.Symbols.Use(sym)
	tag, ok := c.templateMutTags[sym]
	if !ok {
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, m.Range,
			"'%s' is not a mutability parameter", m.Parameter))
		return hir.Concrete(false)
	}
	_ = ns
	return hir.Mutability{Variant: hir.MutParameterized{Tag: tag}}
}

// freshConstrained allocates a fresh unification variable constrained by
// each named concept, the shared resolution for both `impl C` and `dyn C`
// positions (§4.4.2, §9).
func (c *Context) freshConstrained(ns *Namespace, env hir.EnvId, concepts []ast.Path) hir.TypeId {
	id, v := c.info.Types.Fresh(hir.TypeVarGeneral)
	for _, concept := range concepts {
		sym, ok := c.resolvePath(ns, env, concept)
		if !ok {
			continue
		}
		if c.info.Symbols.Get(sym).Variant != hir.SymbolConcept {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, concept.Range,
				"'%s' is not a concept", concept.PrimaryName))
			continue
		}
		c.info.Types.Constrain(v, sym)
	}
	return id
}

// constantArrayLength evaluates an array type's `[T; n]` length expression.
// Only a plain integer literal is supported; anything more general is a
// constant-evaluation feature this resolver does not implement (§9).
func (c *Context) constantArrayLength(ns *Namespace, env hir.EnvId, e *ast.Expression) int64 {
	if e == nil {
		return 0
	}
	if lit, ok := e.Variant.(ast.ExprLiteral); ok {
		if n, ok := lit.Value.(int64); ok {
			return n
		}
	}
	c.report(diag.New(diag.KindNotImplemented, diag.SeverityError, e.Range,
		"array length must be an integer literal"))
	_ = ns
	_ = env
	return 0
}
