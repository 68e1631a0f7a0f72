package resolver

import (
	"sort"

	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// bindLocalVariable declares a fresh SymbolLocalVariable for name and binds
// it directly into env, warning first if it shadows a same-named local in
// that exact scope that was never consulted (§3.7, style category §7).
func (c *Context) bindLocalVariable(env hir.EnvId, name string, rng source.Range) hir.SymbolId {
	if name != "_" {
		if prev, ok := c.info.Environments.LocalBindings(env)[c.intern.Intern(name)]; ok {
			if s := c.info.Symbols.Get(prev); s.Variant == hir.SymbolLocalVariable && s.UseCount == 0 {
				c.report(diag.New(diag.KindShadowingUnusedVariable, diag.SeverityWarning, rng,
					"'%s' shadows a local variable that was never used", name).
					WithRelated(s.Range, "previous binding here"))
			}
		}
	}
	sym := c.info.Symbols.Declare(hir.Symbol{Name: name, Range: rng, Variant: hir.SymbolLocalVariable})
	c.info.Environments.Bind(env, c.intern.Intern(name), sym)
	return sym
}

// checkUnusedLocals warns on every SymbolLocalVariable bound directly in
// env (not an ancestor) that was never consulted, per §3.7's "either it is
// consulted at least once before scope exit or a warning is emitted".
// Bindings are visited in declaration order (by SymbolId) rather than the
// underlying map's order, so diagnostic output stays deterministic (§8.2).
func (c *Context) checkUnusedLocals(env hir.EnvId) {
	locals := c.info.Environments.LocalBindings(env)
	syms := make([]hir.SymbolId, 0, len(locals))
	for _, sym := range locals {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	for _, sym := range syms {
		s := c.info.Symbols.Get(sym)
		if s.Variant == hir.SymbolLocalVariable && s.UseCount == 0 && s.Name != "_" {
			c.report(diag.New(diag.KindUnusedVariable, diag.SeverityWarning, s.Range,
				"unused local variable '%s'", s.Name).WithTag(diag.TagUnnecessary))
		}
	}
}

// resolvePattern resolves pat against expected, binding every name pat
// introduces directly into env and recording pat's bindings and flattened
// type onto hir.Info (§4.4.5).
func (c *Context) resolvePattern(ns *Namespace, env hir.EnvId, pat *ast.Pattern, expected hir.TypeId) {
	if pat == nil {
		return
	}
	c.info.PatternTypes[pat] = expected

	switch v := pat.Variant.(type) {
	case ast.PatternLiteral:
		c.unify(pat.Range, expected, c.literalType(v.Value))

	case ast.PatternWildcard:
		// matches anything; no binding, no further constraint

	case ast.PatternName:
		sym := c.bindLocalVariable(env, v.Name, pat.Range)
		c.symbolTypes[sym] = expected
		c.symbolMutability[sym] = c.resolveMutability(ns, env, v.Mutability)
		c.info.PatternBindings[pat] = append(c.info.PatternBindings[pat], hir.LocalBinding{Name: v.Name, Symbol: sym})

	case ast.PatternConstructor:
		c.resolveConstructorPattern(ns, env, pat, v, expected)

	case ast.PatternTuple:
		elemExpected := make([]hir.TypeId, len(v.Elements))
		if tup, ok := c.info.Types.Get(c.info.Types.Find(expected)).(hir.TypeTuple); ok && len(tup.Elements) == len(v.Elements) {
			copy(elemExpected, tup.Elements)
		} else {
			for i := range elemExpected {
				elemExpected[i], _ = c.info.Types.Fresh(hir.TypeVarGeneral)
			}
		}
		for i, el := range v.Elements {
			c.resolvePattern(ns, env, el, elemExpected[i])
			c.info.PatternBindings[pat] = append(c.info.PatternBindings[pat], c.info.PatternBindings[el]...)
		}
		c.unify(pat.Range, expected, c.info.Types.Intern(hir.TypeTuple{Elements: elemExpected}))

	case ast.PatternSlice:
		elem, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		if sl, ok := c.info.Types.Get(c.info.Types.Find(expected)).(hir.TypeSlice); ok {
			elem = sl.Element
		}
		for _, el := range v.Elements {
			c.resolvePattern(ns, env, el, elem)
			c.info.PatternBindings[pat] = append(c.info.PatternBindings[pat], c.info.PatternBindings[el]...)
		}
		c.unify(pat.Range, expected, c.info.Types.Intern(hir.TypeSlice{Element: elem}))

	case ast.PatternAlias:
		c.resolvePattern(ns, env, v.Pattern, expected)
		sym := c.bindLocalVariable(env, v.Name, pat.Range)
		c.symbolTypes[sym] = expected
		c.info.PatternBindings[pat] = append(append([]hir.LocalBinding{}, c.info.PatternBindings[v.Pattern]...),
			hir.LocalBinding{Name: v.Name, Symbol: sym})

	case ast.PatternGuarded:
		c.resolvePattern(ns, env, v.Pattern, expected)
		c.resolveExpr(ns, env, v.Guard)
		c.info.PatternBindings[pat] = c.info.PatternBindings[v.Pattern]
	}
}

// resolveConstructorPattern resolves a struct or enum-constructor pattern.
// An abbreviated (`.Variant`) pattern has no explicit root and instead
// resolves by simple name inside expected's own enum namespace, which
// requires expected to already be a concrete, pinned enum type (§4.4.5).
func (c *Context) resolveConstructorPattern(ns *Namespace, env hir.EnvId, pat *ast.Pattern, v ast.PatternConstructor, expected hir.TypeId) {
	var sym hir.SymbolId
	var ok bool

	if v.Abbreviated {
		enumT, eok := c.info.Types.Get(c.info.Types.Find(expected)).(hir.TypeEnumeration)
		if !eok {
			c.report(diag.New(diag.KindAbbreviatedCtorWithoutEnum, diag.SeverityError, pat.Range,
				"abbreviated constructor pattern requires a known enum type"))
			return
		}
		enumNS := c.symbolNamespaces[enumT.Definition]
		if enumNS == nil {
			return
		}
		sym, ok = c.info.Environments.LocalBindings(enumNS.Env)[c.intern.Intern(v.Name.PrimaryName)]
		if ok {
			c.info.Symbols.Use(sym)
		}
	} else {
		sym, ok = c.resolvePath(ns, env, v.Name)
	}
	if !ok {
		return
	}
	c.patternSymbols[pat] = sym

	s := c.info.Symbols.Get(sym)
	var tuple []hir.TypeId
	var named []FieldInfo
	switch s.Variant {
	case hir.SymbolConstructor:
		shape := c.ctorShapes[sym]
		tuple, named = shape.Tuple, shape.Named
		c.unify(pat.Range, expected, c.enumTypeOfConstructor(sym))
	case hir.SymbolStructure:
		tuple = c.structTuples[sym]
		named = c.structFields[sym]
		c.unify(pat.Range, expected, c.info.Types.Intern(hir.TypeStructure{Definition: sym}))
	default:
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, pat.Range, "'%s' is not a constructor", s.Name))
		return
	}

	var bindings []hir.LocalBinding
	for i, el := range v.Elements {
		var elemExpected hir.TypeId
		if i < len(tuple) {
			elemExpected = tuple[i]
		} else {
			elemExpected, _ = c.info.Types.Fresh(hir.TypeVarGeneral)
		}
		c.resolvePattern(ns, env, el, elemExpected)
		bindings = append(bindings, c.info.PatternBindings[el]...)
	}
	if len(v.Elements) != len(tuple) {
		c.reportArity(pat.Range, "constructor", len(tuple), len(v.Elements))
	}

	for _, f := range v.Fields {
		var ftype hir.TypeId
		found := false
		for _, fi := range named {
			if fi.Name == f.Name {
				ftype, found = fi.Type, true
			}
		}
		if !found {
			ftype, _ = c.info.Types.Fresh(hir.TypeVarGeneral)
		}
		if f.Pattern != nil {
			c.resolvePattern(ns, env, f.Pattern, ftype)
			bindings = append(bindings, c.info.PatternBindings[f.Pattern]...)
		} else {
			fsym := c.bindLocalVariable(env, f.Name, pat.Range)
			c.symbolTypes[fsym] = ftype
			bindings = append(bindings, hir.LocalBinding{Name: f.Name, Symbol: fsym})
		}
	}
	c.info.PatternBindings[pat] = bindings
}

// isExhaustiveByItself reports whether pat alone, with no sibling arms,
// matches every value of its type: true for wildcards, bare names, tuples
// of exhaustive-by-themselves patterns, a constructor pattern naming the
// sole constructor of its enum, and a struct pattern (structs have exactly
// one shape). A literal, a slice pattern, or a guarded pattern never is
// (§4.4.5).
func (c *Context) isExhaustiveByItself(pat *ast.Pattern) bool {
	if pat == nil {
		return true
	}
	switch v := pat.Variant.(type) {
	case ast.PatternWildcard:
		return true
	case ast.PatternName:
		return true
	case ast.PatternLiteral:
		return false
	case ast.PatternSlice:
		return false
	case ast.PatternGuarded:
		return false
	case ast.PatternAlias:
		return c.isExhaustiveByItself(v.Pattern)
	case ast.PatternTuple:
		for _, el := range v.Elements {
			if !c.isExhaustiveByItself(el) {
				return false
			}
		}
		return true
	case ast.PatternConstructor:
		sym, ok := c.patternSymbols[pat]
		if !ok {
			return false
		}
		if owner, ok := c.ctorOwner[sym]; ok {
			return c.enumCtorCount[owner] == 1
		}
		return true // a struct pattern is the type's only shape
	}
	return false
}
