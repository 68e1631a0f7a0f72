package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

// resolvePath resolves an ast.Path to the symbol it names, walking segments
// left to right from an explicit root — global, a type's associated
// namespace, or the current lexical environment chain (§4.4.1). env is the
// environment the path's own lexical scope resolves through; it is only
// consulted for an unrooted path's first segment.
func (c *Context) resolvePath(ns *Namespace, env hir.EnvId, path ast.Path) (hir.SymbolId, bool) {
	var cur *Namespace
	segments := path.MiddleQualifiers

	switch {
	case path.IsGlobal:
		cur = c.root

	case path.RootType != nil:
		name := implTargetName(path.RootType)
		assoc, ok := c.typeNamespaces[name]
		if !ok {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, path.Range,
				"no definition for '%s' in scope", name))
			return c.errorSymbol(), false
		}
		cur = assoc

	default:
		if len(segments) == 0 {
			sym, ok := c.info.Environments.Lookup(env, c.intern.Intern(path.PrimaryName))
			if !ok {
				c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, path.Range,
					"no definition for '%s' in scope", path.PrimaryName))
				return c.errorSymbol(), false
			}
			c.info.Symbols.Use(sym)
			return sym, true
		}

		first := segments[0]
		sym, ok := c.info.Environments.Lookup(env, c.intern.Intern(first))
		if !ok {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, path.Range,
				"no definition for '%s' in scope", first))
			return c.errorSymbol(), false
		}
		c.info.Symbols.Use(sym)
		child, ok := c.symbolNamespaces[sym]
		if !ok {
			c.report(diag.New(diag.KindNamespaceMissingMember, diag.SeverityError, path.Range,
				"'%s' does not contain a definition for '%s'", first, nextName(segments, path.PrimaryName)))
			return c.errorSymbol(), false
		}
		cur = child
		segments = segments[1:]
	}

	for _, seg := range segments {
		next, ok := cur.Children[seg]
		if !ok {
			c.report(diag.New(diag.KindNamespaceMissingMember, diag.SeverityError, path.Range,
				"'%s' does not contain a definition for '%s'", seg, path.PrimaryName))
			return c.errorSymbol(), false
		}
		cur = next
	}

	sym, ok := c.info.Environments.LocalBindings(cur.Env)[c.intern.Intern(path.PrimaryName)]
	if !ok {
		if path.IsGlobal && len(path.MiddleQualifiers) == 0 {
			c.report(diag.New(diag.KindGlobalMissingMember, diag.SeverityError, path.Range,
				"the global namespace does not contain a definition for '%s'", path.PrimaryName))
		} else {
			c.report(diag.New(diag.KindNamespaceMissingMember, diag.SeverityError, path.Range,
				"does not contain a definition for '%s'", path.PrimaryName))
		}
		return c.errorSymbol(), false
	}
	c.info.Symbols.Use(sym)
	return sym, true
}

// nextName is the segment a namespace lookup was trying to reach when an
// intermediate qualifier itself failed to resolve to a namespace: the next
// middle qualifier if there is one, otherwise the path's primary name.
func nextName(segments []string, primary string) string {
	if len(segments) > 1 {
		return segments[1]
	}
	return primary
}

// errorSymbol mints a fresh Error-variant symbol, used as the result of a
// failed lookup so callers always have something to annotate onto the AST.
func (c *Context) errorSymbol() hir.SymbolId {
	return c.info.Symbols.Declare(hir.Symbol{Name: "<error>", Variant: hir.SymbolError})
}
