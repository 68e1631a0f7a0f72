package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// Resolve runs the two-pass resolution described in §4.4.1 over module:
// first every top-level symbol is declared without forcing any body, then
// every definition's body is resolved. It returns the root namespace, so
// a caller (tooling, or a test) can drive further lookups after
// resolution completes.
func (c *Context) Resolve(module *ast.Module) *Namespace {
	c.checkImports(module.Imports)
	c.root = newNamespace(c.info.RootEnv(), nil)
	c.declareDefinitions(c.root, module.Definitions)
	c.declareImpls(c.root, module.Definitions)
	for _, def := range module.Definitions {
		c.resolveDefinition(c.root, def)
	}
	return c.root
}

// declareDefinitions is pass 1 over one block of sibling definitions,
// excluding impl blocks (handled separately by declareImpls once every
// struct/enum/alias/concept in the module has a namespace to attach to).
func (c *Context) declareDefinitions(ns *Namespace, defs []*ast.Definition) {
	for _, def := range defs {
		switch v := def.Variant.(type) {
		case ast.DefFunction:
			c.declareSymbol(ns, def, v.Name, hir.SymbolFunction, def.Range)
		case ast.DefStruct:
			sym := c.declareSymbol(ns, def, v.Name, hir.SymbolStructure, def.Range)
			assoc := c.child(ns, v.Name)
			c.defStates[def].ns = assoc
			c.typeNamespaces[v.Name] = assoc
			c.symbolNamespaces[sym] = assoc
			c.declareStructFields(assoc, sym, v)
		case ast.DefEnum:
			sym := c.declareSymbol(ns, def, v.Name, hir.SymbolEnumeration, def.Range)
			assoc := c.child(ns, v.Name)
			c.defStates[def].ns = assoc
			c.typeNamespaces[v.Name] = assoc
			c.symbolNamespaces[sym] = assoc
			c.declareEnumConstructors(assoc, sym, v, def.Range)
		case ast.DefAlias:
			sym := c.declareSymbol(ns, def, v.Name, hir.SymbolAlias, def.Range)
			assoc := c.child(ns, v.Name)
			c.defStates[def].ns = assoc
			c.typeNamespaces[v.Name] = assoc
			c.symbolNamespaces[sym] = assoc
		case ast.DefConcept:
			sym := c.declareSymbol(ns, def, v.Name, hir.SymbolConcept, def.Range)
			assoc := c.child(ns, v.Name)
			c.defStates[def].ns = assoc
			c.typeNamespaces[v.Name] = assoc
			c.symbolNamespaces[sym] = assoc
			for _, sig := range v.Signatures {
				c.declareNamedIn(assoc, sig.Name, hir.SymbolFunction, def.Range)
			}
		case ast.DefSubmodule:
			sym := c.declareSymbol(ns, def, v.Name, hir.SymbolModule, def.Range)
			child := c.child(ns, v.Name)
			c.defStates[def].ns = child
			c.symbolNamespaces[sym] = child
			c.declareDefinitions(child, v.Definitions)
			c.declareImpls(child, v.Definitions)
		case ast.DefImpl:
			// handled by declareImpls once every type in this block has a namespace
		}
	}
}

// declareImpls attaches each impl block's definitions into its self
// type's associated namespace, found by simple name lookup (§4.4.1 notes
// method dispatch must see signatures before any body resolves). Impl
// blocks are resolved against type *names*, not fully resolved types,
// since no type in the module needs a resolved representation yet at
// declare time.
func (c *Context) declareImpls(ns *Namespace, defs []*ast.Definition) {
	for _, def := range defs {
		impl, ok := def.Variant.(ast.DefImpl)
		if !ok {
			continue
		}
		name := implTargetName(impl.SelfType)
		if name == "" {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, def.Range, "impl block does not name a concrete type"))
			continue
		}
		assoc, ok := c.typeNamespaces[name]
		if !ok {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, def.Range, "no definition for '%s' in scope", name))
			continue
		}
		c.declareDefinitions(assoc, impl.Definitions)
		c.declareImpls(assoc, impl.Definitions)
	}
}

// implTargetName extracts the bare type name an impl block targets. Impls
// on non-path types (tuples, references, …) are not supported by method
// lookup per §4.4.4, so only TypePath self-types resolve to a name here.
func implTargetName(t *ast.Type) string {
	if t == nil {
		return ""
	}
	if path, ok := t.Variant.(ast.TypePath); ok {
		return path.Path.PrimaryName
	}
	return ""
}

func (c *Context) declareStructFields(assoc *Namespace, structSym hir.SymbolId, v ast.DefStruct) {
	for _, f := range v.NamedFields {
		c.declareNamedIn(assoc, f.Name, hir.SymbolField, f.Type.Range)
	}
	_ = structSym
}

func (c *Context) declareEnumConstructors(assoc *Namespace, enumSym hir.SymbolId, v ast.DefEnum, rng source.Range) {
	for _, ctor := range v.Constructors {
		c.declareNamedIn(assoc, ctor.Name, hir.SymbolConstructor, rng)
	}
	_ = enumSym
}

// declareSymbol mints a symbol for def in ns's environment and records its
// defState, starting Unresolved.
func (c *Context) declareSymbol(ns *Namespace, def *ast.Definition, name string, variant hir.SymbolVariant, rng source.Range) hir.SymbolId {
	sym := c.info.Symbols.Declare(hir.Symbol{Name: name, Range: rng, Variant: variant})
	c.info.Environments.Bind(ns.Env, c.intern.Intern(name), sym)
	c.info.DefinitionSyms[def] = sym
	c.defStates[def] = &defState{status: statusUnresolved, symbol: sym, def: def}
	return sym
}

// declareNamedIn binds a plain name (a field, a constructor, a concept
// method signature) directly into ns's environment without an
// accompanying *ast.Definition — these never get a resolver body pass of
// their own, they are only ever looked up.
func (c *Context) declareNamedIn(ns *Namespace, name string, variant hir.SymbolVariant, rng source.Range) hir.SymbolId {
	sym := c.info.Symbols.Declare(hir.Symbol{Name: name, Range: rng, Variant: variant})
	c.info.Environments.Bind(ns.Env, c.intern.Intern(name), sym)
	return sym
}
