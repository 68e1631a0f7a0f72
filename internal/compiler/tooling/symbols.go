package tooling

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// symbolAt finds the symbol referenced or bound at pos within doc, and the
// range that reference/binding occupies. It descends to the innermost
// enclosing definition, then checks parameter patterns before walking the
// body, so a hit as specific as a single path expression or bound name
// wins over the enclosing function as a whole.
func symbolAt(doc *database.Document, pos source.Position) (hir.SymbolId, source.Range, bool) {
	if doc.AST == nil || doc.Info == nil {
		return 0, source.Range{}, false
	}
	def := definitionAt(doc.AST.Definitions, pos)
	if def == nil {
		return 0, source.Range{}, false
	}

	if fn, ok := def.Variant.(ast.DefFunction); ok {
		for _, p := range fn.Signature.Parameters {
			if pp := patternAt(p.Pattern, pos); pp != nil {
				if bindings := doc.Info.PatternBindings[pp]; len(bindings) > 0 {
					return bindings[0].Symbol, pp.Range, true
				}
			}
		}
		if fn.Body != nil {
			if ce, cp := locate(fn.Body, pos); ce != nil {
				if sym, ok := doc.Info.ExprSymbols[ce]; ok {
					return sym, ce.Range, true
				}
			} else if cp != nil {
				if bindings := doc.Info.PatternBindings[cp]; len(bindings) > 0 {
					return bindings[0].Symbol, cp.Range, true
				}
			}
		}
	}

	if sym, ok := doc.Info.DefinitionSyms[def]; ok {
		return sym, def.Range, true
	}
	return 0, source.Range{}, false
}

// GetHover returns hover information for pos in doc, or nil if nothing
// resolvable sits there.
func (a *API) GetHover(id database.DocumentId, pos source.Position) (*Hover, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok {
		return nil, false
	}
	sym, rng, ok := symbolAt(doc, pos)
	if !ok {
		return nil, false
	}
	return buildHover(doc.Info, sym, rng), true
}

func buildHover(info *hir.Info, sym hir.SymbolId, rng source.Range) *Hover {
	s := info.Symbols.Get(sym)
	var contents string
	switch s.Variant {
	case hir.SymbolFunction:
		contents = "```kieli\nfn " + s.Name + "\n```"
	case hir.SymbolStructure:
		contents = "```kieli\nstruct " + s.Name + "\n```"
	case hir.SymbolEnumeration:
		contents = "```kieli\nenum " + s.Name + "\n```"
	case hir.SymbolConstructor:
		contents = "```kieli\n." + s.Name + "\n```"
	case hir.SymbolField:
		contents = "```kieli\n" + s.Name + "\n```"
	case hir.SymbolConcept:
		contents = "```kieli\nconcept " + s.Name + "\n```"
	case hir.SymbolAlias:
		contents = "```kieli\nalias " + s.Name + "\n```"
	case hir.SymbolModule:
		contents = "```kieli\nmodule " + s.Name + "\n```"
	case hir.SymbolLocalVariable, hir.SymbolLocalMutability:
		typ := ""
		if id, ok := typeOfBinding(info, sym); ok {
			typ = " : " + formatType(info, id)
		}
		contents = "```kieli\nlet " + s.Name + typ + "\n```"
	default:
		contents = "```kieli\n" + s.Name + "\n```"
	}
	return &Hover{Contents: contents, Range: rng}
}

// typeOfBinding looks up a local binding's type by scanning ExprTypes for
// the first path expression that resolved to sym — the resolver records a
// binding's type only via c.symbolTypes, which is private to the
// resolver package, so hover reconstructs it from any use site instead.
func typeOfBinding(info *hir.Info, sym hir.SymbolId) (hir.TypeId, bool) {
	for e, s := range info.ExprSymbols {
		if s == sym {
			if id, ok := info.ExprTypes[e]; ok {
				return info.Types.Find(id), true
			}
		}
	}
	return 0, false
}

// GetDefinition returns the declaration site of the symbol at pos.
func (a *API) GetDefinition(id database.DocumentId, pos source.Position) (*Location, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok {
		return nil, false
	}
	sym, _, ok := symbolAt(doc, pos)
	if !ok {
		return nil, false
	}
	s := doc.Info.Symbols.Get(sym)
	return &Location{Path: doc.Path, Range: s.Range}, true
}

// GetReferences returns every expression in doc that resolved to the
// symbol at pos, plus its declaration site when includeDeclaration is
// true. References are scoped to one document: the resolver never links
// symbols across documents (§4.4), so there is nothing further to search.
func (a *API) GetReferences(id database.DocumentId, pos source.Position, includeDeclaration bool) ([]Location, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok {
		return nil, false
	}
	sym, _, ok := symbolAt(doc, pos)
	if !ok {
		return nil, false
	}

	var locs []Location
	if includeDeclaration {
		locs = append(locs, Location{Path: doc.Path, Range: doc.Info.Symbols.Get(sym).Range})
	}
	for e, s := range doc.Info.ExprSymbols {
		if s == sym {
			locs = append(locs, Location{Path: doc.Path, Range: e.Range})
		}
	}
	return locs, true
}

// GetDocumentSymbols returns doc's outline: one entry per top-level
// definition, nested recursively for impl blocks and submodules (§6.3).
func (a *API) GetDocumentSymbols(id database.DocumentId) ([]Symbol, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok || doc.AST == nil {
		return nil, false
	}
	return definitionSymbols(doc.AST.Definitions), true
}

func definitionSymbols(defs []*ast.Definition) []Symbol {
	var out []Symbol
	for _, d := range defs {
		if sym, ok := definitionSymbol(d); ok {
			out = append(out, sym)
		}
	}
	return out
}

func definitionSymbol(d *ast.Definition) (Symbol, bool) {
	switch v := d.Variant.(type) {
	case ast.DefFunction:
		return Symbol{Name: v.Name, Kind: SymbolKindFunction, Range: d.Range, NameRange: d.Range}, true
	case ast.DefStruct:
		sym := Symbol{Name: v.Name, Kind: SymbolKindStruct, Range: d.Range, NameRange: d.Range}
		for _, f := range v.NamedFields {
			sym.Children = append(sym.Children, Symbol{Name: f.Name, Kind: SymbolKindField, Range: d.Range, NameRange: d.Range})
		}
		return sym, true
	case ast.DefEnum:
		sym := Symbol{Name: v.Name, Kind: SymbolKindEnum, Range: d.Range, NameRange: d.Range}
		for _, ctor := range v.Constructors {
			sym.Children = append(sym.Children, Symbol{Name: ctor.Name, Kind: SymbolKindConstructor, Range: d.Range, NameRange: d.Range})
		}
		return sym, true
	case ast.DefAlias:
		return Symbol{Name: v.Name, Kind: SymbolKindAlias, Range: d.Range, NameRange: d.Range}, true
	case ast.DefConcept:
		sym := Symbol{Name: v.Name, Kind: SymbolKindConcept, Range: d.Range, NameRange: d.Range}
		for _, sig := range v.Signatures {
			sym.Children = append(sym.Children, Symbol{Name: sig.Name, Kind: SymbolKindFunction, Range: d.Range, NameRange: d.Range})
		}
		return sym, true
	case ast.DefSubmodule:
		return Symbol{Name: v.Name, Kind: SymbolKindModule, Range: d.Range, NameRange: d.Range, Children: definitionSymbols(v.Definitions)}, true
	case ast.DefImpl:
		name := implDisplayName(v.SelfType)
		return Symbol{Name: "impl " + name, Kind: SymbolKindModule, Range: d.Range, NameRange: d.Range, Children: definitionSymbols(v.Definitions)}, true
	default:
		return Symbol{}, false
	}
}

func implDisplayName(t *ast.Type) string {
	if t == nil {
		return ""
	}
	if path, ok := t.Variant.(ast.TypePath); ok {
		return path.Path.PrimaryName
	}
	return ""
}
