package tooling

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// keywordCompletions lists every reserved word from the lexer's keyword
// table except the two boolean literals, which are offered as ordinary
// variable-like completions instead of keywords since they denote values,
// not syntax.
var keywordCompletions = func() []CompletionItem {
	var items []CompletionItem
	for word, kind := range lexer.Keywords {
		if kind == lexer.TOKEN_BOOLEAN_LITERAL {
			items = append(items, CompletionItem{Label: word, Kind: CompletionKindVariable})
			continue
		}
		items = append(items, CompletionItem{Label: word, Kind: CompletionKindKeyword})
	}
	return items
}()

// GetCompletions returns completion items for pos in doc: every reserved
// keyword, every top-level definition visible from the module's root
// scope, and every local binding (parameter or let) introduced before pos
// in the enclosing function body.
func (a *API) GetCompletions(id database.DocumentId, pos source.Position) ([]CompletionItem, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok || doc.AST == nil || doc.Info == nil {
		return nil, false
	}

	items := append([]CompletionItem{}, keywordCompletions...)
	items = append(items, topLevelCompletions(doc.AST.Definitions)...)

	if def := definitionAt(doc.AST.Definitions, pos); def != nil {
		if fn, ok := def.Variant.(ast.DefFunction); ok {
			items = append(items, localCompletions(doc.Info, fn, pos)...)
		}
	}
	return items, true
}

func topLevelCompletions(defs []*ast.Definition) []CompletionItem {
	var items []CompletionItem
	for _, d := range defs {
		switch v := d.Variant.(type) {
		case ast.DefFunction:
			items = append(items, CompletionItem{Label: v.Name, Kind: CompletionKindFunction})
		case ast.DefStruct:
			items = append(items, CompletionItem{Label: v.Name, Kind: CompletionKindStruct})
		case ast.DefEnum:
			items = append(items, CompletionItem{Label: v.Name, Kind: CompletionKindEnum})
		case ast.DefSubmodule:
			items = append(items, CompletionItem{Label: v.Name, Kind: CompletionKindModule})
			items = append(items, topLevelCompletions(v.Definitions)...)
		}
	}
	return items
}

// localCompletions collects every name bound by fn's parameters, plus
// every let-pattern binding that textually precedes pos within fn's body.
// It re-walks the AST rather than reading an environment chain off
// hir.Info, since no per-position EnvId is recorded there (§4.4 only
// keeps the facts resolution itself needed, not a navigable scope index).
func localCompletions(info *hir.Info, fn ast.DefFunction, pos source.Position) []CompletionItem {
	var items []CompletionItem
	for _, p := range fn.Signature.Parameters {
		for _, b := range info.PatternBindings[p.Pattern] {
			items = append(items, CompletionItem{Label: b.Name, Kind: CompletionKindVariable})
		}
	}
	if fn.Body != nil {
		collectPrecedingBindings(info, fn.Body, pos, &items)
	}
	return items
}

func collectPrecedingBindings(info *hir.Info, e *ast.Expression, pos source.Position, items *[]CompletionItem) {
	if e == nil || !e.Range.Start.Less(pos) {
		return
	}
	if let, ok := e.Variant.(ast.ExprLet); ok {
		for _, b := range info.PatternBindings[let.Pattern] {
			*items = append(*items, CompletionItem{Label: b.Name, Kind: CompletionKindVariable})
		}
	}
	for _, child := range exprChildren(e) {
		collectPrecedingBindings(info, child, pos, items)
	}
}
