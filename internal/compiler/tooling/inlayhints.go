package tooling

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// InlayHintKind categorizes an InlayHint (mirroring LSP's InlayHintKind,
// which only distinguishes Type from Parameter).
type InlayHintKind int

const (
	InlayHintKindType InlayHintKind = iota
	InlayHintKindParameter
)

// InlayHint is an inferred annotation an editor renders inline, not part of
// the source text itself.
type InlayHint struct {
	Position source.Position
	Label    string
	Kind     InlayHintKind
}

// GetInlayHints returns one hint per `let` binding in rng whose pattern has
// no explicit type ascription, showing the type the resolver inferred for
// it (§4.4.2). Bindings the user already annotated (ExprLet.Type != nil)
// are skipped since the editor already shows that text.
func (a *API) GetInlayHints(id database.DocumentId, rng source.Range) ([]InlayHint, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok || doc.AST == nil || doc.Info == nil {
		return nil, false
	}

	var hints []InlayHint
	for _, def := range doc.AST.Definitions {
		collectInlayHints(doc.Info, def, rng, &hints)
	}
	return hints, true
}

func collectInlayHints(info *hir.Info, d *ast.Definition, rng source.Range, hints *[]InlayHint) {
	switch v := d.Variant.(type) {
	case ast.DefFunction:
		if v.Body != nil {
			walkExprForInlayHints(info, v.Body, rng, hints)
		}
	case ast.DefImpl:
		for _, nested := range v.Definitions {
			collectInlayHints(info, nested, rng, hints)
		}
	case ast.DefSubmodule:
		for _, nested := range v.Definitions {
			collectInlayHints(info, nested, rng, hints)
		}
	}
}

func walkExprForInlayHints(info *hir.Info, e *ast.Expression, rng source.Range, hints *[]InlayHint) {
	if e == nil {
		return
	}
	if let, ok := e.Variant.(ast.ExprLet); ok && let.Type == nil && rng.Contains(let.Pattern.Range.Stop) {
		if id, ok := info.PatternTypes[let.Pattern]; ok {
			*hints = append(*hints, InlayHint{
				Position: let.Pattern.Range.Stop,
				Label:    ": " + formatType(info, id),
				Kind:     InlayHintKindType,
			})
		}
	}
	for _, child := range exprChildren(e) {
		walkExprForInlayHints(info, child, rng, hints)
	}
}
