// Package desugar lowers a cst.Module into an ast.Module: trivia and
// formatting tokens are dropped, elif chains and else-less ifs collapse
// into plain if/else, while/for loops expand into the single ExprLoop
// primitive, and operator chains resolve into left-associative
// ExprOperatorCall nesting (§4.3). The desugarer never rejects a program;
// it reports style diagnostics (e.g. "while true") through a diag.Sink but
// always produces a complete ast.Module.
package desugar

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
)

// Desugarer lowers one cst.Module into an ast.Module.
type Desugarer struct {
	sink diag.Sink
}

// New creates a Desugarer that reports style diagnostics to sink.
func New(sink diag.Sink) *Desugarer {
	return &Desugarer{sink: sink}
}

// Desugar lowers mod into its AST form.
func (d *Desugarer) Desugar(mod *cst.Module) *ast.Module {
	out := &ast.Module{}
	for _, imp := range mod.Imports {
		out.Imports = append(out.Imports, d.importPath(imp))
	}
	for _, def := range mod.Definitions {
		out.Definitions = append(out.Definitions, d.definition(def))
	}
	return out
}

func (d *Desugarer) report(diagnostic diag.Diagnostic) {
	if d.sink != nil {
		d.sink.Report(diagnostic)
	}
}

func (d *Desugarer) importPath(imp cst.Import) ast.Import {
	segments := make([]string, 0, len(imp.Path.MiddleQualifiers)+1)
	for _, q := range imp.Path.MiddleQualifiers {
		segments = append(segments, q.Name.Identifier)
	}
	segments = append(segments, imp.Path.PrimaryName.Identifier)
	return ast.Import{Segments: segments, Range: imp.Path.Range}
}
