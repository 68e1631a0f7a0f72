package database

import (
	"fmt"
	"unicode/utf16"

	"github.com/juju/errors"

	"github.com/kieli-lang/kieli/internal/compiler/desugar"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/parser"
	"github.com/kieli-lang/kieli/internal/compiler/resolver"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// recordingSink is the Sink every pipeline stage reports to during Compile:
// it appends to the document's own diagnostic list (so a later query can
// read them back without recompiling) and forwards each one to the
// caller's sink in the same report order (§5's depth-first ordering
// guarantee; §6.1's "diagnostics flow to sink").
type recordingSink struct {
	doc  *Document
	next diag.Sink
}

func (s *recordingSink) Report(d diag.Diagnostic) {
	s.doc.Diagnostics = append(s.doc.Diagnostics, d)
	if s.next != nil {
		s.next.Report(d)
	}
}

// Compile runs lex -> parse -> desugar -> resolve over id's current text,
// rebuilding every arena from scratch and replacing whatever a prior
// Compile call produced (§3.8). Diagnostics flow to sink in pipeline order
// as they are produced (§6.1, §6.2); Document.Diagnostics holds the same
// list afterward for a caller that only wants to inspect results.
//
// An internal invariant violation (a programmer bug in this front end, not
// a user's source error, per §7) aborts the compilation and is reported as
// a single fatal diagnostic rather than propagating as a panic.
func (db *Database) Compile(id DocumentId, sink diag.Sink) {
	doc, ok := db.Document(id)
	if !ok {
		if sink != nil {
			sink.Report(diag.New(diag.KindInternal, diag.SeverityError, source.Zero,
				"%s", errors.Errorf("compile called with unknown or closed document id %d", id)))
		}
		return
	}
	rec := &recordingSink{doc: doc, next: sink}

	defer func() {
		if r := recover(); r != nil {
			err := errors.Annotatef(fmt.Errorf("%v", r), "internal error compiling %q", doc.Path)
			rec.Report(diag.New(diag.KindInternal, diag.SeverityError, source.Zero, "%s", err.Error()))
		}
	}()

	doc.Diagnostics = nil
	doc.Tokens = nil
	doc.CST = nil
	doc.AST = nil
	doc.Info = nil
	doc.Root = nil

	tokens, lexErrs := lexer.ScanTokens(doc.Text)
	for _, e := range lexErrs {
		rec.Report(lexErrorDiagnostic(e))
	}
	doc.Tokens = tokens

	cstMod := parser.New(tokens, rec).Parse()
	doc.CST = cstMod

	astMod := desugar.New(rec).Desugar(cstMod)
	doc.AST = astMod

	info := hir.NewInfo()
	ctx := resolver.New(rec, db.strings, info)
	doc.Root = ctx.Resolve(astMod)
	doc.Info = info
}

// lexErrorDiagnostic converts a lexer.LexError into the diag.Diagnostic
// shape every other stage already produces directly, mapping each
// LexErrorKind onto its §7 taxonomy entry.
func lexErrorDiagnostic(e lexer.LexError) diag.Diagnostic {
	start := source.Position{Line: e.Line, Column: e.Column}
	stop := source.Position{Line: e.Line, Column: e.Column + uint32(len(utf16.Encode([]rune(e.Lexeme))))}
	return diag.New(lexErrorKind(e.Kind), diag.SeverityError, source.Range{Start: start, Stop: stop}, "%s", e.Message)
}

func lexErrorKind(k lexer.LexErrorKind) diag.Kind {
	switch k {
	case lexer.LexErrMissingDigitsAfterSeparator:
		return diag.KindMissingDigitsAfterSeparator
	case lexer.LexErrMissingDigitsAfterBase:
		return diag.KindMissingDigitsAfterBase
	case lexer.LexErrExplicitBaseWithFloat:
		return diag.KindBaseOnFloat
	case lexer.LexErrTooLarge:
		return diag.KindTooLarge
	case lexer.LexErrNegativeIntegerExponent:
		return diag.KindNegativeIntegerExponent
	case lexer.LexErrErroneousAlphabeticSuffix:
		return diag.KindSuffixAfterNumber
	case lexer.LexErrUnterminatedString:
		return diag.KindUnterminatedString
	case lexer.LexErrUnterminatedComment:
		return diag.KindUnterminatedComment
	case lexer.LexErrBadEscape:
		return diag.KindBadEscape
	default:
		return diag.KindUnexpectedCharacter
	}
}
