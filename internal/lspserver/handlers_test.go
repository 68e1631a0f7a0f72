package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"

	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/source"
	"github.com/kieli-lang/kieli/internal/compiler/tooling"
)

func TestConvertCompletionKind(t *testing.T) {
	tests := []struct {
		input    tooling.CompletionKind
		expected protocol.CompletionItemKind
	}{
		{tooling.CompletionKindKeyword, protocol.CompletionItemKindKeyword},
		{tooling.CompletionKindFunction, protocol.CompletionItemKindFunction},
		{tooling.CompletionKindStruct, protocol.CompletionItemKindStruct},
		{tooling.CompletionKindEnum, protocol.CompletionItemKindEnum},
		{tooling.CompletionKindVariable, protocol.CompletionItemKindVariable},
		{tooling.CompletionKindModule, protocol.CompletionItemKindModule},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, convertCompletionKind(tt.input))
	}
}

func TestConvertSymbolKind(t *testing.T) {
	tests := []struct {
		input    tooling.SymbolKind
		expected protocol.SymbolKind
	}{
		{tooling.SymbolKindFunction, protocol.SymbolKindFunction},
		{tooling.SymbolKindStruct, protocol.SymbolKindStruct},
		{tooling.SymbolKindEnum, protocol.SymbolKindEnum},
		{tooling.SymbolKindConstructor, protocol.SymbolKindEnumMember},
		{tooling.SymbolKindField, protocol.SymbolKindField},
		{tooling.SymbolKindConcept, protocol.SymbolKindInterface},
		{tooling.SymbolKindModule, protocol.SymbolKindModule},
		{tooling.SymbolKindVariable, protocol.SymbolKindVariable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, convertSymbolKind(tt.input))
	}
}

func TestConvertSeverity(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, convertSeverity(diag.SeverityError))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, convertSeverity(diag.SeverityWarning))
	assert.Equal(t, protocol.DiagnosticSeverityHint, convertSeverity(diag.SeverityHint))
}

func TestConvertDiagnosticCarriesRangeAndRelatedInfo(t *testing.T) {
	d := diag.New(diag.KindUndefinedName, diag.SeverityError,
		source.Range{Start: source.Position{Line: 1, Column: 2}, Stop: source.Position{Line: 1, Column: 5}},
		"no definition for %q in scope", "x")
	d = d.WithRelated(source.Range{Start: source.Position{Line: 0, Column: 0}, Stop: source.Position{Line: 0, Column: 1}}, "shadowed here")

	converted := convertDiagnostic(d)
	assert.Equal(t, uint32(1), converted.Range.Start.Line)
	assert.Equal(t, uint32(2), converted.Range.Start.Character)
	assert.Contains(t, converted.Message, "no definition for")
	assert.Len(t, converted.RelatedInformation, 1)
	assert.Equal(t, "shadowed here", converted.RelatedInformation[0].Message)
}

func TestSemanticTokenTypeIndexCoversEveryLegendEntry(t *testing.T) {
	assert.Equal(t, len(semanticTokensLegend.TokenTypes), len(semanticTokenTypeIndex))
}
