package tooling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/source"
	"github.com/kieli-lang/kieli/internal/compiler/tooling"
)

func TestGetHoverOnParameterUseShowsItsType(t *testing.T) {
	api := tooling.NewAPI()
	id, diags := api.OpenDocument("mem://a.kieli", `fn add(a: I32, b: I32) : I32 { a + b }`, "kieli", 1)
	require.Empty(t, diags)

	hover, ok := api.GetHover(id, source.Position{Line: 0, Column: 31})
	require.True(t, ok)
	assert.Contains(t, hover.Contents, "let a")
}

func TestGetHoverOnFunctionSignatureShowsTheFunctionItself(t *testing.T) {
	api := tooling.NewAPI()
	id, diags := api.OpenDocument("mem://a.kieli", `fn add(a: I32, b: I32) : I32 { a + b }`, "kieli", 1)
	require.Empty(t, diags)

	// Column 6 is the "(" opening the parameter list, inside the signature
	// but outside every parameter pattern and the body: the query falls
	// back to the enclosing definition itself.
	hover, ok := api.GetHover(id, source.Position{Line: 0, Column: 6})
	require.True(t, ok)
	assert.Contains(t, hover.Contents, "fn add")
}

func TestGetHoverOutsideAnyDefinitionFindsNothing(t *testing.T) {
	api := tooling.NewAPI()
	id, diags := api.OpenDocument("mem://a.kieli", `fn add(a: I32, b: I32) : I32 { a + b }`, "kieli", 1)
	require.Empty(t, diags)

	_, ok := api.GetHover(id, source.Position{Line: 5, Column: 0})
	assert.False(t, ok)
}

func TestGetDefinitionOnCallJumpsToFunctionDeclaration(t *testing.T) {
	api := tooling.NewAPI()
	src := `fn one() : I32 { 1 }
fn two() : I32 { one() }`
	id, diags := api.OpenDocument("mem://b.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	// Column of "one" inside "one()" on line 1.
	loc, ok := api.GetDefinition(id, source.Position{Line: 1, Column: 18})
	require.True(t, ok)
	assert.Equal(t, "mem://b.kieli", loc.Path)
	assert.Equal(t, uint32(0), loc.Range.Start.Line)
}

func TestGetReferencesFindsBothUsesOfLocalBinding(t *testing.T) {
	api := tooling.NewAPI()
	src := `fn f() : I32 {
    let x = 1
    x + x
}`
	id, diags := api.OpenDocument("mem://c.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	// Column of "x" in "    let x = 1".
	refs, ok := api.GetReferences(id, source.Position{Line: 1, Column: 8}, false)
	require.True(t, ok)
	assert.Len(t, refs, 2)
}

func TestGetDocumentSymbolsListsStructFieldsAndFunctions(t *testing.T) {
	api := tooling.NewAPI()
	src := `struct Point { x: I32, y: I32 }
fn origin() : Point { Point { x: 0, y: 0 } }`
	id, diags := api.OpenDocument("mem://d.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	symbols, ok := api.GetDocumentSymbols(id)
	require.True(t, ok)
	require.Len(t, symbols, 2)
	assert.Equal(t, "Point", symbols[0].Name)
	assert.Equal(t, tooling.SymbolKindStruct, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 2)
	assert.Equal(t, "origin", symbols[1].Name)
	assert.Equal(t, tooling.SymbolKindFunction, symbols[1].Kind)
}

func TestGetCompletionsIncludesKeywordsTopLevelAndLocals(t *testing.T) {
	api := tooling.NewAPI()
	src := `fn helper() : I32 { 1 }
fn main() : I32 {
    let total = helper()
    total
}`
	id, diags := api.OpenDocument("mem://e.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	// Cursor over "total" on its own line, after it is bound.
	items, ok := api.GetCompletions(id, source.Position{Line: 3, Column: 6})
	require.True(t, ok)

	labels := make(map[string]bool)
	for _, it := range items {
		labels[it.Label] = true
	}
	assert.True(t, labels["fn"], "expected a keyword completion")
	assert.True(t, labels["helper"], "expected a top-level function completion")
	assert.True(t, labels["total"], "expected the local let-binding completion")
}

func TestGetSemanticTokensClassifiesKeywordsNumbersAndNames(t *testing.T) {
	api := tooling.NewAPI()
	src := `fn add(a: I32, b: I32) : I32 { a + 1 }`
	id, diags := api.OpenDocument("mem://g.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	whole := source.Range{
		Start: source.Position{Line: 0, Column: 0},
		Stop:  source.Position{Line: 0, Column: uint32(len(src))},
	}
	tokens, ok := api.GetSemanticTokens(id, whole)
	require.True(t, ok)
	require.NotEmpty(t, tokens)

	assert.Equal(t, tooling.SemanticTokenKeyword, tokens[0].Type, "'fn' is a keyword")

	var sawNumber, sawType bool
	for _, tok := range tokens {
		switch tok.Type {
		case tooling.SemanticTokenNumber:
			sawNumber = true
		case tooling.SemanticTokenType_:
			sawType = true
		}
	}
	assert.True(t, sawNumber, "expected the integer literal to classify as a number")
	assert.True(t, sawType, "expected I32 to classify as a type")
}

func TestGetSemanticTokensFiltersToRequestedRange(t *testing.T) {
	api := tooling.NewAPI()
	src := "fn one() : I32 { 1 }\nfn two() : I32 { 2 }"
	id, diags := api.OpenDocument("mem://h.kieli", src, "kieli", 1)
	require.Empty(t, diags)

	firstLine := source.Range{
		Start: source.Position{Line: 0, Column: 0},
		Stop:  source.Position{Line: 0, Column: 20},
	}
	tokens, ok := api.GetSemanticTokens(id, firstLine)
	require.True(t, ok)
	for _, tok := range tokens {
		assert.Equal(t, uint32(0), tok.Range.Start.Line)
	}
}

func TestDiagnosticsAndDocumentLifecycleRoundTrip(t *testing.T) {
	api := tooling.NewAPI()
	id, diags := api.OpenDocument("mem://f.kieli", `fn f() { unknown_name }`, "kieli", 1)
	require.Len(t, diags, 1)

	got, ok := api.Diagnostics(id)
	require.True(t, ok)
	assert.Equal(t, diags, got)

	foundID, ok := api.DocumentID("mem://f.kieli")
	require.True(t, ok)
	assert.Equal(t, id, foundID)

	api.CloseDocument(id)
	_, ok = api.DocumentID("mem://f.kieli")
	assert.False(t, ok)
}
