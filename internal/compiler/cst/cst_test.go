package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/parser"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// parseModule lexes and parses src with an empty sink, for tests that need
// a real, parser-produced CST rather than one built by hand.
func parseModule(t *testing.T, src string) (*cst.Module, *diag.Collector) {
	t.Helper()
	tokens, lexErrs := lexer.ScanTokens(src)
	require.Empty(t, lexErrs, "source %q", src)
	var c diag.Collector
	mod := parser.New(tokens, &c).Parse()
	return mod, &c
}

// sliceForRange returns the exact substring of src covered by rng, via the
// same byte-offset<->Position conversion the database layer uses.
func sliceForRange(src string, rng source.Range) string {
	idx := source.NewLineIndex(src)
	return src[idx.Offset(rng.Start):idx.Offset(rng.Stop)]
}

func TestSeparatedValues(t *testing.T) {
	sep := cst.Separated[*cst.Expression]{
		Elements: []cst.SeparatedElement[*cst.Expression]{
			{Value: &cst.Expression{Variant: cst.ExprHole{}}},
			{Value: &cst.Expression{Variant: cst.ExprHole{}}},
		},
	}
	assert.Len(t, cst.Values(sep), 2)
}

func TestExpressionSpan(t *testing.T) {
	rng := source.New(source.Position{Line: 0, Column: 0}, source.Position{Line: 0, Column: 3})
	expr := &cst.Expression{Variant: cst.ExprLiteral{}, Range: rng}
	var node cst.Node = expr
	assert.Equal(t, rng, node.Span())
}

func TestConditionalElifPreserved(t *testing.T) {
	cond := &cst.Expression{
		Variant: cst.ExprConditional{
			IsElif: true,
		},
	}
	variant, ok := cond.Variant.(cst.ExprConditional)
	require.True(t, ok)
	assert.True(t, variant.IsElif)
}

func TestStructFieldsExclusiveShapes(t *testing.T) {
	def := &cst.Definition{
		Variant: cst.DefStruct{
			Name: cst.UpperName{Identifier: "Point"},
			NamedFields: &cst.Separated[cst.StructField]{
				Elements: []cst.SeparatedElement[cst.StructField]{
					{Value: cst.StructField{Name: cst.LowerName{Identifier: "x"}}},
				},
			},
		},
	}
	variant := def.Variant.(cst.DefStruct)
	assert.Nil(t, variant.TupleFields)
	require.NotNil(t, variant.NamedFields)
	assert.Equal(t, "x", variant.NamedFields.Elements[0].Value.Name.Identifier)
}

// TestRenderFaithfulRoundTrip exercises §8.1's faithful-format round-trip
// property directly: concatenating a node's tokens' trivia and text in
// source order reproduces the exact slice of the source the node's range
// covers, including irregular spacing and an embedded comment.
func TestRenderFaithfulRoundTrip(t *testing.T) {
	src := "fn  add(a: I32,  b : I32) : I32 { // sum the two\n  a + b\n}"
	mod, c := parseModule(t, src)
	require.Empty(t, c.Diagnostics)
	require.Len(t, mod.Definitions, 1)

	def := mod.Definitions[0]
	assert.Equal(t, sliceForRange(src, def.Range), cst.Render(def))
}

// TestRenderRoundTripNestedExpression checks the property at a node nested
// several levels below the top-level definition, where only a sub-range of
// the source text (and its interior trivia) is in play.
func TestRenderRoundTripNestedExpression(t *testing.T) {
	src := `fn f() { x.y.m( 1,  2 ).z }`
	mod, c := parseModule(t, src)
	require.Empty(t, c.Diagnostics)

	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	outer := block.Result.Variant.(cst.ExprFieldAccess)
	call := outer.Base.Variant.(cst.ExprMethodCall)

	callExpr := outer.Base
	assert.Equal(t, sliceForRange(src, callExpr.Range), cst.Render(callExpr))
	require.Len(t, call.Arguments.Elements, 2)
}

// TestRenderRoundTripStructDefinition checks a definition whose range spans
// brace- and comma-delimited fields, the exact shape a CST-backed formatter
// most needs to reproduce faithfully.
func TestRenderRoundTripStructDefinition(t *testing.T) {
	src := "struct Point {  x: I32,\n  y: I32 }"
	mod, c := parseModule(t, src)
	require.Empty(t, c.Diagnostics)
	require.Len(t, mod.Definitions, 1)

	def := mod.Definitions[0]
	assert.Equal(t, sliceForRange(src, def.Range), cst.Render(def))
}

// TestRenderRoundTripPattern checks the property holds for a pattern node,
// not just expressions and definitions.
func TestRenderRoundTripPattern(t *testing.T) {
	src := `fn f() { match x { Some( n ) -> n, _ -> 0 } }`
	mod, c := parseModule(t, src)
	require.Empty(t, c.Diagnostics)

	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	m := block.Result.Variant.(cst.ExprMatch)
	require.Len(t, m.Arms, 2)

	pat := m.Arms[0].Pattern
	assert.Equal(t, sliceForRange(src, pat.Range), cst.Render(pat))
}
