package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/desugar"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/parser"
)

func desugarSource(t *testing.T, src string) (*ast.Module, *diag.Collector) {
	t.Helper()
	tokens, lexErrs := lexer.ScanTokens(src)
	require.Empty(t, lexErrs, "source %q", src)
	var parseDiags diag.Collector
	cstMod := parser.New(tokens, &parseDiags).Parse()
	require.Empty(t, parseDiags.Diagnostics, "source %q", src)
	var desugarDiags diag.Collector
	return desugar.New(&desugarDiags).Desugar(cstMod), &desugarDiags
}

func firstFunctionBody(t *testing.T, mod *ast.Module) *ast.Expression {
	t.Helper()
	fn, ok := mod.Definitions[0].Variant.(ast.DefFunction)
	require.True(t, ok)
	return fn.Body
}

func TestDesugarExpressionBodiedFunctionWrapsBlock(t *testing.T) {
	mod, _ := desugarSource(t, `fn one() : I32 = 1`)
	body := firstFunctionBody(t, mod)
	block, ok := body.Variant.(ast.ExprBlock)
	require.True(t, ok)
	require.NotNil(t, block.Result)
	lit, ok := block.Result.Variant.(ast.ExprLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)
}

func TestDesugarOperatorChainLeftAssociative(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { a + b * c }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	outer, ok := block.Result.Variant.(ast.ExprOperatorCall)
	require.True(t, ok)
	assert.Equal(t, "*", outer.Operator)
	inner, ok := outer.Left.Variant.(ast.ExprOperatorCall)
	require.True(t, ok)
	assert.Equal(t, "+", inner.Operator)
	_, ok = inner.Left.Variant.(ast.ExprPath)
	assert.True(t, ok)
}

func TestDesugarElifCollapsesToNestedConditional(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { if a { 1 } elif b { 2 } else { 3 } }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	outer := block.Result.Variant.(ast.ExprConditional)
	assert.False(t, outer.FromElif)
	require.NotNil(t, outer.Else)
	inner, ok := outer.Else.Variant.(ast.ExprConditional)
	require.True(t, ok)
	assert.True(t, inner.FromElif)
	require.NotNil(t, inner.Else)
	_, ok = inner.Else.Variant.(ast.ExprBlock)
	assert.True(t, ok)
}

func TestDesugarElselessIfGetsSyntheticUnitElse(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { if a { 1 } }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	cond := block.Result.Variant.(ast.ExprConditional)
	require.NotNil(t, cond.Else)
	elseBlock, ok := cond.Else.Variant.(ast.ExprBlock)
	require.True(t, ok)
	assert.Empty(t, elseBlock.Statements)
	assert.Nil(t, elseBlock.Result)
}

func TestDesugarWhileLowersToLoopWithSyntheticBreak(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { while c { discard 1 } }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	loop, ok := block.Result.Variant.(ast.ExprLoop)
	require.True(t, ok)
	assert.Equal(t, ast.LoopOriginWhile, loop.Origin)

	loopBody := loop.Body.Variant.(ast.ExprBlock)
	cond := loopBody.Result.Variant.(ast.ExprConditional)
	elseBlock := cond.Else.Variant.(ast.ExprBlock)
	brk, ok := elseBlock.Result.Variant.(ast.ExprBreak)
	require.True(t, ok)
	assert.True(t, brk.BreakSyntheticUnit)
}

func TestDesugarWhileTrueReportsHint(t *testing.T) {
	_, diags := desugarSource(t, `fn f() { while true { discard 1 } }`)
	require.Len(t, diags.Diagnostics, 1)
	assert.Equal(t, diag.KindWhileTrueSuggestLoop, diags.Diagnostics[0].Kind)
}

func TestDesugarWhileFalseReportsUnreachableWarning(t *testing.T) {
	_, diags := desugarSource(t, `fn f() { while false { discard 1 } }`)
	require.Len(t, diags.Diagnostics, 1)
	assert.Equal(t, diag.KindWhileFalseUnreachable, diags.Diagnostics[0].Kind)
	assert.Equal(t, diag.SeverityWarning, diags.Diagnostics[0].Severity)
}

func TestDesugarForLowersToIteratorProtocol(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { for x in xs { discard x } }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	outer, ok := block.Result.Variant.(ast.ExprBlock)
	require.True(t, ok)
	require.Len(t, outer.Statements, 1)
	letExpr := outer.Statements[0].Variant.(ast.ExprLet)
	iteratorCall := letExpr.Value.Variant.(ast.ExprMethodCall)
	assert.Equal(t, "iterator", iteratorCall.Method)

	loop, ok := outer.Result.Variant.(ast.ExprLoop)
	require.True(t, ok)
	assert.Equal(t, ast.LoopOriginFor, loop.Origin)
	loopBody := loop.Body.Variant.(ast.ExprBlock)
	match := loopBody.Result.Variant.(ast.ExprMatch)
	require.Len(t, match.Arms, 2)
	somePat := match.Arms[0].Pattern.Variant.(ast.PatternConstructor)
	assert.Equal(t, "some", somePat.Name.PrimaryName)
	assert.True(t, somePat.Abbreviated)
	nonePat := match.Arms[1].Pattern.Variant.(ast.PatternConstructor)
	assert.Equal(t, "none", nonePat.Name.PrimaryName)
	brk := match.Arms[1].Body.Variant.(ast.ExprBreak)
	assert.True(t, brk.BreakSyntheticUnit)
}

func TestDesugarStructAndEnumDefinitions(t *testing.T) {
	mod, _ := desugarSource(t, `
struct Point { x: I32, y: I32 }
enum Option[T] = Some(T) | None
`)
	st := mod.Definitions[0].Variant.(ast.DefStruct)
	require.Len(t, st.NamedFields, 2)
	assert.Equal(t, "x", st.NamedFields[0].Name)

	en := mod.Definitions[1].Variant.(ast.DefEnum)
	require.Len(t, en.TemplateParameters, 1)
	require.Len(t, en.Constructors, 2)
	assert.Equal(t, "Some", en.Constructors[0].Name)
	require.Len(t, en.Constructors[0].TupleFields, 1)
}

func TestDesugarMethodCallPreservesTemplateArguments(t *testing.T) {
	mod, _ := desugarSource(t, `fn f() { x.m[I32](1) }`)
	body := firstFunctionBody(t, mod)
	block := body.Variant.(ast.ExprBlock)
	call := block.Result.Variant.(ast.ExprMethodCall)
	require.Len(t, call.TemplateArguments, 1)
	require.NotNil(t, call.TemplateArguments[0].Type)
}
