package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/parser"
)

func parseModule(t *testing.T, src string) (*cst.Module, *diag.Collector) {
	t.Helper()
	tokens, lexErrs := lexer.ScanTokens(src)
	require.Empty(t, lexErrs, "source %q", src)
	var c diag.Collector
	mod := parser.New(tokens, &c).Parse()
	return mod, &c
}

func TestParseSimpleFunction(t *testing.T) {
	mod, c := parseModule(t, `fn add(a: I32, b: I32) : I32 { a }`)
	require.Empty(t, c.Diagnostics)
	require.Len(t, mod.Definitions, 1)
	fn, ok := mod.Definitions[0].Variant.(cst.DefFunction)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Identifier)
	require.Len(t, fn.Signature.Parameters.Elements, 2)
}

func TestParseExpressionBodiedFunction(t *testing.T) {
	mod, c := parseModule(t, `fn one() : I32 = 1`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	require.NotNil(t, fn.EqualsToken)
	_, ok := fn.Body.Variant.(cst.ExprLiteral)
	assert.True(t, ok)
}

func TestParseOperatorChain(t *testing.T) {
	mod, c := parseModule(t, `fn f() { a + b * c }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	chain, ok := block.Result.Variant.(cst.ExprOperatorChain)
	require.True(t, ok)
	require.Len(t, chain.Sequence, 2)
	assert.Equal(t, "+", chain.Sequence[0].Operator.Identifier)
	assert.Equal(t, "*", chain.Sequence[1].Operator.Identifier)
}

func TestParseIfElifElse(t *testing.T) {
	mod, c := parseModule(t, `fn f() { if a { 1 } elif b { 2 } else { 3 } }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	cond := block.Result.Variant.(cst.ExprConditional)
	assert.False(t, cond.IsElif)
	require.NotNil(t, cond.Else)
	elif := cond.Else.Variant.(cst.ExprConditional)
	assert.True(t, elif.IsElif)
	require.NotNil(t, elif.Else)
	_, ok := elif.Else.Variant.(cst.ExprBlock)
	assert.True(t, ok)
}

func TestParseElselessIfPreservesNilElse(t *testing.T) {
	mod, c := parseModule(t, `fn f() { if a { 1 } }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	cond := block.Result.Variant.(cst.ExprConditional)
	assert.Nil(t, cond.Else)
}

func TestParseMatch(t *testing.T) {
	mod, c := parseModule(t, `fn f() { match x { 1 -> a, _ -> b } }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	m := block.Result.Variant.(cst.ExprMatch)
	require.Len(t, m.Arms, 2)
}

func TestParseWhileAndFor(t *testing.T) {
	mod, c := parseModule(t, `fn f() { while c { () }; for x in xs { () } }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	require.Len(t, block.Statements, 1)
	w := block.Statements[0].Expression.Variant.(cst.ExprLoop)
	assert.Equal(t, cst.LoopOriginWhile, w.Origin)
	f := block.Result.Variant.(cst.ExprLoop)
	assert.Equal(t, cst.LoopOriginFor, f.Origin)
}

func TestParseStructAndEnum(t *testing.T) {
	mod, c := parseModule(t, `
struct Point { x: I32, y: I32 }
enum Option[T] = Some(T) | None
`)
	require.Empty(t, c.Diagnostics)
	require.Len(t, mod.Definitions, 2)
	st := mod.Definitions[0].Variant.(cst.DefStruct)
	require.NotNil(t, st.NamedFields)
	assert.Len(t, st.NamedFields.Elements, 2)

	en := mod.Definitions[1].Variant.(cst.DefEnum)
	require.NotNil(t, en.TemplateParameters)
	require.Len(t, en.Constructors.Elements, 2)
	assert.Equal(t, "Some", en.Constructors.Elements[0].Value.Name.Identifier)
}

func TestParseMethodCallAndFieldAccess(t *testing.T) {
	mod, c := parseModule(t, `fn f() { x.y.m(1, 2).z }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	outer := block.Result.Variant.(cst.ExprFieldAccess)
	assert.Equal(t, "z", outer.Field.Identifier)
	call := outer.Base.Variant.(cst.ExprMethodCall)
	assert.Equal(t, "m", call.Method.Identifier)
	require.Len(t, call.Arguments.Elements, 2)
}

func TestParseAddressOfAndDereference(t *testing.T) {
	mod, c := parseModule(t, `fn f() { *&mut x }`)
	require.Empty(t, c.Diagnostics)
	fn := mod.Definitions[0].Variant.(cst.DefFunction)
	block := fn.Body.Variant.(cst.ExprBlock)
	deref := block.Result.Variant.(cst.ExprDereference)
	addr := deref.Operand.Variant.(cst.ExprAddressOf)
	require.NotNil(t, addr.Mutability)
	assert.True(t, addr.Mutability.IsMutable)
}

func TestParseImportAndImpl(t *testing.T) {
	mod, c := parseModule(t, `
import std::io
impl Point { fn area(self) : I32 = 0 }
`)
	require.Empty(t, c.Diagnostics)
	require.Len(t, mod.Imports, 1)
	impl := mod.Definitions[0].Variant.(cst.DefImpl)
	require.Len(t, impl.Definitions, 1)
}

func TestParseErrorRecoveryReportsDiagnostic(t *testing.T) {
	_, c := parseModule(t, `fn f( { }`)
	require.NotEmpty(t, c.Diagnostics)
}
