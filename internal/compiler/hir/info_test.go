package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

func TestInfoTypeOfFlattensSolvedVariable(t *testing.T) {
	info := hir.NewInfo()
	expr := &ast.Expression{Variant: ast.ExprLiteral{Value: int64(1)}}

	id, v := info.Types.Fresh(hir.TypeVarIntegral)
	info.ExprTypes[expr] = id

	_, ok := info.TypeOf(expr)
	require.True(t, ok)

	i32 := info.Types.Intern(hir.TypePrimitive{Name: "I32"})
	info.Types.Solve(v, i32)

	got, ok := info.TypeOf(expr)
	require.True(t, ok)
	assert.Equal(t, i32, got)
}

func TestInfoTypeOfMissingExpressionFails(t *testing.T) {
	info := hir.NewInfo()
	_, ok := info.TypeOf(&ast.Expression{})
	assert.False(t, ok)
}

func TestInfoRootEnvIsArenaRoot(t *testing.T) {
	info := hir.NewInfo()
	info.Environments.Bind(info.RootEnv(), hir.StringId(1), hir.SymbolId(42))
	got, ok := info.Environments.Lookup(info.RootEnv(), hir.StringId(1))
	require.True(t, ok)
	assert.Equal(t, hir.SymbolId(42), got)
}
