package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

func TestEnvironmentLookupWalksParentChain(t *testing.T) {
	arena, root := hir.NewEnvironmentArena()
	outerSym := hir.SymbolId(1)
	arena.Bind(root, hir.StringId(10), outerSym)

	child := arena.Child(root)
	innerSym := hir.SymbolId(2)
	arena.Bind(child, hir.StringId(20), innerSym)

	got, ok := arena.Lookup(child, hir.StringId(10))
	require.True(t, ok)
	assert.Equal(t, outerSym, got)

	got, ok = arena.Lookup(child, hir.StringId(20))
	require.True(t, ok)
	assert.Equal(t, innerSym, got)

	_, ok = arena.Lookup(root, hir.StringId(20))
	assert.False(t, ok, "a parent scope must not see a child's bindings")
}

func TestEnvironmentShadowing(t *testing.T) {
	arena, root := hir.NewEnvironmentArena()
	arena.Bind(root, hir.StringId(1), hir.SymbolId(100))

	child := arena.Child(root)
	arena.Bind(child, hir.StringId(1), hir.SymbolId(200))

	got, ok := arena.Lookup(child, hir.StringId(1))
	require.True(t, ok)
	assert.Equal(t, hir.SymbolId(200), got, "the nearest binding shadows the outer one")

	got, ok = arena.Lookup(root, hir.StringId(1))
	require.True(t, ok)
	assert.Equal(t, hir.SymbolId(100), got, "the outer scope's own binding is unaffected by shadowing")
}

func TestEnvironmentLookupMissingNameFails(t *testing.T) {
	arena, root := hir.NewEnvironmentArena()
	_, ok := arena.Lookup(root, hir.StringId(99))
	assert.False(t, ok)
}

func TestSymbolArenaUseCount(t *testing.T) {
	arena := hir.NewSymbolArena()
	id := arena.Declare(hir.Symbol{Name: "f", Variant: hir.SymbolFunction})
	assert.Equal(t, 0, arena.Get(id).UseCount)
	arena.Use(id)
	arena.Use(id)
	assert.Equal(t, 2, arena.Get(id).UseCount)
}
