package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

func TestTypeArenaInternAndGet(t *testing.T) {
	arena := hir.NewTypeArena()
	id := arena.Intern(hir.TypePrimitive{Name: "I32"})
	prim, ok := arena.Get(id).(hir.TypePrimitive)
	require.True(t, ok)
	assert.Equal(t, "I32", prim.Name)
}

func TestTypeArenaFreshIsUnsolvedUntilSolved(t *testing.T) {
	arena := hir.NewTypeArena()
	id, v := arena.Fresh(hir.TypeVarGeneral)
	assert.Equal(t, id, arena.Find(id))
	assert.False(t, arena.IsSolved(v))

	concrete := arena.Intern(hir.TypePrimitive{Name: "Bool"})
	arena.Solve(v, concrete)
	assert.True(t, arena.IsSolved(v))
	assert.Equal(t, concrete, arena.Find(id))
}

func TestTypeArenaFindFlattensChainOfVariables(t *testing.T) {
	arena := hir.NewTypeArena()
	idA, varA := arena.Fresh(hir.TypeVarGeneral)
	idB, varB := arena.Fresh(hir.TypeVarGeneral)
	concrete := arena.Intern(hir.TypePrimitive{Name: "U8"})

	arena.Solve(varB, concrete)
	arena.Solve(varA, idB)

	assert.Equal(t, concrete, arena.Find(idA))
}

func TestTypeArenaConstraintsAccumulate(t *testing.T) {
	arena := hir.NewTypeArena()
	_, v := arena.Fresh(hir.TypeVarIntegral)
	arena.Constrain(v, hir.SymbolId(1))
	arena.Constrain(v, hir.SymbolId(2))
	assert.Equal(t, []hir.SymbolId{1, 2}, arena.Constraints(v))
}

func TestMutabilityArenaSolveAndFind(t *testing.T) {
	arena := hir.NewMutabilityArena()
	v := arena.Fresh()
	unsolved := hir.Mutability{Variant: hir.MutVariable{Var: v}}
	assert.Equal(t, unsolved, arena.Find(unsolved))

	arena.Solve(v, hir.Concrete(true))
	solved := arena.Find(unsolved)
	assert.True(t, solved.IsMutable())
}
