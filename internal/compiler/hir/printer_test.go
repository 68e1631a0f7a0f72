package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

func TestPrinterRendersNestedReferenceType(t *testing.T) {
	types := hir.NewTypeArena()
	syms := hir.NewSymbolArena()
	printer := &hir.Printer{Types: types, Symbols: syms}

	i32 := types.Intern(hir.TypePrimitive{Name: "I32"})
	ref := types.Intern(hir.TypeReference{Mutability: hir.Concrete(true), Referenced: i32})

	assert.Equal(t, "&mut I32", printer.Print(ref))
}

func TestPrinterRendersTemplateAppliedStructure(t *testing.T) {
	types := hir.NewTypeArena()
	syms := hir.NewSymbolArena()
	printer := &hir.Printer{Types: types, Symbols: syms}

	def := syms.Declare(hir.Symbol{Name: "Option", Variant: hir.SymbolEnumeration})
	i32 := types.Intern(hir.TypePrimitive{Name: "I32"})
	applied := types.Intern(hir.TypeEnumeration{Definition: def, TemplateArguments: []hir.TypeId{i32}})

	assert.Equal(t, "Option[I32]", printer.Print(applied))
}

func TestPrinterFlattensSolvedVariable(t *testing.T) {
	types := hir.NewTypeArena()
	syms := hir.NewSymbolArena()
	printer := &hir.Printer{Types: types, Symbols: syms}

	id, v := types.Fresh(hir.TypeVarGeneral)
	boolType := types.Intern(hir.TypePrimitive{Name: "Bool"})
	types.Solve(v, boolType)

	assert.Equal(t, "Bool", printer.Print(id))
}

func TestPrinterRendersFunctionType(t *testing.T) {
	types := hir.NewTypeArena()
	syms := hir.NewSymbolArena()
	printer := &hir.Printer{Types: types, Symbols: syms}

	i32 := types.Intern(hir.TypePrimitive{Name: "I32"})
	boolT := types.Intern(hir.TypePrimitive{Name: "Bool"})
	fn := types.Intern(hir.TypeFunction{Parameters: []hir.TypeId{i32, i32}, Return: boolT})

	assert.Equal(t, "fn(I32, I32) : Bool", printer.Print(fn))
}
