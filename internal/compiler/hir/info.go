package hir

import "github.com/kieli-lang/kieli/internal/compiler/ast"

// LocalBinding is one name introduced by a resolved pattern, together
// with the symbol the resolver minted for it.
type LocalBinding struct {
	Name   string
	Symbol SymbolId
}

// Info is the per-document table of resolved facts the resolver attaches
// to an already-built ast.Module: the type of an expression, the symbol a
// path resolved to, the bindings a pattern introduced. It is the Go
// analogue of the spec's separate "HIR arena" — since the AST here is
// already a pointer tree rather than a value-typed arena, there is
// nothing to gain from rebuilding a parallel tree of the same shape, so
// resolved facts are keyed by AST node identity instead (§3.6, §4.5).
type Info struct {
	Types          *TypeArena
	Mutabilities   *MutabilityArena
	Symbols        *SymbolArena
	Environments   *EnvironmentArena

	ExprTypes       map[*ast.Expression]TypeId
	ExprMutability  map[*ast.Expression]Mutability
	ExprSymbols     map[*ast.Expression]SymbolId
	PatternTypes    map[*ast.Pattern]TypeId
	PatternBindings map[*ast.Pattern][]LocalBinding
	DefinitionSyms  map[*ast.Definition]SymbolId
}

// NewInfo creates an Info with fresh, empty arenas and tables.
func NewInfo() *Info {
	envs, _ := NewEnvironmentArena()
	return &Info{
		Types:        NewTypeArena(),
		Mutabilities: NewMutabilityArena(),
		Symbols:      NewSymbolArena(),
		Environments: envs,

		ExprTypes:       map[*ast.Expression]TypeId{},
		ExprMutability:  map[*ast.Expression]Mutability{},
		ExprSymbols:     map[*ast.Expression]SymbolId{},
		PatternTypes:    map[*ast.Pattern]TypeId{},
		PatternBindings: map[*ast.Pattern][]LocalBinding{},
		DefinitionSyms:  map[*ast.Definition]SymbolId{},
	}
}

// TypeOf returns the type the resolver assigned to e, flattened through
// any solved unification variables.
func (i *Info) TypeOf(e *ast.Expression) (TypeId, bool) {
	id, ok := i.ExprTypes[e]
	if !ok {
		return 0, false
	}
	return i.Types.Find(id), true
}

// RootEnv returns the arena's root (module-level) environment.
func (i *Info) RootEnv() EnvId {
	return EnvId(0)
}
