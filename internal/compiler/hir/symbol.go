package hir

import "github.com/kieli-lang/kieli/internal/compiler/source"

// SymbolId names a slot in a SymbolArena.
type SymbolId int32

// SymbolVariant enumerates what kind of thing a symbol names (§3.6).
type SymbolVariant int

const (
	SymbolFunction SymbolVariant = iota
	SymbolStructure
	SymbolEnumeration
	SymbolConstructor
	SymbolField
	SymbolConcept
	SymbolAlias
	SymbolModule
	SymbolLocalVariable
	SymbolLocalMutability
	SymbolLocalType
	SymbolError
)

// Symbol is one named, resolvable entity: a definition, a constructor, a
// field, or a local binding introduced by a pattern.
type Symbol struct {
	Name     string
	Range    source.Range
	Variant  SymbolVariant
	UseCount int
}

// Span implements Node.
func (s Symbol) Span() source.Range { return s.Range }

// SymbolArena owns every symbol minted during one compilation.
type SymbolArena struct {
	symbols []Symbol
}

// NewSymbolArena returns an empty arena.
func NewSymbolArena() *SymbolArena {
	return &SymbolArena{}
}

// Declare mints a new symbol and returns its id.
func (a *SymbolArena) Declare(s Symbol) SymbolId {
	a.symbols = append(a.symbols, s)
	return SymbolId(len(a.symbols) - 1)
}

// Get returns the symbol stored at id.
func (a *SymbolArena) Get(id SymbolId) *Symbol {
	return &a.symbols[id]
}

// Use increments id's reference count; the resolver calls this once per
// resolved reference so §3.7's "use_count equals the number of
// resolver-produced references" invariant holds by construction.
func (a *SymbolArena) Use(id SymbolId) {
	a.symbols[id].UseCount++
}
