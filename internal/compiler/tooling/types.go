package tooling

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Location is a range within one document: the shape GoToDefinition and
// FindReferences report (§6.3, mirroring the LSP Location type).
type Location struct {
	Path  string
	Range source.Range
}

// Hover is the markdown-formatted content shown for a position (§6.3).
type Hover struct {
	Contents string
	Range    source.Range
}

// SymbolKind categorizes a Symbol for an editor's outline view and
// completion list icon (§6.3, mirroring the LSP SymbolKind enumeration).
type SymbolKind int

const (
	SymbolKindFunction SymbolKind = iota
	SymbolKindStruct
	SymbolKindEnum
	SymbolKindConstructor
	SymbolKindField
	SymbolKindConcept
	SymbolKindAlias
	SymbolKindModule
	SymbolKindVariable
)

// Symbol is one named entity in a document's outline: a top-level
// definition, or one nested inside it (a struct's fields, a submodule's
// contents, an enum's constructors — §6.3's DocumentSymbols).
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Range     source.Range // the whole definition
	NameRange source.Range // just the name, for an editor's "select name" affordance
	Detail    string
	Children  []Symbol
}

// CompletionKind categorizes a CompletionItem for an editor's completion
// list icon (mirroring the LSP CompletionItemKind enumeration).
type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindFunction
	CompletionKindStruct
	CompletionKindEnum
	CompletionKindVariable
	CompletionKindModule
)

// CompletionItem is one suggestion offered at a cursor position (§6.3).
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}
