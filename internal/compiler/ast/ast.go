// Package ast defines the desugared Abstract Syntax Tree: position-bearing
// but trivia-free (§3.5). It is produced from a cst.Module by the
// desugar package and consumed by the resolver.
package ast

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Node is implemented by every AST node.
type Node interface {
	Span() source.Range
}

// Name is a plain identifier with its source range; unlike cst.LowerName
// it carries no token or trivia.
type Name struct {
	Identifier string
	Range      source.Range
}

// Mutability is the desugared form of a mutability annotation.
type Mutability struct {
	IsMutable bool   // meaningful only when Parameter == ""
	Parameter string // non-empty for a template mutability parameter
	Range     source.Range
}

// TemplateArgument is a type, expression, mutability, or wildcard supplied
// at a template application site.
type TemplateArgument struct {
	Type       *Type
	Expression *Expression
	Mutability *Mutability
	Wildcard   bool
	Name       string // set when the argument was named (`f[T = Int]`)
	Range      source.Range
}

// Path is a resolved-at-desugar-time-shape (but not yet name-resolved)
// reference: an optional root (global or a type), zero or more
// middle-qualifier segments, and a primary name.
type Path struct {
	RootType         *Type
	IsGlobal         bool
	MiddleQualifiers []string
	PrimaryName      string
	TemplateArguments []TemplateArgument
	Range            source.Range
}

// Import is one `import` declaration's qualifier segments, kept together
// with their source range so the resolver can report a precise location
// for an ill-formed import path (§4.2).
type Import struct {
	Segments []string
	Range    source.Range
}

// Module is the AST root for one document.
type Module struct {
	Imports     []Import
	Definitions []*Definition
}
