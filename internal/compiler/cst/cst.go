// Package cst defines the Concrete Syntax Tree: a lossless representation
// of parsed source that retains every token, including delimiters and
// separators, so that source can be reformatted faithfully (§3.4).
package cst

import (
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// Token wraps a scanned lexer.Token with its resolved source.Range, the
// unit every CST node stores a handful of so a formatter can reconstruct
// the original text byte-for-byte (§3.4).
type Token struct {
	Kind            lexer.TokenKind
	Lexeme          string
	PrecedingTrivia string
	Literal         any // the lexer's parsed value for literal tokens (int64, float64, rune, string, bool); nil otherwise
	Range           source.Range
}

// Separated models a syntactic list with interspersed separator tokens
// (commas, pipes, pluses), generalizing the original implementation's
// Comma_separated_syntax / Pipe_separated_syntax / Plus_separated_syntax
// into one generic shape, since Go's type parameters make the three
// templates redundant (§9 design note).
type Separated[T any] struct {
	Elements []SeparatedElement[T]
}

// SeparatedElement is one value plus its optional trailing separator
// token; the last element of a Separated list may omit it.
type SeparatedElement[T any] struct {
	Value         T
	TrailingToken *Token
}

// Values extracts the bare values from a Separated list, discarding
// separator tokens, for consumers that only care about the semantic
// content (e.g. the desugarer).
func Values[T any](s Separated[T]) []T {
	out := make([]T, len(s.Elements))
	for i, e := range s.Elements {
		out[i] = e.Value
	}
	return out
}

// LowerName is a lower_name token carrying its identifier text.
type LowerName struct {
	Identifier string
	Token      Token
}

// UpperName is an upper_name token carrying its identifier text.
type UpperName struct {
	Identifier string
	Token      Token
}

// OperatorName is an operator_name token, used both as a user-defined
// operator spelling and as an implementation name inside concept bodies.
type OperatorName struct {
	Identifier string
	Token      Token
}

// Mutability is the CST spelling of a mutability annotation: `mut`,
// `immut` (both concrete), or `mut ?f` (parameterized by a template
// mutability parameter named f).
type Mutability struct {
	IsMutable   bool   // meaningful only when Parameter == ""
	Parameter   string // non-empty for `mut ?f`
	KeywordToken Token
	Range       source.Range
}

// TemplateArguments is a bracketed, comma-separated list of template
// arguments supplied at a use site (`f[Int, mut]`).
type TemplateArguments struct {
	Arguments  Separated[TemplateArgument]
	OpenToken  Token
	CloseToken Token
}

// TemplateArgument is one element of a TemplateArguments list: a type, an
// expression (for value parameters), a mutability, or a wildcard `_`.
type TemplateArgument struct {
	Type       *Type
	Expression *Expression
	Mutability *Mutability
	Wildcard   bool
	Range      source.Range
}

// Qualifier is one `::name` segment of a qualified path, optionally
// itself parameterized with template arguments.
type Qualifier struct {
	TemplateArguments *TemplateArguments
	Name              LowerName
	DoubleColonToken  Token
}

// QualifiedName is a possibly root-qualified, possibly middle-qualified
// path ending in a primary name (`global::mod::f`, `Type::method`): a
// lower_name, or for type and constructor references an upper_name stored
// in the same LowerName field.
type QualifiedName struct {
	RootType         *Type // set for `Type::name`; nil for `global::name` or unqualified
	IsGlobal         bool  // true for `global::name`
	MiddleQualifiers []Qualifier
	PrimaryName      LowerName
	Range            source.Range
}

// Node is implemented by every CST node so generic tree walks (used by the
// formatter and the tooling layer) can fetch a node's full span.
type Node interface {
	Span() source.Range
}
