package cst

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Pattern is the CST representation of a pattern (§3.5).
type Pattern struct {
	Variant PatternVariant
	Range   source.Range
}

// Span implements Node.
func (p *Pattern) Span() source.Range { return p.Range }

// PatternVariant is the closed set of pattern syntaxes.
type PatternVariant interface {
	patternVariant()
}

// PatternLiteral matches an integer, floating, character, string, or
// boolean literal exactly.
type PatternLiteral struct {
	Token Token
}

func (PatternLiteral) patternVariant() {}

// PatternWildcard is `_`.
type PatternWildcard struct {
	Token Token
}

func (PatternWildcard) patternVariant() {}

// PatternName binds a name, optionally annotated with a mutability
// (`mut x`, `x`).
type PatternName struct {
	Mutability *Mutability
	Name       LowerName
}

func (PatternName) patternVariant() {}

// PatternConstructor matches an enum/struct constructor, with payload
// shape depending on Fields/Elements (struct-like vs tuple-like vs unit).
type PatternConstructor struct {
	Name       QualifiedName
	Fields     *Separated[PatternField] // set for `Ctor { a, b }`
	Elements   *Separated[*Pattern]     // set for `Ctor(a, b)`
	OpenToken  *Token
	CloseToken *Token
}

func (PatternConstructor) patternVariant() {}

// PatternField is one `name` or `name = pattern` entry inside a struct
// constructor pattern.
type PatternField struct {
	Name    LowerName
	Pattern *Pattern // nil for field-name shorthand
	Equals  *Token
}

// PatternAbbreviatedConstructor matches a bare `.Variant` or `.Variant(a)`,
// the enum-type-inferred-from-context shorthand (§3.5).
type PatternAbbreviatedConstructor struct {
	Name       LowerName
	Elements   *Separated[*Pattern]
	DotToken   Token
	OpenToken  *Token
	CloseToken *Token
}

func (PatternAbbreviatedConstructor) patternVariant() {}

// PatternTuple is `(p1, p2, ...)`.
type PatternTuple struct {
	Patterns   Separated[*Pattern]
	OpenToken  Token
	CloseToken Token
}

func (PatternTuple) patternVariant() {}

// PatternSlice is `[p1, p2, ...]`.
type PatternSlice struct {
	Patterns   Separated[*Pattern]
	OpenToken  Token
	CloseToken Token
}

func (PatternSlice) patternVariant() {}

// PatternAlias is `p as name`, binding the whole matched value to name in
// addition to destructuring it via p.
type PatternAlias struct {
	Pattern *Pattern
	Name    LowerName
	AsToken Token
}

func (PatternAlias) patternVariant() {}

// PatternGuarded is `p if e`.
type PatternGuarded struct {
	Pattern   *Pattern
	Guard     *Expression
	IfToken   Token
}

func (PatternGuarded) patternVariant() {}
