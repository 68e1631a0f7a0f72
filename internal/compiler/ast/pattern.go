package ast

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Pattern is the desugared representation of a pattern.
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

// PatternLiteral matches a literal value exactly.
type PatternLiteral struct {
	Value any // int64, float64, rune, string, or bool
}

func (PatternLiteral) patternVariant() {}

// PatternWildcard is `_`.
type PatternWildcard struct{}

func (PatternWildcard) patternVariant() {}

// PatternName binds a name with a mutability.
type PatternName struct {
	Mutability Mutability
	Name       string
}

func (PatternName) patternVariant() {}

// PatternConstructor matches an enum/struct constructor.
type PatternConstructor struct {
	Name        Path
	Fields      []PatternField // set for struct-shaped constructors
	Elements    []*Pattern     // set for tuple-shaped constructors
	Abbreviated bool           // true for the `.Variant` shorthand (§3.5)
}

func (PatternConstructor) patternVariant() {}

// PatternField is one `name` or `name = pattern` field of a struct
// constructor pattern.
type PatternField struct {
	Name    string
	Pattern *Pattern // nil for field-name shorthand, meaning `name: name`
}

// PatternTuple is `(p1, p2, ...)`.
type PatternTuple struct {
	Elements []*Pattern
}

func (PatternTuple) patternVariant() {}

// PatternSlice is `[p1, p2, ...]`.
type PatternSlice struct {
	Elements []*Pattern
}

func (PatternSlice) patternVariant() {}

// PatternAlias is `p as name`.
type PatternAlias struct {
	Pattern *Pattern
	Name    string
}

func (PatternAlias) patternVariant() {}

// PatternGuarded is `p if e`.
type PatternGuarded struct {
	Pattern *Pattern
	Guard   *Expression
}

func (PatternGuarded) patternVariant() {}
