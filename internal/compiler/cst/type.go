package cst

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Type is the CST representation of a type expression. Every concrete
// variant embeds enough tokens to reformat it verbatim (§3.4/§3.5).
type Type struct {
	Variant TypeVariant
	Range   source.Range
}

// Span implements Node.
func (t *Type) Span() source.Range { return t.Range }

// TypeVariant is the closed set of type syntaxes (§3.5).
type TypeVariant interface {
	typeVariant()
}

// TypePrimitive spells one of the built-in primitive type keywords.
type TypePrimitive struct {
	Name  string // "I32", "Bool", "String", ...
	Token Token
}

func (TypePrimitive) typeVariant() {}

// TypePath is a (possibly qualified, possibly template-applied) named type.
type TypePath struct {
	Name              QualifiedName
	TemplateArguments *TemplateArguments
}

func (TypePath) typeVariant() {}

// TypeTuple is `(T1, T2, ...)`.
type TypeTuple struct {
	Types      Separated[*Type]
	OpenToken  Token
	CloseToken Token
}

func (TypeTuple) typeVariant() {}

// TypeArray is `[T; n]`.
type TypeArray struct {
	Element     *Type
	Length      *Expression
	OpenToken   Token
	Semicolon   Token
	CloseToken  Token
}

func (TypeArray) typeVariant() {}

// TypeSlice is `[T]`.
type TypeSlice struct {
	Element    *Type
	OpenToken  Token
	CloseToken Token
}

func (TypeSlice) typeVariant() {}

// TypeFunction is `fn(T1, T2) : R`.
type TypeFunction struct {
	Parameters Separated[*Type]
	Return     *Type // nil when no `: R` is present
	FnToken    Token
	OpenToken  Token
	CloseToken Token
	ColonToken *Token
}

func (TypeFunction) typeVariant() {}

// TypeTypeof is `typeof(e)`.
type TypeTypeof struct {
	Expression *Expression
	Token      Token
	OpenToken  Token
	CloseToken Token
}

func (TypeTypeof) typeVariant() {}

// TypeReference is `&[mut] T`.
type TypeReference struct {
	Mutability  *Mutability
	Referenced  *Type
	Ampersand   Token
}

func (TypeReference) typeVariant() {}

// TypePointer is `*[mut] T`.
type TypePointer struct {
	Mutability *Mutability
	Pointee    *Type
	Asterisk   Token
}

func (TypePointer) typeVariant() {}

// TypeImplOf is `impl C1 + C2` (existential/dyn-free impl-of-concepts type).
type TypeImplOf struct {
	Concepts Separated[Qualifier]
	Token    Token
}

func (TypeImplOf) typeVariant() {}

// TypeDyn is `dyn C1 + C2`.
type TypeDyn struct {
	Concepts Separated[Qualifier]
	Token    Token
}

func (TypeDyn) typeVariant() {}

// TypeSelf is the `Self` placeholder type used inside impl/concept bodies.
type TypeSelf struct {
	Token Token
}

func (TypeSelf) typeVariant() {}

// TypeWildcard is `_` used as a type, standing for "let inference decide".
type TypeWildcard struct {
	Token Token
}

func (TypeWildcard) typeVariant() {}
