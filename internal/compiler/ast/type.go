package ast

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Type is the desugared representation of a type expression.
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

// TypePrimitive names a built-in primitive type.
type TypePrimitive struct {
	Name string
}

func (TypePrimitive) typeVariant() {}

// TypePath is a named type reference, possibly template-applied.
type TypePath struct {
	Path Path
}

func (TypePath) typeVariant() {}

// TypeTuple is `(T1, T2, ...)`.
type TypeTuple struct {
	Elements []*Type
}

func (TypeTuple) typeVariant() {}

// TypeArray is `[T; n]`.
type TypeArray struct {
	Element *Type
	Length  *Expression
}

func (TypeArray) typeVariant() {}

// TypeSlice is `[T]`.
type TypeSlice struct {
	Element *Type
}

func (TypeSlice) typeVariant() {}

// TypeFunction is `fn(T1, T2) : R`.
type TypeFunction struct {
	Parameters []*Type
	Return     *Type
}

func (TypeFunction) typeVariant() {}

// TypeTypeof is `typeof(e)`.
type TypeTypeof struct {
	Expression *Expression
}

func (TypeTypeof) typeVariant() {}

// TypeReference is `&[mut] T`.
type TypeReference struct {
	Mutability Mutability
	Referenced *Type
}

func (TypeReference) typeVariant() {}

// TypePointer is `*[mut] T`.
type TypePointer struct {
	Mutability Mutability
	Pointee    *Type
}

func (TypePointer) typeVariant() {}

// TypeImplOf is `impl C1 + C2`.
type TypeImplOf struct {
	Concepts []Path
}

func (TypeImplOf) typeVariant() {}

// TypeDyn is `dyn C1 + C2`.
type TypeDyn struct {
	Concepts []Path
}

func (TypeDyn) typeVariant() {}

// TypeSelf is the `Self` placeholder.
type TypeSelf struct{}

func (TypeSelf) typeVariant() {}

// TypeWildcard is `_` used as a type.
type TypeWildcard struct{}

func (TypeWildcard) typeVariant() {}

// TypeError stands in for a type expression the parser could not make
// sense of, so downstream passes have a node to attach to without
// aborting the whole definition.
type TypeError struct{}

func (TypeError) typeVariant() {}
