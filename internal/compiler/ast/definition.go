package ast

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Definition is the desugared representation of a top-level or nested
// item.
type Definition struct {
	Variant DefinitionVariant
	Range   source.Range
}

// Span implements Node.
func (d *Definition) Span() source.Range { return d.Range }

// DefinitionVariant is the closed set of definition syntaxes.
type DefinitionVariant interface {
	definitionVariant()
}

// TemplateParameterKind distinguishes the three template parameter forms.
type TemplateParameterKind int

const (
	TemplateParamType TemplateParameterKind = iota
	TemplateParamValue
	TemplateParamMutability
)

// TemplateParameter is one template parameter declaration.
type TemplateParameter struct {
	Kind    TemplateParameterKind
	Name    string
	Type    *Type  // TemplateParamValue's type annotation
	Classes []Path // TemplateParamType's `T + C1 + C2` bound
	Default *TemplateArgument
	Range   source.Range
}

// SelfParameter is a method's `self`/`&self`/`&mut self` receiver.
type SelfParameter struct {
	Mutability Mutability
	Reference  bool
}

// FunctionParameter is one function parameter.
type FunctionParameter struct {
	Pattern *Pattern
	Type    *Type
	Default *Expression
}

// FunctionSignature is a function's parameter list and return type.
type FunctionSignature struct {
	Self       *SelfParameter
	Parameters []FunctionParameter
	Return     *Type
}

// DefFunction is a function definition. Body is always an ExprBlock: the
// desugarer wraps an `= e` body in a synthetic one-result-expression
// block (§4.3).
type DefFunction struct {
	Name               string
	TemplateParameters []TemplateParameter
	Signature          FunctionSignature
	Body               *Expression
}

func (DefFunction) definitionVariant() {}

// StructField is one named struct field.
type StructField struct {
	Name string
	Type *Type
}

// DefStruct is a struct definition; exactly one of TupleFields or
// NamedFields is set (nil NamedFields and nil TupleFields means a unit
// struct).
type DefStruct struct {
	Name               string
	TemplateParameters []TemplateParameter
	TupleFields        []*Type
	NamedFields        []StructField
}

func (DefStruct) definitionVariant() {}

// EnumConstructor is one arm of an enum definition.
type EnumConstructor struct {
	Name        string
	TupleFields []*Type
	NamedFields []StructField
}

// DefEnum is an enum definition with one or more constructors.
type DefEnum struct {
	Name               string
	TemplateParameters []TemplateParameter
	Constructors       []EnumConstructor
}

func (DefEnum) definitionVariant() {}

// DefAlias is a type alias definition.
type DefAlias struct {
	Name               string
	TemplateParameters []TemplateParameter
	Type               *Type
}

func (DefAlias) definitionVariant() {}

// ConceptSignature is one method signature declared by a concept.
type ConceptSignature struct {
	Name      string
	Signature FunctionSignature
}

// DefConcept is a concept (interface-like bound) definition.
type DefConcept struct {
	Name               string
	TemplateParameters []TemplateParameter
	Signatures         []ConceptSignature
}

func (DefConcept) definitionVariant() {}

// DefImpl is an impl block attaching definitions to a type.
type DefImpl struct {
	TemplateParameters []TemplateParameter
	SelfType           *Type
	Definitions        []*Definition
}

func (DefImpl) definitionVariant() {}

// DefSubmodule is a nested `module name { ... }` definition.
type DefSubmodule struct {
	Name               string
	TemplateParameters []TemplateParameter
	Definitions        []*Definition
}

func (DefSubmodule) definitionVariant() {}
