package cst

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Definition is the CST representation of a top-level or nested item
// (§3.5): function, struct, enum, alias, concept, impl, submodule.
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

// TemplateParameters is a bracketed, comma-separated list of template
// parameters declared on a definition (`[T, n: Int, ?m]`).
type TemplateParameters struct {
	Parameters Separated[TemplateParameter]
	OpenToken  Token
	CloseToken Token
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
	Kind       TemplateParameterKind
	Name       string
	Type       *Type // set for TemplateParamValue's type annotation
	Classes    *Separated[Qualifier] // set for TemplateParamType's `T + C1 + C2` bound
	Default    *TemplateArgument
	Range      source.Range
}

// SelfParameter is the `self`/`&self`/`&mut self` receiver of a method.
type SelfParameter struct {
	Mutability *Mutability
	Reference  bool
	Token      Token
}

// FunctionParameter is one `pattern [: type] [= default]` parameter.
type FunctionParameter struct {
	Pattern *Pattern
	Type    *Type
	Default *Expression
}

// FunctionSignature is the parameter list and return type shared by both
// full function definitions and concept method signatures.
type FunctionSignature struct {
	Self       *SelfParameter
	Parameters Separated[FunctionParameter]
	Return     *Type
	OpenToken  Token
	CloseToken Token
	ColonToken *Token
}

// DefFunction is `fn name [tparams] (params) [: type] (block | = expr)`.
type DefFunction struct {
	Name               LowerName
	TemplateParameters *TemplateParameters
	Signature          FunctionSignature
	Body               *Expression // an ExprBlock, or the desugarer-wrapped `= e` form
	FnToken            Token
	EqualsToken        *Token // set when the body was written as `= e`
}

func (DefFunction) definitionVariant() {}

// StructField is one `name : type` field declaration inside a
// brace-bodied struct.
type StructField struct {
	Name  LowerName
	Type  *Type
	Colon Token
}

// DefStruct is `struct Name [tparams] (types) | { fields } | <unit>`.
type DefStruct struct {
	Name               UpperName
	TemplateParameters *TemplateParameters
	TupleFields        *Separated[*Type]       // set for `struct P(Int, Int)`
	NamedFields        *Separated[StructField] // set for `struct P { x: Int }`
	StructToken        Token
	OpenToken          *Token
	CloseToken         *Token
}

func (DefStruct) definitionVariant() {}

// EnumConstructor is one `Name`, `Name(types)`, or `Name { fields }` arm
// of an enum definition.
type EnumConstructor struct {
	Name        UpperName
	TupleFields *Separated[*Type]
	NamedFields *Separated[StructField]
	OpenToken   *Token
	CloseToken  *Token
}

// DefEnum is `enum Name [tparams] = Ctor | Ctor | ...`.
type DefEnum struct {
	Name               UpperName
	TemplateParameters *TemplateParameters
	Constructors       Separated[EnumConstructor]
	EnumToken          Token
	EqualsToken        Token
}

func (DefEnum) definitionVariant() {}

// DefAlias is `alias Name [tparams] = type`.
type DefAlias struct {
	Name               UpperName
	TemplateParameters *TemplateParameters
	Type               *Type
	AliasToken         Token
	EqualsToken        Token
}

func (DefAlias) definitionVariant() {}

// ConceptSignature is one method signature declared inside a concept body.
type ConceptSignature struct {
	Name      LowerName
	Signature FunctionSignature
	FnToken   Token
}

// DefConcept is `concept Name [tparams] { sig* }`.
type DefConcept struct {
	Name               UpperName
	TemplateParameters *TemplateParameters
	Signatures         []ConceptSignature
	ConceptToken       Token
	OpenToken          Token
	CloseToken         Token
}

func (DefConcept) definitionVariant() {}

// DefImpl is `impl [tparams] type { definition* }`.
type DefImpl struct {
	TemplateParameters *TemplateParameters
	SelfType           *Type
	Definitions        []*Definition
	ImplToken          Token
	OpenToken          Token
	CloseToken         Token
}

func (DefImpl) definitionVariant() {}

// DefSubmodule is `module name [tparams] { definition* }`.
type DefSubmodule struct {
	Name               LowerName
	TemplateParameters *TemplateParameters
	Definitions        []*Definition
	ModuleToken        Token
	OpenToken          Token
	CloseToken         Token
}

func (DefSubmodule) definitionVariant() {}

// Import is one `import path` directive.
type Import struct {
	Path        QualifiedName
	ImportToken Token
}

// Module is the CST root for one document: a sequence of imports
// followed by a sequence of top-level definitions.
type Module struct {
	Imports     []Import
	Definitions []*Definition
}
