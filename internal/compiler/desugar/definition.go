package desugar

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
)

func (d *Desugarer) definition(def *cst.Definition) *ast.Definition {
	var variant ast.DefinitionVariant
	switch v := def.Variant.(type) {
	case cst.DefFunction:
		variant = d.defFunction(v)
	case cst.DefStruct:
		variant = d.defStruct(v)
	case cst.DefEnum:
		variant = d.defEnum(v)
	case cst.DefAlias:
		variant = ast.DefAlias{Name: v.Name.Identifier, TemplateParameters: d.templateParameters(v.TemplateParameters), Type: d.typ(v.Type)}
	case cst.DefConcept:
		variant = d.defConcept(v)
	case cst.DefImpl:
		variant = d.defImpl(v)
	case cst.DefSubmodule:
		variant = d.defSubmodule(v)
	}
	return &ast.Definition{Variant: variant, Range: def.Range}
}

func (d *Desugarer) definitionList(defs []*cst.Definition) []*ast.Definition {
	out := make([]*ast.Definition, len(defs))
	for i, def := range defs {
		out[i] = d.definition(def)
	}
	return out
}

// defFunction lowers a function definition, wrapping an `= e` body in a
// synthetic one-result-expression block so every DefFunction.Body is an
// ExprBlock, as the resolver expects (§4.3).
func (d *Desugarer) defFunction(v cst.DefFunction) ast.DefFunction {
	body := d.expr(v.Body)
	if v.EqualsToken != nil {
		body = &ast.Expression{Variant: ast.ExprBlock{Result: body}, Range: body.Range}
	}
	return ast.DefFunction{
		Name:               v.Name.Identifier,
		TemplateParameters: d.templateParameters(v.TemplateParameters),
		Signature:          d.functionSignature(v.Signature),
		Body:               body,
	}
}

func (d *Desugarer) defStruct(v cst.DefStruct) ast.DefStruct {
	out := ast.DefStruct{Name: v.Name.Identifier, TemplateParameters: d.templateParameters(v.TemplateParameters)}
	if v.TupleFields != nil {
		out.TupleFields = d.typeList(cst.Values(*v.TupleFields))
	}
	if v.NamedFields != nil {
		out.NamedFields = d.structFields(cst.Values(*v.NamedFields))
	}
	return out
}

func (d *Desugarer) structFields(fields []cst.StructField) []ast.StructField {
	out := make([]ast.StructField, len(fields))
	for i, f := range fields {
		out[i] = ast.StructField{Name: f.Name.Identifier, Type: d.typ(f.Type)}
	}
	return out
}

func (d *Desugarer) defEnum(v cst.DefEnum) ast.DefEnum {
	out := ast.DefEnum{Name: v.Name.Identifier, TemplateParameters: d.templateParameters(v.TemplateParameters)}
	for _, ctor := range cst.Values(v.Constructors) {
		c := ast.EnumConstructor{Name: ctor.Name.Identifier}
		if ctor.TupleFields != nil {
			c.TupleFields = d.typeList(cst.Values(*ctor.TupleFields))
		}
		if ctor.NamedFields != nil {
			c.NamedFields = d.structFields(cst.Values(*ctor.NamedFields))
		}
		out.Constructors = append(out.Constructors, c)
	}
	return out
}

func (d *Desugarer) defConcept(v cst.DefConcept) ast.DefConcept {
	out := ast.DefConcept{Name: v.Name.Identifier, TemplateParameters: d.templateParameters(v.TemplateParameters)}
	for _, sig := range v.Signatures {
		out.Signatures = append(out.Signatures, ast.ConceptSignature{Name: sig.Name.Identifier, Signature: d.functionSignature(sig.Signature)})
	}
	return out
}

func (d *Desugarer) defImpl(v cst.DefImpl) ast.DefImpl {
	return ast.DefImpl{
		TemplateParameters: d.templateParameters(v.TemplateParameters),
		SelfType:           d.typ(v.SelfType),
		Definitions:        d.definitionList(v.Definitions),
	}
}

func (d *Desugarer) defSubmodule(v cst.DefSubmodule) ast.DefSubmodule {
	return ast.DefSubmodule{
		Name:               v.Name.Identifier,
		TemplateParameters: d.templateParameters(v.TemplateParameters),
		Definitions:        d.definitionList(v.Definitions),
	}
}

func (d *Desugarer) templateParameters(tp *cst.TemplateParameters) []ast.TemplateParameter {
	if tp == nil {
		return nil
	}
	params := cst.Values(tp.Parameters)
	out := make([]ast.TemplateParameter, len(params))
	for i, p := range params {
		out[i] = d.templateParameter(p)
	}
	return out
}

func (d *Desugarer) templateParameter(p cst.TemplateParameter) ast.TemplateParameter {
	out := ast.TemplateParameter{
		Kind:  ast.TemplateParameterKind(p.Kind),
		Name:  p.Name,
		Type:  d.typ(p.Type),
		Range: p.Range,
	}
	if p.Classes != nil {
		out.Classes = d.qualifierPaths(cst.Values(*p.Classes))
	}
	if p.Default != nil {
		arg := d.templateArgument(*p.Default)
		out.Default = &arg
	}
	return out
}

func (d *Desugarer) functionSignature(sig cst.FunctionSignature) ast.FunctionSignature {
	out := ast.FunctionSignature{Return: d.typ(sig.Return)}
	if sig.Self != nil {
		out.Self = &ast.SelfParameter{Mutability: d.mutability(sig.Self.Mutability), Reference: sig.Self.Reference}
	}
	for _, p := range cst.Values(sig.Parameters) {
		out.Parameters = append(out.Parameters, ast.FunctionParameter{
			Pattern: d.pattern(p.Pattern),
			Type:    d.typ(p.Type),
			Default: d.expr(p.Default),
		})
	}
	return out
}
