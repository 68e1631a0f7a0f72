package desugar

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
)

func (d *Desugarer) typ(t *cst.Type) *ast.Type {
	if t == nil {
		return nil
	}
	var variant ast.TypeVariant
	switch v := t.Variant.(type) {
	case cst.TypePrimitive:
		variant = ast.TypePrimitive{Name: v.Name}
	case cst.TypePath:
		variant = ast.TypePath{Path: d.pathFromQualifiedName(v.Name, v.TemplateArguments)}
	case cst.TypeTuple:
		variant = ast.TypeTuple{Elements: d.typeList(cst.Values(v.Types))}
	case cst.TypeArray:
		variant = ast.TypeArray{Element: d.typ(v.Element), Length: d.expr(v.Length)}
	case cst.TypeSlice:
		variant = ast.TypeSlice{Element: d.typ(v.Element)}
	case cst.TypeFunction:
		variant = ast.TypeFunction{Parameters: d.typeList(cst.Values(v.Parameters)), Return: d.typ(v.Return)}
	case cst.TypeTypeof:
		variant = ast.TypeTypeof{Expression: d.expr(v.Expression)}
	case cst.TypeReference:
		variant = ast.TypeReference{Mutability: d.mutability(v.Mutability), Referenced: d.typ(v.Referenced)}
	case cst.TypePointer:
		variant = ast.TypePointer{Mutability: d.mutability(v.Mutability), Pointee: d.typ(v.Pointee)}
	case cst.TypeImplOf:
		variant = ast.TypeImplOf{Concepts: d.qualifierPaths(cst.Values(v.Concepts))}
	case cst.TypeDyn:
		variant = ast.TypeDyn{Concepts: d.qualifierPaths(cst.Values(v.Concepts))}
	case cst.TypeSelf:
		variant = ast.TypeSelf{}
	case cst.TypeWildcard:
		variant = ast.TypeWildcard{}
	default:
		variant = ast.TypeError{}
	}
	return &ast.Type{Variant: variant, Range: t.Range}
}

func (d *Desugarer) typeList(types []*cst.Type) []*ast.Type {
	out := make([]*ast.Type, len(types))
	for i, t := range types {
		out[i] = d.typ(t)
	}
	return out
}

// mutability lowers a possibly-absent mutability annotation; an absent one
// means "immutable" everywhere it's consulted (§3.5: `mut` is opt-in).
func (d *Desugarer) mutability(m *cst.Mutability) ast.Mutability {
	if m == nil {
		return ast.Mutability{}
	}
	return ast.Mutability{IsMutable: m.IsMutable, Parameter: m.Parameter, Range: m.Range}
}

// qualifierPaths lowers a `C1 + C2` concept list into bare Paths: concept
// references never carry their own template arguments at this position in
// the grammar, so Qualifier's own TemplateArguments field is intentionally
// left unconsulted here.
func (d *Desugarer) qualifierPaths(qualifiers []cst.Qualifier) []ast.Path {
	out := make([]ast.Path, len(qualifiers))
	for i, q := range qualifiers {
		out[i] = ast.Path{PrimaryName: q.Name.Identifier, Range: q.Name.Token.Range}
	}
	return out
}

// pathFromQualifiedName merges a cst.QualifiedName with its use-site
// template arguments (stored separately in the CST on TypePath/ExprPath)
// into one ast.Path.
func (d *Desugarer) pathFromQualifiedName(qn cst.QualifiedName, targs *cst.TemplateArguments) ast.Path {
	p := ast.Path{
		RootType:    d.typ(qn.RootType),
		IsGlobal:    qn.IsGlobal,
		PrimaryName: qn.PrimaryName.Identifier,
		Range:       qn.Range,
	}
	for _, q := range qn.MiddleQualifiers {
		p.MiddleQualifiers = append(p.MiddleQualifiers, q.Name.Identifier)
	}
	if targs != nil {
		p.TemplateArguments = d.templateArgumentList(cst.Values(targs.Arguments))
	}
	return p
}

func (d *Desugarer) templateArgumentList(args []cst.TemplateArgument) []ast.TemplateArgument {
	out := make([]ast.TemplateArgument, len(args))
	for i, a := range args {
		out[i] = d.templateArgument(a)
	}
	return out
}

func (d *Desugarer) templateArgument(a cst.TemplateArgument) ast.TemplateArgument {
	out := ast.TemplateArgument{Wildcard: a.Wildcard, Range: a.Range}
	if a.Type != nil {
		out.Type = d.typ(a.Type)
	}
	if a.Expression != nil {
		out.Expression = d.expr(a.Expression)
	}
	if a.Mutability != nil {
		m := d.mutability(a.Mutability)
		out.Mutability = &m
	}
	return out
}
