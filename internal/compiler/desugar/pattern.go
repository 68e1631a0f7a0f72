package desugar

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
)

func (d *Desugarer) pattern(p *cst.Pattern) *ast.Pattern {
	if p == nil {
		return nil
	}
	var variant ast.PatternVariant
	switch v := p.Variant.(type) {
	case cst.PatternLiteral:
		variant = ast.PatternLiteral{Value: v.Token.Literal}
	case cst.PatternWildcard:
		variant = ast.PatternWildcard{}
	case cst.PatternName:
		variant = ast.PatternName{Mutability: d.mutability(v.Mutability), Name: v.Name.Identifier}
	case cst.PatternConstructor:
		ctor := ast.PatternConstructor{Name: d.pathFromQualifiedName(v.Name, nil)}
		if v.Fields != nil {
			ctor.Fields = d.patternFields(cst.Values(*v.Fields))
		}
		if v.Elements != nil {
			ctor.Elements = d.patternList(cst.Values(*v.Elements))
		}
		variant = ctor
	case cst.PatternAbbreviatedConstructor:
		ctor := ast.PatternConstructor{
			Name:        ast.Path{PrimaryName: v.Name.Identifier, Range: v.Name.Token.Range},
			Abbreviated: true,
		}
		if v.Elements != nil {
			ctor.Elements = d.patternList(cst.Values(*v.Elements))
		}
		variant = ctor
	case cst.PatternTuple:
		variant = ast.PatternTuple{Elements: d.patternList(cst.Values(v.Patterns))}
	case cst.PatternSlice:
		variant = ast.PatternSlice{Elements: d.patternList(cst.Values(v.Patterns))}
	case cst.PatternAlias:
		variant = ast.PatternAlias{Pattern: d.pattern(v.Pattern), Name: v.Name.Identifier}
	case cst.PatternGuarded:
		variant = ast.PatternGuarded{Pattern: d.pattern(v.Pattern), Guard: d.expr(v.Guard)}
	}
	return &ast.Pattern{Variant: variant, Range: p.Range}
}

func (d *Desugarer) patternList(patterns []*cst.Pattern) []*ast.Pattern {
	out := make([]*ast.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = d.pattern(p)
	}
	return out
}

func (d *Desugarer) patternFields(fields []cst.PatternField) []ast.PatternField {
	out := make([]ast.PatternField, len(fields))
	for i, f := range fields {
		out[i] = ast.PatternField{Name: f.Name.Identifier, Pattern: d.pattern(f.Pattern)}
	}
	return out
}
