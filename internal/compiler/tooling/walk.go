package tooling

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// definitionAt returns the innermost definition in defs whose range
// contains pos, descending into an impl block's or submodule's nested
// definitions before settling for the enclosing one.
func definitionAt(defs []*ast.Definition, pos source.Position) *ast.Definition {
	for _, d := range defs {
		if !d.Range.Contains(pos) {
			continue
		}
		if nested := nestedDefinitions(d); nested != nil {
			if inner := definitionAt(nested, pos); inner != nil {
				return inner
			}
		}
		return d
	}
	return nil
}

func nestedDefinitions(d *ast.Definition) []*ast.Definition {
	switch v := d.Variant.(type) {
	case ast.DefImpl:
		return v.Definitions
	case ast.DefSubmodule:
		return v.Definitions
	default:
		return nil
	}
}

// patternAt returns the innermost pattern in pat's tree whose range
// contains pos.
func patternAt(pat *ast.Pattern, pos source.Position) *ast.Pattern {
	if pat == nil || !pat.Range.Contains(pos) {
		return nil
	}
	for _, child := range patternChildren(pat) {
		if found := patternAt(child, pos); found != nil {
			return found
		}
	}
	return pat
}

func patternChildren(pat *ast.Pattern) []*ast.Pattern {
	switch v := pat.Variant.(type) {
	case ast.PatternConstructor:
		out := append([]*ast.Pattern{}, v.Elements...)
		for _, f := range v.Fields {
			if f.Pattern != nil {
				out = append(out, f.Pattern)
			}
		}
		return out
	case ast.PatternTuple:
		return v.Elements
	case ast.PatternSlice:
		return v.Elements
	case ast.PatternAlias:
		return []*ast.Pattern{v.Pattern}
	case ast.PatternGuarded:
		return []*ast.Pattern{v.Pattern}
	default:
		return nil
	}
}

// locate walks e's tree for the position pos and returns whichever node —
// an expression or a pattern introduced by a let/match arm along the way
// — most specifically contains it. Exactly one of the two returns is
// non-nil on a hit; both are nil if pos falls outside e entirely.
func locate(e *ast.Expression, pos source.Position) (*ast.Expression, *ast.Pattern) {
	if e == nil || !e.Range.Contains(pos) {
		return nil, nil
	}
	switch v := e.Variant.(type) {
	case ast.ExprLet:
		if p := patternAt(v.Pattern, pos); p != nil {
			return nil, p
		}
		if ce, cp := locate(v.Value, pos); ce != nil || cp != nil {
			return ce, cp
		}
		return e, nil

	case ast.ExprMatch:
		if ce, cp := locate(v.Scrutinee, pos); ce != nil || cp != nil {
			return ce, cp
		}
		for _, arm := range v.Arms {
			if p := patternAt(arm.Pattern, pos); p != nil {
				return nil, p
			}
			if ce, cp := locate(arm.Body, pos); ce != nil || cp != nil {
				return ce, cp
			}
		}
		return e, nil

	default:
		for _, child := range exprChildren(e) {
			if ce, cp := locate(child, pos); ce != nil || cp != nil {
				return ce, cp
			}
		}
		return e, nil
	}
}

func exprChildren(e *ast.Expression) []*ast.Expression {
	switch v := e.Variant.(type) {
	case ast.ExprTuple:
		return v.Elements
	case ast.ExprArray:
		return v.Elements
	case ast.ExprStructInitializer:
		var out []*ast.Expression
		for _, f := range v.Fields {
			if f.Value != nil {
				out = append(out, f.Value)
			}
		}
		return out
	case ast.ExprBlock:
		out := append([]*ast.Expression{}, v.Statements...)
		if v.Result != nil {
			out = append(out, v.Result)
		}
		return out
	case ast.ExprInvocation:
		out := []*ast.Expression{v.Invocable}
		for _, a := range v.Arguments {
			if a.Value != nil {
				out = append(out, a.Value)
			}
		}
		return out
	case ast.ExprFieldAccess:
		return []*ast.Expression{v.Base}
	case ast.ExprTupleIndex:
		return []*ast.Expression{v.Base}
	case ast.ExprArrayIndex:
		return []*ast.Expression{v.Base, v.Index}
	case ast.ExprMethodCall:
		out := []*ast.Expression{v.Receiver}
		for _, a := range v.Arguments {
			if a.Value != nil {
				out = append(out, a.Value)
			}
		}
		return out
	case ast.ExprOperatorCall:
		return []*ast.Expression{v.Left, v.Right}
	case ast.ExprConditional:
		return []*ast.Expression{v.Condition, v.Then, v.Else}
	case ast.ExprLoop:
		return []*ast.Expression{v.Body}
	case ast.ExprAddressOf:
		return []*ast.Expression{v.Operand}
	case ast.ExprDereference:
		return []*ast.Expression{v.Operand}
	case ast.ExprMove:
		return []*ast.Expression{v.Operand}
	case ast.ExprDefer:
		return []*ast.Expression{v.Operand}
	case ast.ExprUnsafe:
		return []*ast.Expression{v.Operand}
	case ast.ExprMeta:
		return []*ast.Expression{v.Operand}
	case ast.ExprBreak:
		if v.Value != nil {
			return []*ast.Expression{v.Value}
		}
		return nil
	case ast.ExprRet:
		if v.Value != nil {
			return []*ast.Expression{v.Value}
		}
		return nil
	case ast.ExprDiscard:
		return []*ast.Expression{v.Operand}
	case ast.ExprCast:
		return []*ast.Expression{v.Operand}
	case ast.ExprAscription:
		return []*ast.Expression{v.Operand}
	default:
		return nil
	}
}
