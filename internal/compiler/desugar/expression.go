package desugar

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

func (d *Desugarer) expr(e *cst.Expression) *ast.Expression {
	if e == nil {
		return nil
	}
	switch v := e.Variant.(type) {
	case cst.ExprLiteral:
		return d.wrap(e, ast.ExprLiteral{Value: v.Token.Literal})
	case cst.ExprPath:
		return d.wrap(e, ast.ExprPath{Path: d.pathFromQualifiedName(v.Name, v.TemplateArguments)})
	case cst.ExprHole:
		return d.wrap(e, ast.ExprHole{})
	case cst.ExprTuple:
		return d.wrap(e, ast.ExprTuple{Elements: d.exprList(cst.Values(v.Elements))})
	case cst.ExprArray:
		return d.wrap(e, ast.ExprArray{Elements: d.exprList(cst.Values(v.Elements))})
	case cst.ExprStructInitializer:
		return d.wrap(e, ast.ExprStructInitializer{
			Name:   d.pathFromQualifiedName(v.Name, nil),
			Fields: d.structInitFields(cst.Values(v.Fields)),
		})
	case cst.ExprBlock:
		return d.wrap(e, d.block(v))
	case cst.ExprInvocation:
		return d.wrap(e, ast.ExprInvocation{Invocable: d.expr(v.Invocable), Arguments: d.arguments(cst.Values(v.Arguments))})
	case cst.ExprFieldAccess:
		return d.wrap(e, ast.ExprFieldAccess{Base: d.expr(v.Base), Field: v.Field.Identifier})
	case cst.ExprTupleIndex:
		return d.wrap(e, ast.ExprTupleIndex{Base: d.expr(v.Base), Index: tupleIndexValue(v.Index)})
	case cst.ExprArrayIndex:
		return d.wrap(e, ast.ExprArrayIndex{Base: d.expr(v.Base), Index: d.expr(v.Index)})
	case cst.ExprMethodCall:
		targs := []ast.TemplateArgument(nil)
		if v.TemplateArguments != nil {
			targs = d.templateArgumentList(cst.Values(v.TemplateArguments.Arguments))
		}
		return d.wrap(e, ast.ExprMethodCall{
			Receiver: d.expr(v.Receiver), Method: v.Method.Identifier,
			TemplateArguments: targs, Arguments: d.arguments(cst.Values(v.Arguments)),
		})
	case cst.ExprOperatorChain:
		return d.operatorChain(v)
	case cst.ExprConditional:
		return d.conditional(v, e.Range)
	case cst.ExprMatch:
		return d.wrap(e, ast.ExprMatch{Scrutinee: d.expr(v.Scrutinee), Arms: d.matchArms(v.Arms)})
	case cst.ExprLoop:
		return d.loop(v, e.Range)
	case cst.ExprLet:
		var typ *ast.Type
		if v.Type != nil {
			typ = d.typ(v.Type)
		}
		return d.wrap(e, ast.ExprLet{Pattern: d.pattern(v.Pattern), Type: typ, Value: d.expr(v.Value)})
	case cst.ExprLocalAlias:
		return d.wrap(e, ast.ExprLocalAlias{Name: v.Name.Identifier, Type: d.typ(v.Type)})
	case cst.ExprAddressOf:
		return d.wrap(e, ast.ExprAddressOf{Mutability: d.mutability(v.Mutability), Operand: d.expr(v.Operand)})
	case cst.ExprDereference:
		return d.wrap(e, ast.ExprDereference{Operand: d.expr(v.Operand)})
	case cst.ExprSizeof:
		return d.wrap(e, ast.ExprSizeof{Type: d.typ(v.Type)})
	case cst.ExprMove:
		return d.wrap(e, ast.ExprMove{Operand: d.expr(v.Operand)})
	case cst.ExprDefer:
		return d.wrap(e, ast.ExprDefer{Operand: d.expr(v.Operand)})
	case cst.ExprUnsafe:
		return d.wrap(e, ast.ExprUnsafe{Operand: d.expr(v.Operand)})
	case cst.ExprMeta:
		return d.wrap(e, ast.ExprMeta{Operand: d.expr(v.Operand)})
	case cst.ExprBreak:
		return d.wrap(e, ast.ExprBreak{Value: d.expr(v.Value)})
	case cst.ExprContinue:
		return d.wrap(e, ast.ExprContinue{})
	case cst.ExprRet:
		return d.wrap(e, ast.ExprRet{Value: d.expr(v.Value)})
	case cst.ExprDiscard:
		return d.wrap(e, ast.ExprDiscard{Operand: d.expr(v.Operand)})
	case cst.ExprCast:
		return d.wrap(e, ast.ExprCast{Operand: d.expr(v.Operand), Type: d.typ(v.Type)})
	case cst.ExprAscription:
		return d.wrap(e, ast.ExprAscription{Operand: d.expr(v.Operand), Type: d.typ(v.Type)})
	case cst.ExprParenthesized:
		return d.expr(v.Inner)
	default:
		return d.wrap(e, ast.ExprError{})
	}
}

func (d *Desugarer) wrap(e *cst.Expression, v ast.ExpressionVariant) *ast.Expression {
	return &ast.Expression{Variant: v, Range: e.Range}
}

func (d *Desugarer) exprList(exprs []*cst.Expression) []*ast.Expression {
	out := make([]*ast.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = d.expr(e)
	}
	return out
}

func (d *Desugarer) structInitFields(fields []cst.StructInitField) []ast.StructInitField {
	out := make([]ast.StructInitField, len(fields))
	for i, f := range fields {
		out[i] = ast.StructInitField{Name: f.Name.Identifier, Value: d.expr(f.Value)}
	}
	return out
}

func (d *Desugarer) arguments(args []cst.Argument) []ast.Argument {
	out := make([]ast.Argument, len(args))
	for i, a := range args {
		name := ""
		if a.Name != nil {
			name = a.Name.Identifier
		}
		out[i] = ast.Argument{Name: name, Value: d.expr(a.Value)}
	}
	return out
}

func (d *Desugarer) matchArms(arms []cst.MatchArm) []ast.MatchArm {
	out := make([]ast.MatchArm, len(arms))
	for i, a := range arms {
		out[i] = ast.MatchArm{Pattern: d.pattern(a.Pattern), Body: d.expr(a.Body)}
	}
	return out
}

// tupleIndexValue parses the digits of a `.N` tuple-index token; the lexer
// already validated it as TOKEN_INTEGER_LITERAL, so Literal holds the
// parsed int64.
func tupleIndexValue(tok cst.Token) int {
	if n, ok := tok.Literal.(int64); ok {
		return int(n)
	}
	return 0
}

// block lowers a CST block's statements/result directly: a trailing `;`
// makes the block unit-valued (Result == nil), which is already how
// ast.ExprBlock represents unit, so no synthetic literal is inserted here.
func (d *Desugarer) block(v cst.ExprBlock) ast.ExprBlock {
	out := ast.ExprBlock{}
	for _, stmt := range v.Statements {
		out.Statements = append(out.Statements, d.expr(stmt.Expression))
	}
	out.Result = d.expr(v.Result)
	return out
}

// operatorChain lowers a flat `a op1 b op2 c ...` spine into nested
// left-associative ExprOperatorCall nodes, per §4.3: the parser never
// resolves relative operator precedence, so the leftmost operator always
// binds first.
func (d *Desugarer) operatorChain(v cst.ExprOperatorChain) *ast.Expression {
	acc := d.expr(v.Head)
	for _, link := range v.Sequence {
		operand := d.expr(link.Operand)
		acc = &ast.Expression{
			Variant: ast.ExprOperatorCall{Operator: link.Operator.Identifier, Left: acc, Right: operand},
			Range:   acc.Range.Cover(operand.Range),
		}
	}
	return acc
}

// conditional collapses an elif chain (already nested in the CST by the
// parser) into plain ExprConditional nodes and synthesizes a unit-valued
// else branch for an else-less `if`, so the resolver always sees a
// total if/else (§4.3, §9 Open Question: else-less if evaluates to `()`
// when its condition is false).
func (d *Desugarer) conditional(v cst.ExprConditional, rng source.Range) *ast.Expression {
	cond := d.expr(v.Condition)
	then := d.expr(v.Then)
	var elseBranch *ast.Expression
	if v.Else != nil {
		elseBranch = d.expr(v.Else)
	} else {
		elseBranch = &ast.Expression{Variant: ast.ExprBlock{}, Range: source.Zero}
	}
	return &ast.Expression{
		Variant: ast.ExprConditional{Condition: cond, Then: then, Else: elseBranch, FromElif: v.IsElif},
		Range:   rng,
	}
}

// loop dispatches `loop`, `while`, and `for` to their respective lowerings.
func (d *Desugarer) loop(v cst.ExprLoop, rng source.Range) *ast.Expression {
	switch v.Origin {
	case cst.LoopOriginWhile:
		return d.whileLoop(v, rng)
	case cst.LoopOriginFor:
		return d.forLoop(v, rng)
	default:
		return &ast.Expression{
			Variant: ast.ExprLoop{Body: d.expr(v.Body), Origin: ast.LoopOriginLoop},
			Range:   rng,
		}
	}
}

// syntheticBreakUnit is the `break ()` inserted by the while-loop
// desugaring, marked so diagnostics can tell it apart from a user-written
// break (§4.3).
func syntheticBreakUnit() *ast.Expression {
	return &ast.Expression{
		Variant: ast.ExprBreak{Value: &ast.Expression{Variant: ast.ExprTuple{}, Range: source.Zero}, BreakSyntheticUnit: true},
		Range:   source.Zero,
	}
}

// whileLoop lowers `while c { b }` into `loop { if c { b } else { break () } }`
// (§4.3). A literal `true`/`false` condition gets a style diagnostic rather
// than a rejection, since the program is still well-formed.
func (d *Desugarer) whileLoop(v cst.ExprLoop, rng source.Range) *ast.Expression {
	if lit, ok := v.Condition.Variant.(cst.ExprLiteral); ok {
		if b, ok := lit.Token.Literal.(bool); ok {
			if b {
				d.report(diag.New(diag.KindWhileTrueSuggestLoop, diag.SeverityHint, v.Condition.Range, "use 'loop' instead of 'while true'"))
			} else {
				d.report(diag.New(diag.KindWhileFalseUnreachable, diag.SeverityWarning, v.Condition.Range, "'while false' loop body is unreachable"))
			}
		}
	}

	cond := d.expr(v.Condition)
	then := d.expr(v.Body)
	elseBranch := &ast.Expression{Variant: ast.ExprBlock{Result: syntheticBreakUnit()}, Range: source.Zero}
	ifExpr := &ast.Expression{
		Variant: ast.ExprConditional{Condition: cond, Then: then, Else: elseBranch},
		Range:   rng,
	}
	body := &ast.Expression{Variant: ast.ExprBlock{Result: ifExpr}, Range: rng}
	return &ast.Expression{Variant: ast.ExprLoop{Body: body, Origin: ast.LoopOriginWhile}, Range: rng}
}

// forLoop lowers `for p in it { b }` into the iterator-protocol expansion:
//
//	{
//	    let __iter = it.iterator()
//	    loop {
//	        match __iter.next() {
//	            .some(p) -> b,
//	            .none -> break (),
//	        }
//	    }
//	}
//
// (§4.3). The binding name is synthetic and scoped to this block alone, so
// nested for-loops never collide.
func (d *Desugarer) forLoop(v cst.ExprLoop, rng source.Range) *ast.Expression {
	const iterName = "__iter"

	iterable := d.expr(v.Iterable)
	iteratorCall := &ast.Expression{
		Variant: ast.ExprMethodCall{Receiver: iterable, Method: "iterator"},
		Range:   iterable.Range,
	}
	letStmt := &ast.Expression{
		Variant: ast.ExprLet{Pattern: &ast.Pattern{Variant: ast.PatternName{Name: iterName}, Range: rng}, Value: iteratorCall},
		Range:   rng,
	}

	iterPath := &ast.Expression{Variant: ast.ExprPath{Path: ast.Path{PrimaryName: iterName, Range: rng}}, Range: rng}
	nextCall := &ast.Expression{Variant: ast.ExprMethodCall{Receiver: iterPath, Method: "next"}, Range: rng}

	somePat := &ast.Pattern{
		Variant: ast.PatternConstructor{Name: ast.Path{PrimaryName: "some", Range: rng}, Elements: []*ast.Pattern{d.pattern(v.Pattern)}, Abbreviated: true},
		Range:   rng,
	}
	nonePat := &ast.Pattern{Variant: ast.PatternConstructor{Name: ast.Path{PrimaryName: "none", Range: rng}, Abbreviated: true}, Range: rng}

	body := d.expr(v.Body)
	matchExpr := &ast.Expression{
		Variant: ast.ExprMatch{
			Scrutinee: nextCall,
			Arms: []ast.MatchArm{
				{Pattern: somePat, Body: body},
				{Pattern: nonePat, Body: syntheticBreakUnit()},
			},
		},
		Range: rng,
	}
	loopExpr := &ast.Expression{
		Variant: ast.ExprLoop{Body: &ast.Expression{Variant: ast.ExprBlock{Result: matchExpr}, Range: rng}, Origin: ast.LoopOriginFor},
		Range:   rng,
	}

	return &ast.Expression{
		Variant: ast.ExprBlock{Statements: []*ast.Expression{letStmt}, Result: loopExpr},
		Range:   rng,
	}
}
