package ast

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Expression is the desugared representation of an expression (§3.5).
type Expression struct {
	Variant ExpressionVariant
	Range   source.Range
}

// Span implements Node.
func (e *Expression) Span() source.Range { return e.Range }

// ExpressionVariant is the closed set of expression syntaxes produced by
// the desugarer.
type ExpressionVariant interface {
	expressionVariant()
}

// ExprLiteral is a fully-parsed literal value.
type ExprLiteral struct {
	Value any // int64, float64, rune, string, or bool
}

func (ExprLiteral) expressionVariant() {}

// ExprPath is a name reference.
type ExprPath struct {
	Path Path
}

func (ExprPath) expressionVariant() {}

// ExprHole is `???`.
type ExprHole struct{}

func (ExprHole) expressionVariant() {}

// ExprTuple is `(e1, e2, ...)`.
type ExprTuple struct {
	Elements []*Expression
}

func (ExprTuple) expressionVariant() {}

// ExprArray is `[e1, e2, ...]`.
type ExprArray struct {
	Elements []*Expression
}

func (ExprArray) expressionVariant() {}

// ExprStructInitializer is `Name { field: e, ... }`.
type ExprStructInitializer struct {
	Name   Path
	Fields []StructInitField
}

func (ExprStructInitializer) expressionVariant() {}

// StructInitField is one initializer field; Value is nil for the `name`
// punning shorthand.
type StructInitField struct {
	Name  string
	Value *Expression
}

// ExprBlock is `{ (e ';')* [e] }`. A block with no trailing result
// expression is unit-valued; the desugarer never inserts a synthetic unit
// literal here, letting the resolver type the block as `()` directly.
type ExprBlock struct {
	Statements []*Expression
	Result     *Expression
}

func (ExprBlock) expressionVariant() {}

// ExprInvocation is `e(a1, a2, ...)`.
type ExprInvocation struct {
	Invocable *Expression
	Arguments []Argument
}

func (ExprInvocation) expressionVariant() {}

// Argument is one call argument, optionally named.
type Argument struct {
	Name  string // empty when positional
	Value *Expression
}

// ExprFieldAccess is `e.lower`.
type ExprFieldAccess struct {
	Base  *Expression
	Field string
}

func (ExprFieldAccess) expressionVariant() {}

// ExprTupleIndex is `e.N`.
type ExprTupleIndex struct {
	Base  *Expression
	Index int
}

func (ExprTupleIndex) expressionVariant() {}

// ExprArrayIndex is `e.[e]`.
type ExprArrayIndex struct {
	Base  *Expression
	Index *Expression
}

func (ExprArrayIndex) expressionVariant() {}

// ExprMethodCall is `e.m[t,...](a,...)`.
type ExprMethodCall struct {
	Receiver          *Expression
	Method            string
	TemplateArguments []TemplateArgument
	Arguments         []Argument
}

func (ExprMethodCall) expressionVariant() {}

// ExprOperatorCall is the desugared form of one link of an operator chain:
// a call to the function named by Operator with Left and Right as its two
// arguments. A chain `a op1 b op2 c` lowers to
// ExprOperatorCall{Operator: op2, Left: ExprOperatorCall{op1, a, b}, Right: c},
// i.e. left-associative nesting, since the parser does not resolve
// relative operator precedence (§4.2/§4.3).
type ExprOperatorCall struct {
	Operator string
	Left     *Expression
	Right    *Expression
}

func (ExprOperatorCall) expressionVariant() {}

// ExprConditional is a fully-collapsed `if`/`else` (elif chains and
// else-less ifs are both lowered away by the desugarer, §4.3).
type ExprConditional struct {
	Condition *Expression
	Then      *Expression // an ExprBlock
	Else      *Expression // an ExprBlock or nested ExprConditional; never nil after desugaring
	FromElif  bool        // true if this node stood for a surface `elif` clause
}

func (ExprConditional) expressionVariant() {}

// ExprMatch is `match e { pat -> e, ... }`.
type ExprMatch struct {
	Scrutinee *Expression
	Arms      []MatchArm
}

func (ExprMatch) expressionVariant() {}

// MatchArm is one `pattern -> expression` entry.
type MatchArm struct {
	Pattern *Pattern
	Body    *Expression
}

// LoopOrigin records which surface form produced an ExprLoop, retained
// purely so diagnostics can say "while" or "for" instead of "loop"
// (§4.3).
type LoopOrigin int

const (
	LoopOriginLoop LoopOrigin = iota
	LoopOriginWhile
	LoopOriginFor
)

// ExprLoop is the single desugared loop primitive: an unconditional
// `loop { body }`. `while c { b }` lowers to
// `loop { if c { b } else { break () } }`; `for p in it { b }` lowers to
// the iterator-protocol expansion described in §4.3. Origin is kept for
// diagnostics only; it carries no semantic weight after desugaring.
type ExprLoop struct {
	Body   *Expression // an ExprBlock
	Origin LoopOrigin
}

func (ExprLoop) expressionVariant() {}

// ExprLet is `let [pat [: t]] = e`.
type ExprLet struct {
	Pattern *Pattern
	Type    *Type
	Value   *Expression
}

func (ExprLet) expressionVariant() {}

// ExprLocalAlias is a block-scoped `alias Name = type`.
type ExprLocalAlias struct {
	Name string
	Type *Type
}

func (ExprLocalAlias) expressionVariant() {}

// ExprAddressOf is `&[mut] e`.
type ExprAddressOf struct {
	Mutability Mutability
	Operand    *Expression
}

func (ExprAddressOf) expressionVariant() {}

// ExprDereference is `*e`.
type ExprDereference struct {
	Operand *Expression
}

func (ExprDereference) expressionVariant() {}

// ExprSizeof is `sizeof(t)`.
type ExprSizeof struct {
	Type *Type
}

func (ExprSizeof) expressionVariant() {}

// ExprMove is `mov e`.
type ExprMove struct {
	Operand *Expression
}

func (ExprMove) expressionVariant() {}

// ExprDefer is `defer e`.
type ExprDefer struct {
	Operand *Expression
}

func (ExprDefer) expressionVariant() {}

// ExprUnsafe is `unsafe e`.
type ExprUnsafe struct {
	Operand *Expression
}

func (ExprUnsafe) expressionVariant() {}

// ExprMeta is `meta(e)`.
type ExprMeta struct {
	Operand *Expression
}

func (ExprMeta) expressionVariant() {}

// ExprBreak is `break [e]`. BreakSyntheticUnit is set by the while-loop
// desugaring's synthesized `break ()`, so diagnostics can distinguish it
// from a user-written `break`.
type ExprBreak struct {
	Value              *Expression
	BreakSyntheticUnit bool
}

func (ExprBreak) expressionVariant() {}

// ExprContinue is `continue`.
type ExprContinue struct{}

func (ExprContinue) expressionVariant() {}

// ExprRet is `ret [e]`.
type ExprRet struct {
	Value *Expression
}

func (ExprRet) expressionVariant() {}

// ExprDiscard is `discard e`.
type ExprDiscard struct {
	Operand *Expression
}

func (ExprDiscard) expressionVariant() {}

// ExprCast is `e as t`.
type ExprCast struct {
	Operand *Expression
	Type    *Type
}

func (ExprCast) expressionVariant() {}

// ExprAscription is `e : t`.
type ExprAscription struct {
	Operand *Expression
	Type    *Type
}

func (ExprAscription) expressionVariant() {}

// ExprError stands in for an expression the parser could not make sense
// of.
type ExprError struct{}

func (ExprError) expressionVariant() {}
