package cst

import "github.com/kieli-lang/kieli/internal/compiler/source"

// Expression is the CST representation of an expression (§3.5).
type Expression struct {
	Variant ExpressionVariant
	Range   source.Range
}

// Span implements Node.
func (e *Expression) Span() source.Range { return e.Range }

// ExpressionVariant is the closed set of expression syntaxes.
type ExpressionVariant interface {
	expressionVariant()
}

// ExprLiteral is an integer/floating/character/string/boolean literal.
type ExprLiteral struct {
	Token Token
}

func (ExprLiteral) expressionVariant() {}

// ExprPath is a name reference, possibly qualified and/or template-applied.
type ExprPath struct {
	Name              QualifiedName
	TemplateArguments *TemplateArguments
}

func (ExprPath) expressionVariant() {}

// ExprHole is `???`, a placeholder the resolver types as a fresh
// unification variable, without reporting a diagnostic.
type ExprHole struct {
	Token Token
}

func (ExprHole) expressionVariant() {}

// ExprTuple is `(e1, e2, ...)`.
type ExprTuple struct {
	Elements   Separated[*Expression]
	OpenToken  Token
	CloseToken Token
}

func (ExprTuple) expressionVariant() {}

// ExprArray is `[e1, e2, ...]`.
type ExprArray struct {
	Elements   Separated[*Expression]
	OpenToken  Token
	CloseToken Token
}

func (ExprArray) expressionVariant() {}

// ExprStructInitializer is `Name { field: e, ... }`.
type ExprStructInitializer struct {
	Name       QualifiedName
	Fields     Separated[StructInitField]
	OpenToken  Token
	CloseToken Token
}

func (ExprStructInitializer) expressionVariant() {}

// StructInitField is one `name: e` or `name` (shorthand) entry.
type StructInitField struct {
	Name  LowerName
	Value *Expression // nil for shorthand, meaning the field value is a same-named binding
	Colon *Token
}

// ExprBlock is `{ (e ';')* [e] }`.
type ExprBlock struct {
	Statements []BlockStatement
	Result     *Expression // nil when the block ends in `;` (unit-valued)
	OpenToken  Token
	CloseToken Token
}

func (ExprBlock) expressionVariant() {}

// BlockStatement is one semicolon-terminated expression inside a block.
type BlockStatement struct {
	Expression *Expression
	Semicolon  Token
}

// ExprInvocation is `e(a1, a2, ...)`.
type ExprInvocation struct {
	Invocable  *Expression
	Arguments  Separated[Argument]
	OpenToken  Token
	CloseToken Token
}

func (ExprInvocation) expressionVariant() {}

// Argument is one call argument, optionally named (`name = e`).
type Argument struct {
	Name   *LowerName
	Equals *Token
	Value  *Expression
}

// ExprFieldAccess is `e.lower`.
type ExprFieldAccess struct {
	Base  *Expression
	Field LowerName
	Dot   Token
}

func (ExprFieldAccess) expressionVariant() {}

// ExprTupleIndex is `e.N` for a tuple field index N.
type ExprTupleIndex struct {
	Base  *Expression
	Index Token
	Dot   Token
}

func (ExprTupleIndex) expressionVariant() {}

// ExprArrayIndex is `e.[e]`.
type ExprArrayIndex struct {
	Base       *Expression
	Index      *Expression
	Dot        Token
	OpenToken  Token
	CloseToken Token
}

func (ExprArrayIndex) expressionVariant() {}

// ExprMethodCall is `e.m[t,...](a,...)`.
type ExprMethodCall struct {
	Receiver          *Expression
	Method            LowerName
	TemplateArguments *TemplateArguments
	Arguments         Separated[Argument]
	Dot               Token
	OpenToken         Token
	CloseToken        Token
}

func (ExprMethodCall) expressionVariant() {}

// ExprOperatorChain is `e op e op e ...`: a flat spine of binary operators
// as written (§4.2/§4.3). The desugarer nests the chain left-associatively;
// operators are not reordered by precedence.
type ExprOperatorChain struct {
	Head     *Expression
	Sequence []OperatorChainLink
}

func (ExprOperatorChain) expressionVariant() {}

// OperatorChainLink is one `op operand` pair in an operator chain.
type OperatorChainLink struct {
	Operator OperatorName
	Operand  *Expression
}

// ExprConditional is an `if`/`elif`/`else` chain. `elif` is pure syntactic
// sugar, preserved here (via IsElif) so the formatter can reproduce it, and
// collapsed into nested if/else by the desugarer (§4.3).
type ExprConditional struct {
	Condition *Expression
	Then      *Expression // always an ExprBlock
	Else      *Expression // nil, an ExprBlock, or a nested ExprConditional
	IsElif    bool
	IfToken   Token
	ElseToken *Token
}

func (ExprConditional) expressionVariant() {}

// ExprMatch is `match e { pat -> e, ... }`.
type ExprMatch struct {
	Scrutinee  *Expression
	Arms       []MatchArm
	MatchToken Token
	OpenToken  Token
	CloseToken Token
}

func (ExprMatch) expressionVariant() {}

// MatchArm is one `pattern -> expression` entry.
type MatchArm struct {
	Pattern *Pattern
	Body    *Expression
	Arrow   Token
	Comma   *Token
}

// LoopOrigin records which surface form produced an ExprLoop, purely for
// diagnostics (§4.3 desugarer note).
type LoopOrigin int

const (
	LoopOriginLoop LoopOrigin = iota
	LoopOriginWhile
	LoopOriginFor
)

// ExprLoop is `loop { b }`, `while c { b }`, or `for p in e { b }`. The
// latter two are surface sugar; the desugarer lowers them into AST loop
// nodes built from this same shape plus synthesized conditionals/breaks.
type ExprLoop struct {
	Origin    LoopOrigin
	Condition *Expression // set when Origin == LoopOriginWhile
	Pattern   *Pattern    // set when Origin == LoopOriginFor
	Iterable  *Expression // set when Origin == LoopOriginFor
	Body      *Expression // always an ExprBlock
	Token     Token
	InToken   *Token
}

func (ExprLoop) expressionVariant() {}

// ExprLet is `let [pat [: t]] = e`.
type ExprLet struct {
	Pattern    *Pattern
	Type       *Type
	Value      *Expression
	LetToken   Token
	ColonToken *Token
	EqualsToken Token
}

func (ExprLet) expressionVariant() {}

// ExprLocalAlias is `alias Name = type` used as a local (block-scoped)
// item rather than a top-level definition.
type ExprLocalAlias struct {
	Name        UpperName
	Type        *Type
	AliasToken  Token
	EqualsToken Token
}

func (ExprLocalAlias) expressionVariant() {}

// ExprAddressOf is `&[mut] e`.
type ExprAddressOf struct {
	Mutability *Mutability
	Operand    *Expression
	Ampersand  Token
}

func (ExprAddressOf) expressionVariant() {}

// ExprDereference is `*e`.
type ExprDereference struct {
	Operand  *Expression
	Asterisk Token
}

func (ExprDereference) expressionVariant() {}

// ExprSizeof is `sizeof(t)`.
type ExprSizeof struct {
	Type       *Type
	Token      Token
	OpenToken  Token
	CloseToken Token
}

func (ExprSizeof) expressionVariant() {}

// ExprMove is `mov e`.
type ExprMove struct {
	Operand *Expression
	Token   Token
}

func (ExprMove) expressionVariant() {}

// ExprDefer is `defer e`.
type ExprDefer struct {
	Operand *Expression
	Token   Token
}

func (ExprDefer) expressionVariant() {}

// ExprUnsafe is `unsafe e`, opening an unsafe-operation-permitting frame
// for the duration of e (§4.4.6).
type ExprUnsafe struct {
	Operand *Expression
	Token   Token
}

func (ExprUnsafe) expressionVariant() {}

// ExprMeta is `meta(e)`, a compile-time metaprogramming escape hatch that
// this implementation resolves e but does not evaluate (§9 Open Question).
type ExprMeta struct {
	Operand    *Expression
	Token      Token
	OpenToken  Token
	CloseToken Token
}

func (ExprMeta) expressionVariant() {}

// ExprBreak is `break [e]`.
type ExprBreak struct {
	Value *Expression
	Token Token
}

func (ExprBreak) expressionVariant() {}

// ExprContinue is `continue`.
type ExprContinue struct {
	Token Token
}

func (ExprContinue) expressionVariant() {}

// ExprRet is `ret [e]`.
type ExprRet struct {
	Value *Expression
	Token Token
}

func (ExprRet) expressionVariant() {}

// ExprDiscard is `discard e`: evaluate e and drop its (non-unit) value
// without a style warning.
type ExprDiscard struct {
	Operand *Expression
	Token   Token
}

func (ExprDiscard) expressionVariant() {}

// ExprCast is `e as t`.
type ExprCast struct {
	Operand *Expression
	Type    *Type
	AsToken Token
}

func (ExprCast) expressionVariant() {}

// ExprAscription is `e : t`, a type hint consumed by inference without
// performing a runtime conversion.
type ExprAscription struct {
	Operand *Expression
	Type    *Type
	Colon   Token
}

func (ExprAscription) expressionVariant() {}

// ExprParenthesized wraps `(e)` purely to retain the parenthesis tokens
// for reformatting; it carries no semantic meaning beyond its operand.
type ExprParenthesized struct {
	Inner      *Expression
	OpenToken  Token
	CloseToken Token
}

func (ExprParenthesized) expressionVariant() {}
