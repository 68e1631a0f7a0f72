package parser

import (
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
)

// infixCandidateKinds are the token kinds the chain-collection loop in
// parseExpression treats as "an infix operator follows", once a complete
// operand has been parsed. '&' and '*' are ambiguous with their prefix
// (addressof/dereference) spellings; the ambiguity is resolved positionally,
// exactly as in the unary-vs-binary split familiar from C-family grammars:
// prefix forms are only tried while expecting a fresh operand, so by the
// time the chain loop runs, any '&'/'*' it sees must be infix.
var infixCandidateKinds = map[lexer.TokenKind]bool{
	lexer.TOKEN_OPERATOR_NAME: true,
	lexer.TOKEN_PLUS:          true,
	lexer.TOKEN_ASTERISK:      true,
	lexer.TOKEN_AMPERSAND:     true,
	lexer.TOKEN_PIPE:          true,
	lexer.TOKEN_QUESTION:      true,
}

// parseExpression parses one full expression, including its trailing
// operator chain. The chain is collected flat (§4.2); the desugarer later
// nests it left-associatively, without reordering by operator precedence.
func (p *Parser) parseExpression() *cst.Expression {
	start := p.peek()
	head := p.parseCastOrAscription()

	var links []cst.OperatorChainLink
	for infixCandidateKinds[p.peek().Kind] {
		opTok := p.advance()
		op := cst.OperatorName{Identifier: opTok.Lexeme, Token: p.cstToken(opTok)}
		operand := p.parseCastOrAscription()
		links = append(links, cst.OperatorChainLink{Operator: op, Operand: operand})
	}
	if len(links) == 0 {
		return head
	}
	return &cst.Expression{
		Variant: cst.ExprOperatorChain{Head: head, Sequence: links},
		Range:   p.tokenRange(start).Cover(p.tokenRange(p.previous())),
	}
}

// parseCastOrAscription handles the postfix `e as t` / `e : t` forms,
// which bind tighter than the operator chain but looser than postfix
// field/call access.
func (p *Parser) parseCastOrAscription() *cst.Expression {
	start := p.peek()
	e := p.parseUnary()
	for {
		switch {
		case p.check(lexer.TOKEN_AS):
			asTok := p.advance()
			typ := p.parseType()
			e = &cst.Expression{Variant: cst.ExprCast{Operand: e, Type: typ, AsToken: p.cstToken(asTok)}, Range: p.tokenRange(start).Cover(typ.Range)}
		case p.check(lexer.TOKEN_COLON) && !p.isLikelyStatementColon():
			colonTok := p.advance()
			typ := p.parseType()
			e = &cst.Expression{Variant: cst.ExprAscription{Operand: e, Type: typ, Colon: p.cstToken(colonTok)}, Range: p.tokenRange(start).Cover(typ.Range)}
		default:
			return e
		}
	}
}

// isLikelyStatementColon is a conservative guard: ascription never
// appears immediately before a token that can only start a block
// terminator, preventing `:` from being misread where it doesn't belong
// (there's no such context in this grammar today, kept for clarity and
// future-proofing against grammar additions that reuse ':').
func (p *Parser) isLikelyStatementColon() bool { return false }

// parseUnary handles the prefix operand-starting forms: &, *, mov, defer,
// unsafe, sizeof, meta, break, continue, ret, discard, let, and the local
// `alias` form, falling through to postfix/primary parsing otherwise.
func (p *Parser) parseUnary() *cst.Expression {
	start := p.peek()
	switch {
	case p.check(lexer.TOKEN_AMPERSAND):
		amp := p.advance()
		var mut *cst.Mutability
		if p.check(lexer.TOKEN_MUT) {
			kw := p.advance()
			m := cst.Mutability{IsMutable: true, KeywordToken: p.cstToken(kw), Range: p.tokenRange(kw)}
			mut = &m
		}
		operand := p.parseUnary()
		return &cst.Expression{Variant: cst.ExprAddressOf{Mutability: mut, Operand: operand, Ampersand: p.cstToken(amp)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_ASTERISK):
		star := p.advance()
		operand := p.parseUnary()
		return &cst.Expression{Variant: cst.ExprDereference{Operand: operand, Asterisk: p.cstToken(star)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_MOV):
		tok := p.advance()
		operand := p.parseUnary()
		return &cst.Expression{Variant: cst.ExprMove{Operand: operand, Token: p.cstToken(tok)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_DEFER):
		tok := p.advance()
		operand := p.parseExpression()
		return &cst.Expression{Variant: cst.ExprDefer{Operand: operand, Token: p.cstToken(tok)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_UNSAFE):
		tok := p.advance()
		operand := p.parseExpression()
		return &cst.Expression{Variant: cst.ExprUnsafe{Operand: operand, Token: p.cstToken(tok)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_SIZEOF):
		tok := p.advance()
		open := p.consume(lexer.TOKEN_LPAREN, "'('")
		typ := p.parseType()
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		return &cst.Expression{Variant: cst.ExprSizeof{Type: typ, Token: p.cstToken(tok), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
	case p.check(lexer.TOKEN_META):
		tok := p.advance()
		open := p.consume(lexer.TOKEN_LPAREN, "'('")
		operand := p.parseExpression()
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		return &cst.Expression{Variant: cst.ExprMeta{Operand: operand, Token: p.cstToken(tok), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
	case p.check(lexer.TOKEN_BREAK):
		tok := p.advance()
		var value *cst.Expression
		if p.startsExpression() {
			value = p.parseExpression()
		}
		rng := p.tokenRange(start)
		if value != nil {
			rng = rng.Cover(value.Range)
		}
		return &cst.Expression{Variant: cst.ExprBreak{Value: value, Token: p.cstToken(tok)}, Range: rng}
	case p.check(lexer.TOKEN_CONTINUE):
		tok := p.advance()
		return &cst.Expression{Variant: cst.ExprContinue{Token: p.cstToken(tok)}, Range: p.tokenRange(start)}
	case p.check(lexer.TOKEN_RET):
		tok := p.advance()
		var value *cst.Expression
		if p.startsExpression() {
			value = p.parseExpression()
		}
		rng := p.tokenRange(start)
		if value != nil {
			rng = rng.Cover(value.Range)
		}
		return &cst.Expression{Variant: cst.ExprRet{Value: value, Token: p.cstToken(tok)}, Range: rng}
	case p.check(lexer.TOKEN_DISCARD):
		tok := p.advance()
		operand := p.parseExpression()
		return &cst.Expression{Variant: cst.ExprDiscard{Operand: operand, Token: p.cstToken(tok)}, Range: p.tokenRange(start).Cover(operand.Range)}
	case p.check(lexer.TOKEN_LET):
		return p.parseLetExpression()
	case p.check(lexer.TOKEN_ALIAS):
		return p.parseLocalAliasExpression()
	default:
		return p.parsePostfix()
	}
}

// startsExpression reports whether the current token can begin an
// expression, used to distinguish a value-carrying `break`/`ret` from the
// bare form before a `}`, `;`, `,`, or `)`.
func (p *Parser) startsExpression() bool {
	switch p.peek().Kind {
	case lexer.TOKEN_RBRACE, lexer.TOKEN_SEMICOLON, lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN,
		lexer.TOKEN_RBRACKET, lexer.TOKEN_EOF:
		return false
	}
	return true
}

func (p *Parser) parseLetExpression() *cst.Expression {
	start := p.peek()
	letTok := p.advance()
	pat := p.parsePattern()
	e := cst.ExprLet{Pattern: pat, LetToken: p.cstToken(letTok)}
	if p.check(lexer.TOKEN_COLON) {
		colon := p.cstToken(p.advance())
		e.ColonToken = &colon
		e.Type = p.parseType()
	}
	eq := p.consume(lexer.TOKEN_EQUALS, "'='")
	e.EqualsToken = p.cstToken(eq)
	e.Value = p.parseExpression()
	return &cst.Expression{Variant: e, Range: p.tokenRange(start).Cover(e.Value.Range)}
}

func (p *Parser) parseLocalAliasExpression() *cst.Expression {
	start := p.peek()
	aliasTok := p.advance()
	name := p.parseUpperName()
	eq := p.consume(lexer.TOKEN_EQUALS, "'='")
	typ := p.parseType()
	e := cst.ExprLocalAlias{Name: name, Type: typ, AliasToken: p.cstToken(aliasTok), EqualsToken: p.cstToken(eq)}
	return &cst.Expression{Variant: e, Range: p.tokenRange(start).Cover(typ.Range)}
}

// parsePostfix parses a primary expression followed by any number of
// `.field`, `.N`, `.[e]`, `.m[t](a)`, and `(a)` postfix forms.
func (p *Parser) parsePostfix() *cst.Expression {
	start := p.peek()
	e := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.TOKEN_DOT):
			e = p.parseDotPostfix(start, e)
		case p.check(lexer.TOKEN_LPAREN):
			open := p.advance()
			args := p.parseArguments(lexer.TOKEN_RPAREN)
			close := p.consume(lexer.TOKEN_RPAREN, "')'")
			e = &cst.Expression{
				Variant: cst.ExprInvocation{Invocable: e, Arguments: args, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)},
				Range:   p.tokenRange(start).Cover(p.tokenRange(p.previous())),
			}
		default:
			return e
		}
	}
}

func (p *Parser) parseDotPostfix(start lexer.Token, e *cst.Expression) *cst.Expression {
	dot := p.advance()
	switch {
	case p.check(lexer.TOKEN_INTEGER_LITERAL):
		idx := p.advance()
		return &cst.Expression{
			Variant: cst.ExprTupleIndex{Base: e, Index: p.cstToken(idx), Dot: p.cstToken(dot)},
			Range:   p.tokenRange(start).Cover(p.tokenRange(idx)),
		}
	case p.check(lexer.TOKEN_LBRACKET):
		open := p.advance()
		index := p.parseExpression()
		close := p.consume(lexer.TOKEN_RBRACKET, "']'")
		return &cst.Expression{
			Variant: cst.ExprArrayIndex{Base: e, Index: index, Dot: p.cstToken(dot), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)},
			Range:   p.tokenRange(start).Cover(p.tokenRange(p.previous())),
		}
	default:
		name := p.parseLowerName()
		targs := p.tryParseTemplateArguments()
		if p.check(lexer.TOKEN_LPAREN) {
			open := p.advance()
			args := p.parseArguments(lexer.TOKEN_RPAREN)
			close := p.consume(lexer.TOKEN_RPAREN, "')'")
			return &cst.Expression{
				Variant: cst.ExprMethodCall{
					Receiver: e, Method: name, TemplateArguments: targs, Arguments: args,
					Dot: p.cstToken(dot), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close),
				},
				Range: p.tokenRange(start).Cover(p.tokenRange(p.previous())),
			}
		}
		return &cst.Expression{
			Variant: cst.ExprFieldAccess{Base: e, Field: name, Dot: p.cstToken(dot)},
			Range:   p.tokenRange(start).Cover(p.tokenRange(p.previous())),
		}
	}
}

func (p *Parser) parseArguments(end lexer.TokenKind) cst.Separated[cst.Argument] {
	var elements []cst.SeparatedElement[cst.Argument]
	for !p.check(end) && !p.isAtEnd() {
		arg := p.parseArgument()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.Argument]{Value: arg, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[cst.Argument]{Elements: elements}
}

func (p *Parser) parseArgument() cst.Argument {
	if p.check(lexer.TOKEN_LOWER_NAME) && p.peekAt(1).Kind == lexer.TOKEN_EQUALS {
		name := p.parseLowerName()
		eq := p.cstToken(p.advance())
		value := p.parseExpression()
		return cst.Argument{Name: &name, Equals: &eq, Value: value}
	}
	return cst.Argument{Value: p.parseExpression()}
}

func (p *Parser) parsePrimary() *cst.Expression {
	start := p.peek()
	var variant cst.ExpressionVariant

	switch {
	case isLiteralToken(p.peek().Kind):
		tok := p.advance()
		variant = cst.ExprLiteral{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_HOLE):
		tok := p.advance()
		variant = cst.ExprHole{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_LBRACE):
		return p.parseBlockExpression()
	case p.check(lexer.TOKEN_LPAREN):
		variant = p.parseTupleOrParenExpression()
	case p.check(lexer.TOKEN_LBRACKET):
		variant = p.parseArrayExpression()
	case p.check(lexer.TOKEN_IF):
		return p.parseConditionalExpression()
	case p.check(lexer.TOKEN_MATCH):
		variant = p.parseMatchExpression()
	case p.check(lexer.TOKEN_LOOP):
		tok := p.advance()
		body := p.parseBlockExpression()
		variant = cst.ExprLoop{Origin: cst.LoopOriginLoop, Body: body, Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_WHILE):
		tok := p.advance()
		cond := p.parseExpression()
		body := p.parseBlockExpression()
		variant = cst.ExprLoop{Origin: cst.LoopOriginWhile, Condition: cond, Body: body, Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_FOR):
		tok := p.advance()
		pat := p.parsePattern()
		inTok := p.consume(lexer.TOKEN_IN, "'in'")
		iterable := p.parseExpression()
		body := p.parseBlockExpression()
		inCst := p.cstToken(inTok)
		variant = cst.ExprLoop{Origin: cst.LoopOriginFor, Pattern: pat, Iterable: iterable, Body: body, Token: p.cstToken(tok), InToken: &inCst}
	case p.check(lexer.TOKEN_UPPER_NAME) && p.peekAt(1).Kind == lexer.TOKEN_LBRACE:
		variant = p.parseStructInitializer()
	default:
		name := p.parseFlexibleQualifiedName()
		targs := p.tryParseTemplateArguments()
		variant = cst.ExprPath{Name: name, TemplateArguments: targs}
	}

	return &cst.Expression{Variant: variant, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseTupleOrParenExpression() cst.ExpressionVariant {
	open := p.advance()
	if p.check(lexer.TOKEN_RPAREN) {
		close := p.advance()
		return cst.ExprTuple{OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	}
	first := p.parseExpression()
	if p.check(lexer.TOKEN_COMMA) {
		elements := []cst.SeparatedElement[*cst.Expression]{{Value: first, TrailingToken: commaTokenPtr(p)}}
		for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
			e := p.parseExpression()
			var trailing *cst.Token
			if p.check(lexer.TOKEN_COMMA) {
				tok := p.cstToken(p.advance())
				trailing = &tok
			}
			elements = append(elements, cst.SeparatedElement[*cst.Expression]{Value: e, TrailingToken: trailing})
			if trailing == nil {
				break
			}
		}
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		return cst.ExprTuple{Elements: cst.Separated[*cst.Expression]{Elements: elements}, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	}
	close := p.consume(lexer.TOKEN_RPAREN, "')'")
	return cst.ExprParenthesized{Inner: first, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}

// commaTokenPtr consumes the comma the caller already confirmed is
// present and returns it wrapped for a SeparatedElement's TrailingToken.
func commaTokenPtr(p *Parser) *cst.Token {
	tok := p.cstToken(p.advance())
	return &tok
}

func (p *Parser) parseArrayExpression() cst.ExpressionVariant {
	open := p.advance()
	var elements []cst.SeparatedElement[*cst.Expression]
	for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
		e := p.parseExpression()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[*cst.Expression]{Value: e, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	close := p.consume(lexer.TOKEN_RBRACKET, "']'")
	return cst.ExprArray{Elements: cst.Separated[*cst.Expression]{Elements: elements}, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}

func (p *Parser) parseStructInitializer() cst.ExpressionVariant {
	name := p.parseFlexibleQualifiedName()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")
	var elements []cst.SeparatedElement[cst.StructInitField]
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		fieldName := p.parseLowerName()
		field := cst.StructInitField{Name: fieldName}
		if p.check(lexer.TOKEN_COLON) {
			colon := p.cstToken(p.advance())
			field.Colon = &colon
			field.Value = p.parseExpression()
		}
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.StructInitField]{Value: field, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")
	return cst.ExprStructInitializer{Name: name, Fields: cst.Separated[cst.StructInitField]{Elements: elements}, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}

func (p *Parser) parseBlockExpression() *cst.Expression {
	start := p.peek()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")
	var stmts []cst.BlockStatement
	var result *cst.Expression
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		e := p.parseExpression()
		if p.check(lexer.TOKEN_SEMICOLON) {
			semi := p.advance()
			stmts = append(stmts, cst.BlockStatement{Expression: e, Semicolon: p.cstToken(semi)})
			continue
		}
		result = e
		break
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")
	return &cst.Expression{
		Variant: cst.ExprBlock{Statements: stmts, Result: result, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)},
		Range:   p.tokenRange(start).Cover(p.tokenRange(p.previous())),
	}
}

// parseConditionalExpression parses `if`, and recursively `elif`/`else`,
// preserving elif-vs-else in the CST for the formatter (§4.2/§4.3).
func (p *Parser) parseConditionalExpression() *cst.Expression {
	return p.parseIfOrElif(false)
}

func (p *Parser) parseIfOrElif(isElif bool) *cst.Expression {
	start := p.peek()
	ifTok := p.advance() // 'if' or 'elif'
	cond := p.parseExpression()
	then := p.parseBlockExpression()

	cond2 := cst.ExprConditional{Condition: cond, Then: then, IsElif: isElif, IfToken: p.cstToken(ifTok)}
	if p.check(lexer.TOKEN_ELIF) {
		elseBranch := p.parseIfOrElif(true)
		cond2.Else = elseBranch
	} else if p.check(lexer.TOKEN_ELSE) {
		elseTok := p.advance()
		elseCst := p.cstToken(elseTok)
		cond2.ElseToken = &elseCst
		cond2.Else = p.parseBlockExpression()
	}
	return &cst.Expression{Variant: cond2, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseMatchExpression() cst.ExpressionVariant {
	matchTok := p.advance()
	scrutinee := p.parseExpression()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")
	var arms []cst.MatchArm
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		pat := p.parsePattern()
		arrow := p.consume(lexer.TOKEN_RIGHT_ARROW, "'->'")
		body := p.parseExpression()
		arm := cst.MatchArm{Pattern: pat, Body: body, Arrow: p.cstToken(arrow)}
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			arm.Comma = &tok
		}
		arms = append(arms, arm)
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")
	return cst.ExprMatch{Scrutinee: scrutinee, Arms: arms, MatchToken: p.cstToken(matchTok), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}
