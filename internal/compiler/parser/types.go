package parser

import (
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
)

var primitiveTypeKinds = map[lexer.TokenKind]bool{
	lexer.TOKEN_I8: true, lexer.TOKEN_I16: true, lexer.TOKEN_I32: true, lexer.TOKEN_I64: true,
	lexer.TOKEN_U8: true, lexer.TOKEN_U16: true, lexer.TOKEN_U32: true, lexer.TOKEN_U64: true,
	lexer.TOKEN_FLOAT: true, lexer.TOKEN_CHAR: true, lexer.TOKEN_BOOL: true, lexer.TOKEN_STRING: true,
}

func (p *Parser) parseType() *cst.Type {
	start := p.peek()
	var variant cst.TypeVariant

	switch {
	case primitiveTypeKinds[p.peek().Kind]:
		tok := p.advance()
		variant = cst.TypePrimitive{Name: tok.Lexeme, Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_UPPER_SELF):
		tok := p.advance()
		variant = cst.TypeSelf{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_UNDERSCORE):
		tok := p.advance()
		variant = cst.TypeWildcard{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_FN):
		variant = p.parseFunctionType()
	case p.check(lexer.TOKEN_TYPEOF):
		variant = p.parseTypeofType()
	case p.check(lexer.TOKEN_AMPERSAND):
		variant = p.parseReferenceType()
	case p.check(lexer.TOKEN_ASTERISK):
		variant = p.parsePointerType()
	case p.check(lexer.TOKEN_IMPL):
		tok := p.advance()
		variant = cst.TypeImplOf{Concepts: p.parsePlusSeparatedQualifiers(), Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_DYN):
		tok := p.advance()
		variant = cst.TypeDyn{Concepts: p.parsePlusSeparatedQualifiers(), Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_LPAREN):
		open := p.advance()
		elements := p.parseSeparatedTypes(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		variant = cst.TypeTuple{Types: elements, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	case p.check(lexer.TOKEN_LBRACKET):
		variant = p.parseArrayOrSliceType()
	default:
		variant = p.parsePathType()
	}

	return &cst.Type{Variant: variant, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseFunctionType() cst.TypeFunction {
	fnToken := p.advance()
	open := p.consume(lexer.TOKEN_LPAREN, "'('")
	params := p.parseSeparatedTypes(lexer.TOKEN_RPAREN)
	close := p.consume(lexer.TOKEN_RPAREN, "')'")
	fn := cst.TypeFunction{Parameters: params, FnToken: p.cstToken(fnToken), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	if p.check(lexer.TOKEN_COLON) {
		tok := p.cstToken(p.advance())
		fn.ColonToken = &tok
		fn.Return = p.parseType()
	}
	return fn
}

func (p *Parser) parseTypeofType() cst.TypeTypeof {
	tok := p.advance()
	open := p.consume(lexer.TOKEN_LPAREN, "'('")
	expr := p.parseExpression()
	close := p.consume(lexer.TOKEN_RPAREN, "')'")
	return cst.TypeTypeof{Expression: expr, Token: p.cstToken(tok), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}

func (p *Parser) parseReferenceType() cst.TypeReference {
	amp := p.advance()
	var mut *cst.Mutability
	if p.check(lexer.TOKEN_MUT) {
		kw := p.advance()
		m := cst.Mutability{IsMutable: true, KeywordToken: p.cstToken(kw), Range: p.tokenRange(kw)}
		mut = &m
	}
	return cst.TypeReference{Mutability: mut, Referenced: p.parseType(), Ampersand: p.cstToken(amp)}
}

func (p *Parser) parsePointerType() cst.TypePointer {
	star := p.advance()
	var mut *cst.Mutability
	if p.check(lexer.TOKEN_MUT) {
		kw := p.advance()
		m := cst.Mutability{IsMutable: true, KeywordToken: p.cstToken(kw), Range: p.tokenRange(kw)}
		mut = &m
	}
	return cst.TypePointer{Mutability: mut, Pointee: p.parseType(), Asterisk: p.cstToken(star)}
}

func (p *Parser) parseArrayOrSliceType() cst.TypeVariant {
	open := p.advance()
	elem := p.parseType()
	if p.check(lexer.TOKEN_SEMICOLON) {
		semi := p.advance()
		length := p.parseExpression()
		close := p.consume(lexer.TOKEN_RBRACKET, "']'")
		return cst.TypeArray{Element: elem, Length: length, OpenToken: p.cstToken(open), Semicolon: p.cstToken(semi), CloseToken: p.cstToken(close)}
	}
	close := p.consume(lexer.TOKEN_RBRACKET, "']'")
	return cst.TypeSlice{Element: elem, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
}

func (p *Parser) parsePathType() cst.TypeVariant {
	name := p.parseFlexibleQualifiedName()
	targs := p.tryParseTemplateArguments()
	return cst.TypePath{Name: name, TemplateArguments: targs}
}

func (p *Parser) tryParseTemplateArguments() *cst.TemplateArguments {
	if !p.check(lexer.TOKEN_LBRACKET) {
		return nil
	}
	save := p.mark()
	open := p.advance()
	var elements []cst.SeparatedElement[cst.TemplateArgument]
	for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
		arg := p.parseTemplateArgument()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.TemplateArgument]{Value: arg, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	if !p.check(lexer.TOKEN_RBRACKET) {
		p.reset(save)
		return nil
	}
	close := p.advance()
	return &cst.TemplateArguments{
		Arguments:  cst.Separated[cst.TemplateArgument]{Elements: elements},
		OpenToken:  p.cstToken(open),
		CloseToken: p.cstToken(close),
	}
}

func (p *Parser) parseTemplateArgument() cst.TemplateArgument {
	start := p.peek()
	var arg cst.TemplateArgument
	switch {
	case p.check(lexer.TOKEN_UNDERSCORE):
		p.advance()
		arg.Wildcard = true
	case p.check(lexer.TOKEN_MUT), p.check(lexer.TOKEN_IMMUT):
		kw := p.advance()
		m := cst.Mutability{IsMutable: kw.Kind == lexer.TOKEN_MUT, KeywordToken: p.cstToken(kw), Range: p.tokenRange(kw)}
		arg.Mutability = &m
	default:
		if startsType(p.peek().Kind) {
			arg.Type = p.parseType()
		} else {
			arg.Expression = p.parseExpression()
		}
	}
	arg.Range = p.tokenRange(start).Cover(p.tokenRange(p.previous()))
	return arg
}

func startsType(k lexer.TokenKind) bool {
	switch k {
	case lexer.TOKEN_UPPER_NAME, lexer.TOKEN_UPPER_SELF, lexer.TOKEN_FN, lexer.TOKEN_TYPEOF,
		lexer.TOKEN_AMPERSAND, lexer.TOKEN_ASTERISK, lexer.TOKEN_IMPL, lexer.TOKEN_DYN,
		lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACKET:
		return true
	}
	return primitiveTypeKinds[k]
}
