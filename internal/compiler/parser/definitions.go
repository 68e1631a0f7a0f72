package parser

import (
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
)

func (p *Parser) parseDefinition() *cst.Definition {
	switch p.peek().Kind {
	case lexer.TOKEN_FN:
		return p.parseFunctionDefinition()
	case lexer.TOKEN_STRUCT:
		return p.parseStructDefinition()
	case lexer.TOKEN_ENUM:
		return p.parseEnumDefinition()
	case lexer.TOKEN_ALIAS:
		return p.parseAliasDefinition()
	case lexer.TOKEN_CONCEPT:
		return p.parseConceptDefinition()
	case lexer.TOKEN_IMPL:
		return p.parseImplDefinition()
	case lexer.TOKEN_MODULE:
		return p.parseSubmoduleDefinition()
	default:
		p.reportExpected("a definition (fn, struct, enum, alias, concept, impl, or module)")
		return nil
	}
}

func (p *Parser) parseTemplateParameters() *cst.TemplateParameters {
	if !p.check(lexer.TOKEN_LBRACKET) {
		return nil
	}
	open := p.advance()
	tp := &cst.TemplateParameters{OpenToken: p.cstToken(open)}
	var elements []cst.SeparatedElement[cst.TemplateParameter]
	for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
		param := p.parseTemplateParameter()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.TemplateParameter]{Value: param, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	tp.Parameters = cst.Separated[cst.TemplateParameter]{Elements: elements}
	tp.CloseToken = p.cstToken(p.consume(lexer.TOKEN_RBRACKET, "']'"))
	return tp
}

func (p *Parser) parseTemplateParameter() cst.TemplateParameter {
	start := p.peek()
	var param cst.TemplateParameter
	switch {
	case p.check(lexer.TOKEN_QUESTION):
		p.advance()
		name := p.parseLowerName()
		param = cst.TemplateParameter{Kind: cst.TemplateParamMutability, Name: name.Identifier}
	case p.check(lexer.TOKEN_UPPER_NAME):
		name := p.parseUpperName()
		param = cst.TemplateParameter{Kind: cst.TemplateParamType, Name: name.Identifier}
		if p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_COLON) {
			p.advance()
			classes := p.parsePlusSeparatedQualifiers()
			param.Classes = &classes
		}
	default:
		name := p.parseLowerName()
		param = cst.TemplateParameter{Kind: cst.TemplateParamValue, Name: name.Identifier}
		if p.match(lexer.TOKEN_COLON) {
			param.Type = p.parseType()
		}
	}
	if p.match(lexer.TOKEN_EQUALS) {
		arg := p.parseTemplateArgument()
		param.Default = &arg
	}
	param.Range = p.tokenRange(start).Cover(p.tokenRange(p.previous()))
	return param
}

func (p *Parser) parsePlusSeparatedQualifiers() cst.Separated[cst.Qualifier] {
	var elements []cst.SeparatedElement[cst.Qualifier]
	for {
		q := p.parseQualifierSegment()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_PLUS) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.Qualifier]{Value: q, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[cst.Qualifier]{Elements: elements}
}

func (p *Parser) parseQualifierSegment() cst.Qualifier {
	name := p.parseLowerName()
	return cst.Qualifier{Name: name, DoubleColonToken: cst.Token{}}
}

func (p *Parser) parseSelfParameter() *cst.SelfParameter {
	start := p.mark()
	var ref bool
	var mut *cst.Mutability
	if p.check(lexer.TOKEN_AMPERSAND) {
		amp := p.advance()
		ref = true
		if p.check(lexer.TOKEN_MUT) {
			kw := p.advance()
			m := cst.Mutability{IsMutable: true, KeywordToken: p.cstToken(kw), Range: p.tokenRange(amp)}
			mut = &m
		}
	}
	if !p.check(lexer.TOKEN_LOWER_SELF) {
		p.reset(start)
		return nil
	}
	tok := p.advance()
	return &cst.SelfParameter{Mutability: mut, Reference: ref, Token: p.cstToken(tok)}
}

func (p *Parser) parseFunctionSignature() cst.FunctionSignature {
	open := p.consume(lexer.TOKEN_LPAREN, "'('")
	sig := cst.FunctionSignature{OpenToken: p.cstToken(open)}
	sig.Self = p.parseSelfParameter()
	if sig.Self != nil && p.check(lexer.TOKEN_COMMA) {
		p.advance()
	}
	var elements []cst.SeparatedElement[cst.FunctionParameter]
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		param := p.parseFunctionParameter()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.FunctionParameter]{Value: param, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	sig.Parameters = cst.Separated[cst.FunctionParameter]{Elements: elements}
	sig.CloseToken = p.cstToken(p.consume(lexer.TOKEN_RPAREN, "')'"))
	if p.check(lexer.TOKEN_COLON) {
		tok := p.cstToken(p.advance())
		sig.ColonToken = &tok
		sig.Return = p.parseType()
	}
	return sig
}

func (p *Parser) parseFunctionParameter() cst.FunctionParameter {
	pat := p.parsePattern()
	param := cst.FunctionParameter{Pattern: pat}
	if p.match(lexer.TOKEN_COLON) {
		param.Type = p.parseType()
	}
	if p.check(lexer.TOKEN_EQUALS) {
		p.advance()
		param.Default = p.parseExpression()
	}
	return param
}

func (p *Parser) parseFunctionDefinition() *cst.Definition {
	start := p.peek()
	fnToken := p.advance()
	name := p.parseLowerName()
	tparams := p.parseTemplateParameters()
	sig := p.parseFunctionSignature()

	def := cst.DefFunction{Name: name, TemplateParameters: tparams, Signature: sig, FnToken: p.cstToken(fnToken)}
	if p.check(lexer.TOKEN_EQUALS) {
		eq := p.cstToken(p.advance())
		def.EqualsToken = &eq
		def.Body = p.parseExpression()
	} else {
		def.Body = p.parseBlockExpression()
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseStructDefinition() *cst.Definition {
	start := p.peek()
	structToken := p.advance()
	name := p.parseUpperName()
	tparams := p.parseTemplateParameters()

	def := cst.DefStruct{Name: name, TemplateParameters: tparams, StructToken: p.cstToken(structToken)}
	switch {
	case p.check(lexer.TOKEN_LPAREN):
		open := p.advance()
		fields := p.parseSeparatedTypes(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		def.TupleFields, def.OpenToken, def.CloseToken = &fields, &openTok, &closeTok
	case p.check(lexer.TOKEN_LBRACE):
		open := p.advance()
		fields := p.parseStructFields()
		close := p.consume(lexer.TOKEN_RBRACE, "'}'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		def.NamedFields, def.OpenToken, def.CloseToken = &fields, &openTok, &closeTok
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseSeparatedTypes(end lexer.TokenKind) cst.Separated[*cst.Type] {
	var elements []cst.SeparatedElement[*cst.Type]
	for !p.check(end) && !p.isAtEnd() {
		t := p.parseType()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[*cst.Type]{Value: t, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[*cst.Type]{Elements: elements}
}

func (p *Parser) parseStructFields() cst.Separated[cst.StructField] {
	var elements []cst.SeparatedElement[cst.StructField]
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		name := p.parseLowerName()
		colon := p.consume(lexer.TOKEN_COLON, "':'")
		typ := p.parseType()
		field := cst.StructField{Name: name, Type: typ, Colon: p.cstToken(colon)}
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.StructField]{Value: field, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[cst.StructField]{Elements: elements}
}

func (p *Parser) parseEnumDefinition() *cst.Definition {
	start := p.peek()
	enumToken := p.advance()
	name := p.parseUpperName()
	tparams := p.parseTemplateParameters()
	equals := p.consume(lexer.TOKEN_EQUALS, "'='")

	var elements []cst.SeparatedElement[cst.EnumConstructor]
	for {
		ctor := p.parseEnumConstructor()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_PIPE) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.EnumConstructor]{Value: ctor, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}

	def := cst.DefEnum{
		Name: name, TemplateParameters: tparams,
		Constructors: cst.Separated[cst.EnumConstructor]{Elements: elements},
		EnumToken:    p.cstToken(enumToken),
		EqualsToken:  p.cstToken(equals),
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseEnumConstructor() cst.EnumConstructor {
	name := p.parseUpperName()
	ctor := cst.EnumConstructor{Name: name}
	switch {
	case p.check(lexer.TOKEN_LPAREN):
		open := p.advance()
		fields := p.parseSeparatedTypes(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		ctor.TupleFields, ctor.OpenToken, ctor.CloseToken = &fields, &openTok, &closeTok
	case p.check(lexer.TOKEN_LBRACE):
		open := p.advance()
		fields := p.parseStructFields()
		close := p.consume(lexer.TOKEN_RBRACE, "'}'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		ctor.NamedFields, ctor.OpenToken, ctor.CloseToken = &fields, &openTok, &closeTok
	}
	return ctor
}

func (p *Parser) parseAliasDefinition() *cst.Definition {
	start := p.peek()
	aliasToken := p.advance()
	name := p.parseUpperName()
	tparams := p.parseTemplateParameters()
	equals := p.consume(lexer.TOKEN_EQUALS, "'='")
	typ := p.parseType()
	def := cst.DefAlias{Name: name, TemplateParameters: tparams, Type: typ, AliasToken: p.cstToken(aliasToken), EqualsToken: p.cstToken(equals)}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseConceptDefinition() *cst.Definition {
	start := p.peek()
	conceptToken := p.advance()
	name := p.parseUpperName()
	tparams := p.parseTemplateParameters()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")

	var sigs []cst.ConceptSignature
	for p.check(lexer.TOKEN_FN) {
		fnToken := p.advance()
		sigName := p.parseLowerName()
		sig := p.parseFunctionSignature()
		sigs = append(sigs, cst.ConceptSignature{Name: sigName, Signature: sig, FnToken: p.cstToken(fnToken)})
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")

	def := cst.DefConcept{
		Name: name, TemplateParameters: tparams, Signatures: sigs,
		ConceptToken: p.cstToken(conceptToken), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close),
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseImplDefinition() *cst.Definition {
	start := p.peek()
	implToken := p.advance()
	tparams := p.parseTemplateParameters()
	selfType := p.parseType()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")

	var defs []*cst.Definition
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if d := p.parseDefinition(); d != nil {
			defs = append(defs, d)
		} else {
			p.synchronizeToDefinition()
		}
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")

	def := cst.DefImpl{
		TemplateParameters: tparams, SelfType: selfType, Definitions: defs,
		ImplToken: p.cstToken(implToken), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close),
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func (p *Parser) parseSubmoduleDefinition() *cst.Definition {
	start := p.peek()
	moduleToken := p.advance()
	name := p.parseLowerName()
	tparams := p.parseTemplateParameters()
	open := p.consume(lexer.TOKEN_LBRACE, "'{'")

	var defs []*cst.Definition
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if d := p.parseDefinition(); d != nil {
			defs = append(defs, d)
		} else {
			p.synchronizeToDefinition()
		}
	}
	close := p.consume(lexer.TOKEN_RBRACE, "'}'")

	def := cst.DefSubmodule{
		Name: name, TemplateParameters: tparams, Definitions: defs,
		ModuleToken: p.cstToken(moduleToken), OpenToken: p.cstToken(open), CloseToken: p.cstToken(close),
	}
	return &cst.Definition{Variant: def, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}
