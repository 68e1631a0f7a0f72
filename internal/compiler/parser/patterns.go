package parser

import (
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
)

func (p *Parser) parsePattern() *cst.Pattern {
	pat := p.parsePrimaryPattern()
	if p.check(lexer.TOKEN_AS) {
		asTok := p.advance()
		name := p.parseLowerName()
		pat = &cst.Pattern{Variant: cst.PatternAlias{Pattern: pat, Name: name, AsToken: p.cstToken(asTok)}, Range: pat.Range}
	}
	if p.check(lexer.TOKEN_IF) {
		ifToken := p.advance()
		guard := p.parseExpression()
		pat = &cst.Pattern{Variant: cst.PatternGuarded{Pattern: pat, Guard: guard, IfToken: p.cstToken(ifToken)}, Range: pat.Range.Cover(guard.Range)}
	}
	return pat
}

func (p *Parser) parsePrimaryPattern() *cst.Pattern {
	start := p.peek()
	var variant cst.PatternVariant

	switch {
	case isLiteralToken(p.peek().Kind):
		tok := p.advance()
		variant = cst.PatternLiteral{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_UNDERSCORE):
		tok := p.advance()
		variant = cst.PatternWildcard{Token: p.cstToken(tok)}
	case p.check(lexer.TOKEN_DOT):
		variant = p.parseAbbreviatedConstructorPattern()
	case p.check(lexer.TOKEN_MUT):
		kw := p.advance()
		name := p.parseLowerName()
		m := cst.Mutability{IsMutable: true, KeywordToken: p.cstToken(kw), Range: p.tokenRange(kw)}
		variant = cst.PatternName{Mutability: &m, Name: name}
	case p.check(lexer.TOKEN_LPAREN):
		open := p.advance()
		elements := p.parseSeparatedPatterns(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		variant = cst.PatternTuple{Patterns: elements, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	case p.check(lexer.TOKEN_LBRACKET):
		open := p.advance()
		elements := p.parseSeparatedPatterns(lexer.TOKEN_RBRACKET)
		close := p.consume(lexer.TOKEN_RBRACKET, "']'")
		variant = cst.PatternSlice{Patterns: elements, OpenToken: p.cstToken(open), CloseToken: p.cstToken(close)}
	case p.check(lexer.TOKEN_UPPER_NAME):
		variant = p.parseConstructorPattern()
	default:
		name := p.parseLowerName()
		variant = cst.PatternName{Name: name}
	}

	return &cst.Pattern{Variant: variant, Range: p.tokenRange(start).Cover(p.tokenRange(p.previous()))}
}

func isLiteralToken(k lexer.TokenKind) bool {
	switch k {
	case lexer.TOKEN_INTEGER_LITERAL, lexer.TOKEN_FLOATING_LITERAL, lexer.TOKEN_CHARACTER_LITERAL,
		lexer.TOKEN_STRING_LITERAL, lexer.TOKEN_BOOLEAN_LITERAL:
		return true
	}
	return false
}

func (p *Parser) parseSeparatedPatterns(end lexer.TokenKind) cst.Separated[*cst.Pattern] {
	var elements []cst.SeparatedElement[*cst.Pattern]
	for !p.check(end) && !p.isAtEnd() {
		pat := p.parsePattern()
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[*cst.Pattern]{Value: pat, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[*cst.Pattern]{Elements: elements}
}

func (p *Parser) parseConstructorPattern() cst.PatternVariant {
	name := p.parseQualifiedConstructorName()
	ctor := cst.PatternConstructor{Name: name}
	switch {
	case p.check(lexer.TOKEN_LPAREN):
		open := p.advance()
		elements := p.parseSeparatedPatterns(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		ctor.Elements, ctor.OpenToken, ctor.CloseToken = &elements, &openTok, &closeTok
	case p.check(lexer.TOKEN_LBRACE):
		open := p.advance()
		fields := p.parsePatternFields()
		close := p.consume(lexer.TOKEN_RBRACE, "'}'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		ctor.Fields, ctor.OpenToken, ctor.CloseToken = &fields, &openTok, &closeTok
	}
	return ctor
}

// parseQualifiedConstructorName parses an UpperName optionally followed by
// `::name` segments, reusing cst.QualifiedName's shape even though the
// primary segment here is an upper_name rather than lower_name, since
// enum/struct constructors are always referenced via their upper_name.
func (p *Parser) parseQualifiedConstructorName() cst.QualifiedName {
	start := p.peek()
	name := p.parseUpperName()
	qn := cst.QualifiedName{PrimaryName: cst.LowerName{Identifier: name.Identifier, Token: name.Token}}
	qn.Range = p.tokenRange(start).Cover(p.tokenRange(p.previous()))
	return qn
}

func (p *Parser) parsePatternFields() cst.Separated[cst.PatternField] {
	var elements []cst.SeparatedElement[cst.PatternField]
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		name := p.parseLowerName()
		field := cst.PatternField{Name: name}
		if p.check(lexer.TOKEN_EQUALS) {
			eq := p.cstToken(p.advance())
			field.Equals = &eq
			field.Pattern = p.parsePattern()
		}
		var trailing *cst.Token
		if p.check(lexer.TOKEN_COMMA) {
			tok := p.cstToken(p.advance())
			trailing = &tok
		}
		elements = append(elements, cst.SeparatedElement[cst.PatternField]{Value: field, TrailingToken: trailing})
		if trailing == nil {
			break
		}
	}
	return cst.Separated[cst.PatternField]{Elements: elements}
}

func (p *Parser) parseAbbreviatedConstructorPattern() cst.PatternVariant {
	dot := p.advance()
	var name cst.LowerName
	if p.check(lexer.TOKEN_UPPER_NAME) {
		upper := p.parseUpperName()
		name = cst.LowerName{Identifier: upper.Identifier, Token: upper.Token}
	} else {
		name = p.parseLowerName()
	}
	abbrev := cst.PatternAbbreviatedConstructor{Name: name, DotToken: p.cstToken(dot)}
	if p.check(lexer.TOKEN_LPAREN) {
		open := p.advance()
		elements := p.parseSeparatedPatterns(lexer.TOKEN_RPAREN)
		close := p.consume(lexer.TOKEN_RPAREN, "')'")
		openTok, closeTok := p.cstToken(open), p.cstToken(close)
		abbrev.Elements, abbrev.OpenToken, abbrev.CloseToken = &elements, &openTok, &closeTok
	}
	return abbrev
}
