// Package parser implements a hand-written recursive-descent parser that
// turns a lexer.Token stream into a cst.Module (§4.2). Binary operator
// chains are collected flat by a small Pratt-style loop and left for the
// desugarer to resolve into nested calls; a Stage marker supports
// backtracking for constructs that are ambiguous on first lookahead.
package parser

import (
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// Stage is an opaque snapshot of parser progress, taken with mark and
// restored with reset, enabling a construct to be spun-up speculatively
// and abandoned without side effects (§4.2).
type Stage int

// Parser turns a token stream into a CST, collecting diagnostics as it
// goes rather than unwinding on a malformed program.
type Parser struct {
	tokens []lexer.Token
	lines  *source.LineIndex
	current int
	sink   diag.Sink
}

// New creates a Parser over tokens, reporting diagnostics to sink. Ranges
// are built from the Line/Column the lexer already stamps on every token.
func New(tokens []lexer.Token, sink diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse parses the full token stream into a Module.
func (p *Parser) Parse() *cst.Module {
	mod := &cst.Module{}
	for p.check(lexer.TOKEN_IMPORT) {
		mod.Imports = append(mod.Imports, p.parseImport())
	}
	for !p.isAtEnd() {
		if def := p.parseDefinition(); def != nil {
			mod.Definitions = append(mod.Definitions, def)
		} else {
			p.synchronizeToDefinition()
		}
	}
	return mod
}

func (p *Parser) mark() Stage { return Stage(p.current) }
func (p *Parser) reset(s Stage) { p.current = int(s) }

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Kind == lexer.TOKEN_EOF
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TOKEN_EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return lexer.Token{Kind: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return !p.isAtEnd() && p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token kind, or reports a diagnostic
// and pretends it was present so the caller can keep going (§4.2 error
// recovery strategy (a)). On mismatch it still advances past whatever
// token is actually there (unless at EOF), so that callers looping on
// consume() failures are guaranteed to make progress through the token
// stream rather than spinning on a token that never becomes the one
// they're waiting for.
func (p *Parser) consume(kind lexer.TokenKind, what string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.reportExpected(what)
	bad := p.peek()
	if !p.isAtEnd() {
		p.advance()
	}
	return lexer.Token{Kind: kind, Line: bad.Line, Column: bad.Column, EndLine: bad.EndLine, EndColumn: bad.EndColumn}
}

func (p *Parser) reportExpected(what string) {
	tok := p.peek()
	rng := p.tokenRange(tok)
	p.report(diag.New(diag.KindExpected, diag.SeverityError, rng, "expected %s, found '%s'", what, tok.Kind))
}

func (p *Parser) report(d diag.Diagnostic) {
	if p.sink != nil {
		p.sink.Report(d)
	}
}

// tokenRange reconstructs a source.Range from a lexer.Token's own
// line/column bookkeeping, which the lexer already stamps per token.
func (p *Parser) tokenRange(tok lexer.Token) source.Range {
	return source.New(
		source.Position{Line: tok.Line, Column: tok.Column},
		source.Position{Line: tok.EndLine, Column: tok.EndColumn},
	)
}

func (p *Parser) cstToken(tok lexer.Token) cst.Token {
	return cst.Token{Kind: tok.Kind, Lexeme: tok.Lexeme, PrecedingTrivia: tok.PrecedingTrivia, Literal: tok.Literal, Range: p.tokenRange(tok)}
}

// synchronizeToDefinition skips tokens until a token that plausibly starts
// a new top-level definition, per §4.2's "unrecognized top-level
// constructs are skipped to the next definition keyword".
func (p *Parser) synchronizeToDefinition() {
	p.advance()
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case lexer.TOKEN_FN, lexer.TOKEN_STRUCT, lexer.TOKEN_ENUM, lexer.TOKEN_ALIAS,
			lexer.TOKEN_CONCEPT, lexer.TOKEN_IMPL, lexer.TOKEN_MODULE, lexer.TOKEN_IMPORT:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseImport() cst.Import {
	importToken := p.advance()
	name := p.parseQualifiedName()
	return cst.Import{Path: name, ImportToken: p.cstToken(importToken)}
}

// parseQualifiedNamePrefix parses the `[global::]` / `[Type::]` /
// `(lower_name::)*` qualifier prefix shared by every qualified name,
// leaving the caller to consume the final primary segment: a plain value
// or module path ends in lower_name, but a type or constructor reference
// ends in upper_name (§3.5).
func (p *Parser) parseQualifiedNamePrefix() cst.QualifiedName {
	var qn cst.QualifiedName

	switch {
	case p.check(lexer.TOKEN_GLOBAL) && p.peekAt(1).Kind == lexer.TOKEN_DOUBLE_COLON:
		p.advance()
		p.advance()
		qn.IsGlobal = true
	case p.check(lexer.TOKEN_UPPER_NAME) && p.peekAt(1).Kind == lexer.TOKEN_DOUBLE_COLON:
		rootStart := p.peek()
		name := p.parseUpperName()
		targs := p.tryParseTemplateArguments()
		p.advance() // '::'
		qn.RootType = &cst.Type{
			Variant: cst.TypePath{Name: cst.QualifiedName{PrimaryName: cst.LowerName{Identifier: name.Identifier, Token: name.Token}}, TemplateArguments: targs},
			Range:   p.tokenRange(rootStart).Cover(p.tokenRange(p.previous())),
		}
	}
	for p.check(lexer.TOKEN_LOWER_NAME) && p.peekAt(1).Kind == lexer.TOKEN_DOUBLE_COLON {
		name := p.parseLowerName()
		dc := p.advance()
		qn.MiddleQualifiers = append(qn.MiddleQualifiers, cst.Qualifier{Name: name, DoubleColonToken: p.cstToken(dc)})
	}
	return qn
}

// parseQualifiedName parses a path ending in a lower_name primary segment
// (`global::name`, `std::io`, `Type::method`), used for imports.
func (p *Parser) parseQualifiedName() cst.QualifiedName {
	start := p.peek()
	qn := p.parseQualifiedNamePrefix()
	qn.PrimaryName = p.parseLowerName()
	qn.Range = p.tokenRange(start).Cover(p.tokenRange(p.previous()))
	return qn
}

// parseFlexibleQualifiedName parses a path whose primary segment may be
// either case, used wherever the grammar allows both a value/function
// reference (lower_name) and a type or bare constructor reference
// (upper_name) in the same position (§3.5).
func (p *Parser) parseFlexibleQualifiedName() cst.QualifiedName {
	start := p.peek()
	qn := p.parseQualifiedNamePrefix()
	if p.check(lexer.TOKEN_UPPER_NAME) {
		name := p.parseUpperName()
		qn.PrimaryName = cst.LowerName{Identifier: name.Identifier, Token: name.Token}
	} else {
		qn.PrimaryName = p.parseLowerName()
	}
	qn.Range = p.tokenRange(start).Cover(p.tokenRange(p.previous()))
	return qn
}

func (p *Parser) parseLowerName() cst.LowerName {
	tok := p.consume(lexer.TOKEN_LOWER_NAME, "a lowercase name")
	return cst.LowerName{Identifier: tok.Lexeme, Token: p.cstToken(tok)}
}

func (p *Parser) parseUpperName() cst.UpperName {
	tok := p.consume(lexer.TOKEN_UPPER_NAME, "an uppercase name")
	return cst.UpperName{Identifier: tok.Lexeme, Token: p.cstToken(tok)}
}
