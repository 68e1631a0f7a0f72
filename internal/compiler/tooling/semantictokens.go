package tooling

import (
	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// SemanticTokenType classifies one token for an editor's syntax-highlight
// pass (§6.3's class list). Names follow the LSP standard token types; the
// order is this package's own, and internal/lspserver maps each value onto
// its index in the legend it advertises at initialize time.
type SemanticTokenType int

const (
	SemanticTokenKeyword SemanticTokenType = iota
	SemanticTokenComment
	SemanticTokenNumber
	SemanticTokenString
	SemanticTokenOperator
	SemanticTokenType_
	SemanticTokenEnumMember
	SemanticTokenInterface
	SemanticTokenStruct
	SemanticTokenParameter
	SemanticTokenVariable
	SemanticTokenProperty
	SemanticTokenFunction
	SemanticTokenMethod
	SemanticTokenModule
	SemanticTokenMacro
	SemanticTokenNamespace
	SemanticTokenEnum
)

// SemanticToken is one classified span, already delta-friendly: a caller
// encodes a run of these per the LSP five-integer-per-token wire format
// (§6.3). Kieli's lexer is the single source of truth here since every
// token already carries kind + range; no HIR lookup is needed to color
// keywords/literals/operators, which is most of what an editor highlights.
type SemanticToken struct {
	Range source.Range
	Type  SemanticTokenType
}

var keywordTokenKinds = map[lexer.TokenKind]bool{
	lexer.TOKEN_LET: true, lexer.TOKEN_MUT: true, lexer.TOKEN_IMMUT: true,
	lexer.TOKEN_IF: true, lexer.TOKEN_ELSE: true, lexer.TOKEN_ELIF: true,
	lexer.TOKEN_WHILE: true, lexer.TOKEN_LOOP: true, lexer.TOKEN_FOR: true,
	lexer.TOKEN_IN: true, lexer.TOKEN_MATCH: true, lexer.TOKEN_RET: true,
	lexer.TOKEN_FN: true, lexer.TOKEN_STRUCT: true, lexer.TOKEN_ENUM: true,
	lexer.TOKEN_ALIAS: true, lexer.TOKEN_IMPL: true, lexer.TOKEN_CONCEPT: true,
	lexer.TOKEN_MODULE: true, lexer.TOKEN_IMPORT: true, lexer.TOKEN_SIZEOF: true,
	lexer.TOKEN_TYPEOF: true, lexer.TOKEN_UNSAFE: true, lexer.TOKEN_MOV: true,
	lexer.TOKEN_META: true, lexer.TOKEN_DEFER: true, lexer.TOKEN_WHERE: true,
	lexer.TOKEN_GLOBAL: true, lexer.TOKEN_DYN: true, lexer.TOKEN_UPPER_SELF: true,
	lexer.TOKEN_LOWER_SELF: true, lexer.TOKEN_BREAK: true, lexer.TOKEN_CONTINUE: true,
	lexer.TOKEN_DISCARD: true, lexer.TOKEN_AS: true,
}

var primitiveTokenKinds = map[lexer.TokenKind]bool{
	lexer.TOKEN_I8: true, lexer.TOKEN_I16: true, lexer.TOKEN_I32: true, lexer.TOKEN_I64: true,
	lexer.TOKEN_U8: true, lexer.TOKEN_U16: true, lexer.TOKEN_U32: true, lexer.TOKEN_U64: true,
	lexer.TOKEN_FLOAT: true, lexer.TOKEN_CHAR: true, lexer.TOKEN_BOOL: true, lexer.TOKEN_STRING: true,
}

var operatorTokenKinds = map[lexer.TokenKind]bool{
	lexer.TOKEN_DOT: true, lexer.TOKEN_DOUBLE_COLON: true, lexer.TOKEN_COLON: true,
	lexer.TOKEN_RIGHT_ARROW: true, lexer.TOKEN_LEFT_ARROW: true, lexer.TOKEN_AMPERSAND: true,
	lexer.TOKEN_ASTERISK: true, lexer.TOKEN_PLUS: true, lexer.TOKEN_QUESTION: true,
	lexer.TOKEN_EQUALS: true, lexer.TOKEN_PIPE: true, lexer.TOKEN_BACKSLASH: true,
	lexer.TOKEN_OPERATOR_NAME: true,
}

// classify maps one lexer token kind onto its highlight class, or reports
// false for punctuation/delimiters an editor leaves unstyled.
func classify(kind lexer.TokenKind) (SemanticTokenType, bool) {
	switch {
	case keywordTokenKinds[kind]:
		return SemanticTokenKeyword, true
	case primitiveTokenKinds[kind]:
		return SemanticTokenType_, true
	case operatorTokenKinds[kind]:
		return SemanticTokenOperator, true
	}
	switch kind {
	case lexer.TOKEN_INTEGER_LITERAL, lexer.TOKEN_FLOATING_LITERAL:
		return SemanticTokenNumber, true
	case lexer.TOKEN_STRING_LITERAL, lexer.TOKEN_CHARACTER_LITERAL:
		return SemanticTokenString, true
	case lexer.TOKEN_BOOLEAN_LITERAL:
		return SemanticTokenKeyword, true
	case lexer.TOKEN_UPPER_NAME:
		return SemanticTokenType_, true
	case lexer.TOKEN_LOWER_NAME:
		return SemanticTokenVariable, true
	default:
		return 0, false
	}
}

// tokenRange reconstructs the source.Range a lexer.Token occupied; the
// token itself stores start/end as bare line/column fields rather than an
// embedded source.Range (lexer predates the source package's Range type
// becoming the shared currency, §2's leaf-first dependency order put the
// lexer before Range stabilized its own API — see DESIGN.md).
func tokenRange(t lexer.Token) source.Range {
	return source.Range{
		Start: source.Position{Line: t.Line, Column: t.Column},
		Stop:  source.Position{Line: t.EndLine, Column: t.EndColumn},
	}
}

// GetSemanticTokens returns one classified span per highlight-worthy token
// of doc whose range falls inside rng, in source order (§6.3). Comments
// are not separately tokenized by the lexer (they are trivia, §4.1), so a
// comment token class is never emitted here; an editor wanting comment
// highlighting would need the lexer to retain comment spans, which this
// pipeline deliberately does not (trivia is consumed, not tokenized).
func (a *API) GetSemanticTokens(id database.DocumentId, rng source.Range) ([]SemanticToken, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok {
		return nil, false
	}

	var tokens []SemanticToken
	for _, t := range doc.Tokens {
		tr := tokenRange(t)
		if tr.Stop.Less(rng.Start) || rng.Stop.Less(tr.Start) {
			continue
		}
		class, ok := classify(t.Kind)
		if !ok {
			continue
		}
		tokens = append(tokens, SemanticToken{Range: tr, Type: class})
	}
	return tokens, true
}
