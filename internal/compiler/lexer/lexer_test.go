package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/lexer"
)

func kinds(tokens []lexer.Token) []lexer.TokenKind {
	out := make([]lexer.TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestIdentifierClassification(t *testing.T) {
	tokens, errs := lexer.ScanTokens("let Point _ __ x'")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenKind{
		lexer.TOKEN_LET,
		lexer.TOKEN_UPPER_NAME,
		lexer.TOKEN_UNDERSCORE,
		lexer.TOKEN_UNDERSCORE,
		lexer.TOKEN_LOWER_NAME,
		lexer.TOKEN_EOF,
	}, kinds(tokens))
}

func TestKeywordsAndPrimitives(t *testing.T) {
	tokens, errs := lexer.ScanTokens("fn self Self I32 Bool")
	require.Empty(t, errs)
	assert.Equal(t, lexer.TOKEN_FN, tokens[0].Kind)
	assert.Equal(t, lexer.TOKEN_LOWER_SELF, tokens[1].Kind)
	assert.Equal(t, lexer.TOKEN_UPPER_SELF, tokens[2].Kind)
	assert.True(t, lexer.IsPrimitiveType(tokens[3].Kind))
	assert.True(t, lexer.IsPrimitiveType(tokens[4].Kind))
}

func TestBooleanLiteral(t *testing.T) {
	tokens, errs := lexer.ScanTokens("true false")
	require.Empty(t, errs)
	require.Equal(t, lexer.TOKEN_BOOLEAN_LITERAL, tokens[0].Kind)
	assert.Equal(t, true, tokens[0].Literal)
	assert.Equal(t, false, tokens[1].Literal)
}

func TestReservedOperatorsVsOperatorName(t *testing.T) {
	tokens, errs := lexer.ScanTokens(". :: -> <- & * + ? = | \\ ??? == <=>")
	require.Empty(t, errs)
	expect := []lexer.TokenKind{
		lexer.TOKEN_DOT, lexer.TOKEN_DOUBLE_COLON, lexer.TOKEN_RIGHT_ARROW,
		lexer.TOKEN_LEFT_ARROW, lexer.TOKEN_AMPERSAND, lexer.TOKEN_ASTERISK,
		lexer.TOKEN_PLUS, lexer.TOKEN_QUESTION, lexer.TOKEN_EQUALS,
		lexer.TOKEN_PIPE, lexer.TOKEN_BACKSLASH, lexer.TOKEN_HOLE,
		lexer.TOKEN_OPERATOR_NAME, lexer.TOKEN_OPERATOR_NAME,
		lexer.TOKEN_EOF,
	}
	require.Equal(t, expect, kinds(tokens))
	assert.Equal(t, "==", tokens[12].Lexeme)
	assert.Equal(t, "<=>", tokens[13].Lexeme)
}

func TestFieldAccessDotNotSwallowedByOperatorRun(t *testing.T) {
	tokens, errs := lexer.ScanTokens("x.lower")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenKind{
		lexer.TOKEN_LOWER_NAME, lexer.TOKEN_DOT, lexer.TOKEN_LOWER_NAME, lexer.TOKEN_EOF,
	}, kinds(tokens))
}

func TestIntegerLiteralBases(t *testing.T) {
	tokens, errs := lexer.ScanTokens("0b101 0q23 0o17 0d9 0xFF 1'000")
	require.Empty(t, errs)
	assert.Equal(t, int64(5), tokens[0].Literal)
	assert.Equal(t, int64(11), tokens[1].Literal)
	assert.Equal(t, int64(15), tokens[2].Literal)
	assert.Equal(t, int64(9), tokens[3].Literal)
	assert.Equal(t, int64(255), tokens[4].Literal)
	assert.Equal(t, int64(1000), tokens[5].Literal)
}

func TestFloatingLiteralAndExponent(t *testing.T) {
	tokens, errs := lexer.ScanTokens("3.14 2e3 1.5e-2")
	require.Empty(t, errs)
	assert.Equal(t, lexer.TOKEN_FLOATING_LITERAL, tokens[0].Kind)
	assert.InDelta(t, 3.14, tokens[0].Literal.(float64), 1e-9)
	assert.Equal(t, lexer.TOKEN_INTEGER_LITERAL, tokens[1].Kind)
	assert.Equal(t, int64(2000), tokens[1].Literal)
	assert.Equal(t, lexer.TOKEN_FLOATING_LITERAL, tokens[2].Kind)
	assert.InDelta(t, 0.015, tokens[2].Literal.(float64), 1e-9)
}

func TestNumericLiteralErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind lexer.LexErrorKind
	}{
		{"1'", lexer.LexErrMissingDigitsAfterSeparator},
		{"0x", lexer.LexErrMissingDigitsAfterBase},
		{"0x1.5", lexer.LexErrExplicitBaseWithFloat},
		{"1e-3", lexer.LexErrNegativeIntegerExponent},
		{"123abc", lexer.LexErrErroneousAlphabeticSuffix},
	}
	for _, c := range cases {
		_, errs := lexer.ScanTokens(c.src)
		require.NotEmpty(t, errs, "source %q", c.src)
		assert.Equal(t, c.kind, errs[0].Kind, "source %q", c.src)
	}
}

func TestIntegerOverflow(t *testing.T) {
	_, errs := lexer.ScanTokens("99999999999999999999")
	require.NotEmpty(t, errs)
	assert.Equal(t, lexer.LexErrTooLarge, errs[0].Kind)
}

func TestStringLiteralEscapesAndConcatenation(t *testing.T) {
	tokens, errs := lexer.ScanTokens(`"ab\ncd" "ef"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 2) // fused string + EOF
	assert.Equal(t, "ab\ncdef", tokens[0].Literal)
}

func TestCharacterLiteral(t *testing.T) {
	tokens, errs := lexer.ScanTokens(`'a' '\n' '\''`)
	require.Empty(t, errs)
	assert.Equal(t, 'a', tokens[0].Literal)
	assert.Equal(t, '\n', tokens[1].Literal)
	assert.Equal(t, '\'', tokens[2].Literal)
}

func TestUnterminatedStringAndComment(t *testing.T) {
	_, errs := lexer.ScanTokens(`"abc`)
	require.NotEmpty(t, errs)
	assert.Equal(t, lexer.LexErrUnterminatedString, errs[0].Kind)

	_, errs = lexer.ScanTokens("/* never closed")
	require.NotEmpty(t, errs)
	assert.Equal(t, lexer.LexErrUnterminatedComment, errs[0].Kind)
}

func TestNestedBlockComment(t *testing.T) {
	tokens, errs := lexer.ScanTokens("/* outer /* inner */ still-comment */ let")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, lexer.TOKEN_LET, tokens[0].Kind)
	assert.Contains(t, tokens[0].PrecedingTrivia, "outer")
}

func TestLineCommentTrivia(t *testing.T) {
	tokens, errs := lexer.ScanTokens("// comment\nlet")
	require.Empty(t, errs)
	assert.Equal(t, "// comment\n", tokens[0].PrecedingTrivia)
}

func TestDelimiters(t *testing.T) {
	tokens, errs := lexer.ScanTokens("(){}[],;")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenKind{
		lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN, lexer.TOKEN_LBRACE, lexer.TOKEN_RBRACE,
		lexer.TOKEN_LBRACKET, lexer.TOKEN_RBRACKET, lexer.TOKEN_COMMA, lexer.TOKEN_SEMICOLON,
		lexer.TOKEN_EOF,
	}, kinds(tokens))
}

func TestPositionTracking(t *testing.T) {
	tokens, errs := lexer.ScanTokens("let\n  x")
	require.Empty(t, errs)
	require.Len(t, tokens, 3)
	assert.Equal(t, uint32(0), tokens[0].Line)
	assert.Equal(t, uint32(0), tokens[0].Column)
	assert.Equal(t, uint32(1), tokens[1].Line)
	assert.Equal(t, uint32(2), tokens[1].Column)
}

func TestUnexpectedCharacter(t *testing.T) {
	_, errs := lexer.ScanTokens("`")
	require.NotEmpty(t, errs)
	assert.Equal(t, lexer.LexErrUnexpectedCharacter, errs[0].Kind)
}
