package diag

// Lexical error kinds (§7, "Lexical").
const (
	KindUnterminatedString Kind = iota + 1000
	KindUnterminatedComment
	KindBadEscape
	KindBadNumber
	KindSuffixAfterNumber
	KindSeparatorMisuse
	KindNegativeIntegerExponent
	KindBaseOnFloat
	KindMissingDigitsAfterSeparator
	KindMissingDigitsAfterBase
	KindTooLarge
	KindUnexpectedCharacter
)
