package diag

// Syntactic error kinds (§7, "Syntactic").
const (
	KindExpected Kind = iota + 2000
	KindUnexpectedToken
	KindUnterminatedDelimiter
	KindUnknownTopLevel
)
