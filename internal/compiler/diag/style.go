package diag

// Style-warning kinds (§7, "Style warnings").
const (
	KindUnusedVariable Kind = iota + 6000
	KindShadowingUnusedVariable
	KindWhileTrueSuggestLoop
	KindWhileFalseUnreachable
)
