package diag

// Semantic error kinds (§7, "Semantic").
const (
	KindInexhaustivePattern Kind = iota + 5000
	KindBreakOutsideLoop
	KindContinueOutsideLoop
	KindWhileValueBreak
	KindNotImplemented
	KindInternal
)
