package diag

// Type error kinds (§7, "Type").
const (
	KindUnificationFailure Kind = iota + 4000
	KindRecursiveSolution
	KindCoercionFailure
	KindMutabilityViolation
	KindUnsafeViolation
	KindStructFieldUninit
	KindStructFieldUnknown
	KindArityMismatch
	KindTemplateArgumentCount
	KindTemplateDefaultAfterExplicitOverflow
	KindUnsolvedVariableInTopLevelDefinition
)
