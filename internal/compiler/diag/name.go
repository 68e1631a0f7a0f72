package diag

// Name-resolution error kinds (§7, "Name").
const (
	KindUndefinedName Kind = iota + 3000
	KindNamespaceMissingMember
	KindGlobalMissingMember
	KindAbbreviatedCtorWithoutEnum
	KindCircularDependency
)
