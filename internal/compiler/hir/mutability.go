package hir

// MutVarID names a slot in a MutabilityArena's variable table. It is
// disjoint from TypeVarID: a mutability variable can never be solved with
// a type, so the two id spaces are kept apart by type rather than by
// convention.
type MutVarID int32

// Mutability is first-class per §3.6: a place's mutability can be a
// concrete known value, a template mutability parameter, or an
// as-yet-unsolved variable.
type Mutability struct {
	Variant MutabilityVariant
}

// MutabilityVariant is the closed set of mutability forms.
type MutabilityVariant interface {
	mutabilityVariant()
}

// MutConcrete is a resolved, known mutability.
type MutConcrete struct{ IsMutable bool }

func (MutConcrete) mutabilityVariant() {}

// MutParameterized refers to a template mutability parameter by tag.
type MutParameterized struct{ Tag TemplateParamTag }

func (MutParameterized) mutabilityVariant() {}

// MutVariable is an unsolved mutability unification variable.
type MutVariable struct{ Var MutVarID }

func (MutVariable) mutabilityVariant() {}

// Concrete constructs a known mutability.
func Concrete(mutable bool) Mutability { return Mutability{Variant: MutConcrete{IsMutable: mutable}} }

// mutVarState is the union-find cell for one mutability variable: either
// still open, or solved to another mutability (which may itself chain
// through further variables until Find flattens it).
type mutVarState struct {
	solved *Mutability
}

// MutabilityArena owns every mutability variable born during one
// compilation. Variables are appended monotonically and never removed,
// so a MutVarID is valid for the arena's whole lifetime (§3.7).
type MutabilityArena struct {
	vars []mutVarState
}

// NewMutabilityArena returns an empty arena.
func NewMutabilityArena() *MutabilityArena {
	return &MutabilityArena{}
}

// Fresh allocates a new, unsolved mutability variable.
func (a *MutabilityArena) Fresh() MutVarID {
	a.vars = append(a.vars, mutVarState{})
	return MutVarID(len(a.vars) - 1)
}

// Find follows a chain of solved variables to either a concrete/
// parameterized mutability or a still-unsolved variable. The chain is not
// compressed: solved cells are left as they are.
func (a *MutabilityArena) Find(m Mutability) Mutability {
	for {
		v, ok := m.Variant.(MutVariable)
		if !ok {
			return m
		}
		state := &a.vars[v.Var]
		if state.solved == nil {
			return m
		}
		m = *state.solved
	}
}

// Solve binds variable to value. The caller is responsible for the
// occurs-check (a mutability variable only ever solves to a concrete
// value or a template parameter, never to another variable's own chain,
// so no cycle can be introduced here).
func (a *MutabilityArena) Solve(v MutVarID, value Mutability) {
	a.vars[v].solved = &value
}

// IsMutable reports whether a fully-flattened concrete mutability is
// mutable; it panics if called on an unsolved variable or a template
// parameter, which callers must rule out first (those require a
// placeholder-aware caller, e.g. template instantiation).
func (m Mutability) IsMutable() bool {
	return m.Variant.(MutConcrete).IsMutable
}
