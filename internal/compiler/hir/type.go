package hir

// TypeId names a slot in a TypeArena.
type TypeId int32

// TypeVarID names a slot in a TypeArena's unification-variable table,
// distinct from TypeId itself: a variable is not yet a type, it is a
// placeholder that Find resolves through to one.
type TypeVarID int32

// TypeVarKind distinguishes a general unification variable from one
// restricted to the integral family (born from an integer literal, per
// §4.4.2: "integer literals carry an integral unification variable
// solvable to any of I8..I64,U8..U64").
type TypeVarKind int

const (
	TypeVarGeneral TypeVarKind = iota
	TypeVarIntegral
)

// SymbolId is declared in symbol.go; TypeVariant.structure/enumeration
// refer to definitions by SymbolId rather than duplicating their shape.

// Type is a handle into a TypeArena plus the variant stored there, so
// callers can pattern-match without a second arena lookup in the common
// case of freshly-constructed types; resolved types living in the arena
// are referred to by TypeId alone.
type Type struct {
	Variant TypeVariant
}

// TypeVariant is the closed set of resolved type forms (§3.6).
type TypeVariant interface {
	typeVariant()
}

type TypePrimitive struct{ Name string }

func (TypePrimitive) typeVariant() {}

type TypeTuple struct{ Elements []TypeId }

func (TypeTuple) typeVariant() {}

type TypeArrayOf struct {
	Element TypeId
	Length  int64
}

func (TypeArrayOf) typeVariant() {}

type TypeSlice struct{ Element TypeId }

func (TypeSlice) typeVariant() {}

type TypeFunction struct {
	Parameters []TypeId
	Return     TypeId
}

func (TypeFunction) typeVariant() {}

// TypeReference is `&[mut] T`. A `&mut T` coerces to `&T` at use sites,
// never the reverse (§4.4.2); that coercion is applied by the resolver,
// not by the type model itself.
type TypeReference struct {
	Mutability Mutability
	Referenced TypeId
}

func (TypeReference) typeVariant() {}

type TypePointer struct {
	Mutability Mutability
	Pointee    TypeId
}

func (TypePointer) typeVariant() {}

// TypeStructure names a resolved struct definition, optionally applied to
// concrete template arguments.
type TypeStructure struct {
	Definition        SymbolId
	TemplateArguments []TypeId
}

func (TypeStructure) typeVariant() {}

type TypeEnumeration struct {
	Definition        SymbolId
	TemplateArguments []TypeId
}

func (TypeEnumeration) typeVariant() {}

// TypeUnificationVariable is an as-yet-unsolved slot; Find in TypeArena
// follows it to whatever it was last solved with, if anything.
type TypeUnificationVariable struct {
	Var  TypeVarID
	Kind TypeVarKind
}

func (TypeUnificationVariable) typeVariant() {}

// TypeTemplateParameterReference names a template type parameter by its
// own tag, kept distinct from TypeVarID (see TemplateParamTag).
type TypeTemplateParameterReference struct{ Tag TemplateParamTag }

func (TypeTemplateParameterReference) typeVariant() {}

// TypeSelfPlaceholder stands for `Self` within one concept/impl context;
// it unifies by identity only within that context (§4.4.2).
type TypeSelfPlaceholder struct{}

func (TypeSelfPlaceholder) typeVariant() {}

// TypeError substitutes for a type the resolver could not determine, so
// downstream inference still has something to unify against instead of
// aborting (§4.4.9).
type TypeError struct{}

func (TypeError) typeVariant() {}

type typeVarState struct {
	kind   TypeVarKind
	classes []SymbolId // concept constraints pending on this variable
	solved *TypeId
}

// TypeArena owns every concrete type and every unification variable born
// during one compilation. Both grow monotonically: a TypeId or TypeVarID
// is valid for the arena's whole lifetime (§3.7).
type TypeArena struct {
	types []TypeVariant
	vars  []typeVarState
}

// NewTypeArena returns an empty arena.
func NewTypeArena() *TypeArena {
	return &TypeArena{}
}

// Intern stores a type variant and returns its id. Structurally equal
// variants are not deduplicated; callers that need sharing (e.g. the
// instantiation cache) do their own keying on top of this.
func (a *TypeArena) Intern(v TypeVariant) TypeId {
	a.types = append(a.types, v)
	return TypeId(len(a.types) - 1)
}

// Get returns the variant stored at id.
func (a *TypeArena) Get(id TypeId) TypeVariant {
	return a.types[id]
}

// Fresh allocates a new unsolved unification variable of the given kind
// and returns both its TypeId (wrapping TypeUnificationVariable, for use
// anywhere a TypeId is expected) and its TypeVarID (for Solve).
func (a *TypeArena) Fresh(kind TypeVarKind) (TypeId, TypeVarID) {
	a.vars = append(a.vars, typeVarState{kind: kind})
	v := TypeVarID(len(a.vars) - 1)
	return a.Intern(TypeUnificationVariable{Var: v, Kind: kind}), v
}

// Constrain records a pending concept constraint on an unsolved variable.
func (a *TypeArena) Constrain(v TypeVarID, class SymbolId) {
	a.vars[v].classes = append(a.vars[v].classes, class)
}

// Constraints returns the concept constraints pending on a variable.
func (a *TypeArena) Constraints(v TypeVarID) []SymbolId {
	return a.vars[v].classes
}

// Find flattens a chain of solved unification variables down to either a
// concrete TypeId or a still-unsolved TypeUnificationVariable id.
func (a *TypeArena) Find(id TypeId) TypeId {
	for {
		uv, ok := a.types[id].(TypeUnificationVariable)
		if !ok {
			return id
		}
		state := &a.vars[uv.Var]
		if state.solved == nil {
			return id
		}
		id = *state.solved
	}
}

// Solve binds a unification variable to a resolved type id. Callers must
// perform the occurs-check themselves before calling Solve (§4.4.2): this
// method does not re-derive it, since the check needs to walk the
// argument's own structure, which the arena alone cannot distinguish from
// "already flattened".
func (a *TypeArena) Solve(v TypeVarID, id TypeId) {
	a.vars[v].solved = &id
}

// IsSolved reports whether a unification variable has a solution.
func (a *TypeArena) IsSolved(v TypeVarID) bool {
	return a.vars[v].solved != nil
}
