// Package resolver implements name resolution, type inference, unification,
// template instantiation, pattern exhaustiveness, and safety/mutability
// checking over an ast.Module, annotating a hir.Info with the results
// (§4.4). It is the heart of the system: everything downstream (tooling
// queries, the LSP server) reads resolved facts out of the Info this
// package produces.
package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

// Interner mints StringIds for names. The Database owns the real,
// document-spanning string pool (§3.1); resolver only needs to be able to
// ask for one, so it depends on this narrow interface rather than on the
// database package, which in turn depends on resolver for its arenas.
type Interner interface {
	Intern(name string) hir.StringId
}

// mapInterner is a minimal standalone Interner, used by resolver's own
// tests and by any caller that does not need cross-document sharing.
type mapInterner struct {
	ids  map[string]hir.StringId
	next hir.StringId
}

// NewInterner returns a standalone Interner backed by a plain map.
func NewInterner() Interner {
	return &mapInterner{ids: map[string]hir.StringId{}}
}

func (m *mapInterner) Intern(name string) hir.StringId {
	if id, ok := m.ids[name]; ok {
		return id
	}
	id := m.next
	m.next++
	m.ids[name] = id
	return id
}

// defStatus is a definition's place in the Unresolved → OnStack → Resolved
// state machine (§4.4.1).
type defStatus int

const (
	statusUnresolved defStatus = iota
	statusOnStack
	statusResolved
)

type defState struct {
	status defStatus
	symbol hir.SymbolId
	def    *ast.Definition
	ns     *Namespace // associated namespace, for struct/enum/concept/module
}

// loopScope tracks the result type anchor for one lexically enclosing
// `loop`/`while`/`for`, so `break e` can unify against it (§4.4.7).
type loopScope struct {
	result    hir.TypeId
	hasResult bool
	whileLoop bool // while-loops require a unit-typed body; break values are illegal
}

// Context threads every sub-engine's shared state through one resolution
// pass (§4.4's "sub-engines that share a Context"): namespace/symbol
// tables, the unification and mutability union-finds, template-parameter
// bookkeeping, loop/safety stacks, and the diagnostic sink.
type Context struct {
	sink  diag.Sink
	intern Interner
	info  *hir.Info

	root *Namespace

	defStates map[*ast.Definition]*defState

	// associated namespaces for named types, keyed by type name; populated
	// during declare and consulted by method lookup and by impl blocks
	// that attach definitions to a type declared earlier or later in the
	// same module. Flat (not module-qualified): a simplification over the
	// spec's fully general path resolution, recorded in DESIGN.md.
	typeNamespaces map[string]*Namespace

	// symbolNamespaces maps a module/struct/enum/concept symbol to the
	// namespace it owns, so a qualified path's middle segments can
	// descend from "the symbol named by this segment" to "its namespace"
	// without a second name lookup.
	symbolNamespaces map[hir.SymbolId]*Namespace

	// instantiation cache: (definition, structural argument key) -> the
	// TypeId produced, so repeated applications of the same arguments to
	// the same generic definition share one instantiation (§4.4.3).
	instantiations map[string]hir.TypeId

	safetyStack []bool // true entries mark an enclosing `unsafe { }` frame
	loopStack   []*loopScope

	// symbolTypes records the declared/resolved type of a local variable,
	// parameter, or template value parameter symbol — the side table an
	// ExprPath lookup consults once resolvePath has found the symbol, since
	// hir.Info only keys a type by *ast.Expression, not by SymbolId.
	symbolTypes map[hir.SymbolId]hir.TypeId

	// symbolMutability records a local-variable symbol's own mutability
	// (distinct from any reference type it holds), consulted when `&mut x`
	// needs to know whether x itself is a mutable place.
	symbolMutability map[hir.SymbolId]hir.Mutability

	// templateTypeTags/templateMutTags map a SymbolLocalType/
	// SymbolLocalMutability symbol, introduced by a template parameter
	// list, to the tag a reference to it should carry (§3.6's
	// TemplateParamTag, distinct from a unification variable's own id
	// space).
	templateTypeTags map[hir.SymbolId]hir.TemplateParamTag
	templateMutTags  map[hir.SymbolId]hir.TemplateParamTag
	nextTag          hir.TemplateParamTag

	// aliasTargets caches a resolved `alias Name = T` definition's target
	// type, consulted (and, if necessary, lazily populated by forcing that
	// alias's own resolution) whenever a path resolves to a SymbolAlias.
	aliasTargets map[hir.SymbolId]hir.TypeId

	// generalizedParams records, for each function/struct/enum/alias/
	// concept symbol, the implicit template parameters its signature's
	// unsolved variables were generalized into (§4.4.8).
	generalizedParams map[hir.SymbolId][]hir.TemplateParamTag

	// structFields/structTuples/ctorShapes record a struct's or enum
	// constructor's resolved field types, keyed by the struct/constructor
	// symbol, for use by struct-initializer and pattern resolution.
	structFields map[hir.SymbolId][]FieldInfo
	structTuples map[hir.SymbolId][]hir.TypeId
	ctorShapes   map[hir.SymbolId]CtorShape

	// ctorOwner maps a constructor symbol to the enum symbol it belongs
	// to; enumCtorCount records how many constructors an enum declares,
	// both consulted by exhaustiveness checking (§4.4.5).
	ctorOwner      map[hir.SymbolId]hir.SymbolId
	enumCtorCount  map[hir.SymbolId]int
	patternSymbols map[*ast.Pattern]hir.SymbolId

	// methodSelfMutability records a method's `&mut self` requirement, if
	// any, keyed by the method's function symbol.
	methodSelfMutability map[hir.SymbolId]hir.Mutability

	// templateInfoOf records a struct/enum symbol's own template parameter
	// list plus the namespace and environment its definition was resolved
	// in, so a later type-position application of that symbol (§4.4.3) can
	// validate the supplied argument count and resolve any trailing
	// defaults in the same scope the definition itself used.
	templateInfoOf map[hir.SymbolId]templateInfo
}

// templateInfo is the per-definition record consulted by resolveTypePath
// when applying template arguments to a struct or enum (§4.4.3).
type templateInfo struct {
	params []ast.TemplateParameter
	ns     *Namespace
	env    hir.EnvId
}

// FieldInfo is one named struct field's resolved type.
type FieldInfo struct {
	Name string
	Type hir.TypeId
}

// CtorShape is one enum constructor's resolved field shape: at most one of
// Tuple or Named is non-empty (a bare constructor has neither).
type CtorShape struct {
	Tuple []hir.TypeId
	Named []FieldInfo
}

// freshTag mints a new, never-reused template parameter tag.
func (c *Context) freshTag() hir.TemplateParamTag {
	c.nextTag++
	return c.nextTag
}

// New creates a Context over an already-empty hir.Info, ready to resolve
// one ast.Module.
func New(sink diag.Sink, intern Interner, info *hir.Info) *Context {
	return &Context{
		sink:           sink,
		intern:         intern,
		info:           info,
		defStates:         map[*ast.Definition]*defState{},
		typeNamespaces:    map[string]*Namespace{},
		symbolNamespaces:  map[hir.SymbolId]*Namespace{},
		instantiations:    map[string]hir.TypeId{},
		symbolTypes:       map[hir.SymbolId]hir.TypeId{},
		symbolMutability:  map[hir.SymbolId]hir.Mutability{},
		templateTypeTags:  map[hir.SymbolId]hir.TemplateParamTag{},
		templateMutTags:   map[hir.SymbolId]hir.TemplateParamTag{},
		aliasTargets:      map[hir.SymbolId]hir.TypeId{},
		generalizedParams: map[hir.SymbolId][]hir.TemplateParamTag{},
		structFields:         map[hir.SymbolId][]FieldInfo{},
		structTuples:         map[hir.SymbolId][]hir.TypeId{},
		ctorShapes:           map[hir.SymbolId]CtorShape{},
		ctorOwner:            map[hir.SymbolId]hir.SymbolId{},
		enumCtorCount:        map[hir.SymbolId]int{},
		patternSymbols:       map[*ast.Pattern]hir.SymbolId{},
		methodSelfMutability: map[hir.SymbolId]hir.Mutability{},
		templateInfoOf:       map[hir.SymbolId]templateInfo{},
	}
}

func (c *Context) report(d diag.Diagnostic) {
	if c.sink != nil {
		c.sink.Report(d)
	}
}

func (c *Context) inUnsafe() bool {
	for _, f := range c.safetyStack {
		if f {
			return true
		}
	}
	return false
}

func (c *Context) currentLoop() *loopScope {
	if len(c.loopStack) == 0 {
		return nil
	}
	return c.loopStack[len(c.loopStack)-1]
}
