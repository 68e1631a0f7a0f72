// Package hir defines the resolved, high-level intermediate representation
// (§3.6): a type/mutability model with unification variables, a symbol
// table, and a lexical environment chain. Every node lives in an
// append-only arena keyed by a small integer id so that handles stay
// Copy and an arena can never hold a dangling reference (§3.7).
//
// Unlike the cst/ast packages, HIR does not duplicate the expression tree.
// The AST produced by the desugarer is already the shape the resolver
// walks; HIR instead supplies the *resolved facts* about that tree
// (a node's type, the symbol a path refers to, a pattern's bindings) in
// side tables keyed by AST node identity, plus the arenas those facts
// point into. This plays the role the spec's "HIR arena" does for a
// value-typed IR, adapted to Go's pointer-identity AST.
package hir

import "github.com/kieli-lang/kieli/internal/compiler/source"

// StringId is an interned-string handle, minted by the database's string
// pool (§3.1) and used as the key type for environment bindings so two
// equal names always compare equal in O(1).
type StringId int32

// TemplateParamTag distinguishes a template parameter's identity from a
// unification variable's, even though both may ultimately back the same
// Type slot: comparing a TemplateParamTag against a TypeVarID is a
// compile error, by construction (§ supplemented features,
// `Template_parameter_tag` in the original `mir.hpp`).
type TemplateParamTag int32

// Node is implemented by every arena-resident HIR value that carries a
// source range back to the AST it was resolved from.
type Node interface {
	Span() source.Range
}
