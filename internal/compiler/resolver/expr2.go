package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// resolveInvocation resolves `e(a1, a2, ...)`: e may be a genuine function
// value (a TypeFunction) or a bare reference to a tuple-shaped constructor
// (struct or enum variant) used in call position (§4.4.2, §4.4.5).
func (c *Context) resolveInvocation(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprInvocation) hir.TypeId {
	callee := c.resolveExpr(ns, env, v.Invocable)
	args := make([]hir.TypeId, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = c.typeOf(c.resolveExpr(ns, env, a.Value))
	}

	calleeType := c.info.Types.Find(c.typeOf(callee))
	if fn, ok := c.info.Types.Get(calleeType).(hir.TypeFunction); ok {
		c.unifyArguments(rng, fn.Parameters, args)
		return fn.Return
	}

	sym, ok := c.info.ExprSymbols[callee]
	if !ok {
		return c.errorType()
	}
	switch c.info.Symbols.Get(sym).Variant {
	case hir.SymbolConstructor:
		shape := c.ctorShapes[sym]
		c.unifyArguments(rng, shape.Tuple, args)
		return c.enumTypeOfConstructor(sym)
	case hir.SymbolStructure:
		c.unifyArguments(rng, c.structTuples[sym], args)
		return c.info.Types.Intern(hir.TypeStructure{Definition: sym})
	}
	return c.errorType()
}

func (c *Context) unifyArguments(rng source.Range, params, args []hir.TypeId) {
	n := len(args)
	if n > len(params) {
		n = len(params)
	}
	for i := 0; i < n; i++ {
		c.unify(rng, params[i], args[i])
	}
	if len(args) != len(params) {
		c.reportArity(rng, "call", len(params), len(args))
	}
}

func (c *Context) enumTypeOfConstructor(sym hir.SymbolId) hir.TypeId {
	if owner, ok := c.ctorOwner[sym]; ok {
		return c.info.Types.Intern(hir.TypeEnumeration{Definition: owner})
	}
	return c.errorType()
}

// resolveFieldAccess resolves `e.lower`, looking straight through one level
// of reference and propagating that reference's own mutability to the
// resulting place (§4.4.4).
func (c *Context) resolveFieldAccess(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprFieldAccess) (hir.TypeId, hir.Mutability) {
	base := c.resolveExpr(ns, env, v.Base)
	structType, mut := c.unwrapPlace(base)

	st, ok := c.info.Types.Get(structType).(hir.TypeStructure)
	if !ok {
		c.report(diag.New(diag.KindStructFieldUnknown, diag.SeverityError, rng,
			"'%s' is not a value with fields", v.Field))
		return c.errorType(), hir.Concrete(false)
	}
	for _, fi := range c.structFields[st.Definition] {
		if fi.Name == v.Field {
			return fi.Type, mut
		}
	}
	c.report(diag.New(diag.KindStructFieldUnknown, diag.SeverityError, rng, "no field '%s'", v.Field))
	return c.errorType(), hir.Concrete(false)
}

// resolveTupleIndex resolves `e.N`, the tuple analogue of field access.
func (c *Context) resolveTupleIndex(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprTupleIndex) (hir.TypeId, hir.Mutability) {
	base := c.resolveExpr(ns, env, v.Base)
	tupleType, mut := c.unwrapPlace(base)

	if t, ok := c.info.Types.Get(tupleType).(hir.TypeTuple); ok && v.Index >= 0 && v.Index < len(t.Elements) {
		return t.Elements[v.Index], mut
	}
	c.report(diag.New(diag.KindArityMismatch, diag.SeverityError, rng, "tuple has no element %d", v.Index))
	return c.errorType(), hir.Concrete(false)
}

// unwrapPlace flattens e's type through one reference layer, returning the
// pointee type and the place mutability a field/tuple-index/method access
// through it should use: the reference's own mutability if e was a
// reference, otherwise e's own place mutability.
func (c *Context) unwrapPlace(e *ast.Expression) (hir.TypeId, hir.Mutability) {
	t := c.info.Types.Find(c.typeOf(e))
	if ref, ok := c.info.Types.Get(t).(hir.TypeReference); ok {
		return c.info.Types.Find(ref.Referenced), c.info.Mutabilities.Find(ref.Mutability)
	}
	return t, c.info.Mutabilities.Find(c.info.ExprMutability[e])
}
