package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// namespaceFor returns the associated namespace of a resolved nominal
// type's definition, or nil for a type with none (tuples, primitives,
// references, §4.4.4).
func (c *Context) namespaceFor(t hir.TypeId) *Namespace {
	switch v := c.info.Types.Get(c.info.Types.Find(t)).(type) {
	case hir.TypeStructure:
		return c.symbolNamespaces[v.Definition]
	case hir.TypeEnumeration:
		return c.symbolNamespaces[v.Definition]
	}
	return nil
}

// resolveMethodCall resolves `e.m[t,...](a,...)`: the method is looked up
// in the receiver's (dereferenced) nominal type's associated namespace,
// and a `&mut self` method requires a mutable receiver place (§4.4.4,
// §4.4.6).
func (c *Context) resolveMethodCall(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprMethodCall) (hir.TypeId, hir.Mutability) {
	recv := c.resolveExpr(ns, env, v.Receiver)
	recvType, recvMut := c.unwrapPlace(recv)

	args := make([]hir.TypeId, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = c.typeOf(c.resolveExpr(ns, env, a.Value))
	}

	methodsNS := c.namespaceFor(recvType)
	if methodsNS == nil {
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, rng,
			"no method '%s' in scope for this type", v.Method))
		return c.errorType(), hir.Concrete(false)
	}
	sym, ok := c.info.Environments.LocalBindings(methodsNS.Env)[c.intern.Intern(v.Method)]
	if !ok || c.info.Symbols.Get(sym).Variant != hir.SymbolFunction {
		c.report(diag.New(diag.KindNamespaceMissingMember, diag.SeverityError, rng,
			"does not contain a definition for '%s'", v.Method))
		return c.errorType(), hir.Concrete(false)
	}
	c.info.Symbols.Use(sym)

	if selfMut, ok := c.methodSelfMutability[sym]; ok {
		if concrete, ok := selfMut.Variant.(hir.MutConcrete); ok && concrete.IsMutable {
			c.requireMutablePlace(rng, recvMut, "method '"+v.Method+"'")
		}
	}

	fnType, ok := c.symbolTypes[sym]
	if !ok {
		return c.errorType(), hir.Concrete(false)
	}
	fn, ok := c.info.Types.Get(c.info.Types.Find(fnType)).(hir.TypeFunction)
	if !ok {
		return c.errorType(), hir.Concrete(false)
	}
	c.unifyArguments(rng, fn.Parameters, args)
	return fn.Return, hir.Concrete(false)
}

// resolveOperatorCall resolves one desugared operator-chain link: `a op b`
// becomes a call to the free function named op. No operator-overloading
// concept table is modeled (§9); if no function named op is in scope, the
// two operand types are unified directly, matching the builtin arithmetic/
// comparison behavior for primitive types.
func (c *Context) resolveOperatorCall(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprOperatorCall) (hir.TypeId, hir.Mutability) {
	left := c.resolveExpr(ns, env, v.Left)
	right := c.resolveExpr(ns, env, v.Right)

	if sym, ok := c.info.Environments.Lookup(env, c.intern.Intern(v.Operator)); ok {
		c.info.Symbols.Use(sym)
		if fnType, ok := c.symbolTypes[sym]; ok {
			if fn, ok := c.info.Types.Get(c.info.Types.Find(fnType)).(hir.TypeFunction); ok && len(fn.Parameters) == 2 {
				c.unify(rng, fn.Parameters[0], c.typeOf(left))
				c.unify(rng, fn.Parameters[1], c.typeOf(right))
				return fn.Return, hir.Concrete(false)
			}
		}
	}
	return c.unify(rng, c.typeOf(left), c.typeOf(right)), hir.Concrete(false)
}
