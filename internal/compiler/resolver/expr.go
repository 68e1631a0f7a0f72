package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// resolveExpr resolves e, annotating hir.Info with its type, mutability,
// and (for a path) the symbol it referred to, and returns e itself so
// callers can chain straight into info.TypeOf. env is the lexical
// environment e resolves names through; it grows (via a returned child,
// where a sub-expression introduces bindings — blocks and let) as
// resolution descends (§4.4).
func (c *Context) resolveExpr(ns *Namespace, env hir.EnvId, e *ast.Expression) *ast.Expression {
	if e == nil {
		return e
	}
	typ, mut := c.resolveExprVariant(ns, env, e)
	c.info.ExprTypes[e] = typ
	c.info.ExprMutability[e] = mut
	return e
}

func (c *Context) typeOf(e *ast.Expression) hir.TypeId {
	id, ok := c.info.TypeOf(e)
	if !ok {
		return c.errorType()
	}
	return id
}

func (c *Context) resolveExprVariant(ns *Namespace, env hir.EnvId, e *ast.Expression) (hir.TypeId, hir.Mutability) {
	switch v := e.Variant.(type) {
	case ast.ExprLiteral:
		return c.literalType(v.Value), hir.Concrete(false)

	case ast.ExprPath:
		sym, ok := c.resolvePath(ns, env, v.Path)
		c.info.ExprSymbols[e] = sym
		if !ok {
			return c.errorType(), hir.Concrete(false)
		}
		if typ, ok := c.symbolTypes[sym]; ok {
			s := c.info.Symbols.Get(sym)
			mut := hir.Concrete(false)
			if s.Variant == hir.SymbolLocalVariable {
				if m, ok := c.symbolMutability[sym]; ok {
					mut = m
				}
			}
			return typ, mut
		}
		// A function/constructor reference used as a value: its type is a
		// function type built from its own signature, deferred to method/
		// call resolution (§4.4.3); here it is typed as itself via a fresh
		// placeholder that call resolution narrows.
		id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		return id, hir.Concrete(false)

	case ast.ExprHole:
		id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		return id, hir.Concrete(false)

	case ast.ExprTuple:
		elems := make([]hir.TypeId, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = c.typeOf(c.resolveExpr(ns, env, el))
		}
		return c.info.Types.Intern(hir.TypeTuple{Elements: elems}), hir.Concrete(false)

	case ast.ExprArray:
		elemType, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		for _, el := range v.Elements {
			elemType = c.unify(el.Range, elemType, c.typeOf(c.resolveExpr(ns, env, el)))
		}
		return c.info.Types.Intern(hir.TypeArrayOf{Element: elemType, Length: int64(len(v.Elements))}), hir.Concrete(false)

	case ast.ExprStructInitializer:
		return c.resolveStructInitializer(ns, env, e.Range, v), hir.Concrete(false)

	case ast.ExprBlock:
		return c.resolveBlock(ns, env, v), hir.Concrete(false)

	case ast.ExprInvocation:
		return c.resolveInvocation(ns, env, e.Range, v), hir.Concrete(false)

	case ast.ExprFieldAccess:
		return c.resolveFieldAccess(ns, env, e.Range, v)

	case ast.ExprTupleIndex:
		return c.resolveTupleIndex(ns, env, e.Range, v)

	case ast.ExprArrayIndex:
		base := c.resolveExpr(ns, env, v.Base)
		c.resolveExpr(ns, env, v.Index)
		elem, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		bt := c.info.Types.Find(c.typeOf(base))
		switch t := c.info.Types.Get(bt).(type) {
		case hir.TypeArrayOf:
			elem = c.unify(e.Range, elem, t.Element)
		case hir.TypeSlice:
			elem = c.unify(e.Range, elem, t.Element)
		}
		return elem, hir.Concrete(false)

	case ast.ExprMethodCall:
		return c.resolveMethodCall(ns, env, e.Range, v)

	case ast.ExprOperatorCall:
		return c.resolveOperatorCall(ns, env, e.Range, v)

	case ast.ExprConditional:
		c.resolveExpr(ns, env, v.Condition)
		then := c.resolveExpr(ns, env, v.Then)
		els := c.resolveExpr(ns, env, v.Else)
		return c.unify(e.Range, c.typeOf(then), c.typeOf(els)), hir.Concrete(false)

	case ast.ExprMatch:
		return c.resolveMatch(ns, env, e.Range, v), hir.Concrete(false)

	case ast.ExprLoop:
		return c.resolveLoop(ns, env, v), hir.Concrete(false)

	case ast.ExprLet:
		valType := c.typeOf(c.resolveExpr(ns, env, v.Value))
		if v.Type != nil {
			valType = c.unify(e.Range, c.resolveType(ns, env, v.Type), valType)
		}
		c.resolvePattern(ns, env, v.Pattern, valType)
		if !c.isExhaustiveByItself(v.Pattern) {
			c.report(diag.New(diag.KindInexhaustivePattern, diag.SeverityError, v.Pattern.Range,
				"pattern is not exhaustive"))
		}
		return c.info.Types.Intern(hir.TypeTuple{}), hir.Concrete(false)

	case ast.ExprLocalAlias:
		sym := c.info.Symbols.Declare(hir.Symbol{Name: v.Name, Range: e.Range, Variant: hir.SymbolLocalType})
		c.info.Environments.Bind(env, c.intern.Intern(v.Name), sym)
		c.aliasTargets[sym] = c.resolveType(ns, env, v.Type)
		return c.info.Types.Intern(hir.TypeTuple{}), hir.Concrete(false)

	case ast.ExprAddressOf:
		operand := c.resolveExpr(ns, env, v.Operand)
		mut := c.resolveMutability(ns, env, v.Mutability)
		if concrete, ok := mut.Variant.(hir.MutConcrete); ok && concrete.IsMutable {
			c.requireMutablePlace(e.Range, c.info.ExprMutability[operand], "'&mut'")
		}
		return c.info.Types.Intern(hir.TypeReference{Mutability: mut, Referenced: c.typeOf(operand)}), hir.Concrete(false)

	case ast.ExprDereference:
		operand := c.resolveExpr(ns, env, v.Operand)
		refMut := hir.Concrete(false)
		var pointee hir.TypeId
		switch t := c.info.Types.Get(c.info.Types.Find(c.typeOf(operand))).(type) {
		case hir.TypeReference:
			pointee, refMut = t.Referenced, t.Mutability
		case hir.TypePointer:
			if !c.inUnsafe() {
				c.report(diag.New(diag.KindUnsafeViolation, diag.SeverityError, e.Range,
					"dereferencing a raw pointer requires an unsafe context"))
			}
			pointee, refMut = t.Pointee, t.Mutability
		default:
			pointee, _ = c.info.Types.Fresh(hir.TypeVarGeneral)
		}
		return pointee, refMut

	case ast.ExprSizeof:
		c.resolveType(ns, env, v.Type)
		return c.info.Types.Intern(hir.TypePrimitive{Name: "USize"}), hir.Concrete(false)

	case ast.ExprMove:
		operand := c.resolveExpr(ns, env, v.Operand)
		return c.typeOf(operand), hir.Concrete(false)

	case ast.ExprDefer:
		c.resolveExpr(ns, env, v.Operand)
		return c.info.Types.Intern(hir.TypeTuple{}), hir.Concrete(false)

	case ast.ExprUnsafe:
		c.safetyStack = append(c.safetyStack, true)
		operand := c.resolveExpr(ns, env, v.Operand)
		c.safetyStack = c.safetyStack[:len(c.safetyStack)-1]
		return c.typeOf(operand), hir.Concrete(false)

	case ast.ExprMeta:
		c.resolveExpr(ns, env, v.Operand)
		c.report(diag.New(diag.KindNotImplemented, diag.SeverityError, e.Range, "meta() is not implemented"))
		return c.errorType(), hir.Concrete(false)

	case ast.ExprBreak:
		return c.resolveBreak(ns, env, e.Range, v), hir.Concrete(false)

	case ast.ExprContinue:
		if c.currentLoop() == nil {
			c.report(diag.New(diag.KindContinueOutsideLoop, diag.SeverityError, e.Range, "'continue' can not appear outside of a loop"))
		}
		return c.info.Types.Intern(hir.TypeTuple{}), hir.Concrete(false)

	case ast.ExprRet:
		if v.Value != nil {
			c.resolveExpr(ns, env, v.Value)
		}
		id, _ := c.info.Types.Fresh(hir.TypeVarGeneral)
		return id, hir.Concrete(false)

	case ast.ExprDiscard:
		c.resolveExpr(ns, env, v.Operand)
		return c.info.Types.Intern(hir.TypeTuple{}), hir.Concrete(false)

	case ast.ExprCast:
		c.resolveExpr(ns, env, v.Operand)
		return c.resolveType(ns, env, v.Type), hir.Concrete(false)

	case ast.ExprAscription:
		operand := c.resolveExpr(ns, env, v.Operand)
		ascribed := c.resolveType(ns, env, v.Type)
		return c.unify(e.Range, ascribed, c.typeOf(operand)), hir.Concrete(false)

	case ast.ExprError:
		return c.errorType(), hir.Concrete(false)
	}
	return c.errorType(), hir.Concrete(false)
}

func (c *Context) literalType(value any) hir.TypeId {
	switch value.(type) {
	case int64:
		id, _ := c.info.Types.Fresh(hir.TypeVarIntegral)
		return id
	case float64:
		return c.info.Types.Intern(hir.TypePrimitive{Name: "F64"})
	case rune:
		return c.info.Types.Intern(hir.TypePrimitive{Name: "Char"})
	case string:
		return c.info.Types.Intern(hir.TypeReference{Mutability: hir.Concrete(false), Referenced: c.info.Types.Intern(hir.TypeSlice{Element: c.info.Types.Intern(hir.TypePrimitive{Name: "Char"})})})
	case bool:
		return c.info.Types.Intern(hir.TypePrimitive{Name: "Bool"})
	}
	return c.errorType()
}

// resolveBlock resolves a block's statements and trailing result in a
// fresh child environment, so `let` bindings inside it do not leak out, then
// warns on any local the block introduced but never consulted (§3.7).
func (c *Context) resolveBlock(ns *Namespace, env hir.EnvId, v ast.ExprBlock) hir.TypeId {
	inner := c.info.Environments.Child(env)
	for _, stmt := range v.Statements {
		c.resolveExpr(ns, inner, stmt)
	}
	if v.Result == nil {
		c.checkUnusedLocals(inner)
		return c.info.Types.Intern(hir.TypeTuple{})
	}
	typ := c.typeOf(c.resolveExpr(ns, inner, v.Result))
	c.checkUnusedLocals(inner)
	return typ
}

func (c *Context) resolveStructInitializer(ns *Namespace, env hir.EnvId, rng source.Range, v ast.ExprStructInitializer) hir.TypeId {
	sym, ok := c.resolvePath(ns, env, v.Name)
	if !ok {
		for _, f := range v.Fields {
			if f.Value != nil {
				c.resolveExpr(ns, env, f.Value)
			}
		}
		return c.errorType()
	}
	s := c.info.Symbols.Get(sym)
	if s.Variant != hir.SymbolStructure {
		c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, rng, "'%s' is not a struct", s.Name))
		return c.errorType()
	}
	fields := c.structFields[sym]
	seen := map[string]bool{}
	for _, f := range v.Fields {
		var expected hir.TypeId
		for _, fi := range fields {
			if fi.Name == f.Name {
				expected = fi.Type
			}
		}
		if expected == 0 {
			found := false
			for _, fi := range fields {
				if fi.Name == f.Name {
					found = true
				}
			}
			if !found {
				c.report(diag.New(diag.KindStructFieldUnknown, diag.SeverityError, rng,
					"'%s' has no field '%s'", s.Name, f.Name))
			}
		}
		seen[f.Name] = true
		if f.Value != nil {
			got := c.typeOf(c.resolveExpr(ns, env, f.Value))
			c.unify(rng, expected, got)
		} else {
			fsym, ok := c.info.Environments.Lookup(env, c.intern.Intern(f.Name))
			if ok {
				c.info.Symbols.Use(fsym)
			}
		}
	}
	for _, fi := range fields {
		if !seen[fi.Name] {
			c.report(diag.New(diag.KindStructFieldUninit, diag.SeverityError, rng,
				"field '%s' is not initialized", fi.Name))
		}
	}
	return c.info.Types.Intern(hir.TypeStructure{Definition: sym})
}
