package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

// unify unifies two types per §4.4.2's union-find rules: primitive
// identity, structural unification of tuples/arrays/slices/functions
// (arity mismatches reported as errors), reference/pointer unification
// with one-directional `&mut T -> &T` coercion, nominal unification of
// structures/enumerations by definition and template arguments, and
// unsolved variables solved (after an occurs-check) to whatever they meet.
// a is treated as the expected side for diagnostics and for mutability
// coercion direction.
func (c *Context) unify(rng source.Range, a, b hir.TypeId) hir.TypeId {
	a = c.info.Types.Find(a)
	b = c.info.Types.Find(b)
	if a == b {
		return a
	}

	if _, ok := c.info.Types.Get(a).(hir.TypeError); ok {
		return b
	}
	if _, ok := c.info.Types.Get(b).(hir.TypeError); ok {
		return a
	}

	if av, ok := c.info.Types.Get(a).(hir.TypeUnificationVariable); ok {
		return c.solveVar(rng, av, b)
	}
	if bv, ok := c.info.Types.Get(b).(hir.TypeUnificationVariable); ok {
		return c.solveVar(rng, bv, a)
	}

	switch av := c.info.Types.Get(a).(type) {
	case hir.TypePrimitive:
		if bv, ok := c.info.Types.Get(b).(hir.TypePrimitive); ok && bv.Name == av.Name {
			return a
		}

	case hir.TypeTuple:
		if bv, ok := c.info.Types.Get(b).(hir.TypeTuple); ok {
			if len(bv.Elements) != len(av.Elements) {
				c.reportArity(rng, "tuple", len(av.Elements), len(bv.Elements))
				return c.errorType()
			}
			elems := make([]hir.TypeId, len(av.Elements))
			for i := range av.Elements {
				elems[i] = c.unify(rng, av.Elements[i], bv.Elements[i])
			}
			return c.info.Types.Intern(hir.TypeTuple{Elements: elems})
		}

	case hir.TypeArrayOf:
		if bv, ok := c.info.Types.Get(b).(hir.TypeArrayOf); ok && bv.Length == av.Length {
			return c.info.Types.Intern(hir.TypeArrayOf{Element: c.unify(rng, av.Element, bv.Element), Length: av.Length})
		}

	case hir.TypeSlice:
		if bv, ok := c.info.Types.Get(b).(hir.TypeSlice); ok {
			return c.info.Types.Intern(hir.TypeSlice{Element: c.unify(rng, av.Element, bv.Element)})
		}

	case hir.TypeFunction:
		if bv, ok := c.info.Types.Get(b).(hir.TypeFunction); ok {
			if len(bv.Parameters) != len(av.Parameters) {
				c.reportArity(rng, "function", len(av.Parameters), len(bv.Parameters))
				return c.errorType()
			}
			params := make([]hir.TypeId, len(av.Parameters))
			for i := range av.Parameters {
				params[i] = c.unify(rng, av.Parameters[i], bv.Parameters[i])
			}
			return c.info.Types.Intern(hir.TypeFunction{Parameters: params, Return: c.unify(rng, av.Return, bv.Return)})
		}

	case hir.TypeReference:
		if bv, ok := c.info.Types.Get(b).(hir.TypeReference); ok {
			return c.info.Types.Intern(hir.TypeReference{
				Mutability: c.unifyMutCoercible(rng, av.Mutability, bv.Mutability),
				Referenced: c.unify(rng, av.Referenced, bv.Referenced),
			})
		}

	case hir.TypePointer:
		if bv, ok := c.info.Types.Get(b).(hir.TypePointer); ok {
			return c.info.Types.Intern(hir.TypePointer{
				Mutability: c.unifyMutCoercible(rng, av.Mutability, bv.Mutability),
				Pointee:    c.unify(rng, av.Pointee, bv.Pointee),
			})
		}

	case hir.TypeStructure:
		if bv, ok := c.info.Types.Get(b).(hir.TypeStructure); ok && bv.Definition == av.Definition && len(bv.TemplateArguments) == len(av.TemplateArguments) {
			args := make([]hir.TypeId, len(av.TemplateArguments))
			for i := range av.TemplateArguments {
				args[i] = c.unify(rng, av.TemplateArguments[i], bv.TemplateArguments[i])
			}
			return c.info.Types.Intern(hir.TypeStructure{Definition: av.Definition, TemplateArguments: args})
		}

	case hir.TypeEnumeration:
		if bv, ok := c.info.Types.Get(b).(hir.TypeEnumeration); ok && bv.Definition == av.Definition && len(bv.TemplateArguments) == len(av.TemplateArguments) {
			args := make([]hir.TypeId, len(av.TemplateArguments))
			for i := range av.TemplateArguments {
				args[i] = c.unify(rng, av.TemplateArguments[i], bv.TemplateArguments[i])
			}
			return c.info.Types.Intern(hir.TypeEnumeration{Definition: av.Definition, TemplateArguments: args})
		}

	case hir.TypeSelfPlaceholder:
		if _, ok := c.info.Types.Get(b).(hir.TypeSelfPlaceholder); ok {
			return a
		}

	case hir.TypeTemplateParameterReference:
		if bv, ok := c.info.Types.Get(b).(hir.TypeTemplateParameterReference); ok && bv.Tag == av.Tag {
			return a
		}
	}

	c.reportMismatch(rng, a, b)
	return c.errorType()
}

// solveVar binds v to target after an occurs-check, or reports a recursive-
// solution diagnostic if target contains v itself (§4.4.2).
func (c *Context) solveVar(rng source.Range, v hir.TypeUnificationVariable, target hir.TypeId) hir.TypeId {
	target = c.info.Types.Find(target)
	if tv, ok := c.info.Types.Get(target).(hir.TypeUnificationVariable); ok && tv.Var == v.Var {
		return target
	}
	if c.occursIn(v.Var, target) {
		c.report(diag.New(diag.KindRecursiveSolution, diag.SeverityError, rng,
			"recursive unification variable solution"))
		return c.errorType()
	}
	if v.Kind == hir.TypeVarIntegral {
		if prim, ok := c.info.Types.Get(target).(hir.TypePrimitive); ok && !isIntegralPrimitive(prim.Name) {
			c.report(diag.New(diag.KindCoercionFailure, diag.SeverityError, rng,
				"expected an integral type, found '%s'", prim.Name))
			return c.errorType()
		}
	}
	c.info.Types.Solve(v.Var, target)
	for _, class := range c.info.Types.Constraints(v.Var) {
		_ = class // concept satisfaction against a concrete target is checked by method lookup (§4.4.4)
	}
	return target
}

func isIntegralPrimitive(name string) bool {
	switch name {
	case "I8", "I16", "I32", "I64", "U8", "U16", "U32", "U64":
		return true
	}
	return false
}

// occursIn reports whether unification variable v appears anywhere inside
// id's structure, following solved variables but not re-entering once a
// variable has already been visited (id graphs are finite and acyclic
// outside of what this very check guards against).
func (c *Context) occursIn(v hir.TypeVarID, id hir.TypeId) bool {
	id = c.info.Types.Find(id)
	switch t := c.info.Types.Get(id).(type) {
	case hir.TypeUnificationVariable:
		return t.Var == v
	case hir.TypeTuple:
		for _, e := range t.Elements {
			if c.occursIn(v, e) {
				return true
			}
		}
	case hir.TypeArrayOf:
		return c.occursIn(v, t.Element)
	case hir.TypeSlice:
		return c.occursIn(v, t.Element)
	case hir.TypeFunction:
		for _, p := range t.Parameters {
			if c.occursIn(v, p) {
				return true
			}
		}
		return c.occursIn(v, t.Return)
	case hir.TypeReference:
		return c.occursIn(v, t.Referenced)
	case hir.TypePointer:
		return c.occursIn(v, t.Pointee)
	case hir.TypeStructure:
		for _, a := range t.TemplateArguments {
			if c.occursIn(v, a) {
				return true
			}
		}
	case hir.TypeEnumeration:
		for _, a := range t.TemplateArguments {
			if c.occursIn(v, a) {
				return true
			}
		}
	}
	return false
}

// unifyMutCoercible unifies two reference/pointer mutabilities, allowing the
// one §4.4.2 coercion: a `&mut T` (actual) may stand in for a `&T`
// (expected), never the reverse.
func (c *Context) unifyMutCoercible(rng source.Range, expected, actual hir.Mutability) hir.Mutability {
	expected = c.info.Mutabilities.Find(expected)
	actual = c.info.Mutabilities.Find(actual)

	if ev, ok := expected.Variant.(hir.MutVariable); ok {
		c.info.Mutabilities.Solve(ev.Var, actual)
		return actual
	}
	if av, ok := actual.Variant.(hir.MutVariable); ok {
		c.info.Mutabilities.Solve(av.Var, expected)
		return expected
	}

	ec, eok := expected.Variant.(hir.MutConcrete)
	ac, aok := actual.Variant.(hir.MutConcrete)
	if eok && aok {
		if !ec.IsMutable || ac.IsMutable {
			return expected
		}
		c.report(diag.New(diag.KindMutabilityViolation, diag.SeverityError, rng,
			"expected a mutable reference, found an immutable one"))
		return expected
	}
	return expected
}

func (c *Context) errorType() hir.TypeId {
	return c.info.Types.Intern(hir.TypeError{})
}

func (c *Context) reportMismatch(rng source.Range, a, b hir.TypeId) {
	p := &hir.Printer{Types: c.info.Types, Symbols: c.info.Symbols}
	c.report(diag.New(diag.KindUnificationFailure, diag.SeverityError, rng,
		"expected %s, found %s", p.Print(a), p.Print(b)))
}

func (c *Context) reportArity(rng source.Range, kind string, expected, actual int) {
	c.report(diag.New(diag.KindArityMismatch, diag.SeverityError, rng,
		"%s arity mismatch: expected %d, found %d", kind, expected, actual))
}
