package resolver

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

// resolveDefinition is pass 2's entry point for one definition: it guards
// against a circular dependency via the Unresolved -> OnStack -> Resolved
// state machine (§4.4.1) and dispatches on the definition's shape. Impl
// blocks have no defState of their own (they were skipped by pass 1); only
// their inner definitions do.
func (c *Context) resolveDefinition(ns *Namespace, def *ast.Definition) {
	st, tracked := c.defStates[def]
	if tracked {
		switch st.status {
		case statusResolved:
			return
		case statusOnStack:
			c.report(diag.New(diag.KindCircularDependency, diag.SeverityError, def.Range,
				"circular dependency resolving '%s'", c.info.Symbols.Get(st.symbol).Name))
			return
		}
		st.status = statusOnStack
		defer func() { st.status = statusResolved }()
	}

	switch v := def.Variant.(type) {
	case ast.DefFunction:
		c.resolveFunction(ns, def, st, v)
	case ast.DefStruct:
		c.resolveStruct(ns, st, v)
	case ast.DefEnum:
		c.resolveEnum(ns, def, st, v)
	case ast.DefAlias:
		c.resolveAlias(ns, def, st, v)
	case ast.DefConcept:
		c.resolveConcept(ns, def, st, v)
	case ast.DefImpl:
		if assoc := c.implNamespace(v); assoc != nil {
			for _, inner := range v.Definitions {
				c.resolveDefinition(assoc, inner)
			}
		}
	case ast.DefSubmodule:
		for _, inner := range v.Definitions {
			c.resolveDefinition(st.ns, inner)
		}
	}
}

func (c *Context) implNamespace(impl ast.DefImpl) *Namespace {
	return c.typeNamespaces[implTargetName(impl.SelfType)]
}

// resolveFunction resolves one function's template parameters, signature,
// and body, storing its signature as a TypeFunction and generalizing any
// unification variable still unsolved afterward into an implicit template
// parameter (§4.4.3, §4.4.8).
func (c *Context) resolveFunction(ns *Namespace, def *ast.Definition, st *defState, v ast.DefFunction) {
	env := c.bindTemplateParams(ns, ns.Env, v.TemplateParameters)

	if self := v.Signature.Self; self != nil && self.Reference {
		c.methodSelfMutability[st.symbol] = hir.Concrete(self.Mutability.IsMutable)
	}

	paramTypes := make([]hir.TypeId, len(v.Signature.Parameters))
	for i, p := range v.Signature.Parameters {
		var t hir.TypeId
		if p.Type != nil {
			t = c.resolveType(ns, env, p.Type)
		} else {
			// An unannotated parameter infers its type from the body and
			// call sites, the same unsolved-variable machinery generalize
			// later promotes to an implicit template parameter.
			t, _ = c.info.Types.Fresh(hir.TypeVarGeneral)
		}
		paramTypes[i] = t
		c.resolvePattern(ns, env, p.Pattern, t)
		if !c.isExhaustiveByItself(p.Pattern) {
			c.report(diag.New(diag.KindInexhaustivePattern, diag.SeverityError, p.Pattern.Range,
				"parameter pattern is not exhaustive"))
		}
		if p.Default != nil {
			c.unify(p.Pattern.Range, t, c.typeOf(c.resolveExpr(ns, env, p.Default)))
		}
	}
	// A missing return annotation resolves to TypeError, which unify treats
	// as a wildcard (§4.4.2): the declared return type, if any, constrains
	// the body; otherwise the body's own inferred type stands as-is.
	retType := c.resolveType(ns, env, v.Signature.Return)
	c.symbolTypes[st.symbol] = c.info.Types.Intern(hir.TypeFunction{Parameters: paramTypes, Return: retType})

	body := c.resolveExpr(ns, env, v.Body)
	c.unify(def.Range, retType, c.typeOf(body))

	c.generalizeSignature(st.symbol, append(append([]hir.TypeId{}, paramTypes...), retType))
}

// resolveStruct resolves every field's type (named-field and tuple-field
// shapes are mutually exclusive, §3.5), and forbids an unsolved variable
// from surviving into a struct's own shape (§4.4.8: structs are never
// generalized).
func (c *Context) resolveStruct(ns *Namespace, st *defState, v ast.DefStruct) {
	assoc := st.ns
	env := c.bindTemplateParams(ns, assoc.Env, v.TemplateParameters)
	c.templateInfoOf[st.symbol] = templateInfo{params: v.TemplateParameters, ns: ns, env: env}

	var types []hir.TypeId
	switch {
	case v.NamedFields != nil:
		fields := make([]FieldInfo, len(v.NamedFields))
		for i, f := range v.NamedFields {
			t := c.resolveType(ns, env, f.Type)
			fields[i] = FieldInfo{Name: f.Name, Type: t}
			types = append(types, t)
			if fsym, ok := c.info.Environments.LocalBindings(assoc.Env)[c.intern.Intern(f.Name)]; ok {
				c.symbolTypes[fsym] = t
			}
		}
		c.structFields[st.symbol] = fields
	case v.TupleFields != nil:
		tuple := make([]hir.TypeId, len(v.TupleFields))
		for i, ft := range v.TupleFields {
			tuple[i] = c.resolveType(ns, env, ft)
		}
		c.structTuples[st.symbol] = tuple
		types = tuple
	}
	c.forbidUnsolvedVariables(st.def.Range, types)
}

// resolveEnum resolves every constructor's field shape and records the
// constructor count exhaustiveness checking needs (§4.4.5, §4.4.8).
func (c *Context) resolveEnum(ns *Namespace, def *ast.Definition, st *defState, v ast.DefEnum) {
	assoc := st.ns
	env := c.bindTemplateParams(ns, assoc.Env, v.TemplateParameters)
	c.templateInfoOf[st.symbol] = templateInfo{params: v.TemplateParameters, ns: ns, env: env}
	c.enumCtorCount[st.symbol] = len(v.Constructors)

	var allTypes []hir.TypeId
	for _, ctor := range v.Constructors {
		ctorSym, ok := c.info.Environments.LocalBindings(assoc.Env)[c.intern.Intern(ctor.Name)]
		if !ok {
			continue
		}
		c.ctorOwner[ctorSym] = st.symbol

		var shape CtorShape
		switch {
		case ctor.NamedFields != nil:
			named := make([]FieldInfo, len(ctor.NamedFields))
			for i, f := range ctor.NamedFields {
				t := c.resolveType(ns, env, f.Type)
				named[i] = FieldInfo{Name: f.Name, Type: t}
				allTypes = append(allTypes, t)
			}
			shape.Named = named
		case ctor.TupleFields != nil:
			tuple := make([]hir.TypeId, len(ctor.TupleFields))
			for i, ft := range ctor.TupleFields {
				tuple[i] = c.resolveType(ns, env, ft)
				allTypes = append(allTypes, tuple[i])
			}
			shape.Tuple = tuple
		}
		c.ctorShapes[ctorSym] = shape
	}
	c.forbidUnsolvedVariables(def.Range, allTypes)
}

// resolveAlias resolves an alias's target type once and caches it; forward
// references from another alias or type path force this through
// resolveTypePath's defByNS fallback rather than duplicating resolution.
func (c *Context) resolveAlias(ns *Namespace, def *ast.Definition, st *defState, v ast.DefAlias) {
	env := c.bindTemplateParams(ns, st.ns.Env, v.TemplateParameters)
	target := c.resolveType(ns, env, v.Type)
	c.aliasTargets[st.symbol] = target
	c.forbidUnsolvedVariables(def.Range, []hir.TypeId{target})
}

// resolveConcept resolves each method signature's parameter/return types,
// recording them against the signature's own pre-declared function symbol
// so `impl` methods and direct calls share one TypeFunction shape.
func (c *Context) resolveConcept(ns *Namespace, def *ast.Definition, st *defState, v ast.DefConcept) {
	assoc := st.ns
	env := c.bindTemplateParams(ns, assoc.Env, v.TemplateParameters)

	var allTypes []hir.TypeId
	for _, sig := range v.Signatures {
		sigSym, ok := c.info.Environments.LocalBindings(assoc.Env)[c.intern.Intern(sig.Name)]
		if !ok {
			continue
		}
		params := make([]hir.TypeId, len(sig.Signature.Parameters))
		for i, p := range sig.Signature.Parameters {
			params[i] = c.resolveType(ns, env, p.Type)
			allTypes = append(allTypes, params[i])
		}
		ret := c.resolveType(ns, env, sig.Signature.Return)
		allTypes = append(allTypes, ret)
		c.symbolTypes[sigSym] = c.info.Types.Intern(hir.TypeFunction{Parameters: params, Return: ret})
	}
	c.forbidUnsolvedVariables(def.Range, allTypes)
}
