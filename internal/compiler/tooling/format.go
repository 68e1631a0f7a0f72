package tooling

import (
	"fmt"
	"strings"

	"github.com/kieli-lang/kieli/internal/compiler/hir"
)

// formatType renders id as Kieli surface syntax for a hover card. It
// flattens unification variables through the arena the way a diagnostic
// message would, falling back to a placeholder for anything still
// unsolved (§4.4.2's inference never promises every variable is pinned by
// the time an editor asks).
func formatType(info *hir.Info, id hir.TypeId) string {
	id = info.Types.Find(id)
	switch v := info.Types.Get(id).(type) {
	case hir.TypePrimitive:
		return v.Name
	case hir.TypeTuple:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = formatType(info, el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case hir.TypeArrayOf:
		return fmt.Sprintf("[%s; %d]", formatType(info, v.Element), v.Length)
	case hir.TypeSlice:
		return fmt.Sprintf("[%s]", formatType(info, v.Element))
	case hir.TypeFunction:
		parts := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			parts[i] = formatType(info, p)
		}
		return fmt.Sprintf("fn(%s) : %s", strings.Join(parts, ", "), formatType(info, v.Return))
	case hir.TypeReference:
		return "&" + mutPrefix(info, v.Mutability) + formatType(info, v.Referenced)
	case hir.TypePointer:
		return "*" + mutPrefix(info, v.Mutability) + formatType(info, v.Pointee)
	case hir.TypeStructure:
		return info.Symbols.Get(v.Definition).Name + templateSuffix(info, v.TemplateArguments)
	case hir.TypeEnumeration:
		return info.Symbols.Get(v.Definition).Name + templateSuffix(info, v.TemplateArguments)
	case hir.TypeSelfPlaceholder:
		return "Self"
	case hir.TypeTemplateParameterReference:
		return "?"
	case hir.TypeUnificationVariable:
		return "_"
	case hir.TypeError:
		return "<error>"
	default:
		return "<unknown>"
	}
}

// mutPrefix renders a flattened mutability as the "mut " prefix a
// reference/pointer type's hover text shows, treating anything not yet
// pinned to a concrete value (an unsolved variable or a template
// mutability parameter) as immutable rather than risking IsMutable's
// panic on those forms.
func mutPrefix(info *hir.Info, m hir.Mutability) string {
	flat := info.Mutabilities.Find(m)
	if c, ok := flat.Variant.(hir.MutConcrete); ok && c.IsMutable {
		return "mut "
	}
	return ""
}

func templateSuffix(info *hir.Info, args []hir.TypeId) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatType(info, a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
