package hir

import "fmt"

// Printer renders HIR types to the human-readable strings diagnostics put
// on both sides of a unification failure (§7's "unification-failure (with
// both types)"). Grounded on `libdisplay/display.cpp`'s node-visiting
// structure, collapsed from that file's indented tree dump into a single
// inline string, which is what a one-line diagnostic message needs.
type Printer struct {
	Types   *TypeArena
	Symbols *SymbolArena
}

// Print renders the type at id, flattening through any solved
// unification variables first.
func (p *Printer) Print(id TypeId) string {
	return p.print(p.Types.Find(id))
}

func (p *Printer) print(id TypeId) string {
	switch v := p.Types.Get(id).(type) {
	case TypePrimitive:
		return v.Name
	case TypeTuple:
		return "(" + p.joinTypes(v.Elements) + ")"
	case TypeArrayOf:
		return fmt.Sprintf("[%s; %d]", p.print(v.Element), v.Length)
	case TypeSlice:
		return "[" + p.print(v.Element) + "]"
	case TypeFunction:
		return fmt.Sprintf("fn(%s) : %s", p.joinTypes(v.Parameters), p.print(v.Return))
	case TypeReference:
		return "&" + p.mutPrefix(v.Mutability) + p.print(v.Referenced)
	case TypePointer:
		return "*" + p.mutPrefix(v.Mutability) + p.print(v.Pointee)
	case TypeStructure:
		return p.named(v.Definition, v.TemplateArguments)
	case TypeEnumeration:
		return p.named(v.Definition, v.TemplateArguments)
	case TypeUnificationVariable:
		return fmt.Sprintf("?%d", v.Var)
	case TypeTemplateParameterReference:
		return fmt.Sprintf("'%d", v.Tag)
	case TypeSelfPlaceholder:
		return "Self"
	case TypeError:
		return "<error>"
	default:
		return "<unknown>"
	}
}

func (p *Printer) named(def SymbolId, targs []TypeId) string {
	name := p.Symbols.Get(def).Name
	if len(targs) == 0 {
		return name
	}
	return name + "[" + p.joinTypes(targs) + "]"
}

func (p *Printer) joinTypes(ids []TypeId) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += p.print(id)
	}
	return out
}

func (p *Printer) mutPrefix(m Mutability) string {
	if c, ok := m.Variant.(MutConcrete); ok {
		if c.IsMutable {
			return "mut "
		}
		return ""
	}
	return ""
}
