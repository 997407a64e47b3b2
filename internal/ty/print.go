package ty

import (
	"fmt"
	"strings"
)

// String renders the canonical surface syntax read back by Parse.
func (a Apply) String() string {
	switch n := a.Name.(type) {
	case TupleName:
		if n.Arity == 1 && len(a.Subst) == 1 {
			return "(" + a.Subst[0].String() + ",)"
		}
		return "(" + a.Subst.String() + ")"
	case ArrayName:
		if len(a.Subst) != 2 {
			return "[" + a.Subst.String() + "]"
		}
		return fmt.Sprintf("[%s; %s]", a.Subst[0], a.Subst[1])
	case SliceName:
		return "[" + a.Subst.String() + "]"
	case FnPointerName:
		return "fnptr" + generics(a.Subst)
	case FnDefName:
		return "fndef#" + string(n.ID) + generics(a.Subst)
	case ClosureName:
		return "closure#" + string(n.ID) + generics(a.Subst)
	case RefName:
		return "&" + lifetimePrefix(a.Subst) + mutPrefix(n.Mutability, "mut ") + lastArg(a.Subst)
	case RawName:
		if n.Mutability == Mut {
			return "*mut " + lastArg(a.Subst)
		}
		return "*const " + lastArg(a.Subst)
	case ScalarName:
		return n.Kind.String()
	case NeverName:
		return "!"
	case StrName:
		return "str"
	case AdtName:
		return string(n.ID) + generics(a.Subst)
	case AssociatedTypeName:
		return "assoc#" + string(n.ID) + generics(a.Subst)
	case OpaqueTypeName:
		return "opaque#" + string(n.ID) + generics(a.Subst)
	case ForeignName:
		return "foreign#" + string(n.ID) + generics(a.Subst)
	case GeneratorName:
		return "generator#" + string(n.ID) + generics(a.Subst)
	case GeneratorWitnessName:
		return "witness#" + string(n.ID) + generics(a.Subst)
	case ErrorName:
		return "{error}"
	default:
		return fmt.Sprintf("%T%s", n, generics(a.Subst))
	}
}

func (f Function) String() string {
	var sb strings.Builder
	if f.NumBinders > 0 {
		fmt.Fprintf(&sb, "for<%d> ", f.NumBinders)
	}
	sb.WriteString("fn(")
	if len(f.Subst) > 0 {
		sb.WriteString(f.Subst[:len(f.Subst)-1].String())
		sb.WriteString(") -> ")
		sb.WriteString(f.Subst[len(f.Subst)-1].String())
	} else {
		sb.WriteString(")")
	}
	return sb.String()
}

func (v InferenceVar) String() string {
	switch v.Kind {
	case Integer:
		return fmt.Sprintf("?%di", v.Index)
	case Float:
		return fmt.Sprintf("?%df", v.Index)
	default:
		return fmt.Sprintf("?%d", v.Index)
	}
}

func (b BoundVar) String() string {
	return fmt.Sprintf("^%d.%d", b.Debruijn, b.Index)
}

func (a Alias) String() string {
	return "alias#" + string(a.ID) + generics(a.Subst)
}

func (d Dyn) String() string {
	names := make([]string, len(d.Traits))
	for i, t := range d.Traits {
		names[i] = string(t)
	}
	return "dyn " + strings.Join(names, " + ")
}

func (p Placeholder) String() string {
	return fmt.Sprintf("!%d.%d", p.Universe, p.Index)
}

func generics(s Substitution) string {
	if len(s) == 0 {
		return ""
	}
	return "<" + s.String() + ">"
}

func mutPrefix(m Mutability, s string) string {
	if m == Mut {
		return s
	}
	return ""
}

func lifetimePrefix(s Substitution) string {
	if len(s) == 2 {
		if lt, ok := s[0].(Lifetime); ok && lt.Name != "_" {
			return lt.String() + " "
		}
	}
	return ""
}

func lastArg(s Substitution) string {
	if len(s) == 0 {
		return "?"
	}
	return s[len(s)-1].String()
}
