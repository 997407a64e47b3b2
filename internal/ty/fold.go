package ty

import "fmt"

// Substitute instantiates the innermost binder of t with s: every ^0.i
// (counted from the top of t) becomes s[i]. Variables bound further out move
// one binder level inwards because the instantiated binder disappears.
func Substitute(t Ty, s Substitution) Ty {
	return substituteAt(t, s, 0)
}

// ShiftIn moves every free bound variable of t outwards by n binders.
func ShiftIn(t Ty, n int) Ty {
	if n == 0 {
		return t
	}
	return mapBound(t, 0, func(bv BoundVar, depth int) GenericArg {
		if bv.Debruijn >= depth {
			return BoundVar{Debruijn: bv.Debruijn + n, Index: bv.Index}
		}
		return bv
	})
}

func substituteAt(t Ty, s Substitution, outer int) Ty {
	return mapBound(t, outer, func(bv BoundVar, depth int) GenericArg {
		switch {
		case bv.Debruijn == depth:
			arg := s.At(bv.Index)
			if inner, ok := arg.(Ty); ok {
				return ShiftIn(inner, depth)
			}
			return arg
		case bv.Debruijn > depth:
			return BoundVar{Debruijn: bv.Debruijn - 1, Index: bv.Index}
		default:
			return bv
		}
	})
}

// mapBound rebuilds t, replacing bound variables through fn. depth counts the
// binders entered so far.
func mapBound(t Ty, depth int, fn func(BoundVar, int) GenericArg) Ty {
	switch v := t.(type) {
	case BoundVar:
		return AssertTy(fn(v, depth))
	case Apply:
		return Apply{Name: v.Name, Subst: mapSubst(v.Subst, depth, fn)}
	case Function:
		return Function{NumBinders: v.NumBinders, Subst: mapSubst(v.Subst, depth+1, fn)}
	case Alias:
		return Alias{ID: v.ID, Subst: mapSubst(v.Subst, depth, fn)}
	case InferenceVar, Dyn, Placeholder:
		return v
	default:
		panic(fmt.Sprintf("ty: unhandled type %T", t))
	}
}

func mapSubst(s Substitution, depth int, fn func(BoundVar, int) GenericArg) Substitution {
	if s == nil {
		return nil
	}
	out := make(Substitution, len(s))
	for i, arg := range s {
		switch a := arg.(type) {
		case BoundVar:
			out[i] = fn(a, depth)
		case Ty:
			out[i] = mapBound(a, depth, fn)
		default:
			out[i] = arg
		}
	}
	return out
}
