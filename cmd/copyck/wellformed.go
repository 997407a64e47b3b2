package main

import (
	"fmt"

	"copyck/internal/ty"
)

// checkWellFormed rejects goals the classifier would treat as caller bugs:
// constructors applied to the wrong number or kind of arguments, closures
// missing from the database, and bound variables outside the --binders scope.
func (a *app) checkWellFormed(t ty.Ty) error {
	return a.wellFormed(t, 0, map[ty.ClosureID]bool{})
}

// depth counts the function binders entered; variables bound inside a
// function type are never looked up.
func (a *app) wellFormed(t ty.Ty, depth int, visiting map[ty.ClosureID]bool) error {
	var subst ty.Substitution
	switch v := t.(type) {
	case ty.BoundVar:
		if v.Debruijn < depth {
			return nil
		}
		if v.Debruijn > depth || v.Index >= len(a.binders) {
			return fmt.Errorf("bound variable %s outside binder scope of %d variables", v, len(a.binders))
		}
		return nil
	case ty.Apply:
		if err := a.wellFormedApply(v, depth, visiting); err != nil {
			return err
		}
		subst = v.Subst
	case ty.Function:
		depth++
		subst = v.Subst
	case ty.Alias:
		subst = v.Subst
	}
	for _, arg := range subst {
		if inner, ok := arg.(ty.Ty); ok {
			if err := a.wellFormed(inner, depth, visiting); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) wellFormedApply(t ty.Apply, depth int, visiting map[ty.ClosureID]bool) error {
	switch name := t.Name.(type) {
	case ty.TupleName:
		if name.Arity != len(t.Subst) {
			return fmt.Errorf("tuple of arity %d has %d arguments", name.Arity, len(t.Subst))
		}
		for i, arg := range t.Subst {
			if _, ok := arg.(ty.Ty); !ok {
				return fmt.Errorf("tuple element %d is %s, expected a type", i, arg)
			}
		}

	case ty.ArrayName:
		if len(t.Subst) != 2 {
			return fmt.Errorf("array needs an element type and a length, got %d arguments", len(t.Subst))
		}
		if _, ok := t.Subst[0].(ty.Ty); !ok {
			return fmt.Errorf("array element %s is not a type", t.Subst[0])
		}

	case ty.AdtName:
		adt, known := a.db.Adt(name.ID)
		if !known {
			return nil
		}
		if len(t.Subst) != adt.Params {
			return fmt.Errorf("type %s takes %d arguments, got %d", name.ID, adt.Params, len(t.Subst))
		}
		if !adt.CopyImpl {
			return nil
		}
		for _, p := range adt.CopyBounds {
			if _, ok := t.Subst[p].(ty.Ty); !ok {
				return fmt.Errorf("type %s: argument %d is %s, expected a type", name.ID, p, t.Subst[p])
			}
		}

	case ty.ClosureName:
		return a.wellFormedClosure(name.ID, t.Subst, depth, visiting)
	}
	return nil
}

// wellFormedClosure checks that every closure parameter a capture refers to
// is supplied as a type, then checks the instantiated captures themselves.
func (a *app) wellFormedClosure(id ty.ClosureID, subst ty.Substitution, depth int, visiting map[ty.ClosureID]bool) error {
	c, known := a.db.Closure(id)
	if !known {
		return fmt.Errorf("closure %s is not in the type database", id)
	}
	captures := ty.Tuple(c.Captures...)

	var err error
	walkBound(captures, 0, func(bv ty.BoundVar, d int) {
		if err != nil || bv.Debruijn != d {
			return
		}
		switch {
		case bv.Index >= len(subst):
			err = fmt.Errorf("closure %s: capture refers to argument %d, got %d arguments", id, bv.Index, len(subst))
		default:
			if _, ok := subst[bv.Index].(ty.Ty); !ok {
				err = fmt.Errorf("closure %s: argument %d is %s, expected a type", id, bv.Index, subst[bv.Index])
			}
		}
	})
	if err != nil {
		return err
	}

	// Closures under a function binder are never classified. A closure
	// capturing itself is resolved coinductively and was checked already.
	if depth > 0 || visiting[id] {
		return nil
	}
	visiting[id] = true
	defer delete(visiting, id)
	return a.wellFormed(ty.Substitute(captures, subst), depth, visiting)
}

// walkBound calls fn for every bound variable in t with the number of
// function binders around it.
func walkBound(t ty.Ty, depth int, fn func(ty.BoundVar, int)) {
	var subst ty.Substitution
	switch v := t.(type) {
	case ty.BoundVar:
		fn(v, depth)
		return
	case ty.Apply:
		subst = v.Subst
	case ty.Function:
		depth++
		subst = v.Subst
	case ty.Alias:
		subst = v.Subst
	}
	for _, arg := range subst {
		if inner, ok := arg.(ty.Ty); ok {
			walkBound(inner, depth, fn)
		}
	}
}
