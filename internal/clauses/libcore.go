package clauses

import (
	"copyck/internal/ty"
)

// Libcore is the fixed rule set for primitive and pointer-like types: shared
// references, raw pointers, scalars and never are Copy; &mut T and str are not.
var Libcore Generator = GeneratorFunc(addLibcoreClauses)

func addLibcoreClauses(sink Sink, ref ty.TraitRef, _ ty.Binders) {
	app, ok := ref.Self.(ty.Apply)
	if !ok {
		return
	}
	switch name := app.Name.(type) {
	case ty.RefName:
		if name.Mutability == ty.Not {
			sink.PushFact(ref)
		}
	case ty.RawName, ty.ScalarName, ty.NeverName:
		sink.PushFact(ref)
	}
}

// ImplDatabase lists the explicit Copy impls declared for user types.
type ImplDatabase interface {
	// AdtCopyImpl reports whether id declares the impl and, if so, which of
	// its type parameters must themselves be Copy.
	AdtCopyImpl(id ty.AdtID) (params []int, ok bool)
}

// Declared returns the rule set backed by explicitly declared impls.
func Declared(db ImplDatabase) Generator {
	return GeneratorFunc(func(sink Sink, ref ty.TraitRef, _ ty.Binders) {
		app, ok := ref.Self.(ty.Apply)
		if !ok {
			return
		}
		adt, ok := app.Name.(ty.AdtName)
		if !ok {
			return
		}
		params, ok := db.AdtCopyImpl(adt.ID)
		if !ok {
			return
		}
		if len(params) == 0 {
			sink.PushFact(ref)
			return
		}
		tys := make([]ty.Ty, len(params))
		for i, p := range params {
			tys[i] = ty.AssertTy(app.Subst.At(p))
		}
		RequireAll(sink, ref, tys)
	})
}
