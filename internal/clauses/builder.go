package clauses

import (
	"copyck/internal/ty"
)

// RequireAll pushes one clause stating that ref holds if the capability holds
// for every type in tys. Condition order follows tys. An empty list is a
// caller bug: unconditional cases must be pushed as facts.
func RequireAll(sink Sink, ref ty.TraitRef, tys []ty.Ty) {
	if len(tys) == 0 {
		panic("clauses: RequireAll called without component types for " + ref.String())
	}
	conditions := make([]ty.TraitRef, len(tys))
	for i, t := range tys {
		conditions[i] = ref.WithSelf(t)
	}
	sink.PushClause(ref, conditions)
}
