package clauses

import (
	"fmt"

	"copyck/internal/logging"
	"copyck/internal/ty"
)

// Database answers the closure queries the classifier depends on.
type Database interface {
	// ClosureUpvars returns the types of the closure's captured variables,
	// expressed under the binder that ClosureFnSubstitution instantiates.
	ClosureUpvars(id ty.ClosureID, subst ty.Substitution) []ty.Ty
	// ClosureFnSubstitution maps the closure's internal variables to the
	// types visible at the use site.
	ClosureFnSubstitution(id ty.ClosureID, subst ty.Substitution) ty.Substitution
}

// Classifier derives the structural Copy clauses for a type. Primitive and
// pointer-like types are left to Libcore, user types to Declared.
type Classifier struct {
	db Database
}

// NewClassifier returns a classifier that resolves closure captures through db.
func NewClassifier(db Database) *Classifier {
	return &Classifier{db: db}
}

// AddClauses implements Generator.
func (c *Classifier) AddClauses(sink Sink, ref ty.TraitRef, binders ty.Binders) {
	c.Classify(sink, ref, binders)
}

// Classify pushes at most one clause for ref into sink. Pushing nothing means
// the question is left to other rules. binders must be the quantifier scope
// the bound variables of ref.Self refer to.
func (c *Classifier) Classify(sink Sink, ref ty.TraitRef, binders ty.Binders) {
	log := logging.Get(logging.CategoryClassify)

	switch t := ref.Self.(type) {
	case ty.Apply:
		c.classifyApply(sink, ref, t)

	case ty.Function:
		sink.PushFact(ref)

	case ty.InferenceVar:
		if t.Kind.IsNumeric() {
			sink.PushFact(ref)
		}

	case ty.BoundVar:
		switch k := binders.At(t.Index).(type) {
		case ty.TyKind:
			if k.Kind.IsNumeric() {
				sink.PushFact(ref)
			}
		case ty.ConstKind, ty.LifetimeKind:
		default:
			panic(fmt.Sprintf("clauses: unhandled variable kind %T", k))
		}

	case ty.Alias, ty.Dyn, ty.Placeholder:

	default:
		panic(fmt.Sprintf("clauses: unhandled type %T", t))
	}

	log.Debug("classified %s", ref)
}

func (c *Classifier) classifyApply(sink Sink, ref ty.TraitRef, t ty.Apply) {
	switch name := t.Name.(type) {
	case ty.TupleName:
		pushTupleConditions(sink, ref, name.Arity, t.Subst)

	case ty.ArrayName:
		RequireAll(sink, ref, []ty.Ty{ty.AssertTy(t.Subst.At(0))})

	case ty.FnPointerName, ty.FnDefName:
		sink.PushFact(ref)

	case ty.ClosureName:
		upvars := c.db.ClosureUpvars(name.ID, t.Subst)
		fnSubst := c.db.ClosureFnSubstitution(name.ID, t.Subst)
		captured := ty.Substitute(ty.Tuple(upvars...), fnSubst)
		RequireAll(sink, ref, []ty.Ty{captured})

	// Implemented by the fixed libcore rule set.
	case ty.RefName, ty.RawName, ty.ScalarName, ty.NeverName, ty.StrName:

	// Only explicit impls can make these Copy.
	case ty.AdtName, ty.AssociatedTypeName, ty.SliceName, ty.OpaqueTypeName,
		ty.ForeignName, ty.GeneratorName, ty.GeneratorWitnessName, ty.ErrorName:

	default:
		panic(fmt.Sprintf("clauses: unhandled type name %T", name))
	}
}

func pushTupleConditions(sink Sink, ref ty.TraitRef, arity int, subst ty.Substitution) {
	if arity != len(subst) {
		panic(fmt.Sprintf("clauses: tuple of arity %d has %d arguments", arity, len(subst)))
	}
	if arity == 0 {
		sink.PushFact(ref)
		return
	}
	RequireAll(sink, ref, subst.Types())
}
