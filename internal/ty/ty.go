// Package ty describes the shapes of types that the clause generators classify.
// Types are immutable values; every variant set is closed by an unexported
// marker method so that switches over them can assert totality.
package ty

import (
	"fmt"
	"strings"
)

// =============================================================================
// GENERIC ARGUMENTS
// =============================================================================

// GenericArg is one entry of a Substitution: a type, a lifetime or a const.
type GenericArg interface {
	String() string
	isGenericArg()
}

// Substitution is the ordered argument list that instantiates a type constructor.
type Substitution []GenericArg

// At returns the argument at index i. Out-of-range access is a caller bug.
func (s Substitution) At(i int) GenericArg {
	if i < 0 || i >= len(s) {
		panic(fmt.Sprintf("ty: substitution index %d out of range (len %d)", i, len(s)))
	}
	return s[i]
}

// Types returns every argument as a type, panicking on lifetimes and consts.
func (s Substitution) Types() []Ty {
	out := make([]Ty, len(s))
	for i, arg := range s {
		out[i] = AssertTy(arg)
	}
	return out
}

func (s Substitution) String() string {
	parts := make([]string, len(s))
	for i, arg := range s {
		parts[i] = arg.String()
	}
	return strings.Join(parts, ", ")
}

// FromTypes builds a substitution out of types.
func FromTypes(tys ...Ty) Substitution {
	out := make(Substitution, len(tys))
	for i, t := range tys {
		out[i] = t
	}
	return out
}

// AssertTy returns arg as a type. A lifetime or const here means the caller
// handed over a substitution of the wrong shape.
func AssertTy(arg GenericArg) Ty {
	t, ok := arg.(Ty)
	if !ok {
		panic(fmt.Sprintf("ty: expected a type argument, got %s", arg))
	}
	return t
}

// Lifetime is a region argument such as 'static or 'a.
type Lifetime struct {
	Name string
}

func (Lifetime) isGenericArg()    {}
func (l Lifetime) String() string { return "'" + l.Name }

// Const is a constant argument, e.g. the length of an array.
type Const struct {
	Value int64
}

func (Const) isGenericArg()    {}
func (c Const) String() string { return fmt.Sprintf("%d", c.Value) }

// =============================================================================
// TYPES
// =============================================================================

// Ty is a type shape.
type Ty interface {
	GenericArg
	isTy()
}

// TyVariableKind distinguishes general inference variables from numeric ones.
type TyVariableKind int

const (
	General TyVariableKind = iota
	Integer
	Float
)

func (k TyVariableKind) String() string {
	switch k {
	case General:
		return "general"
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("TyVariableKind(%d)", int(k))
	}
}

// IsNumeric reports whether the variable can only resolve to an integer or float type.
func (k TyVariableKind) IsNumeric() bool {
	return k == Integer || k == Float
}

// Apply is a type constructor applied to its arguments.
type Apply struct {
	Name  TypeName
	Subst Substitution
}

// Function is a bare function type. Subst holds the inputs followed by the
// output; NumBinders counts the late-bound lifetimes it quantifies over.
type Function struct {
	NumBinders int
	Subst      Substitution
}

// InferenceVar is an unresolved type variable of the inference table.
type InferenceVar struct {
	Index uint32
	Kind  TyVariableKind
}

// BoundVar refers to the Index-th variable of the binder Debruijn levels out.
type BoundVar struct {
	Debruijn int
	Index    int
}

// Alias is an unnormalized projection or opaque alias.
type Alias struct {
	ID    AliasID
	Subst Substitution
}

// Dyn is a trait object.
type Dyn struct {
	Traits []TraitID
}

// Placeholder is a universally quantified variable in a given universe.
type Placeholder struct {
	Universe int
	Index    int
}

func (Apply) isGenericArg()        {}
func (Function) isGenericArg()     {}
func (InferenceVar) isGenericArg() {}
func (BoundVar) isGenericArg()     {}
func (Alias) isGenericArg()        {}
func (Dyn) isGenericArg()          {}
func (Placeholder) isGenericArg()  {}

func (Apply) isTy()        {}
func (Function) isTy()     {}
func (InferenceVar) isTy() {}
func (BoundVar) isTy()     {}
func (Alias) isTy()        {}
func (Dyn) isTy()          {}
func (Placeholder) isTy()  {}

// Tuple builds a tuple type out of its element types.
func Tuple(elems ...Ty) Apply {
	return Apply{Name: TupleName{Arity: len(elems)}, Subst: FromTypes(elems...)}
}

// Unit is the zero-arity tuple.
func Unit() Apply {
	return Tuple()
}

// Array builds [elem; n].
func Array(elem Ty, n int64) Apply {
	return Apply{Name: ArrayName{}, Subst: Substitution{elem, Const{Value: n}}}
}

// ScalarTy builds a scalar type.
func ScalarTy(s Scalar) Apply {
	return Apply{Name: ScalarName{Kind: s}}
}

// RefTy builds &T or &mut T.
func RefTy(m Mutability, inner Ty) Apply {
	return Apply{Name: RefName{Mutability: m}, Subst: Substitution{Lifetime{Name: "_"}, inner}}
}

// RawTy builds *const T or *mut T.
func RawTy(m Mutability, inner Ty) Apply {
	return Apply{Name: RawName{Mutability: m}, Subst: Substitution{inner}}
}

// AdtTy builds a user-declared type applied to its parameters.
func AdtTy(id AdtID, args ...GenericArg) Apply {
	return Apply{Name: AdtName{ID: id}, Subst: Substitution(args)}
}

// ClosureTy builds a closure type applied to its generic parameters.
func ClosureTy(id ClosureID, args ...GenericArg) Apply {
	return Apply{Name: ClosureName{ID: id}, Subst: Substitution(args)}
}

// =============================================================================
// CAPABILITY REFERENCE
// =============================================================================

// TraitID names a trait, e.g. "Copy".
type TraitID string

// TraitRef is a capability applied to the type it is tested on.
type TraitRef struct {
	Trait TraitID
	Self  Ty
}

// WithSelf returns the same capability applied to another type.
func (r TraitRef) WithSelf(t Ty) TraitRef {
	return TraitRef{Trait: r.Trait, Self: t}
}

func (r TraitRef) String() string {
	return fmt.Sprintf("%s: %s", r.Self, r.Trait)
}

// Key is the canonical identity of a goal within one binder scope.
func (r TraitRef) Key() string {
	return string(r.Trait) + "|" + r.Self.String()
}
