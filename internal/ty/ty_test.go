package ty

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRendersCanonically(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"()", "()"},
		{"(i32,)", "(i32,)"},
		{"( i32 , f64 )", "(i32, f64)"},
		{"(u8)", "u8"},
		{"[u8;4]", "[u8; 4]"},
		{"[str]", "[str]"},
		{"&'a mut Vec<i32>", "&'a mut Vec<i32>"},
		{"&bool", "&bool"},
		{"*const !", "*const !"},
		{"fn(i32, char)", "fn(i32, char) -> ()"},
		{"for<1> fn(&'a u8) -> bool", "for<1> fn(&'a u8) -> bool"},
		{"closure#adder<^0.0, 'static>", "closure#adder<^0.0, 'static>"},
		{"?3i", "?3i"},
		{"?4f", "?4f"},
		{"?5", "?5"},
		{"!1.2", "!1.2"},
		{"dyn Debug + Send", "dyn Debug + Send"},
		{"{error}", "{error}"},
		{"foreign#ffi_handle", "foreign#ffi_handle"},
		{"witness#gen0<u8>", "witness#gen0<u8>"},
		{"alias#Item<T>", "alias#Item<T>"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseStructure(t *testing.T) {
	got := MustParse("[(i32, f64); 3]")
	want := Array(Tuple(ScalarTy(I32), ScalarTy(F64)), 3)
	if diff := cmp.Diff(Ty(want), got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	bv := MustParse("^1.4")
	assert.Equal(t, BoundVar{Debruijn: 1, Index: 4}, bv)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"", "(i32", "[u8; x]", "*i32", "?1q", "bogus#x", "i32 i32", "$",
		"?4294967296", "&' u8", "Vec<'>", "'"} {
		_, err := Parse(src)
		assert.Error(t, err, "expected error for %q", src)
	}
}

func TestSubstitute(t *testing.T) {
	subst := FromTypes(ScalarTy(I32), ScalarTy(F64))

	got := Substitute(Tuple(BoundVar{Index: 0}, BoundVar{Index: 1}), subst)
	assert.Equal(t, "(i32, f64)", got.String())

	// Variables of an outer binder lose one level.
	got = Substitute(Tuple(BoundVar{Debruijn: 1, Index: 2}), subst)
	assert.Equal(t, "(^0.2,)", got.String())

	// Inside a fn binder the innermost closure variable is one level further out.
	fn := Function{NumBinders: 1, Subst: Substitution{BoundVar{Debruijn: 1, Index: 0}, BoundVar{Debruijn: 0, Index: 0}}}
	got = Substitute(fn, subst)
	assert.Equal(t, "for<1> fn(i32) -> ^0.0", got.String())
}

func TestSubstituteShiftsReplacement(t *testing.T) {
	// The replacement mentions an outer variable; under the fn binder it must
	// be shifted so that it still points at the same binder.
	subst := FromTypes(BoundVar{Debruijn: 0, Index: 7})
	fn := Function{NumBinders: 1, Subst: Substitution{BoundVar{Debruijn: 1, Index: 0}, Unit()}}
	got := Substitute(fn, subst)
	assert.Equal(t, "for<1> fn(^1.7) -> ()", got.String())
}

func TestSubstitutionAccessorsPanic(t *testing.T) {
	s := Substitution{Lifetime{Name: "a"}}
	assert.Panics(t, func() { s.At(1) })
	assert.Panics(t, func() { s.Types() })
	assert.Panics(t, func() { AssertTy(Const{Value: 3}) })
}

func TestBinders(t *testing.T) {
	b, err := ParseBinders("int, float,ty,const,lifetime")
	require.NoError(t, err)
	require.Len(t, b, 5)
	assert.Equal(t, TyKind{Kind: Integer}, b.At(0))
	assert.Equal(t, TyKind{Kind: Float}, b.At(1))
	assert.Equal(t, TyKind{Kind: General}, b.At(2))
	assert.Equal(t, ConstKind{}, b.At(3))
	assert.Equal(t, LifetimeKind{}, b.At(4))
	assert.Equal(t, "[int, float, ty, const, lifetime]", b.String())
	assert.Panics(t, func() { b.At(5) })

	_, err = ParseBinders("int,region")
	assert.Error(t, err)
}

func TestTraitRef(t *testing.T) {
	ref := TraitRef{Trait: "Copy", Self: Unit()}
	sub := ref.WithSelf(ScalarTy(U8))
	assert.Equal(t, TraitID("Copy"), sub.Trait)
	assert.Equal(t, "u8: Copy", sub.String())
	assert.Equal(t, "Copy|u8", sub.Key())
}
