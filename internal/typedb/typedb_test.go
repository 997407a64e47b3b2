package typedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copyck/internal/ty"
)

const sample = `
closures:
  - id: adder
    captures: ["^0.0", "f64"]
    inputs: ["i32", "&str"]
    output: "i32"
  - id: noop
adts:
  - id: Point
    copy: true
  - id: Wrapper
    params: 1
    copy: true
    copy_bounds: [0]
  - id: String
`

func TestParse(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	closures := db.Closures()
	require.Len(t, closures, 2)
	assert.Equal(t, ty.ClosureID("adder"), closures[0].ID)
	assert.Equal(t, "fn(i32, &str) -> i32", closures[0].Signature().String())
	assert.Equal(t, "fn() -> ()", closures[1].Signature().String())

	upvars := db.ClosureUpvars("adder", ty.FromTypes(ty.ScalarTy(ty.I32)))
	require.Len(t, upvars, 2)
	assert.Equal(t, "^0.0", upvars[0].String())
	assert.Equal(t, "f64", upvars[1].String())

	subst := ty.FromTypes(ty.ScalarTy(ty.U8))
	assert.Equal(t, subst, db.ClosureFnSubstitution("adder", subst))

	bounds, ok := db.AdtCopyImpl("Point")
	assert.True(t, ok)
	assert.Empty(t, bounds)

	bounds, ok = db.AdtCopyImpl("Wrapper")
	assert.True(t, ok)
	assert.Equal(t, []int{0}, bounds)

	_, ok = db.AdtCopyImpl("String")
	assert.False(t, ok)
	_, ok = db.AdtCopyImpl("Missing")
	assert.False(t, ok)

	adt, ok := db.Adt("String")
	require.True(t, ok)
	assert.Equal(t, Adt{ID: "String"}, adt)
	_, ok = db.Adt("Missing")
	assert.False(t, ok)

	assert.Len(t, db.Adts(), 3)
}

func TestUpvarsAreCopied(t *testing.T) {
	db := New()
	db.AddClosure(Closure{ID: "c", Captures: []ty.Ty{ty.ScalarTy(ty.Bool)}})

	upvars := db.ClosureUpvars("c", nil)
	upvars[0] = ty.ScalarTy(ty.Char)

	assert.Equal(t, "bool", db.ClosureUpvars("c", nil)[0].String())
}

func TestUnknownClosurePanics(t *testing.T) {
	db := New()
	assert.Panics(t, func() { db.ClosureUpvars("ghost", nil) })
	assert.Panics(t, func() { db.ClosureFnSubstitution("ghost", nil) })
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "closures: [",
		"missing id":    "closures:\n  - captures: [i32]\n",
		"bad capture":   "closures:\n  - id: c\n    captures: ['(i32']\n",
		"bad output":    "closures:\n  - id: c\n    output: '&'\n",
		"adt no id":     "adts:\n  - copy: true\n",
		"bound too big": "adts:\n  - id: W\n    params: 1\n    copy: true\n    copy_bounds: [1]\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	db, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, db.Closures(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
