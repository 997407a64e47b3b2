package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copyck/internal/clauses"
	"copyck/internal/ty"
)

func copyOf(src string) ty.TraitRef {
	return ty.TraitRef{Trait: "Copy", Self: ty.MustParse(src)}
}

func TestRuleSource(t *testing.T) {
	c := clauses.Clause{
		Consequence: copyOf("(u8, &mut u8)"),
		Conditions:  []ty.TraitRef{copyOf("u8"), copyOf("&mut u8")},
	}
	assert.Equal(t,
		`implemented("Copy","(u8, &mut u8)") :- implemented("Copy","u8"), implemented("Copy","&mut u8").`,
		RuleSource(c))
}

func TestProgramLoad(t *testing.T) {
	var p Program
	p.Add(clauses.Clause{Consequence: copyOf("u8")})
	p.Add(clauses.Clause{Consequence: copyOf("()")})
	p.Add(clauses.Clause{Consequence: copyOf("(u8, ())"), Conditions: []ty.TraitRef{copyOf("u8"), copyOf("()")}})
	p.Add(clauses.Clause{Consequence: copyOf("[(u8, ()); 4]"), Conditions: []ty.TraitRef{copyOf("(u8, ())")}})
	p.Add(clauses.Clause{Consequence: copyOf("(u8, str)"), Conditions: []ty.TraitRef{copyOf("u8"), copyOf("str")}})

	require.Len(t, p.Facts, 2)
	require.Len(t, p.Rules, 3)
	assert.Equal(t, `declared("Copy", "u8").
declared("Copy", "()").
implemented("Copy","(u8, ())") :- implemented("Copy","u8"), implemented("Copy","()").
implemented("Copy","[(u8, ()); 4]") :- implemented("Copy","(u8, ())").
implemented("Copy","(u8, str)") :- implemented("Copy","u8"), implemented("Copy","str").`, p.String())

	engine := NewEngine(DefaultConfig())
	require.NoError(t, p.Load(engine))

	got, err := engine.Implemented("Copy")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"u8":            true,
		"()":            true,
		"(u8, ())":      true,
		"[(u8, ()); 4]": true,
	}, got)

	other, err := engine.Implemented("Clone")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProgramLoadRulesOnly(t *testing.T) {
	var p Program
	p.Add(clauses.Clause{Consequence: copyOf("(str,)"), Conditions: []ty.TraitRef{copyOf("str")}})

	cfg := DefaultConfig()
	cfg.AutoEval = false
	engine := NewEngine(cfg)
	require.NoError(t, p.Load(engine))
	require.NoError(t, engine.RecomputeRules())

	got, err := engine.Implemented("Copy")
	require.NoError(t, err)
	assert.Empty(t, got)
}
