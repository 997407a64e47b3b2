package mangle

import (
	"strings"
	"testing"
)

func newTestValidator(t *testing.T) *SchemaValidator {
	t.Helper()
	sv := NewSchemaValidator(Schema)
	if err := sv.LoadDeclaredPredicates(); err != nil {
		t.Fatalf("LoadDeclaredPredicates() error = %v", err)
	}
	return sv
}

func TestSchemaValidator_Declared(t *testing.T) {
	sv := newTestValidator(t)

	got := sv.GetDeclaredPredicates()
	if len(got) != 2 || got[0] != DeclaredPredicate || got[1] != ImplementedPredicate {
		t.Errorf("GetDeclaredPredicates() = %v", got)
	}
	if !sv.IsDeclared(ImplementedPredicate) {
		t.Error("implemented should be declared")
	}
	if sv.IsDeclared("copy") {
		t.Error("copy should not be declared")
	}
	if err := sv.CheckArity(ImplementedPredicate, 1); err == nil {
		t.Error("expected arity mismatch")
	}
}

func TestSchemaValidator_ValidateRule(t *testing.T) {
	sv := newTestValidator(t)

	tests := []struct {
		name    string
		rule    string
		wantErr string
	}{
		{
			name: "ground rule",
			rule: `implemented("Copy", "(u8,)") :- implemented("Copy", "u8").`,
		},
		{
			name:    "undeclared body predicate",
			rule:    `implemented("Copy", "(u8,)") :- copy("u8").`,
			wantErr: "undefined predicate copy",
		},
		{
			name:    "wrong arity",
			rule:    `implemented("(u8,)") :- implemented("Copy", "u8").`,
			wantErr: "arity mismatch",
		},
		{
			name:    "variable",
			rule:    `implemented("Copy", X) :- implemented("Copy", X).`,
			wantErr: "must be ground",
		},
		{
			name:    "malformed",
			rule:    `implemented("Copy", "u8") :-`,
			wantErr: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sv.ValidateRule(tt.rule)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateRule() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ValidateRule() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaValidator_ValidateRules(t *testing.T) {
	sv := newTestValidator(t)

	err := sv.ValidateRules([]string{
		`implemented("Copy", "(u8,)") :- implemented("Copy", "u8").`,
		`implemented("Copy", "(str,)") :- copy("str").`,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "rule 2:") {
		t.Errorf("error should name the failing rule: %v", err)
	}
}
