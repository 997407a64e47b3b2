package mangle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/parse"
)

const packageDecl = "Package"

// SchemaValidator checks generated rules against a schema before they reach
// the engine: every atom must use a declared predicate with its declared
// arity, and generated rules must be ground.
type SchemaValidator struct {
	predicateArities map[string]int
	schemaText       string
}

// NewSchemaValidator creates a validator for schemaText.
func NewSchemaValidator(schemaText string) *SchemaValidator {
	return &SchemaValidator{
		predicateArities: make(map[string]int),
		schemaText:       schemaText,
	}
}

// LoadDeclaredPredicates parses the schema and records its Decl statements.
// The Package decl that parse.Unit synthesizes is not a predicate.
func (sv *SchemaValidator) LoadDeclaredPredicates() error {
	unit, err := parse.Unit(strings.NewReader(sv.schemaText))
	if err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}
	for _, decl := range unit.Decls {
		sym := decl.DeclaredAtom.Predicate
		if sym.Symbol == packageDecl {
			continue
		}
		sv.predicateArities[sym.Symbol] = sym.Arity
	}
	return nil
}

// ValidateRule checks a single rule.
func (sv *SchemaValidator) ValidateRule(ruleText string) error {
	unit, err := parse.Unit(strings.NewReader(ruleText))
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if len(unit.Clauses) != 1 {
		return fmt.Errorf("expected one rule, got %d", len(unit.Clauses))
	}

	clause := unit.Clauses[0]
	if err := sv.checkAtom(clause.Head); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	for _, premise := range clause.Premises {
		atom, ok := premise.(ast.Atom)
		if !ok {
			return fmt.Errorf("unsupported premise %v", premise)
		}
		if err := sv.checkAtom(atom); err != nil {
			return err
		}
	}
	return nil
}

func (sv *SchemaValidator) checkAtom(atom ast.Atom) error {
	sym := atom.Predicate
	if err := sv.CheckArity(sym.Symbol, len(atom.Args)); err != nil {
		return err
	}
	for _, arg := range atom.Args {
		if _, ok := arg.(ast.Variable); ok {
			return fmt.Errorf("%s: generated rules must be ground, found variable %v", sym.Symbol, arg)
		}
	}
	return nil
}

// ValidateRules validates each rule and reports every failure.
func (sv *SchemaValidator) ValidateRules(rules []string) error {
	var errs []string
	for i, rule := range rules {
		if err := sv.ValidateRule(rule); err != nil {
			errs = append(errs, fmt.Sprintf("rule %d: %v", i+1, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

// IsDeclared reports whether predicate appears in the schema.
func (sv *SchemaValidator) IsDeclared(predicate string) bool {
	_, ok := sv.predicateArities[predicate]
	return ok
}

// GetDeclaredPredicates returns the declared predicates, sorted.
func (sv *SchemaValidator) GetDeclaredPredicates() []string {
	preds := make([]string, 0, len(sv.predicateArities))
	for p := range sv.predicateArities {
		preds = append(preds, p)
	}
	sort.Strings(preds)
	return preds
}

// CheckArity validates that a predicate is declared with the given arity.
func (sv *SchemaValidator) CheckArity(predicate string, actualArity int) error {
	expected, ok := sv.predicateArities[predicate]
	if !ok {
		return fmt.Errorf("undefined predicate %s (available: %s)",
			predicate, strings.Join(sv.GetDeclaredPredicates(), ", "))
	}
	if expected != actualArity {
		return fmt.Errorf("arity mismatch for %s: expected %d args, got %d", predicate, expected, actualArity)
	}
	return nil
}
