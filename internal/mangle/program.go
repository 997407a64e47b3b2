package mangle

import (
	"strings"

	"github.com/google/mangle/ast"

	"copyck/internal/clauses"
	"copyck/internal/ty"
)

// Predicates of the generated program. Facts pushed by generators are stored
// as the extensional declared/2; implemented/2 is derived from them and from
// the conditional rules.
const (
	DeclaredPredicate    = "declared"
	ImplementedPredicate = "implemented"
)

// Schema is loaded before any generated rule.
const Schema = `
Decl declared(Trait, Type).
Decl implemented(Trait, Type).

implemented(Trait, Type) :- declared(Trait, Type).
`

// GoalAtom is the atom that holds when ref is implemented.
func GoalAtom(ref ty.TraitRef) ast.Atom {
	return ast.NewAtom(ImplementedPredicate, ast.String(string(ref.Trait)), ast.String(ref.Self.String()))
}

// FactFor converts a fact clause into an extensional fact.
func FactFor(ref ty.TraitRef) Fact {
	return Fact{
		Predicate: DeclaredPredicate,
		Args:      []interface{}{string(ref.Trait), ref.Self.String()},
	}
}

// RuleSource renders a conditional clause as Mangle source.
func RuleSource(c clauses.Clause) string {
	premises := make([]string, len(c.Conditions))
	for i, cond := range c.Conditions {
		premises[i] = GoalAtom(cond).String()
	}
	return GoalAtom(c.Consequence).String() + " :- " + strings.Join(premises, ", ") + "."
}

// Program is a generated clause set split the way the engine consumes it.
type Program struct {
	Rules []string
	Facts []Fact
}

// Add files one clause.
func (p *Program) Add(c clauses.Clause) {
	if c.IsFact() {
		p.Facts = append(p.Facts, FactFor(c.Consequence))
		return
	}
	p.Rules = append(p.Rules, RuleSource(c))
}

// Source returns the rules as one Mangle fragment.
func (p *Program) Source() string {
	return strings.Join(p.Rules, "\n")
}

// String lists the facts, then the rules, one statement per line.
func (p *Program) String() string {
	lines := make([]string, 0, len(p.Facts)+len(p.Rules))
	for _, f := range p.Facts {
		lines = append(lines, f.String())
	}
	lines = append(lines, p.Rules...)
	return strings.Join(lines, "\n")
}

// Validate checks the rules against Schema.
func (p *Program) Validate() error {
	sv := NewSchemaValidator(Schema)
	if err := sv.LoadDeclaredPredicates(); err != nil {
		return err
	}
	return sv.ValidateRules(p.Rules)
}

// Load validates the rules, then installs the schema, the rules and the
// facts into e. With auto-eval on, the facts are evaluated as they land.
func (p *Program) Load(e *Engine) error {
	if err := p.Validate(); err != nil {
		return err
	}
	src := Schema
	if len(p.Rules) > 0 {
		src += "\n" + p.Source() + "\n"
	}
	if err := e.LoadSchemaString(src); err != nil {
		return err
	}
	return e.AddFacts(p.Facts)
}

// Implemented returns the rendered self types derived for trait.
func (e *Engine) Implemented(trait ty.TraitID) (map[string]bool, error) {
	facts, err := e.GetFacts(ImplementedPredicate)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(facts))
	for _, f := range facts {
		if len(f.Args) != 2 {
			continue
		}
		if t, _ := f.Args[0].(string); t != string(trait) {
			continue
		}
		if self, ok := f.Args[1].(string); ok {
			out[self] = true
		}
	}
	return out, nil
}
