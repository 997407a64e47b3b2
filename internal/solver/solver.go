// Package solver answers "does the trait hold for this type?" by expanding a
// goal into its reachable clauses and evaluating them with Mangle.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"copyck/internal/clauses"
	"copyck/internal/logging"
	"copyck/internal/mangle"
	"copyck/internal/ty"
)

// ErrGoalLimit is returned when expansion reaches more goals than allowed.
var ErrGoalLimit = errors.New("goal limit exceeded")

// Config bounds a single Solve call.
type Config struct {
	FactLimit int
	MaxGoals  int
	Timeout   time.Duration
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		FactLimit: mangle.DefaultConfig().FactLimit,
		MaxGoals:  10000,
		Timeout:   30 * time.Second,
	}
}

// Solver runs a clause generator to a verdict.
type Solver struct {
	gen clauses.Generator
	cfg Config
}

// New returns a solver over gen.
func New(gen clauses.Generator, cfg Config) *Solver {
	return &Solver{gen: gen, cfg: cfg}
}

// Result is the outcome of one Solve call.
type Result struct {
	Goal  ty.TraitRef
	Holds bool

	// Clauses lists every clause reached from Goal, in expansion order.
	Clauses []clauses.Clause
	Program mangle.Program
	// Derived holds the rendered self types proven for Goal's trait.
	Derived map[string]bool
	// Stats describes the engine's fact store after evaluation.
	Stats mangle.Stats

	Duration time.Duration
}

// Solve expands ref and evaluates the resulting program.
func (s *Solver) Solve(ctx context.Context, ref ty.TraitRef, binders ty.Binders) (*Result, error) {
	start := time.Now()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	res := &Result{Goal: ref}
	goals := make(map[string]bool)
	for c := range clauses.Expand(s.gen, ref, binders) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("expand %s: %w", ref, err)
		}
		key := c.Consequence.Key()
		if !goals[key] {
			goals[key] = true
			if s.cfg.MaxGoals > 0 && len(goals) > s.cfg.MaxGoals {
				return nil, fmt.Errorf("expand %s: %w (%d)", ref, ErrGoalLimit, s.cfg.MaxGoals)
			}
		}
		res.Clauses = append(res.Clauses, c)
		res.Program.Add(c)
	}
	logging.SolverDebug("%s expanded to %d clauses over %d goals", ref, len(res.Clauses), len(goals))

	engine := mangle.NewEngine(mangle.Config{FactLimit: s.cfg.FactLimit})
	if err := res.Program.Load(engine); err != nil {
		return nil, fmt.Errorf("load program for %s: %w", ref, err)
	}
	if err := engine.RecomputeRulesContext(ctx); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", ref, err)
	}
	res.Stats = engine.GetStats()
	logging.KernelDebug("%s: %d facts %v", ref, res.Stats.TotalFacts, res.Stats.PredicateCounts)

	derived, err := engine.Implemented(ref.Trait)
	if err != nil {
		return nil, fmt.Errorf("read verdict for %s: %w", ref, err)
	}
	res.Derived = derived
	res.Holds = derived[ref.Self.String()]
	res.Duration = time.Since(start)

	logging.Solver("%s: holds=%t (%v)", ref, res.Holds, res.Duration)
	return res, nil
}
