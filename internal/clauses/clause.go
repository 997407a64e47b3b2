// Package clauses generates the program clauses that decide whether a
// capability such as Copy holds for a type. Generators push their decisions
// into a Sink; resolving the clauses to a final answer is left to the solver.
package clauses

import (
	"strings"
	"sync"

	"copyck/internal/ty"
)

// Clause is either a fact (no conditions) or a rule stating that Consequence
// holds when every condition holds.
type Clause struct {
	Consequence ty.TraitRef
	Conditions  []ty.TraitRef
}

// IsFact reports whether the clause holds unconditionally.
func (c Clause) IsFact() bool {
	return len(c.Conditions) == 0
}

func (c Clause) String() string {
	head := "Implemented(" + c.Consequence.String() + ")"
	if c.IsFact() {
		return head + "."
	}
	conds := make([]string, len(c.Conditions))
	for i, cond := range c.Conditions {
		conds[i] = "Implemented(" + cond.String() + ")"
	}
	return head + " :- " + strings.Join(conds, ", ") + "."
}

// Sink receives emitted clauses. It is owned by the caller and outlives a
// single classification call.
type Sink interface {
	PushFact(ref ty.TraitRef)
	PushClause(ref ty.TraitRef, conditions []ty.TraitRef)
}

// Generator emits the clauses one rule set knows for a goal.
type Generator interface {
	AddClauses(sink Sink, ref ty.TraitRef, binders ty.Binders)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(sink Sink, ref ty.TraitRef, binders ty.Binders)

// AddClauses calls f.
func (f GeneratorFunc) AddClauses(sink Sink, ref ty.TraitRef, binders ty.Binders) {
	f(sink, ref, binders)
}

// Chain runs several generators into the same sink, in order.
func Chain(gens ...Generator) Generator {
	return GeneratorFunc(func(sink Sink, ref ty.TraitRef, binders ty.Binders) {
		for _, g := range gens {
			g.AddClauses(sink, ref, binders)
		}
	})
}

// MemorySink records clauses in emission order. It is not safe for
// concurrent use; wrap it in a SyncSink when goroutines share it.
type MemorySink struct {
	Clauses []Clause
}

// PushFact implements Sink.
func (s *MemorySink) PushFact(ref ty.TraitRef) {
	s.Clauses = append(s.Clauses, Clause{Consequence: ref})
}

// PushClause implements Sink.
func (s *MemorySink) PushClause(ref ty.TraitRef, conditions []ty.TraitRef) {
	conds := make([]ty.TraitRef, len(conditions))
	copy(conds, conditions)
	s.Clauses = append(s.Clauses, Clause{Consequence: ref, Conditions: conds})
}

// Len returns the number of recorded clauses.
func (s *MemorySink) Len() int {
	return len(s.Clauses)
}

// Reset drops every recorded clause.
func (s *MemorySink) Reset() {
	s.Clauses = nil
}

// SyncSink serializes appends to an inner sink.
type SyncSink struct {
	mu    sync.Mutex
	inner Sink
}

// NewSyncSink wraps inner.
func NewSyncSink(inner Sink) *SyncSink {
	return &SyncSink{inner: inner}
}

// PushFact implements Sink.
func (s *SyncSink) PushFact(ref ty.TraitRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PushFact(ref)
}

// PushClause implements Sink.
func (s *SyncSink) PushClause(ref ty.TraitRef, conditions []ty.TraitRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PushClause(ref, conditions)
}

// replay pushes a recorded clause back into a sink.
func replay(sink Sink, c Clause) {
	if c.IsFact() {
		sink.PushFact(c.Consequence)
		return
	}
	sink.PushClause(c.Consequence, c.Conditions)
}
