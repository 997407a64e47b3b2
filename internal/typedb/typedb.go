// Package typedb is an in-memory type database: closure capture lists and the
// explicit Copy impls declared for user types. It can be loaded from YAML.
package typedb

import (
	"fmt"
	"sort"
	"sync"

	"copyck/internal/ty"
)

// Closure describes a closure definition. Captures are written in terms of
// the closure's generic parameters, ^0.0 being the first one. The signature
// is informational; whether a closure is Copy depends on its captures only.
type Closure struct {
	ID       ty.ClosureID
	Captures []ty.Ty
	Inputs   []ty.Ty
	Output   ty.Ty
}

// Signature returns the closure's call signature as a bare function type.
func (c Closure) Signature() ty.Function {
	subst := ty.FromTypes(c.Inputs...)
	out := c.Output
	if out == nil {
		out = ty.Unit()
	}
	return ty.Function{Subst: append(subst, out)}
}

// Adt describes a user-declared type and its Copy impl, if any.
type Adt struct {
	ID       ty.AdtID
	Params   int
	CopyImpl bool
	// CopyBounds lists the parameters the impl requires to be Copy.
	CopyBounds []int
}

// Memory holds the database. It is safe for concurrent readers.
type Memory struct {
	mu       sync.RWMutex
	closures map[ty.ClosureID]Closure
	adts     map[ty.AdtID]Adt
}

// New returns an empty database.
func New() *Memory {
	return &Memory{
		closures: make(map[ty.ClosureID]Closure),
		adts:     make(map[ty.AdtID]Adt),
	}
}

// AddClosure registers or replaces a closure.
func (m *Memory) AddClosure(c Closure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closures[c.ID] = c
}

// AddAdt registers or replaces a user type.
func (m *Memory) AddAdt(a Adt) error {
	for _, b := range a.CopyBounds {
		if b < 0 || b >= a.Params {
			return fmt.Errorf("adt %s: copy bound %d outside its %d parameters", a.ID, b, a.Params)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adts[a.ID] = a
	return nil
}

// Closure looks a closure up.
func (m *Memory) Closure(id ty.ClosureID) (Closure, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.closures[id]
	return c, ok
}

// Adt looks a user type up.
func (m *Memory) Adt(id ty.AdtID) (Adt, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.adts[id]
	return a, ok
}

// ClosureUpvars implements clauses.Database. Asking about a closure that was
// never registered is a caller bug.
func (m *Memory) ClosureUpvars(id ty.ClosureID, _ ty.Substitution) []ty.Ty {
	c, ok := m.Closure(id)
	if !ok {
		panic(fmt.Sprintf("typedb: unknown closure %s", id))
	}
	out := make([]ty.Ty, len(c.Captures))
	copy(out, c.Captures)
	return out
}

// ClosureFnSubstitution implements clauses.Database. Closure parameters are
// the closure type's own arguments, so the mapping is the substitution itself.
func (m *Memory) ClosureFnSubstitution(id ty.ClosureID, subst ty.Substitution) ty.Substitution {
	if _, ok := m.Closure(id); !ok {
		panic(fmt.Sprintf("typedb: unknown closure %s", id))
	}
	return subst
}

// AdtCopyImpl implements clauses.ImplDatabase.
func (m *Memory) AdtCopyImpl(id ty.AdtID) ([]int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.adts[id]
	if !ok || !a.CopyImpl {
		return nil, false
	}
	return a.CopyBounds, true
}

// Closures returns every closure sorted by id.
func (m *Memory) Closures() []Closure {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Closure, 0, len(m.closures))
	for _, c := range m.closures {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Adts returns every user type sorted by id.
func (m *Memory) Adts() []Adt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Adt, 0, len(m.adts))
	for _, a := range m.adts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
