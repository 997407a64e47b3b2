package clauses

import (
	"iter"

	"copyck/internal/ty"
)

// Expand walks the goals reachable from root on demand. Each step runs gen on
// the next pending goal, yields the clauses it produced and queues any
// condition not seen before. Breaking out of the loop stops the walk.
//
// Every goal shares the binder scope of root: conditions are built from
// components of the goal's own type.
func Expand(gen Generator, root ty.TraitRef, binders ty.Binders) iter.Seq[Clause] {
	return func(yield func(Clause) bool) {
		seen := map[string]bool{root.Key(): true}
		queue := []ty.TraitRef{root}
		var sink MemorySink

		for len(queue) > 0 {
			goal := queue[0]
			queue = queue[1:]

			sink.Reset()
			gen.AddClauses(&sink, goal, binders)
			for _, c := range sink.Clauses {
				if !yield(c) {
					return
				}
				for _, cond := range c.Conditions {
					key := cond.Key()
					if seen[key] {
						continue
					}
					seen[key] = true
					queue = append(queue, cond)
				}
			}
		}
	}
}
