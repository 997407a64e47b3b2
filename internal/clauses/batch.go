package clauses

import (
	"context"

	"golang.org/x/sync/errgroup"

	"copyck/internal/ty"
)

// Goal is one classification request.
type Goal struct {
	Ref     ty.TraitRef
	Binders ty.Binders
}

// ClassifyAll runs gen for every goal concurrently, each into its own sink,
// and returns the emissions in goal order. limit bounds the number of
// goroutines; zero or less means no bound.
func ClassifyAll(ctx context.Context, gen Generator, goals []Goal, limit int) ([][]Clause, error) {
	results := make([][]Clause, len(goals))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, goal := range goals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var sink MemorySink
			gen.AddClauses(&sink, goal.Ref, goal.Binders)
			results[i] = sink.Clauses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
