package competitor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one fan-out call.
type Result[T any] struct {
	Value T
	Err   error
}

// settleAll runs fn for every input concurrently and waits for all of them.
// A failing call never cancels the others. Results keep input order.
// limit <= 0 means no bound on concurrency.
func settleAll[In, Out any](ctx context.Context, inputs []In, limit int, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			v, err := fn(gctx, in)
			results[i] = Result[Out]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// successes keeps the values of successful results in order, reporting each
// dropped one to onDrop.
func successes[T any](results []Result[T], onDrop func(index int, err error)) []T {
	out := make([]T, 0, len(results))
	for i, r := range results {
		if r.Err != nil {
			if onDrop != nil {
				onDrop(i, r.Err)
			}
			continue
		}
		out = append(out, r.Value)
	}
	return out
}
