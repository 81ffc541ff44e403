package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// joinAll runs n calls concurrently and returns their results in index
// order once every call has settled. Siblings of a failed call are not
// cancelled; the first error is returned and no partial result escapes.
func joinAll[T any](ctx context.Context, n int, call func(ctx context.Context, i int) (T, error)) ([]T, error) {
	var g errgroup.Group
	results := make([]T, n)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			v, err := call(ctx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
