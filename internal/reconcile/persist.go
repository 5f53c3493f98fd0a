package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"

	"talkmatch/internal/records"
)

// persist writes every pair with at most limit inserts in flight. The
// first failure cancels the remaining inserts and is returned.
func persist(ctx context.Context, storage Storage, matches []records.Match, slideMatches []records.SlideMatch, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, match := range matches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return storage.InsertMatch(gctx, match)
		})
	}
	for _, match := range slideMatches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return storage.InsertSlideMatch(gctx, match)
		})
	}
	return g.Wait()
}
