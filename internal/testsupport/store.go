package testsupport

import (
	"context"
	"testing"

	"talkmatch/internal/config"
	"talkmatch/internal/records"
	"talkmatch/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Seed replaces the stored talks, videos and slides.
func Seed(t testing.TB, st *store.Store, talks []records.Talk, videos []records.Video, slides []records.Slide) {
	t.Helper()

	ctx := context.Background()
	if err := st.ReplaceTalks(ctx, talks); err != nil {
		t.Fatalf("ReplaceTalks: %v", err)
	}
	if err := st.ReplaceVideos(ctx, videos); err != nil {
		t.Fatalf("ReplaceVideos: %v", err)
	}
	if err := st.ReplaceSlides(ctx, slides); err != nil {
		t.Fatalf("ReplaceSlides: %v", err)
	}
}
