package testsupport

import (
	"context"
	"testing"

	"reelsync/internal/config"
	"reelsync/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddMovie inserts a canonical movie for tests using the provided store.
func AddMovie(t testing.TB, store *library.Store, title, director, releaseDate string) *library.Movie {
	t.Helper()

	movie, err := store.AddMovie(context.Background(), title, director, releaseDate, 0)
	if err != nil {
		t.Fatalf("store.AddMovie: %v", err)
	}
	return movie
}
