package testsupport

import (
	"context"
	"testing"

	"scentlog/internal/catalog"
	"scentlog/internal/config"
	"scentlog/internal/store"
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

// AddOwned adds a fragrance to the collection and returns its catalog entry.
func AddOwned(t testing.TB, st *store.Store, house, name string) catalog.Entry {
	t.Helper()

	item, err := st.AddToCollection(context.Background(), house, name, false, "")
	if err != nil {
		t.Fatalf("store.AddToCollection(%s, %s): %v", house, name, err)
	}
	return catalog.Entry{
		FragranceID:     item.FragranceID,
		UserFragranceID: item.ID,
		House:           item.House,
		Name:            item.Name,
		IsDecant:        item.IsDecant,
	}
}
