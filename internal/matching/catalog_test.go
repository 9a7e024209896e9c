package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingSportStore struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSportStore) GetAllSports(ctx context.Context) ([]Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []Sport{
		{ID: 1, Name: "Tennis"},
		{ID: 2, Name: "Running"},
	}, nil
}

func (s *countingSportStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSportCatalogCachesInMemory(t *testing.T) {
	store := &countingSportStore{}
	catalog := NewSportCatalog(store, nil, time.Hour)

	for i := 0; i < 5; i++ {
		names, err := catalog.Names(context.Background())
		if err != nil {
			t.Fatalf("Names() error = %v", err)
		}
		if names[1] != "Tennis" || names[2] != "Running" {
			t.Fatalf("unexpected catalog contents: %v", names)
		}
	}

	if got := store.callCount(); got != 1 {
		t.Errorf("store hit %d times, want 1", got)
	}
}

func TestSportCatalogInvalidateForcesReload(t *testing.T) {
	store := &countingSportStore{}
	catalog := NewSportCatalog(store, nil, time.Hour)

	if _, err := catalog.Names(context.Background()); err != nil {
		t.Fatal(err)
	}
	catalog.Invalidate(context.Background())
	if _, err := catalog.Names(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := store.callCount(); got != 2 {
		t.Errorf("store hit %d times after invalidate, want 2", got)
	}
}

func TestSportCatalogServesStaleOnRefreshFailure(t *testing.T) {
	store := &countingSportStore{}
	catalog := NewSportCatalog(store, nil, time.Nanosecond)

	if _, err := catalog.Names(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Entries are now expired and the store is broken
	store.mu.Lock()
	store.err = errors.New("database down")
	store.mu.Unlock()
	time.Sleep(time.Millisecond)

	names, err := catalog.Names(context.Background())
	if err != nil {
		t.Fatalf("expected stale entries, got error: %v", err)
	}
	if names[1] != "Tennis" {
		t.Errorf("stale entries wrong: %v", names)
	}
}

func TestSportCatalogFirstLoadFailure(t *testing.T) {
	store := &countingSportStore{err: errors.New("database down")}
	catalog := NewSportCatalog(store, nil, time.Hour)

	if _, err := catalog.Names(context.Background()); err == nil {
		t.Error("expected an error when there is nothing to fall back to")
	}
}
