package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()
	repo, err := NewRepository(path)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func testRecords() []pokedex.Record {
	return []pokedex.Record{
		{
			ID:         4,
			Name:       "charmander",
			AvatarURL:  "https://img.example.com/4.png",
			Categories: []string{"fire"},
			Stats:      []pokedex.Stat{{Name: "hp", Value: 39}, {Name: "attack", Value: 52}},
		},
		{
			ID:         1,
			Name:       "bulbasaur",
			AvatarURL:  "https://img.example.com/1.png",
			Categories: []string{"grass", "poison"},
			Stats:      []pokedex.Stat{{Name: "hp", Value: 45}},
		},
	}
}

func TestRepository_SaveAndListRecordsKeepsOrder(t *testing.T) {
	repo := newTestRepository(t, MemoryPath)
	ctx := context.Background()

	want := testRecords()
	if err := repo.SaveRecords(ctx, want); err != nil {
		t.Fatalf("SaveRecords returned error: %v", err)
	}

	got, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records differ after round trip (-want +got):\n%s", diff)
	}
}

func TestRepository_SaveRecordsIsWriteOnce(t *testing.T) {
	repo := newTestRepository(t, MemoryPath)
	ctx := context.Background()

	if err := repo.SaveRecords(ctx, testRecords()); err != nil {
		t.Fatalf("initial SaveRecords returned error: %v", err)
	}
	err := repo.SaveRecords(ctx, testRecords()[:1])
	if !errors.Is(err, ErrAlreadyPopulated) {
		t.Fatalf("expected ErrAlreadyPopulated, got %v", err)
	}

	got, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the first 2 records, got %d", len(got))
	}
}

func TestRepository_ListRecordsEmpty(t *testing.T) {
	repo := newTestRepository(t, "")
	got, err := repo.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestRepository_InitResetsFileStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pokedex.db")
	ctx := context.Background()

	first := newTestRepository(t, dbPath)
	if err := first.SaveRecords(ctx, testRecords()); err != nil {
		t.Fatalf("SaveRecords returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second := newTestRepository(t, dbPath)
	got, err := second.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected a fresh session store, got %d records", len(got))
	}
}

func TestRepository_NilCategoriesRoundTripAsEmpty(t *testing.T) {
	repo := newTestRepository(t, MemoryPath)
	ctx := context.Background()

	if err := repo.SaveRecords(ctx, []pokedex.Record{{ID: 132, Name: "ditto"}}); err != nil {
		t.Fatalf("SaveRecords returned error: %v", err)
	}
	got, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords returned error: %v", err)
	}
	if len(got) != 1 || len(got[0].Categories) != 0 || len(got[0].Stats) != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}
}
