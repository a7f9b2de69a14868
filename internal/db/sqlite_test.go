package db

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/selection"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "pawsome.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestKV(t *testing.T) {
	database := openTestDB(t)

	if _, found, err := database.Get("missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v; want not found", found, err)
	}

	if err := database.Put("k", "v1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := database.Put("k", "v2"); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, found, err := database.Get("k")
	if err != nil || !found || got != "v2" {
		t.Errorf("Get(k) = (%q, %v, %v), want (v2, true, nil)", got, found, err)
	}

	if err := database.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := database.Get("k"); found {
		t.Errorf("Get(k) found after Delete")
	}
}

func TestSelectionPersister(t *testing.T) {
	database := openTestDB(t)
	p := database.SelectionPersister("")

	snap, err := p.Load()
	if err != nil {
		t.Fatalf("Load() on empty db error = %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("Load() on empty db = %v, want empty", snap)
	}

	if err := p.Save(selection.Snapshot{"d1", "d2"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw, _, _ := database.Get(FavoritesKey)
	if raw != `["d1","d2"]` {
		t.Errorf("stored value = %s, want JSON array", raw)
	}

	snap, err = p.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(selection.Snapshot{"d1", "d2"}, snap); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	if err := p.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}
	if _, found, _ := database.Get(FavoritesKey); found {
		t.Errorf("empty snapshot left an entry behind")
	}
	snap, err = p.Load()
	if err != nil || len(snap) != 0 {
		t.Errorf("Load() after clearing = %v, %v; want empty", snap, err)
	}
}

func TestClearingStoreRemovesEntry(t *testing.T) {
	database := openTestDB(t)
	p := database.SelectionPersister(FavoritesKey)
	store := selection.Open(p, selection.Snapshot{"d1"})
	if _, found, _ := database.Get(FavoritesKey); !found {
		t.Fatalf("linked snapshot was not saved")
	}

	store.Restore(selection.Snapshot{})
	if _, found, _ := database.Get(FavoritesKey); found {
		t.Errorf("cleared favorites still stored")
	}
}

func TestSelectionPersisterCorruptEntry(t *testing.T) {
	database := openTestDB(t)
	if err := database.Put(FavoritesKey, "{not json"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	p := database.SelectionPersister(FavoritesKey)
	if _, err := p.Load(); err == nil {
		t.Fatalf("Load() error = nil for corrupt entry")
	}

	// the store degrades a corrupt entry to an empty selection
	store := selection.Open(p, nil)
	if store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", store.Len())
	}
	store.Add("fresh")
	snap, err := p.Load()
	if err != nil {
		t.Fatalf("Load() after rewrite error = %v", err)
	}
	if diff := cmp.Diff(selection.Snapshot{"fresh"}, snap); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawsome.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	store := selection.Open(first.SelectionPersister(""), nil)
	store.Add("a")
	store.Add("b")
	store.Remove("a")
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()
	reopened := selection.Open(second.SelectionPersister(""), nil)
	if diff := cmp.Diff(selection.Snapshot{"b"}, reopened.Snapshot()); diff != "" {
		t.Errorf("reopened store mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchHistory(t *testing.T) {
	database := openTestDB(t)

	for _, m := range []models.MatchResult{
		{ID: "d1", Dog: models.Dog{ID: "d1", Name: "Rex", Breed: "Beagle"}},
		{ID: "d2", Dog: models.Dog{ID: "d2", Name: "Luna", Breed: "Pug"}},
	} {
		if err := database.RecordMatch(m); err != nil {
			t.Fatalf("RecordMatch() error = %v", err)
		}
	}

	got, err := database.RecentMatches(1)
	if err != nil {
		t.Fatalf("RecentMatches() error = %v", err)
	}
	if len(got) != 1 || got[0].DogID != "d2" || got[0].Name != "Luna" {
		t.Fatalf("RecentMatches(1) = %+v, want newest (d2)", got)
	}
	if got[0].MatchedAt.IsZero() {
		t.Errorf("MatchedAt not parsed")
	}
}
