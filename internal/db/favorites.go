package db

import (
	"encoding/json"
	"fmt"

	"github.com/thesavant42/pawsome/internal/selection"
)

// FavoritesKey is the namespace key the favorites list is stored under
const FavoritesKey = "favorites"

// SelectionPersister stores a selection snapshot as a JSON array under
// one key. It implements selection.Persister.
type SelectionPersister struct {
	db  *DB
	key string
}

// SelectionPersister returns a persister for key (FavoritesKey if empty)
func (db *DB) SelectionPersister(key string) *SelectionPersister {
	if key == "" {
		key = FavoritesKey
	}
	return &SelectionPersister{db: db, key: key}
}

// Load returns the stored snapshot. A missing entry is an empty snapshot;
// an entry that is not a JSON string array is an error.
func (p *SelectionPersister) Load() (selection.Snapshot, error) {
	raw, found, err := p.db.Get(p.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return selection.Snapshot{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("corrupt %q entry: %w", p.key, err)
	}
	return selection.Snapshot(ids), nil
}

// Save replaces the stored snapshot. An empty snapshot removes the
// entry, which Load reads back as empty.
func (p *SelectionPersister) Save(s selection.Snapshot) error {
	if len(s) == 0 {
		return p.db.Delete(p.key)
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", p.key, err)
	}
	return p.db.Put(p.key, string(raw))
}
