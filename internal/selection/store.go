package selection

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Persister is the durable storage port for the favorites set.
// Load returns an empty snapshot and nil error when nothing was saved yet.
type Persister interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// RemoveListener is called with each id that leaves the store
type RemoveListener func(id string)

// Store is the ordered, deduplicated set of favorite dog ids.
// It is meant to be driven from a single goroutine (the UI update loop)
// and persists its full membership after every mutation.
type Store struct {
	ids       []string
	index     map[string]struct{}
	persister Persister
	logger    *log.Logger
	listeners []RemoveListener
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open builds a store from the persister. When linked is non-nil it
// takes precedence over the persisted entry and is saved right away;
// a nil linked means no shared link was given.
func Open(p Persister, linked Snapshot, opts ...Option) *Store {
	s := &Store{
		index:     make(map[string]struct{}),
		persister: p,
	}
	for _, opt := range opts {
		opt(s)
	}

	if linked != nil {
		s.replace(Normalize(linked))
		s.persist()
		return s
	}

	if p == nil {
		return s
	}
	loaded, err := p.Load()
	if err != nil {
		s.warn("Discarding unreadable favorites", "error", err)
		return s
	}
	s.replace(Normalize(loaded))
	return s
}

// OnRemove registers a listener notified whenever an id leaves the store
func (s *Store) OnRemove(fn RemoveListener) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Add inserts id if absent
func (s *Store) Add(id string) {
	if id == "" || s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}
	s.persist()
}

// Remove deletes id if present and notifies removal listeners
func (s *Store) Remove(id string) {
	if !s.Contains(id) {
		return
	}
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	s.persist()
	s.notify(id)
}

// Toggle removes id if present, otherwise adds it.
// Returns true when id is a member afterwards.
func (s *Store) Toggle(id string) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return s.Contains(id)
}

// Contains reports membership
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of favorites
func (s *Store) Len() int {
	return len(s.ids)
}

// Snapshot returns a copy of the current membership in insertion order
func (s *Store) Snapshot() Snapshot {
	out := make(Snapshot, len(s.ids))
	copy(out, s.ids)
	return out
}

// Restore replaces the membership wholesale with snap (deduplicated).
// Listeners hear about every id that was dropped.
func (s *Store) Restore(snap Snapshot) {
	next := Normalize(snap)
	var dropped []string
	for _, id := range s.ids {
		if !next.Contains(id) {
			dropped = append(dropped, id)
		}
	}
	s.replace(next)
	s.persist()
	for _, id := range dropped {
		s.notify(id)
	}
}

func (s *Store) replace(ids Snapshot) {
	s.ids = []string(ids)
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
}

// persist writes the full membership; failures are logged, never returned
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.Snapshot()); err != nil {
		s.warn("Failed to persist favorites", "count", len(s.ids), "error", err)
	}
}

func (s *Store) notify(id string) {
	for _, fn := range s.listeners {
		fn(id)
	}
}

func (s *Store) warn(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, keyvals...)
	}
}

// MemoryPersister keeps the snapshot in memory. Used by tests and
// ephemeral sessions.
type MemoryPersister struct {
	mu    sync.Mutex
	saved Snapshot
	Saves int
	Err   error // returned by Load when set
}

// NewMemoryPersister returns a persister preloaded with ids
func NewMemoryPersister(ids ...string) *MemoryPersister {
	return &MemoryPersister{saved: Snapshot(ids)}
}

// Load implements Persister
func (m *MemoryPersister) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(Snapshot, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

// Save implements Persister
func (m *MemoryPersister) Save(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = make(Snapshot, len(s))
	copy(m.saved, s)
	m.Saves++
	return nil
}

// Saved returns the last saved snapshot
func (m *MemoryPersister) Saved() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Snapshot, len(m.saved))
	copy(out, m.saved)
	return out
}
