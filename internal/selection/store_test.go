package selection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreAddRemoveToggle(t *testing.T) {
	p := NewMemoryPersister()
	s := Open(p, nil)

	s.Add("d1")
	s.Add("d2")
	s.Add("d1") // duplicate is a no-op
	s.Add("")   // empty ids are ignored

	if diff := cmp.Diff(Snapshot{"d1", "d2"}, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}

	if got := s.Toggle("d1"); got {
		t.Errorf("Toggle(d1) = true, want false (was a member)")
	}
	if got := s.Toggle("d3"); !got {
		t.Errorf("Toggle(d3) = false, want true")
	}
	s.Remove("missing")

	if diff := cmp.Diff(Snapshot{"d2", "d3"}, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Snapshot{"d2", "d3"}, p.Saved()); diff != "" {
		t.Errorf("persisted snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStorePersistsEveryMutation(t *testing.T) {
	p := NewMemoryPersister()
	s := Open(p, nil)

	s.Add("a")
	s.Add("b")
	s.Remove("a")
	s.Toggle("c")

	if p.Saves != 4 {
		t.Errorf("Saves = %d, want 4", p.Saves)
	}

	// no-ops do not write
	s.Add("b")
	s.Remove("zzz")
	if p.Saves != 4 {
		t.Errorf("Saves after no-ops = %d, want 4", p.Saves)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := Open(NewMemoryPersister(), nil)
	s.Add("a")
	snap := s.Snapshot()
	s.Add("b")
	snap[0] = "mutated"

	if diff := cmp.Diff(Snapshot{"a", "b"}, s.Snapshot()); diff != "" {
		t.Errorf("store changed through snapshot (-want +got):\n%s", diff)
	}
	if len(snap) != 1 {
		t.Errorf("snapshot grew with later mutation: %v", snap)
	}
}

func TestOpenLoadsPersisted(t *testing.T) {
	p := NewMemoryPersister("x", "y", "x", "")
	s := Open(p, nil)

	if diff := cmp.Diff(Snapshot{"x", "y"}, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenCorruptEntryYieldsEmpty(t *testing.T) {
	p := NewMemoryPersister("x")
	p.Err = errors.New("invalid character 'x' looking for beginning of value")

	s := Open(p, nil)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt entry", s.Len())
	}
}

func TestOpenLinkTakesPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		persisted []string
		linked    Snapshot
		want      Snapshot
	}{
		{"no link uses storage", []string{"p1", "p2"}, nil, Snapshot{"p1", "p2"}},
		{"link replaces storage", []string{"p1"}, Snapshot{"l1", "l2"}, Snapshot{"l1", "l2"}},
		{"empty non-nil link clears", []string{"p1"}, Snapshot{}, Snapshot{}},
		{"link is normalized", nil, Snapshot{"l1", "", "l1"}, Snapshot{"l1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMemoryPersister(tt.persisted...)
			s := Open(p, tt.linked)
			if diff := cmp.Diff(tt.want, s.Snapshot()); diff != "" {
				t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
			}
			if tt.linked != nil {
				if diff := cmp.Diff(tt.want, p.Saved()); diff != "" {
					t.Errorf("link not persisted (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestRestoreNotifiesDropped(t *testing.T) {
	s := Open(NewMemoryPersister("a", "b", "c"), nil)

	var removed []string
	s.OnRemove(func(id string) { removed = append(removed, id) })

	s.Restore(Snapshot{"c", "d", "d"})

	if diff := cmp.Diff(Snapshot{"c", "d"}, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, removed); diff != "" {
		t.Errorf("removed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveNotifiesOnlyMembers(t *testing.T) {
	s := Open(NewMemoryPersister("a"), nil)

	var removed []string
	s.OnRemove(func(id string) { removed = append(removed, id) })

	s.Remove("b")
	s.Remove("a")
	s.Toggle("c")
	s.Toggle("c")

	if diff := cmp.Diff([]string{"a", "c"}, removed); diff != "" {
		t.Errorf("removed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotEquivalent(t *testing.T) {
	tests := []struct {
		a, b Snapshot
		want bool
	}{
		{Snapshot{"a", "b"}, Snapshot{"b", "a"}, true},
		{Snapshot{}, nil, true},
		{Snapshot{"a"}, Snapshot{"a", "b"}, false},
		{Snapshot{"a", "c"}, Snapshot{"a", "b"}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equivalent(tt.b); got != tt.want {
			t.Errorf("%v.Equivalent(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
