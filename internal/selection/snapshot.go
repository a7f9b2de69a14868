package selection

// Snapshot is an ordered, point-in-time list of favorite dog ids.
// Order only matters for serialization; two snapshots holding the same
// ids are equivalent.
type Snapshot []string

// Normalize drops empty ids and duplicates, keeping the first occurrence.
func Normalize(ids []string) Snapshot {
	out := make(Snapshot, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Equivalent reports whether s and other hold the same set of ids
func (s Snapshot) Equivalent(other Snapshot) bool {
	a := setOf(s)
	b := setOf(other)
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// Contains reports whether id is in the snapshot
func (s Snapshot) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func setOf(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
