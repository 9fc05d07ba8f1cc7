// Package completion owns the per-day, per-habit boolean completion
// map, the central data structure of the tracker.
//
// The map is sparse: absence of a day or habit key means "unknown",
// treated identically to false. Entries are created or flipped by
// toggles and never deleted; entries for habits that no longer exist
// persist as soft orphans and are filtered against the live habit id
// set by every aggregate.
package completion

// Map keys calendar dates (ISO 8601 YYYY-MM-DD, local wall-clock day)
// to habit id to a "done" flag.
type Map map[string]map[string]bool

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for date, day := range m {
		dayCopy := make(map[string]bool, len(day))
		for id, done := range day {
			dayCopy[id] = done
		}
		out[date] = dayCopy
	}
	return out
}

// Dates returns the date keys of the map in unspecified order.
func (m Map) Dates() []string {
	out := make([]string, 0, len(m))
	for date := range m {
		out = append(out, date)
	}
	return out
}

// Store is the single owner of the in-memory completion map. Other
// components read it (to persist or export) or replace it wholesale
// (reconciliation); they never mutate it directly.
//
// Store is not safe for concurrent use on its own; the tracker holds
// the single-writer lock.
type Store struct {
	m Map
}

// NewStore creates a store around an initial map, typically loaded
// from a local snapshot. A nil map starts empty.
func NewStore(initial Map) *Store {
	if initial == nil {
		initial = make(Map)
	}
	return &Store{m: initial}
}

// Toggle flips the flag at (date, habitID), treating an absent entry
// as false, and returns the resulting value. The entry is written even
// when the result is false: an explicit FALSE row must reach the
// remote log so later reconciliation replays the un-toggle.
func (s *Store) Toggle(habitID, date string) bool {
	day := s.m[date]
	if day == nil {
		day = make(map[string]bool)
		s.m[date] = day
	}
	next := !day[habitID]
	day[habitID] = next
	return next
}

// IsCompleted reports the flag at (date, habitID). Default false.
func (s *Store) IsCompleted(habitID, date string) bool {
	return s.m[date][habitID]
}

// CompletedCount counts entries at date that are true AND reference a
// currently-live habit id. Orphaned entries for deleted habits do not
// count.
func (s *Store) CompletedCount(date string, live map[string]bool) int {
	n := 0
	for id, done := range s.m[date] {
		if done && live[id] {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the current map for persistence or
// read-only aggregation.
func (s *Store) Snapshot() Map {
	return s.m.Clone()
}

// ReplaceAll substitutes the whole map. Used exclusively by
// reconciliation: remote state supersedes local state, no merge. Any
// local-only toggles not yet in the remote log are silently lost;
// that trade-off is deliberate.
func (s *Store) ReplaceAll(m Map) {
	if m == nil {
		m = make(Map)
	}
	s.m = m
}
