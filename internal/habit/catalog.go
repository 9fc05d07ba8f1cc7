package habit

import (
	"golang.org/x/text/unicode/norm"
)

// Catalog holds the live Habit and Track definitions in declaration
// order. It is a pure in-memory structure: callers own persistence and
// locking (single-writer discipline, enforced by the tracker).
type Catalog struct {
	habits []Habit
	tracks []Track
	ids    IDGenerator
}

// NewCatalog creates an empty catalog using the given id generator.
func NewCatalog(ids IDGenerator) *Catalog {
	return &Catalog{ids: ids}
}

// NewSeededCatalog creates a catalog pre-populated with existing
// definitions, e.g. loaded from a local snapshot or a seed file.
// The slices are copied to keep ownership inside the catalog.
func NewSeededCatalog(ids IDGenerator, habits []Habit, tracks []Track) *Catalog {
	c := NewCatalog(ids)
	c.habits = append(c.habits, habits...)
	c.tracks = append(c.tracks, tracks...)
	return c
}

// AddHabit constructs a Habit with a freshly generated unique id and
// appends it to the catalog. Title and duration validation beyond
// NFC normalization belongs to the calling layer.
func (c *Catalog) AddHabit(title, duration, trackID, description string) Habit {
	h := Habit{
		ID:          c.ids.NewID(habitIDPrefix),
		Title:       norm.NFC.String(title),
		Description: norm.NFC.String(description),
		Duration:    duration,
		TrackID:     trackID,
	}
	c.habits = append(c.habits, h)
	return h
}

// RemoveHabit deletes the habit with the given id.
// Idempotent: a missing id is a no-op.
func (c *Catalog) RemoveHabit(id string) {
	kept := c.habits[:0]
	for _, h := range c.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	c.habits = kept
}

// AddTrack constructs a Track with a fresh unique id and appends it.
// Unknown colors fall back to the default palette entry.
func (c *Catalog) AddTrack(title, color string) Track {
	if !ValidColor(color) {
		color = DefaultColor
	}
	t := Track{
		ID:    c.ids.NewID(trackIDPrefix),
		Title: norm.NFC.String(title),
		Color: color,
	}
	c.tracks = append(c.tracks, t)
	return t
}

// RemoveTrack deletes the track AND every habit whose TrackID matches.
// Completion entries for the cascaded habits are left in place as soft
// orphans; aggregates filter them against the live id set at read time.
func (c *Catalog) RemoveTrack(id string) {
	keptTracks := c.tracks[:0]
	for _, t := range c.tracks {
		if t.ID != id {
			keptTracks = append(keptTracks, t)
		}
	}
	c.tracks = keptTracks

	keptHabits := c.habits[:0]
	for _, h := range c.habits {
		if h.TrackID != id {
			keptHabits = append(keptHabits, h)
		}
	}
	c.habits = keptHabits
}

// Import appends definitions that carry their own ids (seed files,
// local snapshots). Entries whose id already exists are skipped, so
// re-importing the same seed is idempotent.
func (c *Catalog) Import(tracks []Track, habits []Habit) (added int) {
	trackIDs := make(map[string]bool, len(c.tracks))
	for _, t := range c.tracks {
		trackIDs[t.ID] = true
	}
	for _, t := range tracks {
		if trackIDs[t.ID] {
			continue
		}
		if !ValidColor(t.Color) {
			t.Color = DefaultColor
		}
		t.Title = norm.NFC.String(t.Title)
		c.tracks = append(c.tracks, t)
		trackIDs[t.ID] = true
		added++
	}

	habitIDs := c.LiveHabitIDs()
	for _, h := range habits {
		if habitIDs[h.ID] {
			continue
		}
		h.Title = norm.NFC.String(h.Title)
		h.Description = norm.NFC.String(h.Description)
		c.habits = append(c.habits, h)
		habitIDs[h.ID] = true
		added++
	}
	return added
}

// Habits returns a copy of the habit definitions in declaration order.
func (c *Catalog) Habits() []Habit {
	out := make([]Habit, len(c.habits))
	copy(out, c.habits)
	return out
}

// Tracks returns a copy of the track definitions in declaration order.
func (c *Catalog) Tracks() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// HabitsByTrack returns the habits belonging to the given track.
func (c *Catalog) HabitsByTrack(trackID string) []Habit {
	var out []Habit
	for _, h := range c.habits {
		if h.TrackID == trackID {
			out = append(out, h)
		}
	}
	return out
}

// LiveHabitIDs returns the set of currently-live habit ids. Every
// downstream aggregate (progress, heatmap, CSV) must filter completion
// entries through this set before counting.
func (c *Catalog) LiveHabitIDs() map[string]bool {
	ids := make(map[string]bool, len(c.habits))
	for _, h := range c.habits {
		ids[h.ID] = true
	}
	return ids
}

// Len returns the number of live habits.
func (c *Catalog) Len() int {
	return len(c.habits)
}
