package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(ids ...string) *Catalog {
	return NewCatalog(NewFixedGenerator(ids...))
}

func TestAddHabit_AppendsWithFreshID(t *testing.T) {
	c := newTestCatalog("custom-1", "custom-2")

	h1 := c.AddHabit("Read", "5m", "mind", "one abstract")
	h2 := c.AddHabit("Stretch", "2m", "body", "")

	assert.Equal(t, "custom-1", h1.ID)
	assert.Equal(t, "custom-2", h2.ID)
	require.Len(t, c.Habits(), 2)
	assert.Equal(t, "Read", c.Habits()[0].Title)
	assert.Equal(t, "mind", c.Habits()[0].TrackID)
}

func TestRemoveHabit_Idempotent(t *testing.T) {
	c := newTestCatalog("custom-1")
	h := c.AddHabit("Read", "5m", "mind", "")

	c.RemoveHabit(h.ID)
	assert.Empty(t, c.Habits())

	// Removing an absent id is a no-op, not an error.
	c.RemoveHabit(h.ID)
	c.RemoveHabit("never-existed")
	assert.Empty(t, c.Habits())
}

func TestRemoveTrack_CascadesToHabits(t *testing.T) {
	c := newTestCatalog("track-1", "custom-1", "custom-2", "custom-3")

	tr := c.AddTrack("Mind", "emerald")
	c.AddHabit("Read", "5m", tr.ID, "")
	c.AddHabit("Journal", "5m", tr.ID, "")
	other := c.AddHabit("Stretch", "2m", "some-other-track", "")

	c.RemoveTrack(tr.ID)

	assert.Empty(t, c.Tracks())
	require.Len(t, c.Habits(), 1)
	assert.Equal(t, other.ID, c.Habits()[0].ID)
}

func TestAddTrack_UnknownColorFallsBack(t *testing.T) {
	c := newTestCatalog("track-1")
	tr := c.AddTrack("Mind", "chartreuse")
	assert.Equal(t, DefaultColor, tr.Color)
}

func TestTitles_NormalizedToNFC(t *testing.T) {
	c := newTestCatalog("custom-1", "track-1")

	// "é" spelled as 'e' + combining acute accent (NFD input).
	nfd := "Café"
	nfc := "Café"
	h := c.AddHabit(nfd, "5m", "mind", "")
	tr := c.AddTrack(nfd, "rose")

	assert.Equal(t, nfc, h.Title)
	assert.Equal(t, nfc, tr.Title)
}

func TestLiveHabitIDs(t *testing.T) {
	c := newTestCatalog("custom-1", "custom-2")
	h1 := c.AddHabit("Read", "5m", "mind", "")
	h2 := c.AddHabit("Stretch", "2m", "body", "")
	c.RemoveHabit(h2.ID)

	ids := c.LiveHabitIDs()
	assert.True(t, ids[h1.ID])
	assert.False(t, ids[h2.ID])
	assert.Equal(t, 1, c.Len())
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	c := NewSeededCatalog(NewFixedGenerator(), DefaultHabits(), DefaultTracks())
	before := c.Len()

	added := c.Import(DefaultTracks(), DefaultHabits())
	assert.Zero(t, added)
	assert.Equal(t, before, c.Len())

	added = c.Import(nil, []Habit{{ID: "new-1", Title: "New", Duration: "1m", TrackID: "mind"}})
	assert.Equal(t, 1, added)
	assert.Equal(t, before+1, c.Len())
}

func TestHabitsByTrack(t *testing.T) {
	c := NewSeededCatalog(NewFixedGenerator(), DefaultHabits(), DefaultTracks())
	mind := c.HabitsByTrack("mind")
	require.Len(t, mind, 2)
	for _, h := range mind {
		assert.Equal(t, "mind", h.TrackID)
	}
}
