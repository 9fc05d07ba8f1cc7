package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polymath/internal/habit"
)

func TestTrackAdd(t *testing.T) {
	f := newFixture(t)

	var tr habit.Track
	require.NoError(t, f.runJSON(&tr, "track", "add", "Languages", "--color", "sky"))

	assert.NotEmpty(t, tr.ID)
	assert.Equal(t, "Languages", tr.Title)
	assert.Equal(t, "sky", tr.Color)
}

func TestTrackAdd_InvalidColor(t *testing.T) {
	f := newFixture(t)

	_, err := f.run("track", "add", "Languages", "--color", "chartreuse")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "chartreuse")
}

func TestTrackRemove_CascadesToHabits(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("track", "rm", "music", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "5 habit(s) removed")

	var listing habitListing
	require.NoError(t, f.runJSON(&listing, "habit", "list"))
	assert.Len(t, listing.Tracks, 3)
	assert.Len(t, listing.Habits, 9)
	for _, h := range listing.Habits {
		assert.NotEqual(t, "music", h.TrackID)
	}
}

func TestTrackRemove_Declined(t *testing.T) {
	f := newFixture(t)

	out, err := f.runWithStdin("\n", "track", "rm", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
}
