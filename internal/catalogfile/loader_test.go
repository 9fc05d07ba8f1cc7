package catalogfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidSeed(t *testing.T) {
	path := writeSeed(t, `
tracks:
  - id: mind
    title: Mind & Systems
    color: emerald
habits:
  - id: mind-journal
    title: Brain Dump
    description: Clear the noise before sleep.
    duration: 5m
    trackId: mind
  - id: mind-2min
    title: 2-Minute Entry
    duration: 2m
    trackId: mind
`)

	seed, err := Load(path)
	require.NoError(t, err)

	require.Len(t, seed.Tracks, 1)
	assert.Equal(t, "mind", seed.Tracks[0].ID)
	assert.Equal(t, "emerald", seed.Tracks[0].Color)

	require.Len(t, seed.Habits, 2)
	assert.Equal(t, "Brain Dump", seed.Habits[0].Title)
	assert.Equal(t, "", seed.Habits[1].Description, "description defaults to empty")
}

func TestLoad_MissingRequiredField(t *testing.T) {
	path := writeSeed(t, `
tracks:
  - id: mind
    title: Mind
    color: emerald
habits:
  - id: mind-journal
    title: Brain Dump
    trackId: mind
`) // no duration

	_, err := Load(path)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrCodeSchema, lerr.Code)
}

func TestLoad_EmptyStringRejected(t *testing.T) {
	path := writeSeed(t, `
tracks:
  - id: ""
    title: Mind
    color: emerald
habits: []
`)

	_, err := Load(path)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrCodeSchema, lerr.Code)
}

func TestLoad_DanglingTrackReference(t *testing.T) {
	path := writeSeed(t, `
tracks:
  - id: mind
    title: Mind
    color: emerald
habits:
  - id: body-iso
    title: Isolation Drills
    duration: 5m
    trackId: body
`)

	_, err := Load(path)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrCodeReference, lerr.Code)
	assert.Contains(t, lerr.Message, "body")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeSeed(t, "tracks: [unclosed")

	_, err := Load(path)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrCodeParse, lerr.Code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrCodeNotFound, lerr.Code)
}
