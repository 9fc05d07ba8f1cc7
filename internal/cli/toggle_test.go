package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_NoSessionStaysLocal(t *testing.T) {
	f := newFixture(t)

	var result toggleResult
	require.NoError(t, f.runJSON(&result, "toggle", "ml-read", "--date", "2026-08-30"))

	assert.True(t, result.Completed)
	assert.Equal(t, "skipped", result.Sync)
	assert.Empty(t, f.service.appendedRows(), "no session, no remote append")

	// The flip persisted anyway.
	var status statusResult
	require.NoError(t, f.runJSON(&status, "status", "--date", "2026-08-30"))
	assert.Equal(t, 1, status.Done)
}

func TestToggle_WithSessionAppendsRow(t *testing.T) {
	f := newFixture(t)
	f.login()
	_, err := f.run("sync") // caches the remote log id
	require.NoError(t, err)

	var result toggleResult
	require.NoError(t, f.runJSON(&result, "toggle", "ml-read", "--date", "2026-08-30"))
	assert.Equal(t, "appended", result.Sync)

	rows := f.service.appendedRows()
	// Row 0 is the header written when the log was provisioned.
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-08-30", "ml-read", "TRUE"}, rows[1][:3])
	assert.NotEmpty(t, rows[1][3], "timestamp column")
}

func TestToggle_TwiceFlipsBack(t *testing.T) {
	f := newFixture(t)

	var result toggleResult
	require.NoError(t, f.runJSON(&result, "toggle", "ml-read", "--date", "2026-08-30"))
	assert.True(t, result.Completed)

	require.NoError(t, f.runJSON(&result, "toggle", "ml-read", "--date", "2026-08-30"))
	assert.False(t, result.Completed)

	var status statusResult
	require.NoError(t, f.runJSON(&status, "status", "--date", "2026-08-30"))
	assert.Equal(t, 0, status.Done)
}

func TestToggle_UnknownHabit(t *testing.T) {
	f := newFixture(t)

	_, err := f.run("toggle", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestToggle_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.run("toggle", "ml-read", "--date", "08/30/2026")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
