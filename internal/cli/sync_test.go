package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_RequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.run("sync")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "login")
}

func TestSync_ProvisionsLogOnFirstUse(t *testing.T) {
	f := newFixture(t)
	f.login()

	out, err := f.run("sync")
	require.NoError(t, err)
	assert.Contains(t, out, "dev@example.com")

	rows := f.service.appendedRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Date", "HabitID", "Value", "Timestamp"}, rows[0])
}

func TestSync_ReplaysRemoteLog(t *testing.T) {
	f := newFixture(t)
	f.login()

	// Local flip that the remote log later contradicts.
	_, err := f.run("toggle", "ml-code", "--date", "2026-08-29")
	require.NoError(t, err)

	f.service.setLoadValues([][]string{
		{"2026-08-29", "ml-read", "TRUE", "2026-08-29T08:00:00Z"},
		{"2026-08-29", "ml-read", "FALSE", "2026-08-29T09:00:00Z"},
		{"2026-08-29", "ml-read", "TRUE", "2026-08-29T10:00:00Z"},
		{"2026-08-29", "mind-journal", "TRUE", "2026-08-29T21:00:00Z"},
	})

	var result syncResult
	require.NoError(t, f.runJSON(&result, "sync"))
	assert.Equal(t, 1, result.Days)

	// Replacement is wholesale: the remote log wins, last writer per
	// cell wins within it.
	var status statusResult
	require.NoError(t, f.runJSON(&status, "status", "--date", "2026-08-29"))
	assert.Equal(t, 2, status.Done)
	completed := map[string]bool{}
	for _, h := range status.Habits {
		completed[h.ID] = h.Completed
	}
	assert.True(t, completed["ml-read"])
	assert.True(t, completed["mind-journal"])
	assert.False(t, completed["ml-code"], "local-only flip clobbered by reconciliation")
}
