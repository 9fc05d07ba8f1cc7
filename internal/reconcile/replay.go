// Package reconcile rebuilds completion state from the remote log.
//
// Reconciliation runs once per session, when an identity becomes
// available: fetch every row, replay them into a fresh map, and
// replace the local completion map wholesale. Replay is a pure
// function of row order, which makes it idempotent and keeps the
// append-only log free of any compaction requirement.
package reconcile

import (
	"github.com/roach88/polymath/internal/completion"
	"github.com/roach88/polymath/internal/remotelog"
)

// trueCell is the literal cell text that marks a completed toggle.
// Any other value, including lowercase variants, replays as false.
const trueCell = "TRUE"

// Replay folds remote log rows into a completion map.
//
// Rows are applied in the order given, which is the provider's append
// order. Later rows for the same (date, habit) key overwrite earlier
// ones: a last-writer-wins replay keyed by (date, habitID). The
// timestamp field is ignored; only row order matters.
//
// Malformed-row tolerance: rows with an empty date or empty habit id
// are skipped.
func Replay(rows []remotelog.Row) completion.Map {
	m := make(completion.Map)
	for _, row := range rows {
		if row.Date == "" || row.HabitID == "" {
			continue
		}
		day := m[row.Date]
		if day == nil {
			day = make(map[string]bool)
			m[row.Date] = day
		}
		day[row.HabitID] = row.Value == trueCell
	}
	return m
}
