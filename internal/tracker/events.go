package tracker

import (
	"time"

	"github.com/google/uuid"
)

// SyncEventKind categorizes dispatcher outcomes.
type SyncEventKind string

const (
	// SyncAppended: the row reached the remote log.
	SyncAppended SyncEventKind = "appended"

	// SyncFailed: the append failed (provider error or missing log
	// id). The local optimistic value stands; nothing is retried. Only
	// the next full reconciliation can recover the gap, and only for
	// the device that reconciles.
	SyncFailed SyncEventKind = "failed"

	// SyncSkipped: no session was established, so no append was
	// attempted. The toggle stays local until reconciliation.
	SyncSkipped SyncEventKind = "skipped"
)

// SyncEvent reports the outcome of one fire-and-forget append.
//
// Events exist so a surrounding UI or ops layer can observe sync
// failures without the dispatcher ever blocking, retrying, or rolling
// back; an opaque log line is not a contract, this is.
type SyncEvent struct {
	// ID is a time-sortable UUIDv7 correlating the event with log
	// output.
	ID string `json:"id"`

	Kind    SyncEventKind `json:"kind"`
	Date    string        `json:"date"`
	HabitID string        `json:"habit_id"`
	Value   bool          `json:"value"`
	Err     string        `json:"err,omitempty"`
	Time    time.Time     `json:"time"`
}

// newSyncEvent stamps an event with a fresh UUIDv7 id.
func newSyncEvent(kind SyncEventKind, date, habitID string, value bool, err error, at time.Time) SyncEvent {
	ev := SyncEvent{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Kind:    kind,
		Date:    date,
		HabitID: habitID,
		Value:   value,
		Time:    at,
	}
	if err != nil {
		ev.Err = err.Error()
	}
	return ev
}
