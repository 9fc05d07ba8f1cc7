package tracker

import "time"

// Clock supplies the tracker's notion of time: the local wall-clock
// day for completion keys and timestamps for remote log rows.
// Implemented by WallClock (production) and testutil.FixedClock.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns the current local time.
func (WallClock) Now() time.Time { return time.Now() }

// DateOf formats an instant as a calendar date key (ISO 8601
// YYYY-MM-DD) in the instant's own location.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
