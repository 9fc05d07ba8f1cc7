package habit

// Habit is a single recurring action definition.
type Habit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"` // free-text effort label, e.g. "5m"
	TrackID     string `json:"trackId"`
}

// Track is a named, colored grouping of habits.
// Color is a symbolic reference into the fixed palette (see palette.go).
type Track struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}
