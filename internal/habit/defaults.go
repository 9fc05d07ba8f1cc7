package habit

// Built-in seed catalog, used the first time the tracker starts with no
// local snapshot. The ids are stable: historical remote log rows refer
// to them.

// DefaultTracks returns the built-in track definitions.
func DefaultTracks() []Track {
	return []Track{
		{ID: "ml", Title: "Machine Learning", Color: "purple"},
		{ID: "music", Title: "Music (Piano & Vocal)", Color: "pink"},
		{ID: "body", Title: "Body (Dance & Calisthenics)", Color: "orange"},
		{ID: "mind", Title: "Mind & Systems", Color: "emerald"},
	}
}

// DefaultHabits returns the built-in habit definitions.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "ml-read", Title: "Read 1 Abstract", Description: "Abstract + Conclusion of one paper.", Duration: "5m", TrackID: "ml"},
		{ID: "ml-code", Title: "One Function Rule", Description: "Write or refactor one Python function.", Duration: "15m", TrackID: "ml"},
		{ID: "ml-math", Title: "Math Micro-Dose", Description: "One Linear Algebra/Calculus problem.", Duration: "10m", TrackID: "ml"},

		{ID: "music-scales", Title: "Scales & Arpeggios", Description: "Rigorous mechanical warm-up.", Duration: "5m", TrackID: "music"},
		{ID: "music-sight", Title: "Sight Read 4 Bars", Description: "Pattern recognition focus.", Duration: "5m", TrackID: "music"},
		{ID: "music-improv", Title: "Improvise", Description: "Constraint-based (e.g. black keys only).", Duration: "5m", TrackID: "music"},
		{ID: "music-pitch", Title: "Pitch Matching", Description: "Hum a note, check tuner, adjust.", Duration: "5m", TrackID: "music"},
		{ID: "music-verse", Title: "One Verse", Description: "Sing and record one verse.", Duration: "5m", TrackID: "music"},

		{ID: "body-iso", Title: "Isolation Drills", Description: "Chest/Hip/Shoulder isolations.", Duration: "5m", TrackID: "body"},
		{ID: "body-groove", Title: "One Song Groove", Description: "Move without choreography.", Duration: "3m", TrackID: "body"},
		{ID: "body-gtg", Title: "Grease the Groove", Description: "5 pushups or 2 pullups.", Duration: "1m", TrackID: "body"},
		{ID: "body-joint", Title: "Joint Mobility", Description: "Wrists and shoulders.", Duration: "5m", TrackID: "body"},

		{ID: "mind-2min", Title: "2-Minute Entry", Description: "Start a dreaded task for just 2 mins.", Duration: "2m", TrackID: "mind"},
		{ID: "mind-journal", Title: "Brain Dump", Description: "Clear the noise before sleep.", Duration: "5m", TrackID: "mind"},
	}
}
