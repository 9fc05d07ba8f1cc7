package export

import (
	"time"

	"github.com/roach88/polymath/internal/completion"
)

// HeatmapDays is the window rendered by the consistency heatmap:
// four weeks ending today.
const HeatmapDays = 28

// DayCell is one heatmap cell.
type DayCell struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"` // count / live habit total, capped at 1
}

// Heatmap aggregates the trailing HeatmapDays window ending at today
// (inclusive), oldest day first. Counts apply the active-habit filter.
func Heatmap(m completion.Map, live map[string]bool, today time.Time) []DayCell {
	cells := make([]DayCell, 0, HeatmapDays)
	total := len(live)

	for i := HeatmapDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")

		count := 0
		for id, done := range m[date] {
			if done && live[id] {
				count++
			}
		}

		intensity := 0.0
		if total > 0 {
			intensity = float64(count) / float64(total)
			if intensity > 1 {
				intensity = 1
			}
		}
		cells = append(cells, DayCell{Date: date, Count: count, Intensity: intensity})
	}
	return cells
}
