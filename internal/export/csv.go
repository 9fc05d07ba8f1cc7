// Package export renders read-only views over the completion map and
// habit catalog: CSV export and the consistency heatmap.
//
// Both aggregates apply the same active-habit filter as the live
// progress counter: completion entries for deleted habits are ignored,
// so every downstream number agrees with what the user sees.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/roach88/polymath/internal/completion"
	"github.com/roach88/polymath/internal/habit"
)

// WriteCSV writes one row per recorded date, newest first.
//
// Columns: Date, Completion %, then one TRUE/FALSE column per live
// habit in catalog order. Orphaned entries for deleted habits are
// excluded from both the percentage and the columns.
func WriteCSV(w io.Writer, m completion.Map, habits []habit.Habit) error {
	dates := m.Dates()
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(habits)+2)
	header = append(header, "Date", "Completion %")
	for _, h := range habits {
		header = append(header, h.Title)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, date := range dates {
		day := m[date]

		done := 0
		record := make([]string, 0, len(habits)+2)
		record = append(record, date, "")
		for _, h := range habits {
			if day[h.ID] {
				done++
				record = append(record, "TRUE")
			} else {
				record = append(record, "FALSE")
			}
		}
		record[1] = fmt.Sprintf("%d%%", Percentage(done, len(habits)))

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", date, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Percentage returns the rounded completion percentage for done out of
// total habits. Zero total yields zero, not a division error.
func Percentage(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// FileName returns the conventional export file name for a given day,
// e.g. "polymath_data_2024-06-01.csv".
func FileName(date string) string {
	return fmt.Sprintf("polymath_data_%s.csv", date)
}
