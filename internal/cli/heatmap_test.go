package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polymath/internal/export"
)

func TestHeatmap_JSONWindow(t *testing.T) {
	f := newFixture(t)

	var cells []export.DayCell
	require.NoError(t, f.runJSON(&cells, "heatmap"))

	require.Len(t, cells, export.HeatmapDays)
	assert.True(t, cells[0].Date < cells[len(cells)-1].Date, "oldest day first")
	for _, c := range cells {
		assert.Zero(t, c.Count)
	}
}

func TestHeatmap_TextRendersFourWeeks(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("heatmap")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5, "date range line plus four week rows")
	for _, line := range lines[1:] {
		assert.Len(t, strings.Fields(line), 7)
	}
}

func TestGlyphFor(t *testing.T) {
	assert.Equal(t, "·", glyphFor(0))
	assert.Equal(t, "░", glyphFor(0.1))
	assert.Equal(t, "▒", glyphFor(0.5))
	assert.Equal(t, "▓", glyphFor(0.7))
	assert.Equal(t, "█", glyphFor(1))
}
