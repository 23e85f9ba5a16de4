package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBars_ScalesAgainstLargest(t *testing.T) {
	items := []BarItem{
		{Label: "Gas", Value: "$20.00", Percentage: 57.1},
		{Label: "Food", Value: "$15.00", Percentage: 42.9},
	}
	out := stripANSI(RenderBars(items, 10))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)

	// The largest bucket fills the full width.
	assert.Contains(t, lines[0], strings.Repeat("█", 10))
	assert.Contains(t, lines[1], "░")
	assert.Contains(t, lines[0], "57.1%")
	assert.Contains(t, lines[1], "$15.00")
}

func TestRenderBars_Empty(t *testing.T) {
	out := stripANSI(RenderBars(nil, 10))
	assert.Contains(t, out, "no data")
}

func TestRenderProgress(t *testing.T) {
	out := stripANSI(RenderProgress(0.5, 10))
	assert.Contains(t, out, "█████░░░░░")
	assert.Contains(t, out, "50%")

	// Clamped below zero and above one.
	assert.Contains(t, stripANSI(RenderProgress(-1, 4)), "░░░░")
	assert.Contains(t, stripANSI(RenderProgress(2, 4)), "████")
}
