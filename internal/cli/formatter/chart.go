package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// BarItem is one row of a horizontal bar chart.
type BarItem struct {
	Label      string
	Value      string  // pre-formatted value, e.g. "$35.00"
	Color      string  // hex color for the bar; "" falls back to blue
	Percentage float64 // 0-100 share of the total
}

// RenderBars renders aggregation buckets as labeled horizontal bars.
// Bars are scaled against the largest bucket so the biggest one fills width.
func RenderBars(items []BarItem, width int) string {
	if len(items) == 0 {
		return Dim("no data") + "\n"
	}
	if width < 4 {
		width = 4
	}

	maxPct := 0.0
	labelWidth := 0
	valueWidth := 0
	for _, item := range items {
		if item.Percentage > maxPct {
			maxPct = item.Percentage
		}
		if w := lipgloss.Width(item.Label); w > labelWidth {
			labelWidth = w
		}
		if w := lipgloss.Width(item.Value); w > valueWidth {
			valueWidth = w
		}
	}
	if maxPct <= 0 {
		maxPct = 1
	}

	var b strings.Builder
	for _, item := range items {
		filled := int(item.Percentage / maxPct * float64(width))
		if filled > width {
			filled = width
		}
		bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

		style := StyleBlue
		if item.Color != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color))
		}

		b.WriteString(fmt.Sprintf("%-*s  %s  %*s %s\n",
			labelWidth, item.Label,
			style.Render(bar),
			valueWidth, item.Value,
			Dim(fmt.Sprintf("%.1f%%", item.Percentage)),
		))
	}
	return b.String()
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}
