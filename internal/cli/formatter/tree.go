package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title   string
	Variant string // rendered as a dimmed suffix; "" means don't display
	Level   int
	IsLast  bool
	Status  string
	Badge   string // right-aligned detail badge, e.g. a formatted amount
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Completed items get a green ✔
// prefix and dimmed title; badges are right-aligned past the longest line.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		statusPrefix := ""

		if strings.EqualFold(item.Status, "completed") {
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		} else if strings.EqualFold(item.Status, "archived") {
			statusPrefix = StyleDim.Render("✖ ")
			title = Dim(title)
		}

		if item.Variant != "" {
			title += "  " + StyleDim.Render(item.Variant)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Badge != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Badge))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
