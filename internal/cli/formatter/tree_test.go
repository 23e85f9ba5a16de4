package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree_Connectors(t *testing.T) {
	items := []TreeItem{
		{Title: "Root", Level: 0},
		{Title: "First", Level: 1},
		{Title: "Nested", Level: 2, IsLast: true},
		{Title: "Last", Level: 1, IsLast: true},
	}

	out := stripANSI(RenderTree(items))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Root", lines[0])
	assert.Equal(t, "├─ First", lines[1])
	assert.Equal(t, "│  └─ Nested", lines[2])
	assert.Equal(t, "└─ Last", lines[3])
}

func TestRenderTree_CompletedPrefix(t *testing.T) {
	items := []TreeItem{
		{Title: "Done thing", Level: 0, Status: "completed"},
	}
	out := stripANSI(RenderTree(items))
	assert.Contains(t, out, "✔ Done thing")
}

func TestRenderTree_BadgeRightAligned(t *testing.T) {
	items := []TreeItem{
		{Title: "A very long title here", Level: 0},
		{Title: "Short", Level: 1, IsLast: true, Badge: "$12.50"},
	}
	out := stripANSI(RenderTree(items))
	assert.Contains(t, out, "[ $12.50 ]")
}

func TestRenderTree_VariantSuffix(t *testing.T) {
	items := []TreeItem{{Title: "Groceries", Variant: "expense_row"}}
	out := stripANSI(RenderTree(items))
	assert.Contains(t, out, "Groceries  expense_row")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTree(nil))
}
