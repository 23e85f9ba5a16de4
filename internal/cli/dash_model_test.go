package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/engine"
	"github.com/avandeursen/mosaic/internal/teatest"
)

func TestDashModel_RendersRows(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	d := teatest.New(t, newDashModel(app, "root", nil), teatest.WithSize(80, 24))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "EXPENSES")
	assert.Contains(t, view, "Lunch")
	assert.Contains(t, view, "Fuel")
}

func TestDashModel_MissingRootEmptyState(t *testing.T) {
	app := testApp(t)

	d := teatest.New(t, newDashModel(app, "ghost", nil), teatest.WithSize(80, 24))
	d.DrainInit()

	assert.Contains(t, d.View(), "Nothing here yet.")
}

func TestDashModel_ToggleSelectedRow(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	d := teatest.New(t, newDashModel(app, "root", nil), teatest.WithSize(80, 24))
	d.DrainInit()

	// Subtree rows come back in path order, so the first row is Fuel.
	// Toggling advances it to completed and reloads.
	d.PressEnter()

	r, err := app.Resources.GetByID(context.Background(), "fuel")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, r.Status)
}

func TestDashModel_AggregationPanel(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	agg := &engine.AggregationConfig{
		TargetKey: "amount",
		GroupBy:   "category",
		Operation: engine.OpSum,
	}
	d := teatest.New(t, newDashModel(app, "root", agg), teatest.WithSize(80, 24))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "Gas")
	assert.Contains(t, view, "Food")
	assert.Contains(t, view, "%")
}

func TestDashModel_QuitKey(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	d := teatest.New(t, newDashModel(app, "root", nil), teatest.WithSize(80, 24))
	d.DrainInit()
	d.PressKey('q')

	assert.True(t, d.Quitting)
}
