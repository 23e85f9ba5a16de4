package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/cli/formatter"
	"github.com/avandeursen/mosaic/internal/engine"
)

type dashKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newDashKeyMap() dashKeyMap {
	return dashKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle status"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// dashLoadedMsg carries a freshly built dashboard into the model.
type dashLoadedMsg struct {
	resp *app.DashboardResponse
	err  error
}

// dashModel is the bubbletea model for the live dashboard view. It shows
// the subtree as a table of rows plus an optional aggregation panel.
type dashModel struct {
	app    *App
	rootID string
	agg    *engine.AggregationConfig

	keys    dashKeyMap
	table   table.Model
	resp    *app.DashboardResponse
	rows    []*engine.Node
	status  string
	loading bool
	width   int
}

func newDashModel(cliApp *App, rootID string, agg *engine.AggregationConfig) dashModel {
	columns := []table.Column{
		{Title: "TITLE", Width: 32},
		{Title: "STATUS", Width: 12},
		{Title: "DETAIL", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#3c3836")).
		Bold(true)
	t.SetStyles(styles)

	return dashModel{
		app:     cliApp,
		rootID:  rootID,
		agg:     agg,
		keys:    newDashKeyMap(),
		table:   t,
		loading: true,
	}
}

func (m dashModel) load() tea.Msg {
	req := app.NewDashboardRequest(m.rootID)
	req.Aggregation = m.agg
	resp, err := m.app.Dashboard.GetDashboard(context.Background(), req)
	return dashLoadedMsg{resp: resp, err: err}
}

func (m dashModel) Init() tea.Cmd {
	return m.load
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dashLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.resp = msg.resp
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.app.Cache.Invalidate(m.rootID)
			m.loading = true
			return m, m.load

		case key.Matches(msg, m.keys.Toggle):
			if n := m.selectedNode(); n != nil {
				err := m.app.Dispatcher.Dispatch(context.Background(), n,
					engine.BehaviorDescriptor{Action: engine.ActionToggleStatus})
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.status = fmt.Sprintf("toggled %s", n.Title)
				m.loading = true
				return m, m.load
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refreshRows rebuilds the table rows from the current response.
func (m *dashModel) refreshRows() {
	m.rows = nil
	rows := []table.Row{}
	if m.resp != nil && m.resp.Root != nil {
		slots, err := m.app.Dashboard.Slots(context.Background())
		if err != nil {
			m.status = err.Error()
			return
		}
		badges := newBadgeRegistry(slots)

		m.resp.Root.Walk(func(n *engine.Node) {
			if n == m.resp.Root {
				return
			}
			m.rows = append(m.rows, n)
			rows = append(rows, table.Row{n.Title, string(n.Status()), badges.Render(n)})
		})
	}
	m.table.SetRows(rows)
}

// selectedNode maps the table cursor back to its node.
func (m *dashModel) selectedNode() *engine.Node {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return m.rows[i]
}

func (m dashModel) View() string {
	if m.loading {
		return formatter.Dim("loading...") + "\n"
	}

	var b strings.Builder

	title := m.rootID
	if m.resp != nil && m.resp.Root != nil {
		title = m.resp.Root.Title
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("\n\n")

	if m.resp == nil || m.resp.Root == nil {
		b.WriteString(formatter.Dim("Nothing here yet.") + "\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")

		if m.resp.Aggregation != nil && !m.resp.Aggregation.IsEmpty {
			b.WriteString("\n")
			bars := make([]formatter.BarItem, 0, len(m.resp.Aggregation.Items))
			for _, item := range m.resp.Aggregation.Items {
				bars = append(bars, formatter.BarItem{
					Label:      item.Label,
					Value:      fmt.Sprintf("%.2f", item.Value),
					Color:      item.Color,
					Percentage: item.Percentage,
				})
			}
			b.WriteString(formatter.RenderBars(bars, 20))
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(formatter.StyleYellow.Render(m.status))
		b.WriteString("  ")
	}
	b.WriteString(formatter.Dim("space toggle · r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}
