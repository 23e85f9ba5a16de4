package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/cli/formatter"
	"github.com/avandeursen/mosaic/internal/engine"
)

func newTreeCmd(cliApp *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree ID",
		Short: "Render a resource subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			resp, err := cliApp.Dashboard.GetDashboard(ctx, app.NewDashboardRequest(args[0]))
			if err != nil {
				return err
			}
			if resp.Root == nil {
				fmt.Println(formatter.Dim("Nothing here yet."))
				return nil
			}

			slots, err := cliApp.Dashboard.Slots(ctx)
			if err != nil {
				return err
			}
			badges := newBadgeRegistry(slots)

			items := collectTreeItems(resp.Root, slots, badges, 0, true)
			fmt.Print(formatter.RenderTree(items))
			fmt.Println(formatter.Dim(fmt.Sprintf("%d nodes", resp.NodeCount)))
			return nil
		},
	}
	return cmd
}

// collectTreeItems flattens a node tree into display rows, depth first.
func collectTreeItems(n *engine.Node, slots *engine.SlotResolver, badges *engine.Registry, level int, isLast bool) []formatter.TreeItem {
	item := formatter.TreeItem{
		Title:  slots.ResolveFormatted(n, "headline", n.Title, engine.FormatText),
		Level:  level,
		IsLast: isLast,
		Status: string(n.Status()),
		Badge:  badges.Render(n),
	}
	if n.Variant != string(n.Type) {
		item.Variant = n.Variant
	}

	items := []formatter.TreeItem{item}
	for i, child := range n.Children {
		items = append(items, collectTreeItems(child, slots, badges, level+1, i == len(n.Children)-1)...)
	}
	return items
}
