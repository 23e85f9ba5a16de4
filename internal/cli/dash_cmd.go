package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/engine"
)

func newDashCmd(app *App) *cobra.Command {
	var target, groupBy, op string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "dash ID",
		Short: "Interactive dashboard for a subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return fmt.Errorf("dash requires a terminal")
			}

			var agg *engine.AggregationConfig
			if target != "" || groupBy != "" {
				agg = &engine.AggregationConfig{
					TargetKey: target,
					GroupBy:   groupBy,
					Operation: engine.AggregationOp(op),
					Recursive: recursive,
				}
			}

			p := tea.NewProgram(newDashModel(app, args[0], agg), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Metadata key to aggregate")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Metadata key to bucket by")
	cmd.Flags().StringVar(&op, "op", "sum", "Operation (sum|count|average|min|max)")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Include all descendants")

	return cmd
}
