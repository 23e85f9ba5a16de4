package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/cli/formatter"
	"github.com/avandeursen/mosaic/internal/engine"
)

func newAggCmd(cliApp *App) *cobra.Command {
	var target, groupBy, op, labelKey, colorKey, sourceID, valueFormat string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "agg ID",
		Short: "Aggregate metadata values over a subtree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := app.NewDashboardRequest(args[0])
			req.Aggregation = &engine.AggregationConfig{
				TargetKey: target,
				GroupBy:   groupBy,
				Operation: engine.AggregationOp(op),
				LabelKey:  labelKey,
				ColorKey:  colorKey,
				Recursive: recursive,
				SourceID:  sourceID,
			}

			resp, err := cliApp.Dashboard.GetDashboard(ctx, req)
			if err != nil {
				return err
			}
			if resp.Root == nil || resp.Aggregation == nil {
				fmt.Println(formatter.Dim("Nothing to aggregate."))
				return nil
			}

			data := resp.Aggregation
			if data.IsEmpty {
				fmt.Println(formatter.Dim("No data."))
				return nil
			}

			slots, err := cliApp.Dashboard.Slots(ctx)
			if err != nil {
				return err
			}

			format := engine.FormatType(valueFormat)

			bars := make([]formatter.BarItem, 0, len(data.Items))
			for _, item := range data.Items {
				bars = append(bars, formatter.BarItem{
					Label:      item.Label,
					Value:      slots.Format(item.Value, format),
					Color:      item.Color,
					Percentage: item.Percentage,
				})
			}

			var b string
			b += formatter.RenderBars(bars, 24)
			b += "\n"
			b += fmt.Sprintf("%s %s  %s %d\n",
				formatter.Dim("total"), formatter.Bold(slots.Format(data.Total, format)),
				formatter.Dim("nodes"), data.NodeCount)

			fmt.Print(formatter.RenderBox(resp.Root.Title, b))
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&target, "target", "", "Metadata key to aggregate")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Metadata key to bucket children by")
	cmd.Flags().StringVar(&op, "op", "sum", "Operation (sum|count|average|min|max)")
	cmd.Flags().StringVar(&labelKey, "label-key", "", "Metadata key for bucket labels")
	cmd.Flags().StringVar(&colorKey, "color-key", "", "Metadata key for explicit bucket colors")
	cmd.Flags().StringVar(&sourceID, "source", "", "Aggregate a different node's children")
	cmd.Flags().StringVar(&valueFormat, "format", "number", "Value format (number|currency)")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Include all descendants, not just direct children")

	return cmd
}
