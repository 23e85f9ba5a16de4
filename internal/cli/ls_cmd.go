package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/cli/formatter"
	"github.com/avandeursen/mosaic/internal/domain"
)

func newLsCmd(app *App) *cobra.Command {
	var parentID, ownerID string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var resources []*domain.Resource
			var err error
			if parentID != "" {
				resources, err = app.Resources.ListChildren(ctx, parentID)
			} else {
				resources, err = app.Resources.List(ctx, ownerID)
			}
			if err != nil {
				return err
			}

			if len(resources) == 0 {
				fmt.Println(formatter.Dim("No resources."))
				return nil
			}

			headers := []string{"ID", "TITLE", "TYPE", "STATUS", "UPDATED"}
			rows := make([][]string, 0, len(resources))
			for _, r := range resources {
				rows = append(rows, []string{
					formatter.TruncID(r.ID),
					r.Title,
					formatter.TypeBadge(r.Type),
					formatter.StatusPill(r.Status),
					formatter.HumanTimestamp(r.UpdatedAt),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "List children of this resource")
	cmd.Flags().StringVar(&ownerID, "owner", "local", "Owner ID")
	return cmd
}
