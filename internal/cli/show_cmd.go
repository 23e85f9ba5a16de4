package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/cli/formatter"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show resource details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			r, err := app.Resources.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			var b strings.Builder

			b.WriteString(fmt.Sprintf("%s  %s\n\n", formatter.Bold(r.Title), formatter.TypeBadge(r.Type)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ID     "), formatter.TruncID(r.ID)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("STATUS "), formatter.StatusPill(r.Status)))
			if r.ParentID != nil {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PARENT "), formatter.TruncID(*r.ParentID)))
			}
			if r.Description != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DESC   "), r.Description))
			}
			if r.ScheduledAt != nil {
				b.WriteString(fmt.Sprintf("  %s  %s %s\n", formatter.Dim("DUE    "),
					formatter.RelativeDateStyled(*r.ScheduledAt),
					formatter.Dim("("+r.ScheduledAt.Format("Jan 2, 2006")+")")))
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("UPDATED"), formatter.HumanTimestamp(r.UpdatedAt)))

			if len(r.Metadata) > 0 {
				b.WriteString("\n")
				b.WriteString(formatter.Header("Metadata"))
				b.WriteString("\n")
				keys := make([]string, 0, len(r.Metadata))
				for k := range r.Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim(fmt.Sprintf("%-12s", k)), metaValue(r.Metadata[k])))
				}
			}

			children, err := app.Resources.ListChildren(ctx, r.ID)
			if err != nil {
				return err
			}
			if len(children) > 0 {
				b.WriteString("\n")
				b.WriteString(formatter.Header("Children"))
				b.WriteString("\n")
				headers := []string{"ID", "TITLE", "TYPE", "STATUS"}
				rows := make([][]string, 0, len(children))
				for _, c := range children {
					rows = append(rows, []string{
						formatter.TruncID(c.ID),
						c.Title,
						formatter.TypeBadge(c.Type),
						formatter.StatusPill(c.Status),
					})
				}
				b.WriteString(formatter.RenderTable(headers, rows))
			}

			fmt.Print(formatter.RenderBox("Resource", b.String()))
			return nil
		},
	}
	return cmd
}

func metaValue(v any) string {
	switch v.(type) {
	case string, float64, bool, int, nil:
		return fmt.Sprintf("%v", v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
