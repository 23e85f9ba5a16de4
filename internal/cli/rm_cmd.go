package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Resources.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			app.Cache.InvalidateAll()
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}
	return cmd
}
