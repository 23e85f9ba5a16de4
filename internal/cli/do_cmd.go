package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/app"
	"github.com/avandeursen/mosaic/internal/engine"
)

func newDoCmd(cliApp *App) *cobra.Command {
	var target, payloadJSON, rootID string

	cmd := &cobra.Command{
		Use:   "do ACTION ID",
		Short: "Dispatch a behavior against a node",
		Long: `Dispatch a declarative behavior against a node in a cached tree.

Actions: update_field, toggle_status, move_node, move_to_column, log_event.
Unknown actions are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			action, nodeID := args[0], args[1]

			payload, err := parsePayloadFlag(payloadJSON)
			if err != nil {
				return err
			}

			if rootID == "" {
				rootID = nodeID
			}
			if _, err := cliApp.Dashboard.GetDashboard(ctx, app.NewDashboardRequest(rootID)); err != nil {
				return err
			}
			n := cliApp.Cache.Node(rootID, nodeID)
			if n == nil {
				return fmt.Errorf("node %s not found under %s", nodeID, rootID)
			}

			b := engine.BehaviorDescriptor{
				Action:  action,
				Target:  target,
				Payload: payload,
			}
			if err := cliApp.Dispatcher.Dispatch(ctx, n, b); err != nil {
				return err
			}

			fmt.Printf("Dispatched %s on %s\n", action, nodeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Behavior target (metadata key, column, or destination parent)")
	cmd.Flags().StringVar(&payloadJSON, "payload", "", "Behavior payload as a JSON object")
	cmd.Flags().StringVar(&rootID, "root", "", "Tree root to resolve the node in (defaults to the node itself)")

	return cmd
}
