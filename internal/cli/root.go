package cli

import (
	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/engine"
	"github.com/avandeursen/mosaic/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Resources  service.ResourceService
	Profiles   service.ProfileService
	Dashboard  service.DashboardService
	Dispatcher *engine.Dispatcher
	Cache      *engine.Cache

	// Interactive is true when stdout is a TTY; commands fall back to
	// flag-only operation otherwise.
	Interactive bool
}

// NewRootCmd creates the top-level "mosaic" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mosaic",
		Short: "Personal data dashboard over a resource tree",
	}

	root.AddCommand(
		newAddCmd(app),
		newLsCmd(app),
		newShowCmd(app),
		newTreeCmd(app),
		newAggCmd(app),
		newDoCmd(app),
		newRmCmd(app),
		newProfileCmd(app),
		newDashCmd(app),
	)

	return root
}
