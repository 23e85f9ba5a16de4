package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/domain"
)

func newAddCmd(app *App) *cobra.Command {
	var parentID, tp, title, description, ownerID, at string
	var metaPairs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if title == "" && app.Interactive {
				if err := runAddWizard(ctx, app, &title, &tp, &parentID, &at); err != nil {
					return err
				}
			}
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}

			meta, err := parseMetaFlags(metaPairs)
			if err != nil {
				return err
			}
			scheduledAt, err := parseDateFlag(at)
			if err != nil {
				return err
			}

			r := &domain.Resource{
				Title:       title,
				Description: description,
				Type:        domain.ResourceType(tp),
				Metadata:    meta,
				ScheduledAt: scheduledAt,
				OwnerID:     ownerID,
			}
			if parentID != "" {
				r.ParentID = &parentID
			}

			if err := app.Resources.Create(ctx, r); err != nil {
				return err
			}
			app.Cache.InvalidateAll()

			fmt.Printf("Created %s (%s)\n", r.Title, r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Resource title")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&tp, "type", string(domain.TypeItem), "Resource type (folder|project|task|item|event)")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent resource ID")
	cmd.Flags().StringVar(&ownerID, "owner", "local", "Owner ID")
	cmd.Flags().StringVar(&at, "at", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&metaPairs, "meta", nil, "Metadata entry, key=value (repeatable)")

	return cmd
}

// runAddWizard collects the fields the flags did not provide.
func runAddWizard(ctx context.Context, app *App, title, tp, parentID, at *string) error {
	types := []domain.ResourceType{
		domain.TypeFolder, domain.TypeProject, domain.TypeTask,
		domain.TypeItem, domain.TypeEvent,
	}
	typeOptions := make([]huh.Option[string], 0, len(types))
	for _, vt := range types {
		typeOptions = append(typeOptions, huh.NewOption(string(vt), string(vt)))
	}

	parentOptions := []huh.Option[string]{huh.NewOption("(top level)", "")}
	if existing, err := app.Resources.List(ctx, "local"); err == nil {
		for _, r := range existing {
			if r.Type == domain.TypeFolder || r.Type == domain.TypeProject {
				parentOptions = append(parentOptions, huh.NewOption(r.Title, r.ID))
			}
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(tp),
			huh.NewSelect[string]().
				Title("Parent").
				Options(parentOptions...).
				Value(parentID),
			huh.NewInput().
				Title("Scheduled (YYYY-MM-DD, blank for none)").
				Placeholder("2026-09-01").
				Value(at).
				Validate(validateOptionalDate),
		),
	).WithTheme(mosaicHuhTheme()).WithShowHelp(false)

	return form.Run()
}
