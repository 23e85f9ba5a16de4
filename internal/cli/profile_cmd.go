package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/avandeursen/mosaic/internal/cli/formatter"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(context.Background())
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("NAME    "), p.DisplayName))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("LOCALE  "), p.Locale))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("CURRENCY"), p.Currency))
			fmt.Print(formatter.RenderBox("Profile", b.String()))
			return nil
		},
	}

	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, locale, currency string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := app.Profiles.Get(ctx)
			if err != nil {
				return err
			}

			flagsUsed := cmd.Flags().Changed("name") ||
				cmd.Flags().Changed("locale") ||
				cmd.Flags().Changed("currency")

			if !flagsUsed && app.Interactive {
				name, locale, currency = p.DisplayName, p.Locale, p.Currency
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Display name").Value(&name),
						huh.NewInput().Title("Locale").Placeholder("en-US").Value(&locale),
						huh.NewInput().Title("Currency").Placeholder("USD").Value(&currency),
					),
				).WithTheme(mosaicHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
				p.DisplayName, p.Locale, p.Currency = name, locale, currency
			} else {
				if cmd.Flags().Changed("name") {
					p.DisplayName = name
				}
				if cmd.Flags().Changed("locale") {
					p.Locale = locale
				}
				if cmd.Flags().Changed("currency") {
					p.Currency = currency
				}
			}

			if err := app.Profiles.Upsert(ctx, p); err != nil {
				return err
			}
			fmt.Println("Profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale, e.g. en-US")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")

	return cmd
}
