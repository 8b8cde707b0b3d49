// Package uninstall implements the uninstall command.
package uninstall

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/cmdutil"
	"github.com/agentstation/fontmap/internal/cmd/globals"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
)

// NewCommand creates the uninstall command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &globals.FontFlags{}

	cmd := &cobra.Command{
		Use:     "uninstall <family>...",
		GroupID: "core",
		Aliases: []string{"remove", "rm"},
		Short:   "Remove installed font families",
		Long: `Uninstall deletes the files of each family from the user font directory, or
the system font directory with --system. When a file cannot be removed the
files still on disk are reported and the family stays installed.`,
		Example: `  fontmap uninstall Roboto
  sudo fontmap uninstall Inter --system`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			loc := flags.Location()
			rows, runErr := cmdutil.ForEachFamily(cmd.Context(), cat, app.Logger(), "uninstall", args,
				func(ctx context.Context, font *catalogs.Font) (output.ActionRow, error) {
					return Uninstall(ctx, font, loc)
				})

			if err := output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.ActionsToData(rows)); err != nil {
				return err
			}
			return runErr
		},
	}

	globals.AddLocationFlag(cmd, flags)
	return cmd
}

// Uninstall removes font from loc and reports the removed files.
func Uninstall(ctx context.Context, font *catalogs.Font, loc catalogs.Location) (output.ActionRow, error) {
	row := output.ActionRow{Location: loc.String()}

	result, err := font.Uninstall(ctx, loc)
	if err != nil {
		var ue *errors.UninstallError
		if errors.As(err, &ue) {
			row.Files = ue.Removed
		}
		return row, err
	}
	row.Files = result.Removed
	return row, nil
}
