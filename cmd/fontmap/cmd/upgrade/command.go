// Package upgrade implements the upgrade command.
package upgrade

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/cmd/fontmap/cmd/install"
	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/cmdutil"
	"github.com/agentstation/fontmap/internal/cmd/globals"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
)

// NewCommand creates the upgrade command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &globals.FontFlags{}

	cmd := &cobra.Command{
		Use:     "upgrade [family]...",
		GroupID: "core",
		Short:   "Reinstall families that a repository has a newer release of",
		Long: `Upgrade compares each installed family with the repositories and reinstalls
it from the first repository with a newer release. Without arguments every
family installed at the location is checked.`,
		Example: `  fontmap upgrade                # Upgrade every user font
  fontmap upgrade Roboto
  sudo fontmap upgrade --system`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			loc := flags.Location()
			families := args
			if len(families) == 0 {
				families = Installed(cat, loc)
			}

			rows, runErr := cmdutil.ForEachFamily(cmd.Context(), cat, app.Logger(), "upgrade", families,
				func(ctx context.Context, font *catalogs.Font) (output.ActionRow, error) {
					return Upgrade(ctx, font, loc)
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

// Installed returns the families installed at loc, in family order.
func Installed(cat *catalogs.Catalog, loc catalogs.Location) []string {
	var families []string
	for _, font := range cat.Fonts() {
		if font.Installed(loc) {
			families = append(families, font.Family())
		}
	}
	return families
}

// Upgrade reinstalls font at loc from the first repository with a newer
// release. A family that is up to date or not installed is skipped.
func Upgrade(ctx context.Context, font *catalogs.Font, loc catalogs.Location) (output.ActionRow, error) {
	report := font.CheckUpdates(loc)
	switch report.Status {
	case catalogs.UpdateNoLocalCopy:
		return output.ActionRow{Action: "skip (not installed)", Location: loc.String()}, nil
	case catalogs.UpdateUpToDate:
		return output.ActionRow{Action: "skip (up to date)", Location: loc.String()}, nil
	}
	return install.Install(ctx, font, loc, report.Repositories[0])
}
