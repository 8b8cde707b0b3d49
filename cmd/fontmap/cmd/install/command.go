// Package install implements the install command.
package install

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

// NewCommand creates the install command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &globals.FontFlags{}
	var force bool

	cmd := &cobra.Command{
		Use:     "install <family>...",
		GroupID: "core",
		Short:   "Install font families from a repository",
		Long: `Install downloads every variant of each family into the user font directory,
or the system font directory with --system. Families already installed there
are skipped unless --force is given.

Without --repo the first repository that publishes the family is used.`,
		Example: `  fontmap install Roboto "Open Sans"
  fontmap install Lato --repo "Open Font Repository"
  sudo fontmap install Inter --system`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			loc := flags.Location()
			rows, runErr := cmdutil.ForEachFamily(cmd.Context(), cat, app.Logger(), "install", args,
				func(ctx context.Context, font *catalogs.Font) (output.ActionRow, error) {
					if !force && font.Installed(loc) {
						return output.ActionRow{Action: "skip", Location: loc.String()}, nil
					}
					return Install(ctx, font, loc, flags.Repository)
				})

			if err := output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.ActionsToData(rows)); err != nil {
				return err
			}
			return runErr
		},
	}

	globals.AddRepositoryFlag(cmd, flags)
	globals.AddLocationFlag(cmd, flags)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinstall families that are already installed")
	return cmd
}

// Install installs font at loc and reports the outcome as an action row.
// Files written before a failure are listed in the row.
func Install(ctx context.Context, font *catalogs.Font, loc catalogs.Location, repository string) (output.ActionRow, error) {
	row := output.ActionRow{Repository: repository, Location: loc.String()}

	result, err := font.Install(ctx, loc, repository)
	if err != nil {
		var ie *errors.InstallError
		if errors.As(err, &ie) {
			row.Repository = ie.Repository
			row.Files = ie.Written
		}
		return row, err
	}

	row.Repository = result.Repository
	row.Files = cmdutil.Paths(result.Files)
	return row, nil
}
