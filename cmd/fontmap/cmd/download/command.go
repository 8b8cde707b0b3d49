// Package download implements the download command.
package download

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

// NewCommand creates the download command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &globals.FontFlags{}

	cmd := &cobra.Command{
		Use:     "download <dir> <family>...",
		GroupID: "core",
		Short:   "Download font files into a directory without installing them",
		Example: `  fontmap download ./fonts Roboto Lato
  fontmap download /tmp/fonts Inter --repo "Google Fonts"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			dir := args[0]
			rows, runErr := cmdutil.ForEachFamily(cmd.Context(), cat, app.Logger(), "download", args[1:],
				func(ctx context.Context, font *catalogs.Font) (output.ActionRow, error) {
					repository := flags.Repository
					if repository == "" {
						first, ok := font.FirstAvailableRepository()
						if !ok {
							return output.ActionRow{Location: dir}, errors.ErrNoRepository
						}
						repository = first
					}
					files, err := font.Download(ctx, repository, dir)
					return output.ActionRow{Repository: repository, Location: dir, Files: files}, err
				})

			if err := output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.ActionsToData(rows)); err != nil {
				return err
			}
			return runErr
		},
	}

	globals.AddRepositoryFlag(cmd, flags)
	return cmd
}
