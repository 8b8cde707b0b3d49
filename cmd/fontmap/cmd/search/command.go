// Package search implements the search command.
package search

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/globals"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/constants"
)

// NewCommand creates the search command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		GroupID: "core",
		Short:   "Fuzzy search font families",
		Example: `  fontmap search robo                 # Families matching "robo"
  fontmap search sans --repo "Google Fonts"
  fontmap search mono --installed --updates`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := globals.ParseList(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			limit := flags.Limit
			if limit == 0 {
				limit = constants.MaxSearchResults
			}
			results := cat.Search(strings.Join(args, " "), catalogs.SearchOptions{
				Repository: flags.Repository,
				Installed:  flags.Installed,
				Limit:      limit,
			})

			app.Logger().Debug().Int("results", len(results)).Msg("Search finished")
			rows := output.SearchSummaries(results, flags.Updates)
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.SummariesToData(rows))
		},
	}
	globals.AddListFlags(cmd)
	return cmd
}
