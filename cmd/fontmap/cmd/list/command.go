// Package list implements the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/globals"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
)

// NewCommand creates the list command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls"},
		Short:   "List font families",
		Long: `List shows every family known to the configured repositories or installed
locally, with the repositories that publish it and where it is installed.

With --updates only installed families that a repository has a newer
release of are shown.`,
		Example: `  fontmap list                        # Every family
  fontmap list --installed            # Installed families only
  fontmap list --updates              # Installed families with updates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := globals.ParseList(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			rows := Families(cat, flags)
			app.Logger().Debug().Int("families", len(rows)).Msg("Listing families")
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.SummariesToData(rows))
		},
	}
	globals.AddListFlags(cmd)
	return cmd
}

// Families returns the listing rows selected by flags, in family order.
func Families(cat *catalogs.Catalog, flags *globals.ListFlags) []output.FontSummary {
	results := cat.Search("", catalogs.SearchOptions{
		Repository: flags.Repository,
		Installed:  flags.Installed || flags.Updates,
	})

	rows := make([]output.FontSummary, 0, len(results))
	for _, r := range results {
		row := output.Summarize(r.Font, flags.Updates)
		if flags.Updates && len(row.UpdateFrom) == 0 {
			continue
		}
		rows = append(rows, row)
		if flags.Limit > 0 && len(rows) == flags.Limit {
			break
		}
	}
	return rows
}
