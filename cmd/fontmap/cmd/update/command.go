// Package update implements the update command.
package update

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/output"
)

// NewCommand creates the update command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Refresh the cached catalog of every repository",
		Long: `Update downloads the catalog of every configured repository and stores it
in the data directory. A repository whose catalog did not change is reported
as unchanged; one that cannot be reached keeps its previous cache.`,
		Example: `  fontmap update              # Refresh every repository
  fontmap update -o json      # Machine-readable report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			results, err := client.Sync(cmd.Context())
			if err != nil {
				return err
			}

			rows := output.SyncRows(results)
			if err := output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.SyncToData(rows)); err != nil {
				return err
			}

			var failed int
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d repositories could not be refreshed", failed, len(results))
			}
			return nil
		},
	}
}
