// Package repos implements the repos command.
package repos

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/output"
)

// NewCommand creates the repos command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "repos",
		GroupID: "management",
		Short:   "List the configured repositories in priority order",
		Long: `Repos lists the built-in repositories followed by the entries of repos.conf
in the data directory. The first repository listing a family is the default
install source for it. Keys are never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			rows := output.RepositoryRows(client.Repositories())
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.RepositoriesToData(rows))
		},
	}
}
