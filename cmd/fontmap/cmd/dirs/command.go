// Package dirs implements the dirs command.
package dirs

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/output"
)

// NewCommand creates the dirs command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "dirs",
		GroupID: "management",
		Short:   "Show where fontmap keeps its data and installs fonts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			rows := output.DirRows(client)
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), rows, output.DirsToData(rows))
		},
	}
}
