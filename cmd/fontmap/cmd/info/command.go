// Package info implements the info command.
package info

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/output"
)

// NewCommand creates the info command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "info <family>",
		GroupID: "core",
		Aliases: []string{"show"},
		Short:   "Show what repositories and local installs know about a family",
		Example: `  fontmap info Roboto
  fontmap info "open sans" -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			font, err := cat.Lookup(args[0])
			if err != nil {
				return err
			}

			detail := output.Describe(font)
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), detail, output.DetailToData(detail))
		},
	}
}
