package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/cmd/fontmap/cmd/dirs"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/download"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/info"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/install"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/list"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/repos"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/search"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/uninstall"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/update"
	"github.com/agentstation/fontmap/cmd/fontmap/cmd/upgrade"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(info.NewCommand(a))
	rootCmd.AddCommand(install.NewCommand(a))
	rootCmd.AddCommand(download.NewCommand(a))
	rootCmd.AddCommand(uninstall.NewCommand(a))
	rootCmd.AddCommand(upgrade.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(repos.NewCommand(a))
	rootCmd.AddCommand(dirs.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("fontmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
