// Package globals provides flag structures shared by the font commands.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fontmap/pkg/catalogs"
)

// FontFlags holds the flags that select a repository and a location.
type FontFlags struct {
	Repository string
	System     bool
}

// Location returns the install location the flags select.
func (f *FontFlags) Location() catalogs.Location {
	if f.System {
		return catalogs.LocationSystem
	}
	return catalogs.LocationUser
}

// AddRepositoryFlag adds --repo to a command.
func AddRepositoryFlag(cmd *cobra.Command, flags *FontFlags) {
	cmd.Flags().StringVarP(&flags.Repository, "repo", "r", "",
		"Repository to use (default: first repository listing the family)")
}

// AddLocationFlag adds --system to a command.
func AddLocationFlag(cmd *cobra.Command, flags *FontFlags) {
	cmd.Flags().BoolVarP(&flags.System, "system", "s", false,
		"Act on the system-wide font directory instead of the user one")
}

// ListFlags holds the listing filters.
type ListFlags struct {
	Repository string
	Installed  bool
	Updates    bool
	Limit      int
}

// AddListFlags adds listing filters to a command.
func AddListFlags(cmd *cobra.Command) *ListFlags {
	flags := &ListFlags{}

	cmd.Flags().StringVarP(&flags.Repository, "repo", "r", "",
		"Only families published by this repository")
	cmd.Flags().BoolVarP(&flags.Installed, "installed", "i", false,
		"Only families installed at some location")
	cmd.Flags().BoolVarP(&flags.Updates, "updates", "u", false,
		"Check installed families for updates")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// ParseList extracts listing filters from a command.
// The command must have had AddListFlags called on it, otherwise this will panic.
func ParseList(cmd *cobra.Command) *ListFlags {
	return &ListFlags{
		Repository: mustGetString(cmd, "repo"),
		Installed:  mustGetBool(cmd, "installed"),
		Updates:    mustGetBool(cmd, "updates"),
		Limit:      mustGetInt(cmd, "limit"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
