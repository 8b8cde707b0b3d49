// Package appcontext provides the application context interface shared by
// every command. Commands accept this interface rather than the concrete App
// so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/pkg/catalogs"
)

// Interface defines what commands need from the application.
type Interface interface {
	// Client returns the fontmap client, creating it lazily if needed.
	Client() (*fontmap.Client, error)

	// Catalog builds the merged catalog from the repository caches and the
	// locally installed fonts. The catalog is built once per process.
	Catalog(ctx context.Context) (*catalogs.Catalog, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
