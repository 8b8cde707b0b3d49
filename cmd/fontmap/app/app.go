// Package app provides the application context and dependency management
// for the fontmap CLI. It centralizes configuration, logging and the lazily
// created fontmap client.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/internal/appcontext"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
)

// App represents the fontmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// extra client options, applied after the ones from config
	clientOpts []fontmap.Option

	// out replaces stdout and stderr of the command tree when set
	out io.Writer

	// Client and catalog are created lazily, once.
	mu      sync.Mutex
	client  *fontmap.Client
	catalog *catalogs.Catalog
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the format commands print with.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Client returns the fontmap client, creating it on first use.
func (a *App) Client() (*fontmap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clientLocked()
}

func (a *App) clientLocked() (*fontmap.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	opts := append(a.config.ClientOptions(), fontmap.WithLogger(a.logger))
	opts = append(opts, a.clientOpts...)
	client, err := fontmap.New(opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// Catalog builds the catalog on first use and returns the same one afterwards.
func (a *App) Catalog(ctx context.Context) (*catalogs.Catalog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		return a.catalog, nil
	}
	client, err := a.clientLocked()
	if err != nil {
		return nil, err
	}
	catalog, err := client.Load(ctx)
	if err != nil {
		return nil, err
	}
	a.catalog = catalog
	return catalog, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a ready client (useful for testing).
func WithClient(client *fontmap.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}

// WithClientOptions adds options applied when the client is created.
func WithClientOptions(opts ...fontmap.Option) Option {
	return func(a *App) error {
		a.clientOpts = append(a.clientOpts, opts...)
		return nil
	}
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
