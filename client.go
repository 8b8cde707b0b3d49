// Package fontmap keeps a local machine's fonts in step with remote font
// repositories.
//
// A Client knows the configured repositories, keeps a cached copy of each
// repository's catalog on disk and builds a catalogs.Catalog that merges those
// catalogs with the fonts already installed.
//
// Example usage:
//
//	client, err := fontmap.New(fontmap.WithLogger(&logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Refresh every repository cache
//	results, err := client.Sync(ctx)
//
//	// Build the catalog and install a family
//	catalog, err := client.Load(ctx)
//	font, err := catalog.Lookup("Roboto")
//	if err == nil {
//	    _, err = font.Install(ctx, catalogs.LocationUser, "")
//	}
package fontmap

import (
	"github.com/spf13/afero"

	"github.com/agentstation/fontmap/internal/cache"
	"github.com/agentstation/fontmap/internal/config"
	"github.com/agentstation/fontmap/internal/paths"
	"github.com/agentstation/fontmap/internal/sources/webfonts"
	"github.com/agentstation/fontmap/internal/transport"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/localfonts"
	"github.com/agentstation/fontmap/pkg/sources"
)

// Client is the entry point to fontmap.
type Client struct {
	cfg       *options
	repos     *sources.Repositories
	transport *transport.Client
	fetcher   *webfonts.Fetcher
	cache     *cache.Store
	resolver  *localfonts.Resolver
	hooks     *hooks
}

// New creates a client.
//
// Repositories are the built-in ones (unless disabled), followed by the
// entries of repos.conf in the data directory, followed by any passed with
// WithRepositories. A repos.conf that cannot be parsed is skipped with a
// warning.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.fillDefaults()

	var defaults []sources.Repository
	if cfg.useDefaults {
		defaults = sources.Defaults(cfg.googleKey)
	}

	user, err := config.LoadRepositories(cfg.fs, cfg.reposFile, cfg.logger)
	if err != nil {
		cfg.logger.Warn().Err(err).Str("file", cfg.reposFile).Msg("Ignoring repository file")
		user = nil
	}
	for _, repo := range cfg.repos {
		if err := repo.Validate(); err != nil {
			return nil, err
		}
		user = append(user, repo)
	}

	t := transport.New(cfg.httpClient)
	enum := cfg.enumerator
	if enum == nil {
		enum = localfonts.NewDirEnumerator(cfg.fs, cfg.logger, cfg.env.ScanDirs()...)
	}

	return &Client{
		cfg:       cfg,
		repos:     config.Repositories(defaults, user),
		transport: t,
		fetcher:   webfonts.NewFetcher(t, cfg.fs),
		cache:     cache.New(cfg.fs, paths.CacheDir(cfg.dataDir)),
		resolver:  localfonts.NewResolver(enum, cfg.env.Home, cfg.logger),
		hooks:     newHooks(),
	}, nil
}

// Repositories returns the configured repositories in priority order.
func (c *Client) Repositories() []sources.Repository {
	return c.repos.List()
}

// Repository returns a configured repository by name.
func (c *Client) Repository(name string) (sources.Repository, error) {
	repo, ok := c.repos.Get(name)
	if !ok {
		return sources.Repository{}, errors.NewNotFoundError("repository", name)
	}
	return repo, nil
}

// DataDir returns the directory holding repos.conf and the caches.
func (c *Client) DataDir() string {
	return c.cfg.dataDir
}

// CacheDir returns the directory holding the cached repository payloads.
func (c *Client) CacheDir() string {
	return c.cache.Dir()
}

// InstallDir returns the install directory of loc.
func (c *Client) InstallDir(loc catalogs.Location) string {
	return c.cfg.installDirs[loc]
}

// Fs returns the filesystem the client works on.
func (c *Client) Fs() afero.Fs {
	return c.cfg.fs
}

// Resolver returns the local font resolver.
func (c *Client) Resolver() catalogs.Resolver {
	return c.resolver
}
