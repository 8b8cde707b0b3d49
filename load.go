package fontmap

import (
	"context"

	"github.com/agentstation/fontmap/internal/sources/webfonts"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

// Load builds a catalog from the cached repository payloads and a scan of the
// installed fonts.
//
// A repository without a cache is fetched and cached first. A repository that
// cannot be fetched or parsed contributes no entries and is logged as a
// warning, so one bad repository never blocks the rest.
func (c *Client) Load(ctx context.Context, opts ...catalogs.Option) (*catalogs.Catalog, error) {
	ctx = logging.WithLogger(ctx, c.cfg.logger)
	repos := c.repos.List()
	entries := make(map[string][]catalogs.RepoFont, len(repos))
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fonts, err := c.repositoryFonts(ctx, repo)
		if err != nil {
			c.cfg.logger.Warn().Err(err).Str("repository", repo.Name).Msg("Skipping repository")
			fonts = nil
		}
		entries[repo.Name] = fonts
	}

	var scanned []catalogs.Location
	local, err := c.resolver.Scan()
	if err != nil {
		c.cfg.logger.Warn().Err(err).Msg("Local font scan failed")
		local = nil
	} else {
		scanned = catalogs.Locations()
	}

	base := []catalogs.Option{
		catalogs.WithResolver(c.resolver),
		catalogs.WithDownloader(c.transport),
		catalogs.WithFs(c.cfg.fs),
		catalogs.WithRepositoryOrder(c.repos.Names()...),
		catalogs.WithConcurrency(c.cfg.concurrency),
		catalogs.WithLogger(c.cfg.logger),
		catalogs.WithScannedLocations(scanned...),
	}
	for loc, dir := range c.cfg.installDirs {
		base = append(base, catalogs.WithInstallDir(loc, dir))
	}

	catalog := catalogs.Build(entries, local, append(base, opts...)...)
	c.cfg.logger.Debug().
		Int("families", catalog.Len()).
		Int("repositories", len(repos)).
		Int("local", len(local)).
		Msg("Catalog loaded")
	return catalog, nil
}

// repositoryFonts returns the entries of repo from cache, fetching and caching
// the payload when no cache exists yet.
func (c *Client) repositoryFonts(ctx context.Context, repo sources.Repository) ([]catalogs.RepoFont, error) {
	data, err := c.cache.Load(repo.Name)
	if err == nil {
		return webfonts.Parse(data, repo.Name)
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	data, err = c.fetcher.Payload(ctx, repo)
	if err != nil {
		return nil, err
	}
	fonts, err := webfonts.Parse(data, repo.Name)
	if err != nil {
		return nil, err
	}
	if _, err := c.cache.Save(repo.Name, data); err != nil {
		c.cfg.logger.Warn().Err(err).Str("repository", repo.Name).Msg("Could not cache repository")
	}
	return fonts, nil
}
