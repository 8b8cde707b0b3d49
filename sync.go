package fontmap

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/fontmap/internal/cache"
	"github.com/agentstation/fontmap/internal/sources/webfonts"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

// SyncResult reports the refresh of one repository.
type SyncResult struct {
	Repository string
	// Families is the number of families the fresh payload lists.
	Families int
	// Changed is false when the payload matched the cached one byte for byte.
	Changed bool
	Digest  string
	Added   []string
	Updated []string
	Removed []string
	// Err is set when the repository could not be refreshed; its cache is
	// left untouched.
	Err error
}

// Sync refreshes the cache of every repository.
//
// Repositories are fetched in parallel; hooks run afterwards, in repository
// order. A repository that fails is reported in its result and does not stop
// the others. The returned error is only set when ctx ends first.
func (c *Client) Sync(ctx context.Context) ([]SyncResult, error) {
	ctx = logging.WithLogger(ctx, c.cfg.logger)
	repos := c.repos.List()
	results := make([]SyncResult, len(repos))
	changes := make([]changeSet, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentRepositories)
	for i, repo := range repos {
		g.Go(func() error {
			results[i], changes[i] = c.syncOne(gctx, repo)
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range results {
		ch := changes[i]
		c.hooks.trigger(r.Repository, ch.added, ch.updated, ch.removed, ch.previous)

		logger := c.cfg.logger.With().Str("repository", r.Repository).Logger()
		if r.Err != nil {
			logger.Warn().Err(r.Err).Msg("Repository refresh failed")
			continue
		}
		logger.Info().
			Bool("changed", r.Changed).
			Int("families", r.Families).
			Int("added", len(r.Added)).
			Int("updated", len(r.Updated)).
			Int("removed", len(r.Removed)).
			Msg("Repository refreshed")
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// changeSet holds the entries behind one SyncResult, for the hooks.
type changeSet struct {
	added, updated, removed, previous []catalogs.RepoFont
}

func (c *Client) syncOne(ctx context.Context, repo sources.Repository) (SyncResult, changeSet) {
	result := SyncResult{Repository: repo.Name}

	ctx, cancel := context.WithTimeout(ctx, constants.RepositoryFetchTimeout)
	defer cancel()

	data, err := c.fetcher.Payload(ctx, repo)
	if err != nil {
		result.Err = err
		return result, changeSet{}
	}
	fresh, err := webfonts.Parse(data, repo.Name)
	if err != nil {
		result.Err = err
		return result, changeSet{}
	}

	var previous []byte
	if old, err := c.cache.Load(repo.Name); err == nil {
		previous = old
	}

	changed, err := c.cache.Save(repo.Name, data)
	if err != nil {
		result.Err = err
		return result, changeSet{}
	}
	result.Changed = changed
	result.Digest = cache.Digest(data)
	result.Families = len(fresh)

	if !changed {
		return result, changeSet{}
	}

	var oldFonts []catalogs.RepoFont
	if previous != nil {
		if parsed, err := webfonts.Parse(previous, repo.Name); err == nil {
			oldFonts = parsed
		}
	}
	added, updated, removed, prev := diff(oldFonts, fresh)
	result.Added = families(added)
	result.Updated = families(updated)
	result.Removed = families(removed)
	return result, changeSet{added: added, updated: updated, removed: removed, previous: prev}
}

func families(fonts []catalogs.RepoFont) []string {
	if len(fonts) == 0 {
		return nil
	}
	names := make([]string, len(fonts))
	for i, f := range fonts {
		names[i] = f.Family
	}
	return names
}
