package catalogs

import (
	"context"
	"maps"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

// fallbackExtension is used when a download URL has no extension.
const fallbackExtension = "ttf"

// InstallResult reports what an install wrote.
type InstallResult struct {
	Family     string
	Repository string
	Location   Location
	// Files maps each variant to the file written for it.
	Files map[string]string
}

// OutputName returns the file name a variant is stored under:
// {family}-{variant}.{ext}, ext being the text after the last '.' of the URL path.
func OutputName(family, variant, rawURL string) string {
	return family + "-" + variant + "." + extension(rawURL)
}

func extension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.TrimPrefix(path.Ext(p), ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return fallbackExtension
	}
	return ext
}

// Download fetches every variant repository publishes into dir without
// touching the aggregate's local state. It returns the written paths, sorted.
func (f *Font) Download(ctx context.Context, repository, dir string) ([]string, error) {
	f.mu.Lock()
	entry, ok := f.repo[repository]
	f.mu.Unlock()
	if !ok {
		return nil, errors.NewNotFoundError("repository", repository)
	}

	written, err := f.fetchVariants(ctx, entry, dir)
	paths := slices.Sorted(maps.Values(written))
	if err != nil {
		return paths, &errors.InstallError{
			Family:     f.family,
			Repository: repository,
			Location:   dir,
			Written:    paths,
			Err:        err,
		}
	}
	return paths, nil
}

// Install downloads the family from repository into the install directory of
// loc and records the result. An empty repository picks the highest priority
// one publishing the family.
//
// A failed variant aborts the install and files already written stay on
// disk. After every variant is written the location is resolved again; when
// the resolver does not report the new files yet, the written files are
// recorded directly.
func (f *Font) Install(ctx context.Context, loc Location, repository string) (*InstallResult, error) {
	if !loc.Installable() {
		return nil, errors.NewValidationError("location", loc.String(), "fonts cannot be installed to this location")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if repository == "" {
		names := f.repositoriesLocked()
		if len(names) == 0 {
			return nil, &errors.InstallError{Family: f.family, Location: loc.String(), Err: errors.ErrNoRepository}
		}
		repository = names[0]
	}

	entry, ok := f.repo[repository]
	if !ok {
		return nil, errors.NewNotFoundError("repository", repository)
	}

	dir, ok := f.env.installDirs[loc]
	if !ok || dir == "" {
		return nil, errors.NewConfigError("catalogs", "no install directory for location "+loc.String(), nil)
	}

	logger := f.env.logger.With().
		Str("family", f.family).
		Str("repository", repository).
		Str("location", loc.String()).
		Logger()

	written, err := f.fetchVariants(ctx, entry, dir)
	if err != nil {
		logger.Error().Err(err).Int("written", len(written)).Msg("Install failed")
		return nil, &errors.InstallError{
			Family:     f.family,
			Repository: repository,
			Location:   loc.String(),
			Written:    slices.Sorted(maps.Values(written)),
			Err:        err,
		}
	}

	delete(f.local, loc)
	f.resolveLocked(loc)
	f.recordInstallLocked(loc, written)

	logger.Info().Int("files", len(written)).Str("dir", dir).Msg("Installed font")

	return &InstallResult{
		Family:     f.family,
		Repository: repository,
		Location:   loc,
		Files:      written,
	}, nil
}

// recordInstallLocked merges written files into the record at loc when the
// resolver has not picked them up.
func (f *Font) recordInstallLocked(loc Location, written map[string]string) {
	record := f.local[loc]
	if !record.IsSentinel() && record.Installed != nil && hasAllFiles(record.Files, written) {
		return
	}

	files := make(map[string]string, len(record.Files)+len(written))
	if !record.IsSentinel() {
		maps.Copy(files, record.Files)
	}
	maps.Copy(files, written)

	modified := f.env.now()
	f.local[loc] = NewLocalFont(f.family, slices.Sorted(maps.Keys(files)), files, &modified)
}

func hasAllFiles(have, want map[string]string) bool {
	paths := make(map[string]struct{}, len(have))
	for _, p := range have {
		paths[filepath.Clean(p)] = struct{}{}
	}
	for _, p := range want {
		if _, ok := paths[filepath.Clean(p)]; !ok {
			return false
		}
	}
	return true
}

// fetchVariants downloads and writes each variant of entry into dir with
// bounded concurrency. It returns the variants written so far even on error.
func (f *Font) fetchVariants(ctx context.Context, entry RepoFont, dir string) (map[string]string, error) {
	if f.env.downloader == nil {
		return nil, errors.NewConfigError("catalogs", "no downloader configured", nil)
	}
	if err := f.env.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	var (
		mu      sync.Mutex
		written = make(map[string]string, len(entry.Files))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.env.concurrency)

	for _, variant := range entry.SortedVariants() {
		rawURL := entry.Files[variant]
		target := filepath.Join(dir, OutputName(entry.Family, variant, rawURL))
		g.Go(func() error {
			data, err := f.env.downloader.Download(gctx, rawURL)
			if err != nil {
				return err
			}
			if err := afero.WriteFile(f.env.fs, target, data, constants.FilePermissions); err != nil {
				return errors.WrapIO("write", target, err)
			}
			mu.Lock()
			written[variant] = target
			mu.Unlock()
			f.env.logger.Debug().Str("variant", variant).Str("path", target).Msg("Wrote font file")
			return nil
		})
	}

	err := g.Wait()
	return written, err
}
