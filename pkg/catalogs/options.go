package catalogs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/logging"
)

// Resolver looks up the local copies of a family.
//
// Resolve returns one normalized record per location where the family was
// found. Finding nothing is a normal outcome and is reported as an empty
// result, never as an error.
type Resolver interface {
	Resolve(family string) []LocalEntry
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(family string) []LocalEntry

// Resolve implements Resolver.
func (fn ResolverFunc) Resolve(family string) []LocalEntry {
	return fn(family)
}

// Downloader fetches the bytes behind a font file URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(ctx context.Context, url string) ([]byte, error)

// Download implements Downloader.
func (fn DownloaderFunc) Download(ctx context.Context, url string) ([]byte, error) {
	return fn(ctx, url)
}

// environment holds the collaborators shared by every aggregate of a catalog.
type environment struct {
	resolver    Resolver
	downloader  Downloader
	fs          afero.Fs
	installDirs map[Location]string
	order       []string
	scanned     []Location
	concurrency int
	logger      *zerolog.Logger
	now         func() time.Time
}

func defaultEnvironment() *environment {
	return &environment{
		fs:          afero.NewOsFs(),
		installDirs: make(map[Location]string),
		concurrency: constants.MaxConcurrentDownloads,
		logger:      logging.Default(),
		now:         time.Now,
	}
}

// Option configures a Catalog.
type Option func(*environment)

// WithResolver sets the local font resolver used for lazy resolution.
func WithResolver(r Resolver) Option {
	return func(env *environment) {
		env.resolver = r
	}
}

// WithDownloader sets the downloader used by Install and Download.
func WithDownloader(d Downloader) Option {
	return func(env *environment) {
		env.downloader = d
	}
}

// WithFs sets the filesystem install and uninstall operate on.
func WithFs(fs afero.Fs) Option {
	return func(env *environment) {
		if fs != nil {
			env.fs = fs
		}
	}
}

// WithInstallDir sets the directory fonts are installed into for a location.
func WithInstallDir(loc Location, dir string) Option {
	return func(env *environment) {
		env.installDirs[loc] = dir
	}
}

// WithRepositoryOrder sets repository priority, highest first.
// Repositories not listed sort after the listed ones, alphabetically.
func WithRepositoryOrder(names ...string) Option {
	return func(env *environment) {
		env.order = append([]string(nil), names...)
	}
}

// WithScannedLocations declares that the local entries passed to Build are a
// complete scan of locs. Families without a record at one of them start with
// the uninstalled sentinel there instead of being resolved on first query.
func WithScannedLocations(locs ...Location) Option {
	return func(env *environment) {
		env.scanned = append([]Location(nil), locs...)
	}
}

// WithConcurrency bounds the number of variant files transferred at once.
func WithConcurrency(n int) Option {
	return func(env *environment) {
		if n > 0 {
			env.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(env *environment) {
		if logger != nil {
			env.logger = logger
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(env *environment) {
		if now != nil {
			env.now = now
		}
	}
}
