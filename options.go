package fontmap

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/fontmap/internal/paths"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/localfonts"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

// options holds the client configuration.
type options struct {
	env         paths.Env
	dataDir     string
	reposFile   string
	repos       []sources.Repository
	useDefaults bool
	googleKey   string
	fs          afero.Fs
	httpClient  *http.Client
	enumerator  localfonts.Enumerator
	installDirs map[catalogs.Location]string
	logger      *zerolog.Logger
	concurrency int
}

func defaultOptions() *options {
	return &options{
		env:         paths.Current(),
		useDefaults: true,
		installDirs: make(map[catalogs.Location]string),
		concurrency: constants.MaxConcurrentDownloads,
	}
}

func (o *options) fillDefaults() {
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	if o.dataDir == "" {
		o.dataDir = o.env.DataDir()
	}
	if o.reposFile == "" {
		o.reposFile = paths.ReposFile(o.dataDir)
	}
	if _, ok := o.installDirs[catalogs.LocationUser]; !ok {
		o.installDirs[catalogs.LocationUser] = o.env.UserFontDir()
	}
	if _, ok := o.installDirs[catalogs.LocationSystem]; !ok {
		o.installDirs[catalogs.LocationSystem] = o.env.SystemFontDir()
	}
}

// Option configures a Client.
type Option func(*options) error

// WithDataDir sets the directory holding repos.conf and the repository caches.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		o.dataDir = o.env.Expand(dir)
		return nil
	}
}

// WithReposFile sets the repository list file, overriding <data dir>/repos.conf.
func WithReposFile(path string) Option {
	return func(o *options) error {
		o.reposFile = o.env.Expand(path)
		return nil
	}
}

// WithRepositories appends repositories after the configured ones.
func WithRepositories(repos ...sources.Repository) Option {
	return func(o *options) error {
		o.repos = append(o.repos, repos...)
		return nil
	}
}

// WithDefaultRepositories enables or disables the built-in repositories.
func WithDefaultRepositories(enabled bool) Option {
	return func(o *options) error {
		o.useDefaults = enabled
		return nil
	}
}

// WithGoogleFontsKey sets the API key that enables the Google Fonts repository.
func WithGoogleFontsKey(key string) Option {
	return func(o *options) error {
		o.googleKey = key
		return nil
	}
}

// WithFs sets the filesystem used for caches, scans and installs.
func WithFs(fs afero.Fs) Option {
	return func(o *options) error {
		o.fs = fs
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for repositories and downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		o.httpClient = client
		return nil
	}
}

// WithEnumerator replaces the font directory scanner.
func WithEnumerator(enum localfonts.Enumerator) Option {
	return func(o *options) error {
		o.enumerator = enum
		return nil
	}
}

// WithHome sets the home directory used to tell user fonts from system fonts.
func WithHome(home string) Option {
	return func(o *options) error {
		o.env.Home = home
		return nil
	}
}

// WithInstallDirs sets the install directories of the user and system locations.
func WithInstallDirs(user, system string) Option {
	return func(o *options) error {
		if user != "" {
			o.installDirs[catalogs.LocationUser] = o.env.Expand(user)
		}
		if system != "" {
			o.installDirs[catalogs.LocationSystem] = o.env.Expand(system)
		}
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithConcurrency bounds parallel variant downloads.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return errors.NewValidationError("concurrency", n, "must be at least 1")
		}
		o.concurrency = n
		return nil
	}
}
