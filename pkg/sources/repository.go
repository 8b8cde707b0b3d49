// Package sources describes the remote catalogs fonts are fetched from.
//
// A Repository names a catalog and where to get it. Repositories are kept in
// priority order: the first repository listing a family is the default
// install source for it.
//
// Example usage:
//
//	repos := sources.NewRepositories(sources.Defaults(os.Getenv("GOOGLE_FONTS_KEY"))...)
//	for _, repo := range repos.List() {
//	    fonts, err := fetcher.Fetch(ctx, repo)
//	    ...
//	}
package sources

import (
	"context"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

// Repository is a remote catalog of font families.
type Repository struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	// URL may contain the {API_KEY} placeholder. file:// URLs and plain
	// paths are read from disk.
	URL string `json:"url" yaml:"url" mapstructure:"url"`
	Key string `json:"-" yaml:"-" mapstructure:"key"`
}

// Fetcher turns a repository into its list of font entries.
//
// Fetch fails with *errors.ParseError when the payload is malformed and with
// *errors.NetworkError when the transfer fails.
type Fetcher interface {
	Fetch(ctx context.Context, repo Repository) ([]catalogs.RepoFont, error)
}

// ResolvedURL returns URL with the placeholder replaced by Key.
func (r Repository) ResolvedURL() string {
	return strings.ReplaceAll(r.URL, constants.APIKeyPlaceholder, r.Key)
}

// NeedsKey reports whether the URL template expects a key that is missing.
func (r Repository) NeedsKey() bool {
	return strings.Contains(r.URL, constants.APIKeyPlaceholder) && r.Key == ""
}

// IsLocal reports whether the repository is read from the local filesystem.
func (r Repository) IsLocal() bool {
	u, err := url.Parse(r.URL)
	if err != nil {
		return false
	}
	return u.Scheme == "" || u.Scheme == "file"
}

// LocalPath returns the filesystem path of a local repository.
func (r Repository) LocalPath() string {
	if u, err := url.Parse(r.URL); err == nil && u.Scheme == "file" {
		return u.Path
	}
	return r.URL
}

// Validate checks that the repository has a name and a usable URL.
func (r *Repository) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.URL, validation.Required, validation.By(validScheme)),
	)
	if err != nil {
		return errors.WrapValidation("repository "+r.Name, err)
	}
	return nil
}

func validScheme(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(strings.ReplaceAll(raw, constants.APIKeyPlaceholder, "key"))
	if err != nil {
		return errors.New("must be a URL or a path")
	}
	switch u.Scheme {
	case "", "file", "http", "https":
		return nil
	}
	return errors.New("scheme must be http, https or file")
}

// Defaults returns the built-in repositories. Google Fonts needs an API key
// and is only included when googleKey is set.
func Defaults(googleKey string) []Repository {
	var repos []Repository
	if googleKey != "" {
		repos = append(repos, Repository{
			Name: constants.GoogleFontsName,
			URL:  constants.GoogleFontsURL,
			Key:  googleKey,
		})
	}
	return append(repos, Repository{
		Name: constants.OpenFontRepositoryName,
		URL:  constants.OpenFontRepositoryURL,
	})
}
