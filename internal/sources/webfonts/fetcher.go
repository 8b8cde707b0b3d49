package webfonts

import (
	"context"

	"github.com/spf13/afero"

	"github.com/agentstation/fontmap/internal/transport"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

// Fetcher implements sources.Fetcher for webfonts catalogs over HTTP or from disk.
type Fetcher struct {
	client *transport.Client
	fs     afero.Fs
}

var _ sources.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher. Local repositories are read from fs.
func NewFetcher(client *transport.Client, fs afero.Fs) *Fetcher {
	if client == nil {
		client = transport.New(nil)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Fetcher{client: client, fs: fs}
}

// Payload returns the raw catalog bytes of repo.
func (f *Fetcher) Payload(ctx context.Context, repo sources.Repository) ([]byte, error) {
	if repo.NeedsKey() {
		return nil, errors.NewConfigError("repository "+repo.Name, "URL needs an API key but none is configured", nil)
	}

	if repo.IsLocal() {
		path := repo.LocalPath()
		data, err := afero.ReadFile(f.fs, path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
		return data, nil
	}

	ctx = logging.WithRepository(ctx, repo.Name)
	return f.client.Fetch(ctx, repo.Name, repo.ResolvedURL())
}

// Fetch downloads and parses repo.
func (f *Fetcher) Fetch(ctx context.Context, repo sources.Repository) ([]catalogs.RepoFont, error) {
	data, err := f.Payload(ctx, repo)
	if err != nil {
		return nil, err
	}
	return Parse(data, repo.Name)
}
