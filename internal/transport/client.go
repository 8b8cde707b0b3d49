// Package transport fetches repository payloads and font files over HTTP.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// userAgent identifies fontmap to repository hosts.
const userAgent = constants.AppName + "/1"

// Client performs GET requests and turns failures into *errors.NetworkError.
type Client struct {
	http *http.Client
}

// New creates a client. A nil httpClient gets one with DefaultHTTPTimeout.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{http: httpClient}
}

// Get performs a GET request. The caller closes the body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewValidationError("url", url, err.Error())
	}
	req.Header.Set("User-Agent", userAgent)
	return c.http.Do(req)
}

// Fetch returns the body of url, failing on any non-200 status.
// repository names the source in errors and may be empty.
func (c *Client) Fetch(ctx context.Context, repository, url string) ([]byte, error) {
	logger := logging.FromContext(ctx)

	resp, err := c.Get(ctx, url)
	if err != nil {
		if errors.IsValidationError(err) {
			return nil, err
		}
		return nil, errors.NewNetworkError(repository, url, 0, "", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("url", url).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(repository, url, resp.StatusCode, "reading body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetworkError(repository, url, resp.StatusCode, statusMessage(resp, body), nil)
	}

	logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("Fetched")
	return body, nil
}

// Download implements catalogs.Downloader.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	return c.Fetch(ctx, "", url)
}

func statusMessage(resp *http.Response, body []byte) string {
	const limit = 200
	msg := string(body)
	if len(msg) > limit {
		msg = msg[:limit] + "..."
	}
	if msg == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, msg)
}
