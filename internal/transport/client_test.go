package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap/pkg/errors"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fonts.json":
			assert.Contains(t, r.Header.Get("User-Agent"), "fontmap")
			_, _ = w.Write([]byte(`{"items":[]}`))
		case "/forbidden":
			http.Error(w, "key invalid", http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.Client())
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		body, err := client.Fetch(ctx, "OFR", server.URL+"/fonts.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":[]}`, string(body))
	})

	t.Run("status error", func(t *testing.T) {
		_, err := client.Fetch(ctx, "Google Fonts", server.URL+"/forbidden")
		require.Error(t, err)
		assert.True(t, errors.IsNetwork(err))

		var ne *errors.NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, http.StatusForbidden, ne.StatusCode)
		assert.Equal(t, "Google Fonts", ne.Repository)
		assert.Contains(t, ne.Message, "key invalid")
	})

	t.Run("download", func(t *testing.T) {
		_, err := client.Download(ctx, server.URL+"/missing.ttf")
		var ne *errors.NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, http.StatusNotFound, ne.StatusCode)
	})

	t.Run("connection refused", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		_, err := client.Download(ctx, url+"/r.ttf")
		assert.True(t, errors.IsNetwork(err))
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := client.Fetch(ctx, "", "http://[::1")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.Fetch(cctx, "", server.URL+"/fonts.json")
		assert.True(t, errors.IsNetwork(err))
	})
}
