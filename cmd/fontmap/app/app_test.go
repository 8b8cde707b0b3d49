package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/localfonts"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

func testConfig() *Config {
	return &Config{
		Format:      "json",
		Concurrency: 2,
		LogLevel:    "error",
		LogOutput:   "discard",
	}
}

// newTestApp wires an App to an in-memory filesystem and a local repository server.
func newTestApp(t *testing.T) (*App, *bytes.Buffer, afero.Fs) {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fonts.json":
			fmt.Fprintf(w, `{"items":[
				{"family":"Roboto","variants":["Regular","Bold"],"lastModified":"2023-01-01",
				 "files":{"Regular":"%[1]s/files/r.ttf","Bold":"%[1]s/files/b.ttf"}},
				{"family":"Lato","variants":["Regular"],"files":{"Regular":"%[1]s/files/r.ttf"}}
			]}`, server.URL)
		case "/files/r.ttf", "/files/b.ttf":
			_, _ = w.Write(goregular.TTF)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(testConfig()),
		WithLogger(logging.NewNopLogger()),
		WithOutput(&out),
		WithClientOptions(
			fontmap.WithFs(fs),
			fontmap.WithDataDir("/data"),
			fontmap.WithHome("/home/ada"),
			fontmap.WithDefaultRepositories(false),
			fontmap.WithRepositories(sources.Repository{Name: "Test", URL: server.URL + "/fonts.json"}),
			fontmap.WithHTTPClient(server.Client()),
			fontmap.WithEnumerator(localfonts.Handles{}),
			fontmap.WithInstallDirs("/home/ada/fonts", "/usr/local/share/fonts"),
		),
	)
	require.NoError(t, err)
	return app, &out, fs
}

func run(t *testing.T, app *App, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	err := app.Execute(context.Background(), args)
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithConfig(testConfig()))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.Equal(t, "json", app.OutputFormat())
}

func TestApp_Client_Singleton(t *testing.T) {
	app, _, _ := newTestApp(t)

	const goroutines = 20
	var wg sync.WaitGroup
	clients := make([]*fontmap.Client, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := app.Client()
			assert.NoError(t, err)
			clients[i] = c
		}()
	}
	wg.Wait()

	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
}

func TestCommands(t *testing.T) {
	app, out, fs := newTestApp(t)

	got, err := run(t, app, out, "update")
	require.NoError(t, err)
	var synced []output.SyncRow
	require.NoError(t, json.Unmarshal([]byte(got), &synced))
	require.Len(t, synced, 1)
	assert.Equal(t, "Test", synced[0].Repository)
	assert.Equal(t, 2, synced[0].Families)
	assert.True(t, synced[0].Changed)

	got, err = run(t, app, out, "list")
	require.NoError(t, err)
	var listed []output.FontSummary
	require.NoError(t, json.Unmarshal([]byte(got), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Lato", listed[0].Family)
	assert.Empty(t, listed[1].Installed)

	got, err = run(t, app, out, "install", "roboto")
	require.NoError(t, err)
	var actions []output.ActionRow
	require.NoError(t, json.Unmarshal([]byte(got), &actions))
	require.Len(t, actions, 1)
	assert.Equal(t, "Roboto", actions[0].Family)
	assert.Equal(t, "Test", actions[0].Repository)
	assert.Equal(t, []string{"/home/ada/fonts/Roboto-Bold.ttf", "/home/ada/fonts/Roboto-Regular.ttf"}, actions[0].Files)
	for _, f := range actions[0].Files {
		exists, err := afero.Exists(fs, f)
		require.NoError(t, err)
		assert.True(t, exists, f)
	}

	got, err = run(t, app, out, "install", "Roboto")
	require.NoError(t, err)
	assert.Contains(t, got, `"action": "skip"`)

	got, err = run(t, app, out, "info", "Roboto")
	require.NoError(t, err)
	var detail output.FontDetail
	require.NoError(t, json.Unmarshal([]byte(got), &detail))
	require.Len(t, detail.Locations, 1)
	assert.Equal(t, "user", detail.Locations[0].Location)
	assert.Equal(t, "up to date", detail.Locations[0].Update)

	got, err = run(t, app, out, "list", "--installed")
	require.NoError(t, err)
	listed = nil
	require.NoError(t, json.Unmarshal([]byte(got), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"user"}, listed[0].Installed)

	_, err = run(t, app, out, "uninstall", "Roboto")
	require.NoError(t, err)
	exists, err := afero.Exists(fs, "/home/ada/fonts/Roboto-Regular.ttf")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err = run(t, app, out, "install", "Nope", "Lato")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 families failed")
	actions = nil
	require.NoError(t, json.Unmarshal([]byte(got), &actions))
	require.Len(t, actions, 2)
	assert.NotEmpty(t, actions[0].Error)
	assert.Empty(t, actions[1].Error)

	got, err = run(t, app, out, "download", "/tmp/dl", "Lato")
	require.NoError(t, err)
	assert.Contains(t, got, "/tmp/dl/Lato-Regular.ttf")

	got, err = run(t, app, out, "search", "rob")
	require.NoError(t, err)
	listed = nil
	require.NoError(t, json.Unmarshal([]byte(got), &listed))
	require.NotEmpty(t, listed)
	assert.Equal(t, "Roboto", listed[0].Family)
}

func TestReposAndVersion(t *testing.T) {
	app, out, _ := newTestApp(t)

	got, err := run(t, app, out, "repos")
	require.NoError(t, err)
	var rows []output.RepositoryRow
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Test", rows[0].Name)

	got, err = run(t, app, out, "version")
	require.NoError(t, err)
	assert.Equal(t, "fontmap 1.0.0\n", got)

	got, err = run(t, app, out, "version", "-v", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, got, "commit:   abc123")
}

func TestDirsWithClient(t *testing.T) {
	client, err := fontmap.New(
		fontmap.WithFs(afero.NewMemMapFs()),
		fontmap.WithDataDir("/data"),
		fontmap.WithHome("/home/ada"),
		fontmap.WithDefaultRepositories(false),
		fontmap.WithEnumerator(localfonts.Handles{}),
		fontmap.WithInstallDirs("/home/ada/fonts", "/usr/local/share/fonts"),
		fontmap.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(testConfig()),
		WithLogger(logging.NewNopLogger()),
		WithOutput(&out),
		WithClient(client),
	)
	require.NoError(t, err)

	got, err := app.Client()
	require.NoError(t, err)
	assert.Same(t, client, got)

	text, err := run(t, app, &out, "dirs")
	require.NoError(t, err)
	var rows []output.DirRow
	require.NoError(t, json.Unmarshal([]byte(text), &rows))
	assert.Equal(t, []output.DirRow{
		{Name: "data", Path: "/data"},
		{Name: "cache", Path: filepath.Join("/data", "repos")},
		{Name: "user fonts", Path: "/home/ada/fonts"},
		{Name: "system fonts", Path: "/usr/local/share/fonts"},
	}, rows)
}

func TestInvalidFormatFlag(t *testing.T) {
	app, out, _ := newTestApp(t)
	_, err := run(t, app, out, "repos", "--format", "xml")
	assert.Error(t, err)
}
