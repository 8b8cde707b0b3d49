package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/logging"
	"github.com/agentstation/fontmap/pkg/sources"
)

func testCatalog() *catalogs.Catalog {
	modified := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	repos := map[string][]catalogs.RepoFont{
		"Google Fonts": {{
			Family:       "Roboto",
			Variants:     []string{"regular", "700"},
			Version:      "v30",
			LastModified: "2023-01-01",
			Files: map[string]string{
				"regular": "https://example.com/Roboto-Regular.ttf",
				"700":     "https://example.com/Roboto-Bold.ttf",
			},
		}},
		"Open Font Repository": {{
			Family:   "Lato",
			Variants: []string{"regular"},
			Files:    map[string]string{"regular": "https://example.com/Lato.ttf"},
		}},
	}
	local := []catalogs.LocalEntry{{
		Location: catalogs.LocationUser,
		Font: catalogs.NewLocalFont("Roboto", []string{"Regular"},
			map[string]string{"Regular": "/home/u/.local/share/fonts/Roboto-Regular.ttf"}, &modified),
	}}
	return catalogs.Build(repos, local,
		catalogs.WithResolver(catalogs.ResolverFunc(func(string) []catalogs.LocalEntry { return nil })),
		catalogs.WithLogger(logging.NewNopLogger()),
	)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatters(t *testing.T) {
	rows := []RepositoryRow{{Priority: 1, Name: "Open Font Repository", URL: "https://example.com/fonts.json"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, rows))
		assert.Contains(t, buf.String(), `"name": "Open Font Repository"`)
		assert.Contains(t, buf.String(), `"has_key": false`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, rows))
		assert.Contains(t, buf.String(), "name: Open Font Repository")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, RepositoriesToData(rows)))
		out := buf.String()
		assert.Contains(t, out, "Open Font Repository")
		assert.Contains(t, out, "remote")
	})

	t.Run("table falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, rows))
		assert.True(t, strings.HasPrefix(buf.String(), "["))
	})
}

func TestSummarize(t *testing.T) {
	cat := testCatalog()

	roboto, err := cat.Font("Roboto")
	require.NoError(t, err)
	s := Summarize(roboto, true)
	assert.Equal(t, []string{"Google Fonts"}, s.Repositories)
	assert.Equal(t, []string{"user"}, s.Installed)
	assert.Equal(t, "update available", s.Update)
	assert.Equal(t, []string{"Google Fonts"}, s.UpdateFrom)

	lato, err := cat.Font("Lato")
	require.NoError(t, err)
	s = Summarize(lato, true)
	assert.Empty(t, s.Installed)
	assert.Empty(t, s.Update)

	data := SummariesToData([]FontSummary{Summarize(roboto, true), s})
	assert.Equal(t, []string{"Family", "Repositories", "Installed", "Update"}, data.Headers)
	assert.Equal(t, "update available (Google Fonts)", data.Rows[0][3])
	assert.Equal(t, "-", data.Rows[1][2])
}

func TestSearchSummaries(t *testing.T) {
	cat := testCatalog()
	rows := SearchSummaries(cat.Search("", catalogs.SearchOptions{}), false)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Score)

	data := SummariesToData(rows)
	assert.Equal(t, "Score", data.Headers[len(data.Headers)-1])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

func TestDescribe(t *testing.T) {
	cat := testCatalog()
	roboto, err := cat.Font("Roboto")
	require.NoError(t, err)

	d := Describe(roboto)
	require.Len(t, d.Repositories, 1)
	assert.Equal(t, "v30", d.Repositories[0].Version)
	assert.Equal(t, []string{"regular", "700"}, d.Repositories[0].Variants)
	require.Len(t, d.Locations, 1)
	assert.Equal(t, "user", d.Locations[0].Location)
	assert.Equal(t, "update available", d.Locations[0].Update)

	data := DetailToData(d)
	var keys []string
	for _, row := range data.Rows {
		keys = append(keys, row[0])
	}
	assert.Contains(t, keys, "Google Fonts Version")
	assert.Contains(t, keys, "User File Regular")
	assert.Contains(t, keys, "User Last Modified")
}

func TestSyncRows(t *testing.T) {
	rows := SyncRows([]fontmap.SyncResult{
		{Repository: "a", Families: 3, Changed: true, Added: []string{"Roboto"}},
		{Repository: "b", Err: errors.New("boom")},
		{Repository: "c", Families: 1},
	})
	assert.Equal(t, "boom", rows[1].Error)

	data := SyncToData(rows)
	assert.Equal(t, []string{"a", "3", "changed", "1", "0", "0"}, data.Rows[0])
	assert.Equal(t, "failed: boom", data.Rows[1][2])
	assert.Equal(t, "unchanged", data.Rows[2][2])
}

func TestRepositoryRows(t *testing.T) {
	rows := RepositoryRows([]sources.Repository{
		{Name: "Google Fonts", URL: "https://example.com/?key={API_KEY}", Key: "secret"},
		{Name: "Local", URL: "file:///srv/fonts.json"},
	})
	assert.Equal(t, 2, rows[1].Priority)
	assert.True(t, rows[0].HasKey)
	assert.True(t, rows[1].Local)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, rows))
	assert.NotContains(t, buf.String(), "secret")
}

func TestActionsToData(t *testing.T) {
	data := ActionsToData([]ActionRow{
		{Family: "Roboto", Action: "install", Repository: "Google Fonts", Location: "user", Files: []string{"a", "b"}},
		{Family: "Nope", Action: "install", Error: `family "Nope" not found`},
	})
	assert.Equal(t, []string{"Roboto", "install", "Google Fonts", "user", "2", "ok"}, data.Rows[0])
	assert.Equal(t, "-", data.Rows[1][2])
	assert.Equal(t, `family "Nope" not found`, data.Rows[1][5])
}
