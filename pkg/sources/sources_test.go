package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

func TestRepositoryURL(t *testing.T) {
	repo := Repository{Name: "Google Fonts", URL: constants.GoogleFontsURL, Key: "secret"}
	assert.Equal(t, "https://www.googleapis.com/webfonts/v1/webfonts?key=secret", repo.ResolvedURL())
	assert.False(t, repo.NeedsKey())

	repo.Key = ""
	assert.True(t, repo.NeedsKey())

	plain := Repository{Name: "OFR", URL: constants.OpenFontRepositoryURL}
	assert.Equal(t, constants.OpenFontRepositoryURL, plain.ResolvedURL())
	assert.False(t, plain.IsLocal())
}

func TestRepositoryLocal(t *testing.T) {
	tests := []struct {
		url   string
		local bool
		path  string
	}{
		{"file:///srv/fonts.json", true, "/srv/fonts.json"},
		{"/srv/fonts.json", true, "/srv/fonts.json"},
		{"https://example.com/fonts.json", false, "https://example.com/fonts.json"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			repo := Repository{Name: "r", URL: tt.url}
			assert.Equal(t, tt.local, repo.IsLocal())
			assert.Equal(t, tt.path, repo.LocalPath())
		})
	}
}

func TestRepositoryValidate(t *testing.T) {
	good := Repository{Name: "OFR", URL: constants.OpenFontRepositoryURL}
	require.NoError(t, good.Validate())

	google := Repository{Name: "Google Fonts", URL: constants.GoogleFontsURL}
	require.NoError(t, google.Validate())

	missing := Repository{URL: "https://example.com"}
	assert.True(t, errors.IsValidationError(missing.Validate()))

	bad := Repository{Name: "ftp", URL: "ftp://example.com/fonts.json"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}

func TestDefaults(t *testing.T) {
	repos := Defaults("")
	require.Len(t, repos, 1)
	assert.Equal(t, constants.OpenFontRepositoryName, repos[0].Name)

	repos = Defaults("key")
	require.Len(t, repos, 2)
	assert.Equal(t, constants.GoogleFontsName, repos[0].Name)
	assert.Equal(t, "key", repos[0].Key)
}

func TestRepositories(t *testing.T) {
	set := NewRepositories(
		Repository{Name: "B", URL: "/b"},
		Repository{Name: "A", URL: "/a"},
	)
	set.Set(Repository{Name: "C", URL: "/c"})
	set.Set(Repository{Name: "B", URL: "/b2"})

	assert.Equal(t, []string{"B", "A", "C"}, set.Names())
	b, ok := set.Get("B")
	require.True(t, ok)
	assert.Equal(t, "/b2", b.URL)

	set.Delete("A")
	set.Delete("missing")
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "C", set.List()[1].Name)
}
