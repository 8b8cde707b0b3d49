package catalogs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap/pkg/errors"
)

func buildInputs() (map[string][]RepoFont, []LocalEntry) {
	repos := map[string][]RepoFont{
		"OFR": {roboto(), {Family: "Lato", Files: map[string]string{"Regular": "http://x/l.ttf"}}},
		"Google Fonts": {
			{Family: "Roboto", LastModified: "2023-06-01"},
			{Family: "Inter", LastModified: "2023-01-01"},
		},
	}
	local := []LocalEntry{
		{Location: LocationUser, Font: NewLocalFont("Inter", []string{"Regular"}, map[string]string{"Regular": "/home/u/Inter.ttf"}, date("2023-01-01"))},
		{Location: LocationSystem, Font: NewLocalFont("Fira Code", nil, nil, nil)},
	}
	return repos, local
}

func TestBuild(t *testing.T) {
	t.Run("every family appears exactly once", func(t *testing.T) {
		repos, local := buildInputs()
		c := Build(repos, local, quiet())

		assert.Equal(t, []string{"Fira Code", "Inter", "Lato", "Roboto"}, c.Families())
		assert.Equal(t, 4, c.Len())

		roboto, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, []string{"Google Fonts", "OFR"}, roboto.Repositories())
	})

	t.Run("merging twice yields the same catalog", func(t *testing.T) {
		repos, local := buildInputs()
		first := Build(repos, local, quiet())
		second := Build(repos, local, quiet())
		if diff := cmp.Diff(first.Snapshot(), second.Snapshot()); diff != "" {
			t.Errorf("catalogs differ (-first +second):\n%s", diff)
		}
	})

	t.Run("later entries of one repository win", func(t *testing.T) {
		repos := map[string][]RepoFont{
			"OFR": {{Family: "Roboto", Version: "v1"}, {Family: "Roboto", Version: "v2"}},
		}
		c := Build(repos, nil, quiet())
		font, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, "v2", font.RepoVersion("OFR"))
	})

	t.Run("later local records replace earlier ones", func(t *testing.T) {
		local := []LocalEntry{
			{Location: LocationUser, Font: NewLocalFont("Roboto", []string{"Regular"}, nil, nil)},
			{Location: LocationUser, Font: NewLocalFont("Roboto", []string{"Bold"}, nil, nil)},
		}
		c := Build(nil, local, quiet())
		font, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bold"}, font.Variants(LocationUser))
	})

	t.Run("records without family are skipped", func(t *testing.T) {
		c := Build(nil, []LocalEntry{{Location: LocationUser, Font: Uninstalled()}}, quiet())
		assert.Zero(t, c.Len())
	})

	t.Run("inputs are copied", func(t *testing.T) {
		repos := map[string][]RepoFont{"OFR": {roboto()}}
		c := Build(repos, nil, quiet())
		repos["OFR"][0].Files["Regular"] = "changed"

		font, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, "http://x/r.ttf", font.RepoFiles("OFR")["Regular"])
	})
}

func TestLookup(t *testing.T) {
	c := Build(map[string][]RepoFont{"OFR": {roboto()}}, nil, quiet())

	font, err := c.Lookup("roboto")
	require.NoError(t, err)
	assert.Equal(t, "Roboto", font.Family())

	_, err = c.Font("roboto")
	assert.True(t, errors.IsNotFound(err))

	_, err = c.Lookup("Arial")
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Arial", nf.ID)
}

func TestRepositoryOrder(t *testing.T) {
	repos := map[string][]RepoFont{
		"Zeta":         {{Family: "Roboto"}},
		"Alpha":        {{Family: "Roboto"}},
		"OFR":          {{Family: "Roboto"}},
		"Google Fonts": {{Family: "Roboto"}},
	}

	t.Run("alphabetical without configured order", func(t *testing.T) {
		c := Build(repos, nil, quiet())
		font, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Google Fonts", "OFR", "Zeta"}, font.Repositories())
		first, ok := font.FirstAvailableRepository()
		assert.True(t, ok)
		assert.Equal(t, "Alpha", first)
	})

	t.Run("configured order first", func(t *testing.T) {
		c := Build(repos, nil, quiet(), WithRepositoryOrder("OFR", "Google Fonts"))
		font, err := c.Font("Roboto")
		require.NoError(t, err)
		assert.Equal(t, []string{"OFR", "Google Fonts", "Alpha", "Zeta"}, font.Repositories())
		assert.Equal(t, []string{"OFR", "Google Fonts", "Alpha", "Zeta"}, c.Repositories())
	})

	t.Run("local only family has no repository", func(t *testing.T) {
		c := Build(nil, []LocalEntry{{Location: LocationUser, Font: NewLocalFont("Mine", nil, nil, nil)}}, quiet())
		font, err := c.Font("Mine")
		require.NoError(t, err)
		_, ok := font.FirstAvailableRepository()
		assert.False(t, ok)
	})
}

func TestScannedLocations(t *testing.T) {
	resolver := newCountingResolver()
	resolver.set("Roboto", LocalEntry{
		Location: LocationUser,
		Font:     NewLocalFont("Roboto", []string{"Regular"}, map[string]string{"Regular": "/u/Roboto.ttf"}, date("2023-01-01")),
	})
	repos := map[string][]RepoFont{"OFR": {roboto(), {Family: "Lato"}, {Family: "Open Sans"}}}
	local := []LocalEntry{
		{Location: LocationSystem, Font: NewLocalFont("Inter", nil, nil, date("2023-01-01"))},
		{Location: LocationSystem, Font: NewLocalFont("ROBOTO", nil, nil, date("2023-01-01"))},
	}
	c := Build(repos, local, quiet(), WithResolver(resolver), WithScannedLocations(Locations()...))

	results := c.Search("", SearchOptions{Installed: true})
	var families []string
	for _, r := range results {
		families = append(families, r.Font.Family())
	}
	assert.Equal(t, []string{"Inter", "ROBOTO", "Roboto"}, families)
	assert.Zero(t, resolver.count("Lato"))
	assert.Zero(t, resolver.count("Open Sans"))

	lato, err := c.Font("Lato")
	require.NoError(t, err)
	for _, loc := range Locations() {
		assert.True(t, lato.Snapshot().Local[loc].IsSentinel(), loc.String())
	}

	// a family the scan reported under another casing still resolves lazily
	font, err := c.Font("Roboto")
	require.NoError(t, err)
	assert.True(t, font.Installed(LocationUser))
	assert.Equal(t, 1, resolver.count("Roboto"))
}

func TestScenarioSingleRepository(t *testing.T) {
	c := Build(map[string][]RepoFont{"OFR": {roboto()}}, nil, quiet())
	font, err := c.Font("Roboto")
	require.NoError(t, err)

	assert.True(t, font.InRepo("OFR"))
	assert.False(t, font.InRepo("Google Fonts"))
	assert.False(t, font.InstalledAnywhere())
	assert.Equal(t, []string{"OFR"}, font.Repositories())
	assert.Equal(t, []string{"Regular", "Bold"}, font.RepoVariants("OFR"))
	assert.Empty(t, font.RepoVariants("Google Fonts"))
	assert.NotNil(t, font.RepoFiles("Google Fonts"))
}

func TestSearch(t *testing.T) {
	repos := map[string][]RepoFont{
		"OFR": {roboto(), {Family: "Roboto Mono"}, {Family: "Lato"}},
		"GF":  {{Family: "Open Sans"}},
	}
	c := Build(repos, nil, quiet())

	t.Run("fuzzy match", func(t *testing.T) {
		results := c.Search("robo", SearchOptions{})
		require.Len(t, results, 2)
		assert.Equal(t, "Roboto", results[0].Font.Family())
		assert.Equal(t, "Roboto Mono", results[1].Font.Family())
		assert.Positive(t, results[0].Score)
	})

	t.Run("case insensitive", func(t *testing.T) {
		results := c.Search("LATO", SearchOptions{})
		require.Len(t, results, 1)
		assert.Equal(t, "Lato", results[0].Font.Family())
	})

	t.Run("empty query lists everything", func(t *testing.T) {
		results := c.Search("", SearchOptions{})
		assert.Len(t, results, 4)
		assert.Equal(t, "Lato", results[0].Font.Family())
	})

	t.Run("repository filter and limit", func(t *testing.T) {
		assert.Len(t, c.Search("", SearchOptions{Repository: "GF"}), 1)
		assert.Len(t, c.Search("", SearchOptions{Limit: 2}), 2)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.Search("xyzzy", SearchOptions{}))
	})
}
