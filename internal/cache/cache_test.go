package cache

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap/pkg/errors"
)

func TestStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/data/repos")
	payload := []byte(`{"kind":"webfonts#webfontList","items":[{"family":"Roboto"}]}`)

	assert.Equal(t, filepath.Join("/data/repos", "Google_Fonts-"+Digest([]byte("Google Fonts"))[:8]+".json.zst"), store.Path("Google Fonts"))
	assert.False(t, store.Has("Google Fonts"))

	_, err := store.Load("Google Fonts")
	assert.True(t, errors.IsNotFound(err))

	changed, err := store.Save("Google Fonts", payload)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, store.Has("Google Fonts"))

	loaded, err := store.Load("Google Fonts")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)

	changed, err = store.Save("Google Fonts", payload)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = store.Save("Google Fonts", append(payload, '\n'))
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, store.Remove("Google Fonts"))
	require.NoError(t, store.Remove("Google Fonts"))
	assert.False(t, store.Has("Google Fonts"))
}

func TestSimilarNamesDoNotShareFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/data/repos")
	assert.NotEqual(t, store.Path("Google Fonts"), store.Path("Google_Fonts"))

	_, err := store.Save("Google Fonts", []byte("spaced"))
	require.NoError(t, err)
	_, err = store.Save("Google_Fonts", []byte("underscored"))
	require.NoError(t, err)

	spaced, err := store.Load("Google Fonts")
	require.NoError(t, err)
	assert.Equal(t, []byte("spaced"), spaced)
	underscored, err := store.Load("Google_Fonts")
	require.NoError(t, err)
	assert.Equal(t, []byte("underscored"), underscored)
}

func TestLoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/c")
	require.NoError(t, afero.WriteFile(fs, store.Path("OFR"), []byte("not zstd"), 0o644))

	_, err := store.Load("OFR")
	assert.True(t, errors.IsParse(err))
}

func TestDigest(t *testing.T) {
	assert.Len(t, Digest(nil), 64)
	assert.Equal(t, Digest([]byte("a")), Digest([]byte("a")))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}
