package cmdutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
)

func TestForEachFamily(t *testing.T) {
	cat := catalogs.Build(map[string][]catalogs.RepoFont{
		"repo": {{Family: "Roboto"}, {Family: "Lato"}},
	}, nil, catalogs.WithLogger(logging.NewNopLogger()))

	var seen []string
	rows, err := ForEachFamily(context.Background(), cat, logging.NewNopLogger(), "install",
		[]string{"roboto", "Missing", "Lato"},
		func(_ context.Context, font *catalogs.Font) (output.ActionRow, error) {
			seen = append(seen, font.Family())
			if font.Family() == "Lato" {
				return output.ActionRow{Repository: "repo"}, errors.ErrNoRepository
			}
			return output.ActionRow{Repository: "repo"}, nil
		})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 families failed")
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, []string{"Roboto", "Lato"}, seen)

	require.Len(t, rows, 3)
	assert.Equal(t, "Roboto", rows[0].Family)
	assert.Equal(t, "install", rows[0].Action)
	assert.Empty(t, rows[0].Error)
	assert.Equal(t, "Missing", rows[1].Family)
	assert.NotEmpty(t, rows[1].Error)
	assert.Equal(t, errors.ErrNoRepository.Error(), rows[2].Error)
}

func TestForEachFamilyCancelled(t *testing.T) {
	cat := catalogs.Build(nil, nil, catalogs.WithLogger(logging.NewNopLogger()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := ForEachFamily(ctx, cat, logging.NewNopLogger(), "install", []string{"Roboto"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}

func TestPaths(t *testing.T) {
	got := Paths(map[string]string{"regular": "/f/A-Regular.ttf", "700": "/f/A-Bold.ttf"})
	assert.Equal(t, []string{"/f/A-Bold.ttf", "/f/A-Regular.ttf"}, got)
}
