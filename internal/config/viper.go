// Package config reads the user's repository list.
//
// The list lives in repos.conf as TOML array-of-tables:
//
//	[[repo]]
//	name = "House Fonts"
//	url = "https://fonts.example.com/webfonts.json?key={API_KEY}"
//	key = "..."
package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/sources"
)

// GetString returns a value from viper, falling back to the OS environment.
func GetString(key string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// LoadRepositories reads the repository list at path.
//
// A missing file yields no repositories. A file that is not valid TOML fails
// with *errors.ParseError. Entries that fail validation are skipped with a
// warning so one bad entry does not hide the others.
func LoadRepositories(fs afero.Fs, path string, logger *zerolog.Logger) ([]sources.Repository, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if !exists {
		return nil, nil
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewParseError("toml", path, err.Error(), err)
	}

	var entries []sources.Repository
	if err := v.UnmarshalKey("repo", &entries); err != nil {
		return nil, errors.NewParseError("toml", path, err.Error(), err)
	}

	repos := make([]sources.Repository, 0, len(entries))
	for _, repo := range entries {
		if err := repo.Validate(); err != nil {
			logger.Warn().Err(err).Str("file", path).Str("repository", repo.Name).Msg("Skipping invalid repository")
			continue
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// Repositories combines the built-in repositories with the user's list.
// User entries come after the defaults; one reusing a default's name replaces
// it in place.
func Repositories(defaults, user []sources.Repository) *sources.Repositories {
	set := sources.NewRepositories(defaults...)
	for _, repo := range user {
		set.Set(repo)
	}
	return set
}
