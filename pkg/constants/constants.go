// Package constants provides shared constants used throughout the fontmap codebase.
// This includes timeouts, limits, file permissions, and the well-known repository
// definitions that ship with the tool.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for repository and font downloads
	DefaultHTTPTimeout = 30 * time.Second

	// RepositoryFetchTimeout bounds the refresh of a single repository catalog
	RepositoryFetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is how long graceful shutdown may take
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentDownloads is the default number of variant files fetched at once
	MaxConcurrentDownloads = 4

	// MaxConcurrentRepositories is the number of repositories refreshed at once
	MaxConcurrentRepositories = 4

	// MaxSearchResults caps fuzzy search output
	MaxSearchResults = 50
)

// Date and naming constants
const (
	// RepoDateLayout is the layout of a repository entry's lastModified field
	RepoDateLayout = "2006-01-02"

	// APIKeyPlaceholder is substituted with a repository key in URL templates
	APIKeyPlaceholder = "{API_KEY}"

	// AppName is used for the data directory and config file names
	AppName = "fontmap"

	// ReposFileName is the user repository list inside the data directory
	ReposFileName = "repos.conf"

	// ReposCacheDir is the directory inside the data directory holding cached payloads
	ReposCacheDir = "repos"

	// DefaultVariant names a face whose full name equals its family name
	DefaultVariant = "Regular"
)

// Well-known repositories
const (
	// GoogleFontsName is the name of the Google Fonts repository
	GoogleFontsName = "Google Fonts"

	// GoogleFontsURL is the Google Fonts webfonts API endpoint
	GoogleFontsURL = "https://www.googleapis.com/webfonts/v1/webfonts?key=" + APIKeyPlaceholder

	// GoogleFontsKeyEnv holds the Google Fonts API key
	GoogleFontsKeyEnv = "GOOGLE_FONTS_KEY"

	// OpenFontRepositoryName is the name of the Open Font Repository
	OpenFontRepositoryName = "Open Font Repository"

	// OpenFontRepositoryURL is where the Open Font Repository publishes its catalog
	OpenFontRepositoryURL = "https://raw.githubusercontent.com/GustavoPeredo/open-font-repository/main/fonts.json"
)
