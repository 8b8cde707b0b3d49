// Package paths knows where fontmap keeps its data and where each operating
// system keeps fonts.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agentstation/fontmap/pkg/constants"
)

// Env is the part of the process environment path resolution depends on.
type Env struct {
	GOOS   string
	Home   string
	Getenv func(string) string
}

// Current returns the environment of the running process.
func Current() Env {
	home, _ := os.UserHomeDir()
	return Env{GOOS: runtime.GOOS, Home: home, Getenv: os.Getenv}
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// Expand replaces a leading ~ with the home directory.
func (e Env) Expand(path string) string {
	if !strings.HasPrefix(path, "~") || e.Home == "" {
		return path
	}
	if path == "~" {
		return e.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(e.Home, path[2:])
	}
	return path
}

// DataDir is where repository caches and repos.conf live:
// $XDG_DATA_HOME/fontmap, or ~/.local/share/fontmap.
func (e Env) DataDir() string {
	if xdg := e.getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	if e.GOOS == "windows" {
		if local := e.getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, constants.AppName)
		}
	}
	return filepath.Join(e.Home, ".local", "share", constants.AppName)
}

// UserFontDir is where per-user installs go.
func (e Env) UserFontDir() string {
	switch e.GOOS {
	case "darwin":
		return filepath.Join(e.Home, "Library", "Fonts")
	case "windows":
		local := e.getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(e.Home, "AppData", "Local")
		}
		return filepath.Join(local, "Microsoft", "Windows", "Fonts")
	default:
		if xdg := e.getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "fonts")
		}
		return filepath.Join(e.Home, ".local", "share", "fonts")
	}
}

// SystemFontDir is where system-wide installs go.
func (e Env) SystemFontDir() string {
	switch e.GOOS {
	case "darwin":
		return "/Library/Fonts"
	case "windows":
		windir := e.getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return filepath.Join(windir, "Fonts")
	default:
		return "/usr/local/share/fonts"
	}
}

// ScanDirs lists every directory searched for installed fonts, user
// directories first.
func (e Env) ScanDirs() []string {
	dirs := []string{e.UserFontDir()}
	switch e.GOOS {
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
	case "windows":
		dirs = append(dirs, e.SystemFontDir())
	default:
		dirs = append(dirs, filepath.Join(e.Home, ".fonts"), "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}

// ReposFile is the user repository list inside dataDir.
func ReposFile(dataDir string) string {
	return filepath.Join(dataDir, constants.ReposFileName)
}

// CacheDir holds cached repository payloads inside dataDir.
func CacheDir(dataDir string) string {
	return filepath.Join(dataDir, constants.ReposCacheDir)
}
