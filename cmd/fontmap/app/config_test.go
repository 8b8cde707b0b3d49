package app

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	t.Setenv("FONTMAP_CONFIG", "")
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if !config.UseDefaultRepos {
		t.Error("UseDefaultRepos should default to true")
	}
	if config.Concurrency < 1 {
		t.Errorf("Concurrency = %d, want a positive default", config.Concurrency)
	}
}

// TestConfig_EnvironmentVariables verifies FONTMAP_* and shared variables.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("FONTMAP_FORMAT", "yaml")
	t.Setenv("FONTMAP_DATA_DIR", "/srv/fontmap")
	t.Setenv("FONTMAP_USE_DEFAULT_REPOS", "false")
	t.Setenv("FONTMAP_GOOGLE_FONTS_KEY", "")
	t.Setenv("GOOGLE_FONTS_KEY", "k123")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", config.Format)
	}
	if config.DataDir != "/srv/fontmap" {
		t.Errorf("DataDir = %q, want /srv/fontmap", config.DataDir)
	}
	if config.UseDefaultRepos {
		t.Error("FONTMAP_USE_DEFAULT_REPOS not applied")
	}
	if config.GoogleFontsKey != "k123" {
		t.Errorf("GoogleFontsKey = %q, want k123", config.GoogleFontsKey)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
}

// TestLoadConfigFile reads an explicit YAML config file.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fontmap.yaml")
	content := "format: wide\nconcurrency: 8\nrepos_file: /etc/fontmap/repos.conf\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
	if config.Format != "wide" || config.Concurrency != 8 {
		t.Errorf("got format %q concurrency %d", config.Format, config.Concurrency)
	}
	if config.ReposFile != "/etc/fontmap/repos.conf" {
		t.Errorf("ReposFile = %q", config.ReposFile)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"valid", Config{Format: "yaml", Concurrency: 3, LogLevel: "warn", LogFormat: "console"}, false},
		{"bad format", Config{Format: "xml"}, true},
		{"bad level", Config{LogLevel: "loud"}, true},
		{"negative concurrency", Config{Concurrency: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ClientOptions(t *testing.T) {
	config := &Config{UseDefaultRepos: true}
	if got := len(config.ClientOptions()); got != 1 {
		t.Errorf("ClientOptions() = %d options, want 1", got)
	}

	config = &Config{DataDir: "/d", ReposFile: "/r", GoogleFontsKey: "k", Concurrency: 2}
	if got := len(config.ClientOptions()); got != 5 {
		t.Errorf("ClientOptions() = %d options, want 5", got)
	}
}
