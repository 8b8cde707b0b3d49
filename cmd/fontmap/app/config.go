package app

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/fontmap"
	"github.com/agentstation/fontmap/pkg/constants"
	"github.com/agentstation/fontmap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Fontmap configuration
	DataDir         string
	ReposFile       string
	UseDefaultRepos bool
	GoogleFontsKey  string
	Concurrency     int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. FONTMAP_* environment variables
// 3. .env and .env.local files
// 4. Config file (~/.fontmap.yaml, or FONTMAP_CONFIG)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.AppName)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Unprefixed names are honored for the keys other tools share.
	_ = v.BindEnv("google_fonts_key", "FONTMAP_GOOGLE_FONTS_KEY", constants.GoogleFontsKeyEnv)
	_ = v.BindEnv("log_level", "FONTMAP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_format", "FONTMAP_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log_output", "FONTMAP_LOG_OUTPUT", "LOG_OUTPUT")

	v.SetDefault("use_default_repos", true)
	v.SetDefault("concurrency", constants.MaxConcurrentDownloads)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + constants.AppName)
		// A missing config file is fine.
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:         v.GetString("data_dir"),
		ReposFile:       v.GetString("repos_file"),
		UseDefaultRepos: v.GetBool("use_default_repos"),
		GoogleFontsKey:  v.GetString("google_fonts_key"),
		Concurrency:     v.GetInt("concurrency"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.In("table", "json", "yaml", "wide")),
		validation.Field(&c.Concurrency, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("auto", "json", "console", "pretty")),
	)
	if err != nil {
		return errors.WrapValidation("config", err)
	}
	return nil
}

// ClientOptions translates the configuration into fontmap client options.
func (c *Config) ClientOptions() []fontmap.Option {
	opts := []fontmap.Option{
		fontmap.WithDefaultRepositories(c.UseDefaultRepos),
	}
	if c.DataDir != "" {
		opts = append(opts, fontmap.WithDataDir(c.DataDir))
	}
	if c.ReposFile != "" {
		opts = append(opts, fontmap.WithReposFile(c.ReposFile))
	}
	if c.GoogleFontsKey != "" {
		opts = append(opts, fontmap.WithGoogleFontsKey(c.GoogleFontsKey))
	}
	if c.Concurrency > 0 {
		opts = append(opts, fontmap.WithConcurrency(c.Concurrency))
	}
	return opts
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
