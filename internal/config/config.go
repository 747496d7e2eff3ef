// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable read into Config
const EnvPrefix = "RESUME_SECTIONS"

// Config holds settings read from a YAML/JSON/TOML file and the environment.
// All fields are optional; MergeWithDefaults fills the gaps.
type Config struct {
	Language      string `mapstructure:"language" json:"language,omitempty"`               // Default document language (BCP 47)
	APIKey        string `mapstructure:"api_key" json:"-"`                                 // Gemini API key
	Model         string `mapstructure:"model" json:"model,omitempty"`                     // Overrides the enhancement model
	MaxInputRunes int    `mapstructure:"max_input_runes" json:"max_input_runes,omitempty"` // Enhancement input ceiling
	DatabaseURL   string `mapstructure:"database_url" json:"database_url,omitempty"`       // PostgreSQL connection URL
	SQLitePath    string `mapstructure:"sqlite_path" json:"sqlite_path,omitempty"`         // SQLite file used when no database URL is set
	Port          int    `mapstructure:"port" json:"port,omitempty"`                       // HTTP port
	RateLimit     int    `mapstructure:"rate_limit" json:"rate_limit,omitempty"`           // Requests per minute per client; 0 uses the default
	LogJSON       bool   `mapstructure:"log_json" json:"log_json,omitempty"`
	Debug         bool   `mapstructure:"debug" json:"debug,omitempty"`
}

// Defaults returns the built-in settings
func Defaults() Config {
	return Config{
		Language:      "en",
		MaxInputRunes: 4000,
		SQLitePath:    "resume_sections.db",
		Port:          8080,
		RateLimit:     60,
	}
}

var keys = []string{
	"language", "api_key", "model", "max_input_runes", "database_url",
	"sqlite_path", "port", "rate_limit", "log_json", "debug",
}

// LoadConfig reads path (if non-empty) and the environment into a Config
func LoadConfig(path string) (*Config, error) {
	return Load(viper.New(), path)
}

// Load reads configuration through v, so callers can bind command-line flags first.
// Environment variables are named RESUME_SECTIONS_<KEY>; GEMINI_API_KEY and
// DATABASE_URL are honoured as well.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env for api_key: %w", err)
	}
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env for database_url: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("config error: 'database_url' must be a postgres:// URL")
	}

	if c.MaxInputRunes < 0 {
		return fmt.Errorf("config error: 'max_input_runes' must be non-negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("config error: invalid 'language' %q: %w", c.Language, err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// The SQLite path is only filled in when no database URL is configured.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		if result.DatabaseURL == "" {
			result.SQLitePath = defaults.SQLitePath
		}
	}

	if result.MaxInputRunes == 0 {
		result.MaxInputRunes = defaults.MaxInputRunes
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (flags and environment always win for bools)

	return result
}

// UsesPostgres reports whether documents are stored in PostgreSQL rather than SQLite
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}
