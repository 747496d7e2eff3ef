// Package main provides the resume_sections CLI: section detection, structured
// editing, enhancement and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/config"
	"github.com/jonathan/resume-sections/internal/logger"
)

var (
	configPath string
	settings   = viper.New()
)

var rootCmd = &cobra.Command{
	Use:          "resume_sections",
	Short:        "Résumé section detection and editing",
	Long:         "resume_sections slices plain-text résumés into canonical sections, edits structured sections through form records and serves documents over a REST API.",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML/JSON/TOML config file")
	flags.String("language", "", "Default document language (BCP 47)")
	flags.Bool("json", false, "Write logs as JSON")
	flags.Bool("debug", false, "Enable debug logging")

	mustBind("language", "language")
	mustBind("log_json", "json")
	mustBind("debug", "debug")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func mustBind(key, flag string) {
	if err := settings.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
	}
}

// loadSettings reads flags, environment and the optional config file, then builds the logger
func loadSettings() (config.Config, *zap.Logger, error) {
	loaded, err := config.Load(settings, configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	cfg := loaded.MergeWithDefaults(config.Defaults())

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
