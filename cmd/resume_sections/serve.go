package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/config"
	"github.com/jonathan/resume-sections/internal/db"
	"github.com/jonathan/resume-sections/internal/enhance"
	"github.com/jonathan/resume-sections/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that stores documents in PostgreSQL (when a database URL is configured) or SQLite.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("database-url", "", "PostgreSQL connection URL")
	serveCmd.Flags().String("sqlite", "", "SQLite database file (used when no database URL is set)")

	for key, flag := range map[string]string{"port": "port", "database_url": "database-url", "sqlite_path": "sqlite"} {
		if err := settings.BindPFlag(key, serveCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var svc *enhance.Service
	if cfg.APIKey != "" {
		s, closeFn, err := newEnhanceService(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeFn()
		svc = s
	} else {
		log.Warn("GEMINI_API_KEY not set, enhancement endpoint disabled")
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Language:  cfg.Language,
		RateLimit: cfg.RateLimit,
	}, store, svc, log)
	return srv.Start(ctx)
}

// openStore picks PostgreSQL when a database URL is configured, otherwise SQLite
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (db.Store, error) {
	if cfg.UsesPostgres() {
		log.Info("using postgres store")
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	log.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
	store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
