package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/godshot/godshot/internal/core/api"
	"github.com/godshot/godshot/internal/core/auth"
	"github.com/godshot/godshot/internal/core/config"
	"github.com/godshot/godshot/internal/core/db"
	"github.com/godshot/godshot/internal/core/server"
	"github.com/godshot/godshot/internal/naming"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "HTTP server host")
	serveCmd.Flags().Int("port", 8000, "HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Port = port
	}

	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	status, err := db.MigrateStatus(database)
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}
	for _, m := range status {
		if !m.Applied {
			return fmt.Errorf("migration %s not applied - run 'godshot migrate up' first", m.ID)
		}
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	// Admin routes are optional: without secrets they stay unmounted.
	secrets, err := config.AdminSecrets()
	if err != nil {
		return fmt.Errorf("failed to load admin secrets: %w", err)
	}
	var authenticator *auth.Authenticator
	if len(secrets) > 0 {
		authenticator = auth.NewAuthenticator(secrets)
	} else {
		log.Warn().Msg("no admin secrets configured, admin routes disabled")
	}

	namer := naming.New(naming.NewSQLStore(queries), naming.Config{
		CacheTTL:         cfg.NamingCacheTTL,
		Timeout:          cfg.NamingTimeout,
		DefaultTimezone:  cfg.NamingTimezone,
		AuditCapacity:    cfg.NamingAuditSize,
		MemoryLimitBytes: cfg.NamingMemoryLimit,
	}, log)

	service, err := api.NewService(queries, namer, log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	httpServer, err := server.NewHTTPServer(cfg, service, authenticator, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info().Str("version", Version).Str("host", cfg.Host).Int("port", cfg.Port).Msg("starting godshot")
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start(context.Background())
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Info().Msg("shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}
