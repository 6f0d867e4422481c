package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/log"
	"github.com/seoscan/seoscan/internal/pipeline"
	"github.com/seoscan/seoscan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the SEOScan HTTP API",
		Long: `Serve starts the SEOScan HTTP API.

Endpoints:
  POST /audit            Start an audit for a root URL
  GET  /audit/{audit_id} Get an audit's state and results
  GET  /health           Liveness check

Audits run asynchronously: POST /audit returns an audit ID immediately
and clients poll GET /audit/{audit_id} until the status turns completed
or failed.

Examples:
  # Serve on the default address, persisting audits to the XDG data dir
  seoscan serve

  # Serve on a custom address with a custom database directory
  seoscan serve --addr :9090 --db /var/lib/seoscan

  # Keep audits in memory only
  seoscan serve --memory`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"HTTP listen address")
	cmd.Flags().String("db", config.XDGDataDir(),
		"Directory for the SQLite audit database")
	cmd.Flags().Bool("memory", false,
		"Keep audits in memory instead of the SQLite database")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoscan in current or home directory)")

	// Crawl behavior flags applied to every audit the API starts
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum concurrent page fetches within one audit")
	cmd.Flags().Float64("rate-limit", 0,
		"Maximum page fetches per second (0 disables pacing)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, cfg, logger)
}

// buildServeConfig creates a Config from the config file and cobra flags.
// Precedence: defaults, then config file values, then explicit flags.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = config.XDGDataDir()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("addr") {
		if cfg.ListenAddr, err = cmd.Flags().GetString("addr"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("db") {
		if cfg.DBDir, err = cmd.Flags().GetString("db"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("rate-limit") {
		if cfg.RateLimit, err = cmd.Flags().GetFloat64("rate-limit"); err != nil {
			return nil, err
		}
	}

	// --memory wins over any database directory from flags or the
	// config file.
	memory, err := cmd.Flags().GetBool("memory")
	if err != nil {
		return nil, err
	}
	if memory {
		cfg.DBDir = ""
	}

	return cfg, nil
}

// newAuditStore opens the audit store selected by the configuration.
// The returned close function is a no-op for the in-memory store.
func newAuditStore(cfg *config.Config, logger *slog.Logger) (audit.Store, func(), error) {
	if cfg.DBDir == "" {
		logger.Info("using in-memory audit store")
		return audit.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", "dir", cfg.DBDir)

	return db, func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}, nil
}

// runServer runs the HTTP API until the context is cancelled or the
// listener fails. On shutdown it waits for running audits to reach a
// terminal state so no audit is left stuck in running.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := newAuditStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	orch := audit.New(store,
		func() *pipeline.Pipeline { return createPipeline(cfg, logger) },
		audit.WithLogger(logger),
	)

	handler, err := server.New(server.Config{
		Orchestrator: orch,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("serving HTTP API", "addr", cfg.ListenAddr)
	fmt.Printf("SEOScan API listening on %s\n", cfg.ListenAddr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	// Detached audits keep running after the listener closes; wait so
	// their final state still reaches the store before it closes.
	orch.Wait()

	return nil
}
