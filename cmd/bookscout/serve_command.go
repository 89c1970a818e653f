package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"bookscout/internal/logging"
	"bookscout/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the discovery HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), ctx)
		},
	}
}

func runServer(cmdCtx context.Context, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := time.Now().UTC().Format("20060102T150405Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("bookscout-%s.log", runID))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock := flock.New(cfg.Paths.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another bookscout server instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	engine, store, generator, err := buildEngine(signalCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	// Non-fatal: the pipeline degrades to its deterministic fallbacks when
	// the generator is unreachable.
	healthCtx, healthCancel := context.WithTimeout(signalCtx, 10*time.Second)
	if err := generator.HealthCheck(healthCtx); err != nil {
		logger.Warn("generator health check failed", logging.Error(err))
	}
	healthCancel()

	srv, err := server.New(cfg, engine, logger, generator)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	if err := srv.Start(signalCtx); err != nil {
		return err
	}
	defer srv.Stop()

	fmt.Printf("bookscout listening on %s (logs: %s)\n", srv.Addr(), logPath)
	<-signalCtx.Done()
	logger.Info("bookscout server shutting down")
	return nil
}
