package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poolGuard/internal/config"
	"poolGuard/internal/replay"
	"poolGuard/internal/storage"
	"poolGuard/internal/storage/postgres"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReplay(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink storage.Storage
	var stateStore replay.StateStore

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		sink = store
		if cfg.StateFile != "" {
			stateStore = &replay.FileStateStore{Path: cfg.StateFile}
		} else {
			stateStore = &replay.DBStateStore{Store: store, Name: "replay"}
		}
	} else {
		if cfg.Out == "" {
			return fmt.Errorf("out path is required without pg-dsn")
		}
		sink = storage.NewJsonlStorage(cfg.Out)
		if cfg.StateFile != "" {
			stateStore = &replay.FileStateStore{Path: cfg.StateFile}
		}
	}

	runner := replay.NewRunner(replay.RunConfig{
		BatchSize:    cfg.BatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		StateStore:   stateStore,
	}, sink, logger)

	logger.Info("replay start",
		zap.String("input", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int("batch_size", cfg.BatchSize),
	)

	return runner.Run(ctx, cfg.In)
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
