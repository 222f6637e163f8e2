package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "validator",
		Short:        "Liquidity pool transition validator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a single recorded transition",
		RunE:  runValidate,
	}

	validateCmd.Flags().String("in", "", "transition JSON file")
	validateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(validateCmd)

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-evaluate a stream of recorded transitions",
		RunE:  runReplay,
	}

	replayCmd.Flags().String("in", "", "input transitions JSONL")
	replayCmd.Flags().String("out", "./data/verdicts.jsonl", "output verdicts JSONL (ignored when pg-dsn is set)")
	replayCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	replayCmd.Flags().Int("batch-size", 1000, "batch size for sink writes")
	replayCmd.Flags().Int("max-retries", 5, "maximum retry attempts for sink writes")
	replayCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	replayCmd.Flags().String("state-file", "", "optional local state file for progress tracking")
	replayCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(replayCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
