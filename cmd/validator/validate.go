package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poolGuard/internal/config"
	"poolGuard/internal/model"
	"poolGuard/internal/replay"
)

func runValidate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadValidate(cfgFile, cmd.Flags())
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

	data, err := os.ReadFile(cfg.In)
	if err != nil {
		return fmt.Errorf("read transition: %w", err)
	}

	var rec model.TransitionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse transition: %w", err)
	}

	verdict := replay.EvaluateRecord(rec)

	logger.Info("transition evaluated",
		zap.Uint64("seq", rec.Seq),
		zap.String("script", rec.OwnScript.Hex()),
		zap.String("action", string(rec.Action.Kind)),
		zap.Bool("accepted", verdict.Accepted),
		zap.String("reason", string(verdict.Reason)),
	)

	out, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
