package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"poolGuard/internal/codec"
	"poolGuard/internal/model"
	"poolGuard/internal/pool"
	"poolGuard/internal/storage"
)

// maxLineBytes bounds a single transition line; views larger than this are
// rejected by the scanner rather than buffered without limit.
const maxLineBytes = 16 * 1024 * 1024

// RunConfig holds runtime settings for a replay.
type RunConfig struct {
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
	StateStore   StateStore
}

// Runner re-evaluates a stream of recorded transitions and writes the
// verdicts to storage. Evaluation itself is pure, so replaying the same
// stream always produces the same verdicts; only the sink writes retry.
type Runner struct {
	cfg     RunConfig
	storage storage.Storage
	logger  *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, storageSink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		storage: storageSink,
		logger:  logger,
	}
}

// Run reads transition records from the JSONL file at inputPath, evaluates
// each one, and writes verdict records in batches.
func (r *Runner) Run(ctx context.Context, inputPath string) error {
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if inputPath == "" {
		return fmt.Errorf("input path is required")
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var resumeFrom uint64
	if r.cfg.StateStore != nil {
		seq, ok, err := r.cfg.StateStore.Load(ctx)
		if err != nil {
			return err
		}
		if ok {
			resumeFrom = seq
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", seq))
		}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	batch := make([]model.VerdictRecord, 0, r.cfg.BatchSize)
	var lastSeq uint64
	var lineNo, evaluated, accepted int

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec model.TransitionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("parse transition line %d: %w", lineNo, err)
		}
		if resumeFrom > 0 && rec.Seq <= resumeFrom {
			continue
		}

		verdict := EvaluateRecord(rec)
		evaluated++
		if verdict.Accepted {
			accepted++
		}

		batch = append(batch, buildVerdictRecord(rec, verdict))
		lastSeq = rec.Seq

		if len(batch) >= r.cfg.BatchSize {
			if err := r.flush(ctx, batch, lastSeq); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if len(batch) > 0 {
		if err := r.flush(ctx, batch, lastSeq); err != nil {
			return err
		}
	}

	r.logger.Info("replay complete",
		zap.Int("evaluated", evaluated),
		zap.Int("accepted", accepted),
		zap.Int("rejected", evaluated-accepted),
	)
	return nil
}

// EvaluateRecord runs one recorded transition through the validator. A
// datum that fails to decode means the record never had a valid pool state
// to begin with, which rejects structurally.
func EvaluateRecord(rec model.TransitionRecord) model.Verdict {
	old, err := codec.DecodePoolState(rec.OldDatum)
	if err != nil {
		return model.Reject(model.ReasonStructuralMismatch, fmt.Sprintf("old datum: %v", err))
	}
	return pool.Evaluate(old, rec.Action, rec.SelfRef, rec.OwnScript, rec.View)
}

func (r *Runner) flush(ctx context.Context, batch []model.VerdictRecord, lastSeq uint64) error {
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		err := r.storage.PutVerdictBatch(ctx, batch)
		if err != nil {
			r.logger.Warn("store verdicts failed", zap.Error(err), zap.Int("batch", len(batch)))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("store verdicts: %w", err)
	}

	if r.cfg.StateStore != nil {
		if err := r.cfg.StateStore.Save(ctx, lastSeq); err != nil {
			return err
		}
	}

	r.logger.Info("batch complete", zap.Int("verdicts", len(batch)), zap.Uint64("last_seq", lastSeq))
	return nil
}

func buildVerdictRecord(rec model.TransitionRecord, verdict model.Verdict) model.VerdictRecord {
	return model.VerdictRecord{
		Seq:         rec.Seq,
		Script:      rec.OwnScript.Hex(),
		ActionKind:  string(rec.Action.Kind),
		Accepted:    verdict.Accepted,
		Reason:      string(verdict.Reason),
		Detail:      verdict.Detail,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
