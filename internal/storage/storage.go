package storage

import (
	"context"

	"poolGuard/internal/model"
)

// Storage defines a sink for verdict records.
type Storage interface {
	PutVerdictBatch(ctx context.Context, records []model.VerdictRecord) error
}
