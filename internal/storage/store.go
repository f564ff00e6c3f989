package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

var ErrNotInitialized = errors.New("store is not initialized")

// Store keeps the evaluation history and checkpoints of tuning runs.
type Store interface {
	Init(ctx context.Context) error
	SaveEvaluation(ctx context.Context, record domain.EvaluationRecord) error
	ListEvaluations(ctx context.Context, runID string) ([]domain.EvaluationRecord, error)
	SaveCheckpoint(ctx context.Context, record domain.CheckpointRecord) error
	ListCheckpoints(ctx context.Context, runID string) ([]domain.CheckpointRecord, error)
	ListRuns(ctx context.Context) ([]string, error)
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, errors.Errorf("unsupported store backend: %v", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
