package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	evaluations map[string][]domain.EvaluationRecord
	checkpoints map[string][]domain.CheckpointRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.evaluations = make(map[string][]domain.EvaluationRecord)
	s.checkpoints = make(map[string][]domain.CheckpointRecord)
	return nil
}

func (s *MemoryStore) SaveEvaluation(_ context.Context, record domain.EvaluationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	s.evaluations[record.RunID] = append(s.evaluations[record.RunID], record)
	return nil
}

func (s *MemoryStore) ListEvaluations(_ context.Context, runID string) ([]domain.EvaluationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return append([]domain.EvaluationRecord(nil), s.evaluations[runID]...), nil
}

func (s *MemoryStore) SaveCheckpoint(_ context.Context, record domain.CheckpointRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	s.checkpoints[record.RunID] = append(s.checkpoints[record.RunID], record)
	return nil
}

func (s *MemoryStore) ListCheckpoints(_ context.Context, runID string) ([]domain.CheckpointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return append([]domain.CheckpointRecord(nil), s.checkpoints[runID]...), nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	var runs []string
	for runID := range s.evaluations {
		runs = append(runs, runID)
	}
	sort.Strings(runs)
	return runs, nil
}
