package storage

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/nntune/internal/domain"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.Errorf("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, r domain.EvaluationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO evaluations (run_id, iteration, tune0, tune1, tune2,
			wins, losses, draws, fitness, duration_ns, created_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Iteration, r.Tune[0], r.Tune[1], r.Tune[2],
		r.Outcome.Wins, r.Outcome.Losses, r.Outcome.Draws, r.Fitness,
		int64(r.Duration), r.Time.UnixNano())
	return err
}

func (s *SQLiteStore) ListEvaluations(ctx context.Context, runID string) ([]domain.EvaluationRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT iteration, tune0, tune1, tune2, wins, losses, draws, fitness, duration_ns, created_ns
		FROM evaluations WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EvaluationRecord
	for rows.Next() {
		var r = domain.EvaluationRecord{RunID: runID}
		var duration, created int64
		err := rows.Scan(&r.Iteration, &r.Tune[0], &r.Tune[1], &r.Tune[2],
			&r.Outcome.Wins, &r.Outcome.Losses, &r.Outcome.Draws, &r.Fitness,
			&duration, &created)
		if err != nil {
			return nil, err
		}
		r.Duration = time.Duration(duration)
		r.Time = time.Unix(0, created)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, r domain.CheckpointRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO checkpoints (run_id, iteration, tune0, tune1, tune2, loss, path, created_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Iteration, r.Tune[0], r.Tune[1], r.Tune[2], r.Loss, r.Path, r.Time.UnixNano())
	return err
}

func (s *SQLiteStore) ListCheckpoints(ctx context.Context, runID string) ([]domain.CheckpointRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT iteration, tune0, tune1, tune2, loss, path, created_ns
		FROM checkpoints WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CheckpointRecord
	for rows.Next() {
		var r = domain.CheckpointRecord{RunID: runID}
		var created int64
		err := rows.Scan(&r.Iteration, &r.Tune[0], &r.Tune[1], &r.Tune[2], &r.Loss, &r.Path, &created)
		if err != nil {
			return nil, err
		}
		r.Time = time.Unix(0, created)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT run_id FROM evaluations ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, err
		}
		result = append(result, runID)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			tune0 INTEGER NOT NULL,
			tune1 INTEGER NOT NULL,
			tune2 INTEGER NOT NULL,
			wins INTEGER NOT NULL,
			losses INTEGER NOT NULL,
			draws INTEGER NOT NULL,
			fitness REAL NOT NULL,
			duration_ns INTEGER NOT NULL,
			created_ns INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS evaluations_run ON evaluations (run_id);
		CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			tune0 INTEGER NOT NULL,
			tune1 INTEGER NOT NULL,
			tune2 INTEGER NOT NULL,
			loss REAL NOT NULL,
			path TEXT NOT NULL,
			created_ns INTEGER NOT NULL
		);
	`)
	return err
}
