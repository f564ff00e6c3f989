package tuning

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/nntune/internal/codec"
	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/nnue"
	"github.com/ChizhovVadim/nntune/internal/optimizer"
	"github.com/ChizhovVadim/nntune/internal/storage"
)

const DefaultSnapshotPattern = "nn-recom-%d-%d-%d.nxxx"

// SnapshotName embeds the three tune values in order. Two recommendations
// with equal tune values share a name and the later one wins.
func SnapshotName(pattern string, tune domain.TuneArgs) string {
	return fmt.Sprintf(pattern, tune[0], tune[1], tune[2])
}

type Checkpointer struct {
	Resource *nnue.Resource
	Codec    *codec.Codec
	Dir      string
	Pattern  string
	History  storage.Store
	Observer Observer
	RunID    string
}

// Checkpoint writes the current recommendation into the shared resource
// and persists a copy of it.
func (c *Checkpointer) Checkpoint(ctx context.Context, opt optimizer.Optimizer, iteration int) (domain.Recommendation, string, error) {
	rec, err := recommend(opt, c.Codec)
	if err != nil {
		return domain.Recommendation{}, "", err
	}
	var pattern = c.Pattern
	if pattern == "" {
		pattern = DefaultSnapshotPattern
	}
	var path = filepath.Join(c.Dir, SnapshotName(pattern, rec.Candidate.Tune))
	err = c.Resource.WithLock(func() error {
		if err := c.Resource.Patch(&rec.Candidate); err != nil {
			return err
		}
		if err := c.Resource.CopyTo(path); err != nil {
			return errors.Wrapf(err, "save snapshot %v", path)
		}
		return nil
	})
	if err != nil {
		return domain.Recommendation{}, "", err
	}
	log.Info().
		Int("iteration", iteration).
		Float64("loss", rec.Loss).
		Int("evaluations", rec.Evaluations).
		Ints("tune", rec.Candidate.Tune[:]).
		Str("path", path).
		Msg("checkpoint")

	if c.History != nil {
		err = c.History.SaveCheckpoint(ctx, domain.CheckpointRecord{
			RunID:     c.RunID,
			Iteration: iteration,
			Tune:      rec.Candidate.Tune,
			Loss:      rec.Loss,
			Path:      path,
			Time:      time.Now(),
		})
		if err != nil {
			return domain.Recommendation{}, "", errors.Wrap(err, "save checkpoint record")
		}
	}
	if c.Observer != nil {
		c.Observer.ObserveCheckpoint(rec.Loss)
	}
	return rec, path, nil
}

func recommend(opt optimizer.Optimizer, cdc *codec.Codec) (domain.Recommendation, error) {
	var r = opt.Recommend()
	cand, err := cdc.ToDomain(r.X)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return domain.Recommendation{
		Candidate:   cand,
		Loss:        r.Loss,
		Evaluations: r.Evaluations,
	}, nil
}
