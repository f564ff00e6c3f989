package tuning

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/nntune/internal/codec"
	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/match"
	"github.com/ChizhovVadim/nntune/internal/optimizer"
	"github.com/ChizhovVadim/nntune/internal/storage"
)

type State int

const (
	Seeding State = iota
	Running
	Finalizing
	Done
)

func (s State) String() string {
	switch s {
	case Seeding:
		return "seeding"
	case Running:
		return "running"
	case Finalizing:
		return "finalizing"
	case Done:
		return "done"
	}
	return "unknown"
}

type IEvaluator interface {
	Evaluate(ctx context.Context, c *domain.Candidate) (match.Result, error)
}

type Observer interface {
	ObserveEvaluation(outcome domain.MatchOutcome, fitness float64, duration time.Duration)
	ObserveCheckpoint(loss float64)
}

// Loop runs ask -> patch -> match -> tell for the optimizer budget.
// Iterations are strictly sequential: every match reads the same network file.
type Loop struct {
	Optimizer          optimizer.Optimizer
	Codec              *codec.Codec
	Evaluator          IEvaluator
	Checkpointer       *Checkpointer
	CheckpointInterval int
	History            storage.Store
	Observer           Observer
	RunID              string
	// OnIteration is called after every completed iteration.
	OnIteration func(iteration int, result match.Result)

	state State
}

func (l *Loop) State() State {
	return l.state
}

// Run returns the final recommendation. Any evaluation error stops the
// loop: a fabricated fitness would corrupt the optimizer irreversibly.
func (l *Loop) Run(ctx context.Context) (domain.Recommendation, error) {
	if l.CheckpointInterval <= 0 {
		return domain.Recommendation{}, errors.Wrapf(domain.ErrConfiguration,
			"checkpoint interval must be positive, got %v", l.CheckpointInterval)
	}

	l.state = Seeding
	if err := l.Optimizer.Suggest(l.Codec.FromDomain(codec.SeedCandidate())); err != nil {
		return domain.Recommendation{}, errors.Wrap(err, "seed optimizer")
	}

	l.state = Running
	var budget = l.Optimizer.Budget()
	log.Info().Int("budget", budget).Str("run", l.RunID).Msg("tuning started")
	for i := 1; i <= budget; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Recommendation{}, err
		}
		if err := l.step(ctx, i, budget); err != nil {
			return domain.Recommendation{}, errors.Wrapf(err, "iteration %v", i)
		}
		if i%l.CheckpointInterval == 0 {
			if _, _, err := l.Checkpointer.Checkpoint(ctx, l.Optimizer, i); err != nil {
				return domain.Recommendation{}, err
			}
		}
	}

	l.state = Finalizing
	rec, path, err := l.Checkpointer.Checkpoint(ctx, l.Optimizer, budget)
	if err != nil {
		return domain.Recommendation{}, err
	}
	// leaves the shared network describing the recommendation
	result, err := l.Evaluator.Evaluate(ctx, &rec.Candidate)
	if err != nil {
		return domain.Recommendation{}, errors.Wrap(err, "final evaluation")
	}
	log.Info().
		Float64("loss", rec.Loss).
		Float64("fitness", result.Fitness).
		Ints("tune", rec.Candidate.Tune[:]).
		Str("path", path).
		Msg("tuning finished")

	l.state = Done
	return rec, nil
}

func (l *Loop) step(ctx context.Context, iteration, budget int) error {
	var x = l.Optimizer.Ask()
	cand, err := l.Codec.ToDomain(x)
	if err != nil {
		return err
	}
	log.Debug().Int("iteration", iteration).Int("budget", budget).Ints("tune", cand.Tune[:]).Msg("step")

	result, err := l.Evaluator.Evaluate(ctx, &cand)
	if err != nil {
		return err
	}
	if err := l.Optimizer.Tell(x, result.Fitness); err != nil {
		return err
	}

	if l.History != nil {
		err = l.History.SaveEvaluation(ctx, domain.EvaluationRecord{
			RunID:     l.RunID,
			Iteration: iteration,
			Tune:      cand.Tune,
			Outcome:   result.Outcome,
			Fitness:   result.Fitness,
			Duration:  result.Duration,
			Time:      time.Now(),
		})
		if err != nil {
			return errors.Wrap(err, "save evaluation")
		}
	}
	if l.Observer != nil {
		l.Observer.ObserveEvaluation(result.Outcome, result.Fitness, result.Duration)
	}
	if l.OnIteration != nil {
		l.OnIteration(iteration, result)
	}
	return nil
}
