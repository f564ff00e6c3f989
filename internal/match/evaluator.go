package match

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/nnue"
)

type IRunner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

type Result struct {
	Outcome  domain.MatchOutcome
	Fitness  float64
	Duration time.Duration
}

// Evaluator patches the shared network with a candidate and plays one match with it.
type Evaluator struct {
	config   Config
	resource *nnue.Resource
	runner   IRunner
}

func NewEvaluator(config Config, resource *nnue.Resource, runner IRunner) (*Evaluator, error) {
	if config.Games <= 0 {
		return nil, errors.Wrapf(domain.ErrConfiguration, "games must be positive, got %v", config.Games)
	}
	return &Evaluator{
		config:   config,
		resource: resource,
		runner:   runner,
	}, nil
}

func (e *Evaluator) Games() int {
	return e.config.Games
}

// Evaluate never returns a fitness together with an error.
func (e *Evaluator) Evaluate(ctx context.Context, c *domain.Candidate) (Result, error) {
	var result Result
	var err = e.resource.WithLock(func() error {
		var start = time.Now()
		if err := e.resource.Patch(c); err != nil {
			return err
		}
		var args = e.config.Args(c.Tune, e.resource.Path)
		stdout, err := e.run(ctx, args)
		if err != nil {
			return err
		}
		outcome, err := ParseOutcome(stdout)
		if err != nil {
			return err
		}
		result = Result{
			Outcome:  outcome,
			Fitness:  outcome.Fitness(e.config.Games),
			Duration: time.Since(start),
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	var stat = ComputeStat(result.Outcome.Wins, result.Outcome.Losses, result.Outcome.Draws)
	log.Info().
		Ints("tune", c.Tune[:]).
		Int("wins", result.Outcome.Wins).
		Int("losses", result.Outcome.Losses).
		Int("draws", result.Outcome.Draws).
		Float64("fitness", result.Fitness).
		Float64("elo", stat.EloDifference).
		Dur("duration", result.Duration).
		Msg("match finished")
	return result, nil
}

func (e *Evaluator) run(ctx context.Context, args []string) ([]byte, error) {
	var attempt = 0
	for {
		stdout, err := e.runner.Run(ctx, args)
		if err == nil {
			return stdout, nil
		}
		if attempt >= e.config.Retries || !errors.Is(err, domain.ErrExternalProcess) || ctx.Err() != nil {
			return nil, err
		}
		attempt++
		log.Warn().Err(err).Int("attempt", attempt).Msg("match failed, retrying")
	}
}
