package domain

import (
	"time"

	"github.com/pkg/errors"
)

const (
	TuneSize     = 3
	Bias2Size    = 32
	Weights2Size = 32 * 32
	Weights3Size = 32
)

var (
	ErrConfiguration   = errors.New("configuration error")
	ErrPatch           = errors.New("patch error")
	ErrEvaluationParse = errors.New("evaluation parse error")
	ErrExternalProcess = errors.New("external process error")
)

// TuneArgs are passed to the engine as runtime options, not written into the network.
type TuneArgs [TuneSize]int

// Candidate is one point of the search space: the scalar knobs and
// the second and third layers of the network.
type Candidate struct {
	Tune     TuneArgs
	Bias2    [Bias2Size]int32
	Weights2 [Weights2Size]int8
	Bias3    int32
	Weights3 [Weights3Size]int8
}

type MatchOutcome struct {
	Wins   int
	Losses int
	Draws  int
}

func (o MatchOutcome) Games() int {
	return o.Wins + o.Losses + o.Draws
}

// Fitness is minimized. games is the configured game count of the match,
// not the number of games reported by the tool.
func (o MatchOutcome) Fitness(games int) float64 {
	var score = (float64(o.Wins) + 0.5*float64(o.Draws)) / float64(games)
	return 1.0 - score
}

type Recommendation struct {
	Candidate   Candidate
	Loss        float64
	Evaluations int
}

type EvaluationRecord struct {
	RunID     string
	Iteration int
	Tune      TuneArgs
	Outcome   MatchOutcome
	Fitness   float64
	Duration  time.Duration
	Time      time.Time
}

type CheckpointRecord struct {
	RunID     string
	Iteration int
	Tune      TuneArgs
	Loss      float64
	Path      string
	Time      time.Time
}
