package match

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/nnue"
)

type fakeRunner struct {
	resource *nnue.Resource
	outputs  []string
	errs     []error
	calls    int
	seen     []domain.Candidate
	args     [][]string
}

func (r *fakeRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	var i = r.calls
	r.calls++
	var c, err = r.resource.ReadRegion()
	if err != nil {
		return nil, err
	}
	r.seen = append(r.seen, c)
	r.args = append(r.args, args)
	if i < len(r.errs) && r.errs[i] != nil {
		return nil, r.errs[i]
	}
	return []byte(r.outputs[i]), nil
}

func newTestResource(t *testing.T) *nnue.Resource {
	var path = filepath.Join(t.TempDir(), "nn-tune.nnue")
	require.NoError(t, os.WriteFile(path, make([]byte, 64+nnue.RegionSize), 0644))
	return nnue.NewResource(path, 64)
}

func testCandidate() domain.Candidate {
	var c domain.Candidate
	c.Tune = domain.TuneArgs{641, 682, 176}
	c.Bias2[3] = -6683
	c.Weights2[100] = 51
	c.Bias3 = -193
	c.Weights3[0] = -27
	return c
}

func TestEvaluatePatchesBeforeRun(t *testing.T) {
	var resource = newTestResource(t)
	var runner = &fakeRunner{
		resource: resource,
		outputs:  []string{"Score of A vs B: 10 - 4 - 2 [0.688] 16\n"},
	}
	var e, err = NewEvaluator(DefaultConfig(), resource, runner)
	require.NoError(t, err)

	var c = testCandidate()
	result, err := e.Evaluate(context.Background(), &c)
	require.NoError(t, err)
	assert.InDelta(t, 0.3125, result.Fitness, 1e-12)
	assert.Equal(t, domain.MatchOutcome{Wins: 10, Losses: 4, Draws: 2}, result.Outcome)

	require.Len(t, runner.seen, 1)
	var expected = c
	expected.Tune = domain.TuneArgs{}
	assert.Equal(t, expected, runner.seen[0])
	assert.Contains(t, runner.args[0], "option.tune_array[2]=176")
	assert.Contains(t, runner.args[0], "option.EvalFile="+resource.Path)
}

func TestEvaluateParseErrorIsFatal(t *testing.T) {
	var resource = newTestResource(t)
	var runner = &fakeRunner{resource: resource, outputs: []string{"no result\n"}}
	var e, err = NewEvaluator(DefaultConfig(), resource, runner)
	require.NoError(t, err)

	var c = testCandidate()
	result, err := e.Evaluate(context.Background(), &c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEvaluationParse))
	assert.Equal(t, Result{}, result)
}

func TestEvaluateProcessErrorNoRetry(t *testing.T) {
	var resource = newTestResource(t)
	var runner = &fakeRunner{
		resource: resource,
		outputs:  []string{"", "Score of A vs B: 1 - 1 - 1\n"},
		errs:     []error{errors.Wrap(domain.ErrExternalProcess, "exit status 1")},
	}
	var e, err = NewEvaluator(DefaultConfig(), resource, runner)
	require.NoError(t, err)

	var c = testCandidate()
	_, err = e.Evaluate(context.Background(), &c)
	assert.True(t, errors.Is(err, domain.ErrExternalProcess))
	assert.Equal(t, 1, runner.calls)
}

func TestEvaluateProcessErrorRetried(t *testing.T) {
	var resource = newTestResource(t)
	var runner = &fakeRunner{
		resource: resource,
		outputs:  []string{"", "Score of A vs B: 1 - 1 - 14\n"},
		errs:     []error{errors.Wrap(domain.ErrExternalProcess, "exit status 1")},
	}
	var config = DefaultConfig()
	config.Retries = 1
	var e, err = NewEvaluator(config, resource, runner)
	require.NoError(t, err)

	var c = testCandidate()
	result, err := e.Evaluate(context.Background(), &c)
	require.NoError(t, err)
	assert.Equal(t, 2, runner.calls)
	assert.InDelta(t, 0.5, result.Fitness, 1e-12)
}

func TestNewEvaluatorRejectsZeroGames(t *testing.T) {
	var config = DefaultConfig()
	config.Games = 0
	var _, err = NewEvaluator(config, newTestResource(t), nil)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
