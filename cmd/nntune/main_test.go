package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/nntune/internal/codec"
	"github.com/ChizhovVadim/nntune/internal/config"
	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/nnue"
)

func withConfig(t *testing.T, data string) {
	var path = filepath.Join(t.TempDir(), "nntune.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	var saved = configPath
	configPath = path
	t.Cleanup(func() {
		configPath = saved
	})
}

func TestPatchCommandWritesSeed(t *testing.T) {
	var resource = filepath.Join(t.TempDir(), "nn.nnue")
	require.NoError(t, os.WriteFile(resource, make([]byte, 32+nnue.RegionSize), 0644))
	withConfig(t, "offset: 32\nresource: "+resource+"\n")

	var cmd = newPatchCommand()
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	var region, err = nnue.NewResource(resource, 32).ReadRegion()
	require.NoError(t, err)
	var expected = codec.SeedCandidate()
	expected.Tune = domain.TuneArgs{}
	assert.Equal(t, expected, region)
}

func TestPatchCommandShortResource(t *testing.T) {
	var resource = filepath.Join(t.TempDir(), "nn.nnue")
	require.NoError(t, os.WriteFile(resource, make([]byte, 10), 0644))
	withConfig(t, "offset: 32\nresource: "+resource+"\n")

	var cmd = newPatchCommand()
	cmd.SetArgs(nil)
	var err = cmd.Execute()
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestScoreCommandWithoutScoreLine(t *testing.T) {
	withConfig(t, "budget: 10\n")
	var output = filepath.Join(t.TempDir(), "match.txt")
	require.NoError(t, os.WriteFile(output, []byte("Started game 1 of 16\n"), 0644))

	var cmd = newScoreCommand()
	cmd.SetArgs([]string{output})
	var err = cmd.Execute()
	assert.True(t, errors.Is(err, domain.ErrEvaluationParse))
}

func TestScoreCommand(t *testing.T) {
	withConfig(t, "budget: 10\n")
	var output = filepath.Join(t.TempDir(), "match.txt")
	require.NoError(t, os.WriteFile(output, []byte("Score of A vs B: 10 - 4 - 2  [0.688] 16\n"), 0644))

	var cmd = newScoreCommand()
	cmd.SetArgs([]string{output})
	assert.NoError(t, cmd.Execute())
}

func TestRunFlagsExpandPaths(t *testing.T) {
	var cfg, err = config.Load("")
	require.NoError(t, err)

	var flags = runFlags{budget: 7, resource: "~/nn.nxxx", history: "~/runs/nntune.db"}
	require.NoError(t, flags.apply(&cfg))
	assert.Equal(t, 7, cfg.Budget)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.False(t, strings.HasPrefix(cfg.Resource, "~"))
	assert.True(t, strings.HasSuffix(cfg.Resource, "nn.nxxx"))
	assert.False(t, strings.HasPrefix(cfg.History.Path, "~"))
	assert.True(t, strings.HasSuffix(cfg.History.Path, filepath.Join("runs", "nntune.db")))
}

func TestRunFlagsValidate(t *testing.T) {
	var cfg, err = config.Load("")
	require.NoError(t, err)
	cfg.CheckpointInterval = 0

	var flags = runFlags{resource: "nn.nxxx"}
	err = flags.apply(&cfg)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
