package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/match"
	"github.com/ChizhovVadim/nntune/internal/nnue"
	"github.com/ChizhovVadim/nntune/internal/optimizer"
)

type Optimizer struct {
	Seed         int64   `yaml:"seed"`
	Sigma        float64 `yaml:"sigma"`
	MutationRate float64 `yaml:"mutation_rate"`
	Reevaluate   float64 `yaml:"reevaluate"`
}

type History struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type Config struct {
	Resource           string       `yaml:"resource"`
	Offset             int64        `yaml:"offset"`
	Budget             int          `yaml:"budget"`
	CheckpointInterval int          `yaml:"checkpoint_interval"`
	SnapshotDir        string       `yaml:"snapshot_dir"`
	SnapshotPattern    string       `yaml:"snapshot_pattern"`
	Optimizer          Optimizer    `yaml:"optimizer"`
	History            History      `yaml:"history"`
	MetricsAddr        string       `yaml:"metrics_addr"`
	Match              match.Config `yaml:"match"`
}

func Default() Config {
	var opt = optimizer.DefaultOptions()
	return Config{
		Resource:           "nn-tune.nxxx",
		Offset:             nnue.DefaultOffset,
		Budget:             opt.Budget,
		CheckpointInterval: 100,
		SnapshotDir:        ".",
		SnapshotPattern:    "nn-recom-%d-%d-%d.nxxx",
		Optimizer: Optimizer{
			Seed:       opt.Seed,
			Sigma:      opt.Sigma,
			Reevaluate: opt.Reevaluate,
		},
		History: History{
			Backend: "memory",
			Path:    "nntune.db",
		},
		Match: match.DefaultConfig(),
	}
}

// Load reads path over the defaults. An empty path means defaults only.
func Load(path string) (Config, error) {
	var config = Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config")
		}
		if err := yaml.UnmarshalStrict(data, &config); err != nil {
			return Config{}, errors.Wrapf(domain.ErrConfiguration, "parse %v: %v", path, err)
		}
	}
	config.ExpandPaths()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) ExpandPaths() {
	c.Resource = mapPath(c.Resource)
	c.SnapshotDir = mapPath(c.SnapshotDir)
	c.History.Path = mapPath(c.History.Path)
	c.Match.Tablebases = mapPath(c.Match.Tablebases)
	c.Match.Book = mapPath(c.Match.Book)
}

func (c *Config) Validate() error {
	var fail = func(format string, args ...interface{}) error {
		return errors.Wrapf(domain.ErrConfiguration, format, args...)
	}
	if c.Resource == "" {
		return fail("resource path is required")
	}
	if c.Offset < 0 {
		return fail("offset must not be negative, got %v", c.Offset)
	}
	if c.Budget <= 0 {
		return fail("budget must be positive, got %v", c.Budget)
	}
	if c.CheckpointInterval <= 0 {
		return fail("checkpoint interval must be positive, got %v", c.CheckpointInterval)
	}
	if strings.Count(c.SnapshotPattern, "%d") != domain.TuneSize {
		return fail("snapshot pattern %q must contain %v %%d verbs", c.SnapshotPattern, domain.TuneSize)
	}
	if c.Match.Command == "" || c.Match.Subject.Cmd == "" || c.Match.Reference.Cmd == "" {
		return fail("match command and both engines are required")
	}
	if c.Match.Games <= 0 {
		return fail("games must be positive, got %v", c.Match.Games)
	}
	if c.Match.Concurrency <= 0 {
		return fail("concurrency must be positive, got %v", c.Match.Concurrency)
	}
	if c.Match.Retries < 0 {
		return fail("retries must not be negative, got %v", c.Match.Retries)
	}
	if strings.Count(c.Match.TuneOption, "%d") != 1 {
		return fail("tune option %q must contain one %%d verb", c.Match.TuneOption)
	}
	return nil
}

func (c *Config) OptimizerOptions() optimizer.Options {
	var options = optimizer.DefaultOptions()
	options.Budget = c.Budget
	options.Seed = c.Optimizer.Seed
	options.Sigma = c.Optimizer.Sigma
	options.MutationRate = c.Optimizer.MutationRate
	options.Reevaluate = c.Optimizer.Reevaluate
	return options
}

func mapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	return path
}
