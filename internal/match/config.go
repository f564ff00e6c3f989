package match

import (
	"fmt"
	"strconv"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

type Engine struct {
	Cmd string `yaml:"cmd"`
	Dir string `yaml:"dir"`
}

type ResignRule struct {
	MoveCount int `yaml:"movecount"`
	Score     int `yaml:"score"`
}

type DrawRule struct {
	MoveNumber int `yaml:"movenumber"`
	MoveCount  int `yaml:"movecount"`
	Score      int `yaml:"score"`
}

// Config describes the cutechess-cli invocation. Everything except the
// tune values and the network path is fixed for the whole run.
type Config struct {
	Command        string     `yaml:"command"`
	Subject        Engine     `yaml:"subject"`
	Reference      Engine     `yaml:"reference"`
	TuneOption     string     `yaml:"tune_option"`
	EvalFileOption string     `yaml:"evalfile_option"`
	Protocol       string     `yaml:"protocol"`
	TimeControl    string     `yaml:"tc"`
	Book           string     `yaml:"book"`
	PgnOut         string     `yaml:"pgnout"`
	Repeat         bool       `yaml:"repeat"`
	Games          int        `yaml:"games"`
	Concurrency    int        `yaml:"concurrency"`
	Resign         ResignRule `yaml:"resign"`
	Draw           DrawRule   `yaml:"draw"`
	Tablebases     string     `yaml:"tb"`
	Retries        int        `yaml:"retries"`
}

func DefaultConfig() Config {
	return Config{
		Command:        "cutechess-cli",
		Subject:        Engine{Cmd: "./stockfish"},
		Reference:      Engine{Cmd: "./stockfish_master", Dir: "."},
		TuneOption:     "tune_array[%d]",
		EvalFileOption: "EvalFile",
		Protocol:       "uci",
		TimeControl:    "2+0.02",
		Book:           "book6.bin",
		PgnOut:         "tune.pgn",
		Repeat:         true,
		Games:          16,
		Concurrency:    4,
		Resign:         ResignRule{MoveCount: 3, Score: 500},
		Draw:           DrawRule{MoveNumber: 40, MoveCount: 10, Score: 10},
		Tablebases:     "~/egtb",
	}
}

// Args builds the argument vector for the match tool. The result depends
// only on the config, tune and evalFile.
func (c *Config) Args(tune domain.TuneArgs, evalFile string) []string {
	var args []string
	args = append(args, "-engine")
	args = append(args, engineArgs(c.Subject)...)
	for i, v := range tune {
		args = append(args, "option."+fmt.Sprintf(c.TuneOption, i)+"="+strconv.Itoa(v))
	}
	args = append(args, "option."+c.EvalFileOption+"="+evalFile)

	args = append(args, "-engine")
	args = append(args, engineArgs(c.Reference)...)

	args = append(args, "-each", "proto="+c.Protocol, "tc="+c.TimeControl)
	if c.Book != "" {
		args = append(args, "book="+c.Book)
	}
	if c.PgnOut != "" {
		args = append(args, "-pgnout", c.PgnOut)
	}
	if c.Repeat {
		args = append(args, "-repeat")
	}
	args = append(args,
		"-games", strconv.Itoa(c.Games),
		"-concurrency", strconv.Itoa(c.Concurrency),
		"-resign",
		"movecount="+strconv.Itoa(c.Resign.MoveCount),
		"score="+strconv.Itoa(c.Resign.Score),
		"-draw",
		"movenumber="+strconv.Itoa(c.Draw.MoveNumber),
		"movecount="+strconv.Itoa(c.Draw.MoveCount),
		"score="+strconv.Itoa(c.Draw.Score))
	if c.Tablebases != "" {
		args = append(args, "-tb", c.Tablebases)
	}
	return args
}

func engineArgs(e Engine) []string {
	var result = []string{"cmd=" + e.Cmd}
	if e.Dir != "" {
		result = append(result, "dir="+e.Dir)
	}
	return result
}
