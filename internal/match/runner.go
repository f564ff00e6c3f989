package match

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

// ProcessRunner runs the match tool and returns its standard output.
type ProcessRunner struct {
	Command string
	Dir     string
}

const (
	stderrTailLines = 20
	maxLineSize     = 1 << 22
	// waitDelay bounds how long Wait keeps the output pipes open after the
	// process exits or is killed. Engines started by the match tool may
	// still hold them.
	waitDelay = 5 * time.Second
)

func (r *ProcessRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	var cmd = exec.CommandContext(ctx, r.Command, args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay

	var stdoutReader, stdoutWriter = io.Pipe()
	var stderrReader, stderrWriter = io.Pipe()
	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(domain.ErrExternalProcess, "start %v: %v", r.Command, err)
	}

	var out bytes.Buffer
	var tail []string

	var g errgroup.Group
	g.Go(func() error {
		return scanLines(stdoutReader, func(line string) {
			out.WriteString(line)
			out.WriteByte('\n')
			log.Debug().Str("line", line).Msg("match")
		})
	})
	g.Go(func() error {
		return scanLines(stderrReader, func(line string) {
			tail = append(tail, line)
			if len(tail) > stderrTailLines {
				tail = tail[1:]
			}
		})
	})

	var waitErr = cmd.Wait()
	stdoutWriter.Close()
	stderrWriter.Close()
	var readErr = g.Wait()

	if waitErr != nil {
		return out.Bytes(), errors.Wrapf(domain.ErrExternalProcess, "%v: %v %v",
			r.Command, waitErr, strings.Join(tail, "; "))
	}
	if readErr != nil {
		return out.Bytes(), errors.Wrap(readErr, "read match output")
	}
	return out.Bytes(), nil
}

// scanLines reads r to the end even when a line exceeds maxLineSize,
// so the writer never blocks.
func scanLines(r io.Reader, fn func(line string)) error {
	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(strings.TrimRight(scanner.Text(), "\r"))
	}
	var err = scanner.Err()
	if err != nil {
		io.Copy(io.Discard, r)
	}
	return err
}
