package match

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

var scoreRegexp = regexp.MustCompile(`^Score of .+ vs .+: (\d+) - (\d+) - (\d+)(?:\s|$)`)

// ParseOutcome returns the last "Score of A vs B: W - L - D" line of the
// match tool output. Intermediate lines are progress reports.
func ParseOutcome(stdout []byte) (domain.MatchOutcome, error) {
	var result domain.MatchOutcome
	var found = false
	var scanner = bufio.NewScanner(bytes.NewReader(stdout))
	for scanner.Scan() {
		var m = scoreRegexp.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		var v [3]int
		for i := range v {
			n, err := strconv.Atoi(m[i+1])
			if err != nil {
				return domain.MatchOutcome{}, errors.Wrapf(domain.ErrEvaluationParse, "bad number %q", m[i+1])
			}
			v[i] = n
		}
		result = domain.MatchOutcome{Wins: v[0], Losses: v[1], Draws: v[2]}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return domain.MatchOutcome{}, errors.Wrap(domain.ErrEvaluationParse, err.Error())
	}
	if !found {
		return domain.MatchOutcome{}, errors.Wrap(domain.ErrEvaluationParse, "no score line in match output")
	}
	return result, nil
}
