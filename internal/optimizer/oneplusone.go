package optimizer

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type Options struct {
	Budget int
	Seed   int64
	// Sigma is the initial step as a fraction of each coordinate range.
	Sigma float64
	// MutationRate is the probability to perturb one coordinate.
	// Zero means 1/dim. At least one coordinate is always perturbed.
	MutationRate float64
	// MinStep is the smallest absolute perturbation (1 for integer spaces).
	MinStep float64
	// Reevaluate is the probability that Ask returns the parent again to
	// refine its noisy loss estimate.
	Reevaluate float64
}

func DefaultOptions() Options {
	return Options{
		Budget:     5000,
		Seed:       1,
		Sigma:      0.02,
		MinStep:    1,
		Reevaluate: 0.1,
	}
}

const (
	minSigma = 1e-6
	maxSigma = 0.5
)

type archiveEntry struct {
	x     []float64
	sum   float64
	count int
}

func (e *archiveEntry) mean() float64 {
	return e.sum / float64(e.count)
}

// OnePlusOne is a (1+1) evolution strategy with the one-fifth success rule
// and an archive of mean losses for noisy objectives.
type OnePlusOne struct {
	options Options
	lower   []float64
	upper   []float64
	rnd     *rand.Rand
	sigma   float64

	suggestions [][]float64
	parent      *archiveEntry
	archive     map[string]*archiveEntry

	numAsk  int
	numTell int
}

func NewOnePlusOne(lower, upper []float64, options Options) (*OnePlusOne, error) {
	if len(lower) == 0 || len(lower) != len(upper) {
		return nil, errors.Wrapf(ErrDimension, "bounds %v/%v", len(lower), len(upper))
	}
	for i := range lower {
		if lower[i] > upper[i] {
			return nil, errors.Errorf("optimizer: lower %v > upper %v at %v", lower[i], upper[i], i)
		}
	}
	if options.Budget <= 0 {
		return nil, errors.Errorf("optimizer: budget must be positive, got %v", options.Budget)
	}
	if options.Sigma <= 0 {
		options.Sigma = DefaultOptions().Sigma
	}
	if options.MutationRate <= 0 {
		options.MutationRate = 1 / float64(len(lower))
	}
	return &OnePlusOne{
		options: options,
		lower:   slices.Clone(lower),
		upper:   slices.Clone(upper),
		rnd:     rand.New(rand.NewSource(options.Seed)),
		sigma:   options.Sigma,
		archive: make(map[string]*archiveEntry),
	}, nil
}

func (o *OnePlusOne) Budget() int {
	return o.options.Budget
}

func (o *OnePlusOne) NumAsk() int {
	return o.numAsk
}

func (o *OnePlusOne) NumTell() int {
	return o.numTell
}

func (o *OnePlusOne) Sigma() float64 {
	return o.sigma
}

func (o *OnePlusOne) Suggest(x []float64) error {
	if len(x) != len(o.lower) {
		return errors.Wrapf(ErrDimension, "suggest %v values, want %v", len(x), len(o.lower))
	}
	o.suggestions = append(o.suggestions, o.clip(slices.Clone(x)))
	return nil
}

func (o *OnePlusOne) Ask() []float64 {
	o.numAsk++
	if len(o.suggestions) != 0 {
		var x = o.suggestions[0]
		o.suggestions = o.suggestions[1:]
		return slices.Clone(x)
	}
	if o.parent == nil {
		return o.uniform()
	}
	if o.rnd.Float64() < o.options.Reevaluate {
		return slices.Clone(o.parent.x)
	}
	return o.mutate(o.parent.x)
}

func (o *OnePlusOne) Tell(x []float64, loss float64) error {
	if len(x) != len(o.lower) {
		return errors.Wrapf(ErrDimension, "tell %v values, want %v", len(x), len(o.lower))
	}
	if math.IsNaN(loss) {
		return errors.New("optimizer: loss is NaN")
	}
	if o.numTell >= o.options.Budget {
		return errors.Wrapf(ErrBudgetExhausted, "budget %v", o.options.Budget)
	}
	o.numTell++

	var key = archiveKey(x)
	var entry, found = o.archive[key]
	if !found {
		entry = &archiveEntry{x: slices.Clone(x)}
		o.archive[key] = entry
	}
	entry.sum += loss
	entry.count++

	if o.parent == nil {
		o.parent = entry
		return nil
	}
	if entry == o.parent {
		return nil
	}
	if entry.mean() <= o.parent.mean() {
		o.parent = entry
		o.sigma = math.Min(maxSigma, o.sigma*2)
	} else {
		o.sigma = math.Max(minSigma, o.sigma*math.Pow(2, -0.25))
	}
	return nil
}

// Recommend picks the archived point with the lowest mean loss,
// preferring points evaluated more often on ties.
func (o *OnePlusOne) Recommend() Recommendation {
	var best *archiveEntry
	for _, entry := range o.archive {
		if best == nil ||
			entry.mean() < best.mean() ||
			entry.mean() == best.mean() && entry.count > best.count ||
			entry.mean() == best.mean() && entry.count == best.count && lessVector(entry.x, best.x) {
			best = entry
		}
	}
	if best == nil {
		var x []float64
		if len(o.suggestions) != 0 {
			x = slices.Clone(o.suggestions[0])
		} else {
			x = o.center()
		}
		return Recommendation{X: x, Loss: math.NaN()}
	}
	return Recommendation{
		X:           slices.Clone(best.x),
		Loss:        best.mean(),
		Evaluations: best.count,
	}
}

func (o *OnePlusOne) mutate(parent []float64) []float64 {
	var x = slices.Clone(parent)
	var mutated = false
	for i := range x {
		if o.rnd.Float64() < o.options.MutationRate {
			x[i] += o.step(i)
			mutated = true
		}
	}
	if !mutated {
		var i = o.rnd.Intn(len(x))
		x[i] += o.step(i)
	}
	return o.clip(x)
}

func (o *OnePlusOne) step(i int) float64 {
	var delta = o.rnd.NormFloat64() * o.sigma * (o.upper[i] - o.lower[i])
	if math.Abs(delta) < o.options.MinStep {
		delta = math.Copysign(o.options.MinStep, delta)
	}
	return delta
}

func (o *OnePlusOne) uniform() []float64 {
	var x = make([]float64, len(o.lower))
	for i := range x {
		x[i] = o.lower[i] + o.rnd.Float64()*(o.upper[i]-o.lower[i])
	}
	return x
}

func (o *OnePlusOne) center() []float64 {
	var x = make([]float64, len(o.lower))
	for i := range x {
		x[i] = 0.5 * (o.lower[i] + o.upper[i])
	}
	return x
}

func (o *OnePlusOne) clip(x []float64) []float64 {
	for i := range x {
		if x[i] < o.lower[i] {
			x[i] = o.lower[i]
		} else if x[i] > o.upper[i] {
			x[i] = o.upper[i]
		}
	}
	return x
}

// archiveKey identifies points that round to the same integer vector.
func archiveKey(x []float64) string {
	var buf = make([]byte, 8*len(x))
	for i, v := range x {
		binary.LittleEndian.PutUint64(buf[8*i:], uint64(int64(math.Round(v))))
	}
	return string(buf)
}

func lessVector(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
