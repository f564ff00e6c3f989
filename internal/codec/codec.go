package codec

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/nntune/internal/domain"
	"github.com/ChizhovVadim/nntune/internal/space"
)

// Codec converts between the optimizer's flat float vector and Candidate.
// Field order in the vector follows space.Space.Fields.
type Codec struct {
	space *space.Space
	lower []float64
	upper []float64
}

func New(s *space.Space) (*Codec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var lower, upper = s.Bounds()
	return &Codec{
		space: s,
		lower: lower,
		upper: upper,
	}, nil
}

func (c *Codec) Dim() int {
	return len(c.lower)
}

// ToDomain rounds and clamps every value. It has no side effects.
func (c *Codec) ToDomain(x []float64) (domain.Candidate, error) {
	var result domain.Candidate
	if len(x) != len(c.lower) {
		return result, errors.Errorf("codec: vector has %v values, want %v", len(x), len(c.lower))
	}
	var v = make([]int, len(x))
	for i := range x {
		v[i] = c.toInt(i, x[i])
	}
	var p = 0
	for i := range result.Tune {
		result.Tune[i] = v[p]
		p++
	}
	for i := range result.Bias2 {
		result.Bias2[i] = int32(v[p])
		p++
	}
	for i := range result.Weights2 {
		result.Weights2[i] = int8(v[p])
		p++
	}
	result.Bias3 = int32(v[p])
	p++
	for i := range result.Weights3 {
		result.Weights3[i] = int8(v[p])
		p++
	}
	return result, nil
}

func (c *Codec) toInt(i int, x float64) int {
	var lower, upper = c.lower[i], c.upper[i]
	if math.IsNaN(x) {
		x = lower
	}
	x = space.Clamp(math.Round(x), math.Ceil(lower), math.Floor(upper))
	return int(x)
}

// FromDomain flattens a candidate. For in-bounds candidates
// ToDomain(FromDomain(c)) == c.
func (c *Codec) FromDomain(cand domain.Candidate) []float64 {
	var x = make([]float64, 0, len(c.lower))
	for _, v := range cand.Tune {
		x = append(x, float64(v))
	}
	for _, v := range cand.Bias2 {
		x = append(x, float64(v))
	}
	for _, v := range cand.Weights2 {
		x = append(x, float64(v))
	}
	x = append(x, float64(cand.Bias3))
	for _, v := range cand.Weights3 {
		x = append(x, float64(v))
	}
	return x
}

// InBounds reports whether every field of cand lies within the space.
func (c *Codec) InBounds(cand domain.Candidate) bool {
	var x = c.FromDomain(cand)
	for i := range x {
		if x[i] < c.lower[i] || x[i] > c.upper[i] {
			return false
		}
	}
	return true
}
