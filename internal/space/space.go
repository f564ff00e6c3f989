package space

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

const (
	Tune     = "tune"
	Bias2    = "bias2"
	Weights2 = "weights2"
	Bias3    = "bias3"
	Weights3 = "weights3"
)

// Field declares one group of tunable values. A scalar has Size 1.
// Bounds are inclusive and apply to every element unless PerElement is set.
type Field struct {
	Name       string
	Size       int
	Lower      float64
	Upper      float64
	PerElement [][2]float64
	Integer    bool
}

func (f *Field) Bounds(i int) (lower, upper float64) {
	if f.PerElement != nil {
		return f.PerElement[i][0], f.PerElement[i][1]
	}
	return f.Lower, f.Upper
}

type Space struct {
	Fields []Field
}

var expectedShape = []struct {
	name string
	size int
}{
	{Tune, domain.TuneSize},
	{Bias2, domain.Bias2Size},
	{Weights2, domain.Weights2Size},
	{Bias3, 1},
	{Weights3, domain.Weights3Size},
}

func Default() *Space {
	return &Space{
		Fields: []Field{
			{Name: Tune, Size: domain.TuneSize, Integer: true, PerElement: [][2]float64{
				{214, 1282},
				{227, 1364},
				{59, 352},
			}},
			{Name: Bias2, Size: domain.Bias2Size, Lower: -1 << 16, Upper: 1 << 16, Integer: true},
			{Name: Weights2, Size: domain.Weights2Size, Lower: -127, Upper: 127, Integer: true},
			{Name: Bias3, Size: 1, Lower: -1 << 16, Upper: 1 << 16, Integer: true},
			{Name: Weights3, Size: domain.Weights3Size, Lower: -127, Upper: 127, Integer: true},
		},
	}
}

// Validate is called once at startup. Every failure wraps domain.ErrConfiguration.
func (s *Space) Validate() error {
	if len(s.Fields) != len(expectedShape) {
		return errors.Wrapf(domain.ErrConfiguration, "space has %v fields, want %v",
			len(s.Fields), len(expectedShape))
	}
	for i := range s.Fields {
		var f = &s.Fields[i]
		var want = expectedShape[i]
		if f.Name != want.name || f.Size != want.size {
			return errors.Wrapf(domain.ErrConfiguration, "field %v: shape %v[%v], want %v[%v]",
				i, f.Name, f.Size, want.name, want.size)
		}
		if f.PerElement != nil && len(f.PerElement) != f.Size {
			return errors.Wrapf(domain.ErrConfiguration, "field %v: %v bounds for %v elements",
				f.Name, len(f.PerElement), f.Size)
		}
		for j := 0; j < f.Size; j++ {
			var lower, upper = f.Bounds(j)
			if lower > upper {
				return errors.Wrapf(domain.ErrConfiguration, "field %v[%v]: lower %v > upper %v",
					f.Name, j, lower, upper)
			}
		}
		if !f.Integer {
			return errors.Wrapf(domain.ErrConfiguration, "field %v must be integer valued", f.Name)
		}
	}
	return nil
}

// Dim is the length of the flattened native vector.
func (s *Space) Dim() int {
	var n = 0
	for i := range s.Fields {
		n += s.Fields[i].Size
	}
	return n
}

// Bounds returns the flattened inclusive lower and upper vectors.
func (s *Space) Bounds() (lower, upper []float64) {
	lower = make([]float64, 0, s.Dim())
	upper = make([]float64, 0, s.Dim())
	for i := range s.Fields {
		var f = &s.Fields[i]
		for j := 0; j < f.Size; j++ {
			var lo, up = f.Bounds(j)
			lower = append(lower, lo)
			upper = append(upper, up)
		}
	}
	return lower, upper
}

func (s *Space) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

func Clamp[T constraints.Ordered](v, lower, upper T) T {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
