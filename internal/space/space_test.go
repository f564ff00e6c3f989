package space

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

func TestDefaultSpace(t *testing.T) {
	var s = Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 3+32+1024+1+32, s.Dim())

	var lower, upper = s.Bounds()
	require.Len(t, lower, s.Dim())
	require.Len(t, upper, s.Dim())
	assert.Equal(t, []float64{214, 227, 59}, lower[:3])
	assert.Equal(t, []float64{1282, 1364, 352}, upper[:3])
	assert.Equal(t, float64(-65536), lower[3])
	assert.Equal(t, float64(127), upper[3+32])
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	var s = Default()
	var f, ok = s.Field(Bias3)
	require.True(t, ok)
	f.Lower, f.Upper = 10, -10

	var err = s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestValidateRejectsShapeMismatch(t *testing.T) {
	var s = Default()
	s.Fields[2].Size = 1000
	assert.True(t, errors.Is(s.Validate(), domain.ErrConfiguration))

	s = Default()
	s.Fields[0].PerElement = s.Fields[0].PerElement[:2]
	assert.True(t, errors.Is(s.Validate(), domain.ErrConfiguration))

	s = Default()
	s.Fields = s.Fields[:4]
	assert.True(t, errors.Is(s.Validate(), domain.ErrConfiguration))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(11.5, 0.0, 10.0))
}
