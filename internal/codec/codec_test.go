package codec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/nntune/internal/space"
)

func newCodec(t *testing.T) *Codec {
	var c, err = New(space.Default())
	require.NoError(t, err)
	return c
}

func TestSeedRoundTrip(t *testing.T) {
	var c = newCodec(t)
	var seed = SeedCandidate()
	require.True(t, c.InBounds(seed))

	var x = c.FromDomain(seed)
	require.Len(t, x, c.Dim())

	var back, err = c.ToDomain(x)
	require.NoError(t, err)
	assert.Equal(t, seed, back)
}

func TestToDomainClampsAndRounds(t *testing.T) {
	var c = newCodec(t)
	var rnd = rand.New(rand.NewSource(1))
	for n := 0; n < 50; n++ {
		var x = make([]float64, c.Dim())
		for i := range x {
			// well outside every bound, non-integer
			x[i] = (rnd.Float64() - 0.5) * 4e5
		}
		var cand, err = c.ToDomain(x)
		require.NoError(t, err)
		assert.True(t, c.InBounds(cand))
	}
}

func TestToDomainSpecialValues(t *testing.T) {
	var c = newCodec(t)
	var x = c.FromDomain(SeedCandidate())
	x[0] = math.NaN()
	x[1] = math.Inf(1)
	x[2] = 100.5
	x[3] = math.Inf(-1)
	x[4] = -2.5

	var cand, err = c.ToDomain(x)
	require.NoError(t, err)
	assert.Equal(t, 214, cand.Tune[0])
	assert.Equal(t, 1364, cand.Tune[1])
	assert.Equal(t, 101, cand.Tune[2])
	assert.Equal(t, int32(-65536), cand.Bias2[0])
	assert.Equal(t, int32(-3), cand.Bias2[1])
}

func TestToDomainIsPure(t *testing.T) {
	var c = newCodec(t)
	var x = c.FromDomain(SeedCandidate())
	x[10] = 12.4
	var saved = append([]float64(nil), x...)

	var a, err = c.ToDomain(x)
	require.NoError(t, err)
	b, err := c.ToDomain(x)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, saved, x)
}

func TestToDomainRejectsWrongLength(t *testing.T) {
	var c = newCodec(t)
	var _, err = c.ToDomain(make([]float64, 10))
	assert.Error(t, err)
}
