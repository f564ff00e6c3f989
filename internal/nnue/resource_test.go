package nnue

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

const testOffset = 1000

func writeResource(t *testing.T, size int) (string, []byte) {
	var rnd = rand.New(rand.NewSource(int64(size)))
	var data = make([]byte, size)
	rnd.Read(data)
	var path = filepath.Join(t.TempDir(), "nn-tune.nnue")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path, data
}

func randomCandidate(rnd *rand.Rand) domain.Candidate {
	var c domain.Candidate
	for i := range c.Bias2 {
		c.Bias2[i] = int32(rnd.Intn(2*65536+1) - 65536)
	}
	for i := range c.Weights2 {
		c.Weights2[i] = int8(rnd.Intn(255) - 127)
	}
	c.Bias3 = int32(rnd.Intn(2*65536+1) - 65536)
	for i := range c.Weights3 {
		c.Weights3[i] = int8(rnd.Intn(255) - 127)
	}
	return c
}

func TestRegionLayout(t *testing.T) {
	assert.Equal(t, 128, Weights2Offset)
	assert.Equal(t, 1152, Bias3Offset)
	assert.Equal(t, 1156, Weights3Offset)
	assert.Equal(t, 1188, RegionSize)
}

func TestPatchRoundTrip(t *testing.T) {
	var path, original = writeResource(t, testOffset+RegionSize+500)
	var r = NewResource(path, testOffset)
	require.NoError(t, r.Check())

	var rnd = rand.New(rand.NewSource(7))
	for n := 0; n < 10; n++ {
		var c = randomCandidate(rnd)
		require.NoError(t, r.Patch(&c))

		back, err := r.ReadRegion()
		require.NoError(t, err)
		assert.Equal(t, c, back)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Len(t, data, len(original))
		assert.Equal(t, original[:testOffset], data[:testOffset])
		assert.Equal(t, original[testOffset+RegionSize:], data[testOffset+RegionSize:])
	}
}

func TestEncodeByteLayout(t *testing.T) {
	var c domain.Candidate
	c.Bias2[0] = -2
	c.Bias2[31] = 0x01020304
	c.Weights2[0] = -1
	c.Weights2[1023] = 127
	c.Bias3 = -193
	c.Weights3[31] = -127

	var buf = Encode(&c)
	assert.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, buf[0:4])
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf[124:128])
	assert.Equal(t, byte(0xff), buf[128])
	assert.Equal(t, byte(127), buf[1151])
	assert.Equal(t, int32(-193), int32(binary.LittleEndian.Uint32(buf[1152:])))
	assert.Equal(t, byte(0x81), buf[1187])
}

func TestPatchLeavesNoTempFiles(t *testing.T) {
	var path, _ = writeResource(t, testOffset+RegionSize)
	var r = NewResource(path, testOffset)
	var c = randomCandidate(rand.New(rand.NewSource(1)))
	require.NoError(t, r.Patch(&c))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestPatchShortResource(t *testing.T) {
	var path, original = writeResource(t, testOffset+RegionSize-1)
	var r = NewResource(path, testOffset)

	assert.True(t, errors.Is(r.Check(), domain.ErrConfiguration))

	var c domain.Candidate
	var err = r.Patch(&c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPatch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, data))
}

func TestPatchMissingResource(t *testing.T) {
	var r = NewResource(filepath.Join(t.TempDir(), "missing.nnue"), 0)
	var c domain.Candidate
	assert.True(t, errors.Is(r.Patch(&c), domain.ErrPatch))
}

func TestCopyTo(t *testing.T) {
	var path, original = writeResource(t, testOffset+RegionSize)
	var r = NewResource(path, testOffset)
	var dst = filepath.Join(t.TempDir(), "snapshot.nnue")
	require.NoError(t, r.CopyTo(dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}
