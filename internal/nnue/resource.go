package nnue

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

// Layout of the patch region, relative to the resource offset:
// - bias2: 32 int32, little-endian
// - weights2: 1024 int8
// - bias3: 1 int32, little-endian
// - weights3: 32 int8
// Groups follow each other without padding.
const (
	Bias2Offset    = 0
	Weights2Offset = Bias2Offset + 4*domain.Bias2Size
	Bias3Offset    = Weights2Offset + domain.Weights2Size
	Weights3Offset = Bias3Offset + 4
	RegionSize     = Weights3Offset + domain.Weights3Size
)

// DefaultOffset is where the second layer starts in the stockfish network file.
const DefaultOffset = 21021509

// Resource is the network file shared by all matches. Patch and match
// evaluation must run under WithLock so two candidates never interleave.
type Resource struct {
	Path   string
	Offset int64

	mu sync.Mutex
}

func NewResource(path string, offset int64) *Resource {
	return &Resource{
		Path:   path,
		Offset: offset,
	}
}

func (r *Resource) WithLock(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}

// Check verifies the resource exists and is large enough to hold the patch region.
func (r *Resource) Check() error {
	if err := r.checkSize(); err != nil {
		return errors.Wrap(domain.ErrConfiguration, err.Error())
	}
	return nil
}

func (r *Resource) checkSize() error {
	var fi, err = os.Stat(r.Path)
	if err != nil {
		return err
	}
	if r.Offset < 0 {
		return errors.Errorf("negative offset %v", r.Offset)
	}
	if fi.Size() < r.Offset+RegionSize {
		return errors.Errorf("resource %v has %v bytes, want at least %v",
			r.Path, fi.Size(), r.Offset+RegionSize)
	}
	return nil
}

// Patch writes the network part of c into the resource. The file is
// rewritten into a temporary sibling and renamed over the original, so a
// crash never leaves a half-written network in place.
func (r *Resource) Patch(c *domain.Candidate) error {
	if err := r.checkSize(); err != nil {
		return errors.Wrap(domain.ErrPatch, err.Error())
	}
	var region = Encode(c)
	var err = replaceFile(r.Path, r.Path, func(f *os.File) error {
		_, err := f.WriteAt(region, r.Offset)
		return err
	})
	if err != nil {
		return errors.Wrap(domain.ErrPatch, err.Error())
	}
	return nil
}

// ReadRegion decodes the current patch region. Tune is left zero.
func (r *Resource) ReadRegion() (domain.Candidate, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return domain.Candidate{}, err
	}
	defer f.Close()

	var buf = make([]byte, RegionSize)
	_, err = f.ReadAt(buf, r.Offset)
	if err != nil {
		return domain.Candidate{}, errors.Wrapf(err, "read region of %v", r.Path)
	}
	return Decode(buf), nil
}

// CopyTo persists a snapshot of the resource.
func (r *Resource) CopyTo(path string) error {
	return replaceFile(r.Path, path, nil)
}

// replaceFile copies src into a temporary file next to dst, applies edit
// and renames the result over dst.
func replaceFile(src, dst string, edit func(f *os.File) error) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return err
	}
	if edit != nil {
		if err = edit(tmp); err != nil {
			return err
		}
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func Encode(c *domain.Candidate) []byte {
	var buf = make([]byte, RegionSize)
	for i, v := range c.Bias2 {
		binary.LittleEndian.PutUint32(buf[Bias2Offset+4*i:], uint32(v))
	}
	for i, v := range c.Weights2 {
		buf[Weights2Offset+i] = byte(v)
	}
	binary.LittleEndian.PutUint32(buf[Bias3Offset:], uint32(c.Bias3))
	for i, v := range c.Weights3 {
		buf[Weights3Offset+i] = byte(v)
	}
	return buf
}

func Decode(buf []byte) domain.Candidate {
	var c domain.Candidate
	for i := range c.Bias2 {
		c.Bias2[i] = int32(binary.LittleEndian.Uint32(buf[Bias2Offset+4*i:]))
	}
	for i := range c.Weights2 {
		c.Weights2[i] = int8(buf[Weights2Offset+i])
	}
	c.Bias3 = int32(binary.LittleEndian.Uint32(buf[Bias3Offset:]))
	for i := range c.Weights3 {
		c.Weights3[i] = int8(buf[Weights3Offset+i])
	}
	return c
}
