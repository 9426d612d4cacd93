package ticker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Region is the non-volatile byte region the board persists into.
type Region interface {
	// ReadRegion returns the whole region content.
	ReadRegion() ([]byte, error)
	// WriteRegion replaces the whole region content and commits it.
	WriteRegion(b []byte) error
}

// FileRegion is a region stored as an image file on disk.
type FileRegion string

// ReadRegion reads the image file. A missing file reads as a blank region.
func (f FileRegion) ReadRegion() ([]byte, error) {
	b, err := os.ReadFile(string(f))
	if errors.Is(err, fs.ErrNotExist) {
		return make([]byte, RegionSize), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read region %q: %w", string(f), err)
	}
	return b, nil
}

// WriteRegion writes b into a temporary file next to the image and renames
// it over the image, so that a crash never leaves a half written region.
func (f FileRegion) WriteRegion(b []byte) error {
	filename := string(f)
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("cannot write region %q: %w", filename, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write region %q: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write region %q: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot commit region %q: %w", filename, err)
	}
	return nil
}

// MemRegion is an in-memory region.
type MemRegion struct {
	mu     sync.Mutex
	b      []byte
	writes int
}

// NewMemRegion returns a region initialized with a copy of b, or blank if b is nil.
func NewMemRegion(b []byte) *MemRegion {
	m := &MemRegion{b: make([]byte, RegionSize)}
	copy(m.b, b)
	return m
}

func (m *MemRegion) ReadRegion() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.b...), nil
}

func (m *MemRegion) WriteRegion(b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.b = append(m.b[:0], b...)
	m.writes++
	return nil
}

// Writes returns the number of commits so far.
func (m *MemRegion) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
