// Package storage provides a flat, byte-addressable persistence surface in
// the style of a microcontroller EEPROM.
package storage

import (
	"io"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// Memory is a fixed-size byte array addressed by absolute offset. It
// implements io.ReaderAt and io.WriterAt; it never grows.
type Memory struct {
	data []byte
}

var (
	_ io.ReaderAt = (*Memory)(nil)
	_ io.WriterAt = (*Memory)(nil)
)

// NewMemory returns a zero-filled surface of size bytes.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		return nil, errors.NewValidationError("size", "must be positive", size)
	}
	return &Memory{data: make([]byte, size)}, nil
}

// Size returns the surface size in bytes.
func (m *Memory) Size() int64 { return int64(len(m.data)) }

// ReadAt implements io.ReaderAt. Reading past the end fails with
// ErrOutOfRange instead of returning a short read.
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if err := m.check("ReadAt", off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, m.data[off:]), nil
}

// WriteAt implements io.WriterAt. A write that does not fit is rejected
// whole; nothing is written.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	if err := m.check("WriteAt", off, len(p)); err != nil {
		return 0, err
	}
	return copy(m.data[off:], p), nil
}

// Bytes returns a copy of the whole surface.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

func (m *Memory) check(op string, off int64, n int) error {
	if off < 0 || off+int64(n) > int64(len(m.data)) {
		return errors.Wrapf(errors.ErrOutOfRange, "storage: %s [%d, %d) outside [0, %d)", op, off, off+int64(n), len(m.data))
	}
	return nil
}
