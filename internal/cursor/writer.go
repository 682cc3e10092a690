package cursor

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer is a sequential, bounds-checked write cursor over a buffer of exact
// predetermined size. A failed write leaves both the cursor and the buffer
// untouched.
type Writer struct {
	buf []byte
	pos int64
}

// NewWriter allocates a zeroed buffer of size bytes.
func NewWriter(size int64) (*Writer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrOutOfBounds, size)
	}

	return &Writer{buf: make([]byte, size)}, nil
}

// Pos returns the current cursor position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Len returns the size of the buffer, or 0 once finalized.
func (w *Writer) Len() int64 {
	return int64(len(w.buf))
}

func (w *Writer) check(n int64) error {
	if w.buf == nil {
		return ErrFinalized
	}

	if n < 0 || w.pos+n > w.Len() {
		return fmt.Errorf("%w: write of %d bytes at %d, buffer holds %d", ErrOutOfBounds, n, w.pos, w.Len())
	}

	return nil
}

// WriteASCII writes every byte of s.
func (w *Writer) WriteASCII(s string) error {
	if err := w.check(int64(len(s))); err != nil {
		return err
	}

	w.pos += int64(copy(w.buf[w.pos:], s))

	return nil
}

// WriteLE encodes a fixed-size value using little endian.
func (w *Writer) WriteLE(src any) error {
	size := binary.Size(src)
	if size < 0 {
		return fmt.Errorf("%w: %T", ErrNotFixedSize, src)
	}

	if err := w.check(int64(size)); err != nil {
		return err
	}

	if _, err := binary.Encode(w.buf[w.pos:w.pos+int64(size)], binary.LittleEndian, src); err != nil {
		return fmt.Errorf("failed to encode %T: %w", src, err)
	}

	w.pos += int64(size)

	return nil
}

// WriteFrom copies the first n bytes of src.
//
// Unlike the other writes the bound is exclusive: a copy that would end
// exactly on the last byte of the buffer is rejected.
func (w *Writer) WriteFrom(src []byte, n int) error {
	if w.buf == nil {
		return ErrFinalized
	}

	if n > len(src) {
		return fmt.Errorf("%w: source holds %d bytes, %d requested", ErrOutOfBounds, len(src), n)
	}

	if n < 0 || w.pos+int64(n) >= w.Len() {
		return fmt.Errorf("%w: copy of %d bytes at %d, buffer holds %d", ErrOutOfBounds, n, w.pos, w.Len())
	}

	w.pos += int64(copy(w.buf[w.pos:], src[:n]))

	return nil
}

// Finalize writes the whole buffer to dst and releases it. The writer can't
// be used afterwards, even if dst failed.
func (w *Writer) Finalize(dst io.Writer) error {
	if w.buf == nil {
		return ErrFinalized
	}

	buf := w.buf
	w.buf = nil
	w.pos = 0

	if _, err := dst.Write(buf); err != nil {
		return fmt.Errorf("failed to persist %d bytes: %w", len(buf), err)
	}

	return nil
}

// WriteFixed encodes v using little endian.
func WriteFixed[T any](w *Writer, v T) error {
	return w.WriteLE(v)
}
