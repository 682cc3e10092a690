package cursor

import (
	"encoding/binary"
	"fmt"
)

// Reader is a sequential, bounds-checked read cursor over an immutable byte
// slice. A failed read never moves the cursor.
type Reader struct {
	buf []byte
	pos int64
}

// NewReader wraps buf. The slice is not copied and must not be modified while
// the reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// SetPos moves the cursor. Positions past the end are accepted; the next read
// fails with ErrOutOfBounds.
func (r *Reader) SetPos(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("%w: negative position %d", ErrOutOfBounds, pos)
	}

	r.pos = pos

	return nil
}

// Len returns the length of the underlying buffer.
func (r *Reader) Len() int64 {
	return int64(len(r.buf))
}

// Remaining returns the number of bytes left after the cursor, or 0 when the
// cursor sits past the end.
func (r *Reader) Remaining() int64 {
	return max(r.Len()-r.pos, 0)
}

func (r *Reader) check(n int64) error {
	if n < 0 || r.pos+n > r.Len() {
		return fmt.Errorf("%w: read of %d bytes at %d, buffer holds %d", ErrOutOfBounds, n, r.pos, r.Len())
	}

	return nil
}

// ReadAndCompareASCII reads length bytes and reports whether they spell
// expected. An empty expected only matches a zero length and leaves the cursor
// in place; otherwise the cursor advances by length even on a mismatch.
func (r *Reader) ReadAndCompareASCII(length int, expected string) (bool, error) {
	n := int64(length)
	if err := r.check(n); err != nil {
		return false, err
	}

	if expected == "" {
		return length == 0, nil
	}

	got := r.buf[r.pos : r.pos+n]
	r.pos += n

	if len(expected) != length {
		return false, nil
	}

	ok := true

	for i := range got {
		if got[i] != expected[i] {
			ok = false
		}
	}

	return ok, nil
}

// ReadASCII reads exactly n bytes as single-byte characters.
func (r *Reader) ReadASCII(n int) (string, error) {
	if err := r.check(int64(n)); err != nil {
		return "", err
	}

	s := string(r.buf[r.pos : r.pos+int64(n)])
	r.pos += int64(n)

	return s, nil
}

// ReadID reads a 4-byte chunk identifier.
func (r *Reader) ReadID() ([4]byte, error) {
	var id [4]byte

	if err := r.check(4); err != nil {
		return id, err
	}

	copy(id[:], r.buf[r.pos:r.pos+4])
	r.pos += 4

	return id, nil
}

// ReadLE decodes a fixed-size value using little endian. dst must be a
// pointer to a fixed-layout value accepted by encoding/binary.
func (r *Reader) ReadLE(dst any) error {
	size := binary.Size(dst)
	if size < 0 {
		return fmt.Errorf("%w: %T", ErrNotFixedSize, dst)
	}

	if err := r.check(int64(size)); err != nil {
		return err
	}

	if _, err := binary.Decode(r.buf[r.pos:r.pos+int64(size)], binary.LittleEndian, dst); err != nil {
		return fmt.Errorf("failed to decode %T: %w", dst, err)
	}

	r.pos += int64(size)

	return nil
}

// ReadInto copies n bytes into dst, which must hold at least n bytes.
func (r *Reader) ReadInto(dst []byte, n int) error {
	if n > len(dst) {
		return fmt.Errorf("%w: destination holds %d bytes, %d requested", ErrOutOfBounds, len(dst), n)
	}

	if err := r.check(int64(n)); err != nil {
		return err
	}

	copy(dst[:n], r.buf[r.pos:r.pos+int64(n)])
	r.pos += int64(n)

	return nil
}

// ReadFixed decodes the next binary.Size(T) bytes into a T.
func ReadFixed[T any](r *Reader) (T, error) {
	var v T

	err := r.ReadLE(&v)

	return v, err
}
