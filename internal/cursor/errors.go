// Package cursor provides bounds-checked sequential read and write cursors
// over in-memory byte buffers.
package cursor

import "errors"

var (
	// ErrOutOfBounds is returned when an operation would move past the end of
	// the cursor's buffer.
	ErrOutOfBounds = errors.New("cursor out of bounds")
	// ErrFinalized is returned by a Writer after Finalize.
	ErrFinalized = errors.New("writer already finalized")
	// ErrNotFixedSize is returned for values encoding/binary can't size.
	ErrNotFixedSize = errors.New("value is not fixed size")
)
