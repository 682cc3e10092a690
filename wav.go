package wavloop

import (
	"errors"
	"math"
	"time"

	"github.com/cwbudde/wavloop/internal/cursor"
)

var (
	// ErrMalformedContainer indicates a missing RIFF/WAVE envelope or a
	// missing/misplaced core chunk.
	ErrMalformedContainer = errors.New("malformed RIFF/WAVE container")
	// ErrUnsupportedFormat indicates a channel count other than 1 or 2.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
	// ErrUnsupportedChunk indicates a fmt chunk smaller than 16 bytes.
	ErrUnsupportedChunk = errors.New("unsupported chunk")
	// ErrSizeMismatch indicates the RIFF size doesn't match the chunk walk.
	ErrSizeMismatch = errors.New("declared RIFF size doesn't match file content")
	// ErrOutOfBounds is returned when a read or write leaves its buffer.
	ErrOutOfBounds = cursor.ErrOutOfBounds
	// ErrReleased is returned when a closed File is serialized.
	ErrReleased = errors.New("wave payload already released")
)

// bytesPerFrameSample is the storage size of one sample; payloads are assumed
// to be 16-bit.
const bytesPerFrameSample = 2

func framesToDuration(frames uint64, sampleRate uint32) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	secs := float64(frames) / float64(sampleRate)

	return time.Duration(math.Round(secs * float64(time.Second)))
}
