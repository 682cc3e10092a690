package wavloop

import (
	"fmt"
	"os"

	"github.com/cwbudde/wavloop/internal/cursor"
	"github.com/go-audio/riff"
)

// riffHeaderSize covers the RIFF ID and size fields, which the declared RIFF
// size doesn't include.
const riffHeaderSize = 8

// File is a parsed wave file: its fmt record, its raw PCM payload and its
// sampler record. A File owns its payload and is not safe for concurrent use.
type File struct {
	format      FormatRecord
	payload     []byte
	sampler     SampleMetadata
	sampleCount uint32
	diagnostics []Diagnostic
	released    bool
}

// Open reads and parses the wave file at path.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a complete wave file held in memory. The payload is copied,
// b can be reused once Parse returns. Either a fully populated File or an
// error is returned, never both.
func Parse(b []byte) (*File, error) {
	r := cursor.NewReader(b)

	predictedSize, err := readRiffHeader(r)
	if err != nil {
		return nil, err
	}

	f := &File{}

	var seenFmt, seenData, seenSmpl bool

	for r.Pos() < r.Len() {
		id, err := r.ReadID()
		if err != nil {
			return nil, fmt.Errorf("failed to read chunk ID at %d: %w", r.Pos(), err)
		}

		size, err := cursor.ReadFixed[uint32](r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q chunk size: %w", id[:], err)
		}

		start := r.Pos()

		switch classifyChunk(id) {
		case tagFmt:
			if err := f.decodeFmtChunk(r, size); err != nil {
				return nil, err
			}

			seenFmt = true
		case tagData:
			if !seenFmt {
				return nil, fmt.Errorf("%w: data chunk at %d precedes the fmt chunk", ErrMalformedContainer, start)
			}

			if err := f.decodeDataChunk(r, size); err != nil {
				return nil, err
			}

			seenData = true
		case tagSmpl:
			if size != SampleMetadataSize {
				f.diagnostics = append(f.diagnostics, Diagnostic{Kind: SmplChunkUnsupported, ID: id, Offset: start, Size: size})

				break
			}

			f.sampler, err = cursor.ReadFixed[SampleMetadata](r)
			if err != nil {
				return nil, fmt.Errorf("failed to read the smpl chunk: %w", err)
			}

			seenSmpl = true
		default:
			f.diagnostics = append(f.diagnostics, Diagnostic{Kind: ChunkDiscarded, ID: id, Offset: start, Size: size})
		}

		// skips whatever the handler left unread, including unknown bodies
		if err := r.SetPos(start + int64(size)); err != nil {
			return nil, err
		}
	}

	if predictedSize != r.Pos() {
		return nil, fmt.Errorf("%w: definition %d, result %d", ErrSizeMismatch, predictedSize, r.Pos())
	}

	if !seenFmt || !seenData {
		return nil, fmt.Errorf("%w: fmt present=%t, data present=%t", ErrMalformedContainer, seenFmt, seenData)
	}

	if seenSmpl {
		f.sampler.NumSampleLoops = 1
	} else {
		f.sampler = defaultSampleMetadata(f.sampleCount)
	}

	return f, nil
}

// readRiffHeader checks the RIFF/WAVE envelope and returns the total file
// size it declares.
func readRiffHeader(r *cursor.Reader) (int64, error) {
	ok, err := r.ReadAndCompareASCII(4, string(riff.RiffID[:]))
	if err != nil {
		return 0, fmt.Errorf("failed to read the RIFF header: %w", err)
	}

	if !ok {
		return 0, fmt.Errorf("%w: unexpected RIFF header", ErrMalformedContainer)
	}

	size, err := cursor.ReadFixed[uint32](r)
	if err != nil {
		return 0, fmt.Errorf("failed to read the RIFF size: %w", err)
	}

	ok, err = r.ReadAndCompareASCII(4, string(riff.WavFormatID[:]))
	if err != nil {
		return 0, fmt.Errorf("failed to read the WAVE header: %w", err)
	}

	if !ok {
		return 0, fmt.Errorf("%w: unexpected WAVE header", ErrMalformedContainer)
	}

	return int64(size) + riffHeaderSize, nil
}

func (f *File) decodeFmtChunk(r *cursor.Reader, size uint32) error {
	if size < FormatRecordSize {
		return fmt.Errorf("%w: fmt chunk size %d", ErrUnsupportedChunk, size)
	}

	format, err := cursor.ReadFixed[FormatRecord](r)
	if err != nil {
		return fmt.Errorf("failed to read the fmt chunk: %w", err)
	}

	if !validChannelCount(format.NumChannels) {
		return fmt.Errorf("%w: channel count %d", ErrUnsupportedFormat, format.NumChannels)
	}

	f.format = format

	return nil
}

func (f *File) decodeDataChunk(r *cursor.Reader, size uint32) error {
	// size is checked before the payload is allocated
	if int64(size) > r.Remaining() {
		return fmt.Errorf("%w: data chunk of %d bytes, %d left", ErrOutOfBounds, size, r.Remaining())
	}

	payload := make([]byte, size)

	if err := r.ReadInto(payload, int(size)); err != nil {
		return fmt.Errorf("failed to read the data chunk: %w", err)
	}

	f.payload = payload
	f.sampleCount = size / uint32(f.format.NumChannels) / bytesPerFrameSample

	return nil
}
