package wavloop

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavloop/internal/cursor"
	"github.com/go-audio/riff"
)

// chunkHeaderSize covers a chunk ID and its size field.
const chunkHeaderSize = 8

// dataChunkLen is the number of payload bytes written back: whole frames
// only.
func (f *File) dataChunkLen() int64 {
	return int64(f.sampleCount) * int64(f.format.NumChannels) * bytesPerFrameSample
}

// encodedSize returns the exact size of the file Save writes.
func (f *File) encodedSize() int64 {
	size := int64(riffHeaderSize + 4)
	size += chunkHeaderSize + FormatRecordSize
	size += chunkHeaderSize + f.dataChunkLen()
	size += chunkHeaderSize + SampleMetadataSize

	return size
}

// Encode writes the file to w in the order RIFF header, fmt, data, smpl.
// Skipped chunks are not written.
func (f *File) Encode(w io.Writer) error {
	if f == nil || f.released {
		return ErrReleased
	}

	size := f.encodedSize()
	if size-riffHeaderSize > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes don't fit a RIFF container", ErrOutOfBounds, size)
	}

	if f.dataChunkLen() > int64(len(f.payload)) {
		return fmt.Errorf("%w: payload holds %d bytes, %d needed", ErrOutOfBounds, len(f.payload), f.dataChunkLen())
	}

	out, err := cursor.NewWriter(size)
	if err != nil {
		return err
	}

	if err := f.writeChunks(out, size); err != nil {
		return err
	}

	return out.Finalize(w)
}

func (f *File) writeChunks(out *cursor.Writer, size int64) error {
	err := out.WriteLE(riff.RiffID)
	if err != nil {
		return fmt.Errorf("failed to write the RIFF ID: %w", err)
	}

	err = out.WriteLE(uint32(size - riffHeaderSize))
	if err != nil {
		return fmt.Errorf("failed to write the RIFF size: %w", err)
	}

	err = out.WriteLE(riff.WavFormatID)
	if err != nil {
		return fmt.Errorf("failed to write the WAVE ID: %w", err)
	}

	err = writeChunkHeader(out, riff.FmtID, FormatRecordSize)
	if err != nil {
		return err
	}

	err = cursor.WriteFixed(out, f.format)
	if err != nil {
		return fmt.Errorf("failed to write the fmt chunk: %w", err)
	}

	dataLen := f.dataChunkLen()

	err = writeChunkHeader(out, riff.DataFormatID, uint32(dataLen))
	if err != nil {
		return err
	}

	err = out.WriteFrom(f.payload, int(dataLen))
	if err != nil {
		return fmt.Errorf("failed to write the data chunk: %w", err)
	}

	err = writeChunkHeader(out, CIDSmpl, SampleMetadataSize)
	if err != nil {
		return err
	}

	sampler := f.sampler
	sampler.NumSampleLoops = 1

	err = cursor.WriteFixed(out, sampler)
	if err != nil {
		return fmt.Errorf("failed to write the smpl chunk: %w", err)
	}

	return nil
}

func writeChunkHeader(out *cursor.Writer, id [4]byte, size uint32) error {
	if err := out.WriteLE(id); err != nil {
		return fmt.Errorf("failed to write chunk ID %q: %w", id[:], err)
	}

	if err := out.WriteLE(size); err != nil {
		return fmt.Errorf("failed to write chunk size %q: %w", id[:], err)
	}

	return nil
}

// Bytes returns the encoded file.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	if err := f.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes the encoded file to path, replacing any existing file. The
// output is fully built in memory and then handed to WriteFile.
func (f *File) Save(path string) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}

	return WriteFile(path, data)
}

// WriteFile writes data to a temporary file next to path and renames it over
// path, so a failed write leaves an existing file in place. An existing file
// keeps its permissions.
func WriteFile(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	out, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("couldn't create a temporary file for %s: %w", path, err)
	}

	tmpPath := out.Name()

	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	if err := out.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set the mode of %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
