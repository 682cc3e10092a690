package wavloop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// ChunkInfo describes one chunk found in a RIFF/WAVE stream.
type ChunkInfo struct {
	ID   [4]byte
	Size uint32
	// Offset is the position of the chunk body.
	Offset int64
	// Kept reports whether Save writes this kind of chunk back.
	Kept bool
}

func (c ChunkInfo) String() string {
	state := "kept"
	if !c.Kept {
		state = "discarded"
	}

	return fmt.Sprintf("%q\t%d bytes @%d\t%s", c.ID[:], c.Size, c.Offset, state)
}

// ReadChunkInventory lists the chunks of a RIFF/WAVE stream without decoding
// them. Chunks are walked the same way Parse does, without word alignment.
func ReadChunkInventory(r io.Reader) ([]ChunkInfo, error) {
	parser := riff.New(r)

	id, size, err := parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: %s - %w", ErrMalformedContainer, id[:], riff.ErrFmtNotSupported)
	}

	parser.ID = id
	parser.Size = size

	if err := binary.Read(r, binary.BigEndian, &parser.Format); err != nil {
		return nil, fmt.Errorf("failed to read format: %w", err)
	}

	if parser.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: %s - %w", ErrMalformedContainer, parser.Format[:], riff.ErrFmtNotSupported)
	}

	var chunks []ChunkInfo

	offset := int64(riffHeaderSize + 4)

	for {
		id, size, err := parser.IDnSize()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}

		if err != nil {
			return chunks, fmt.Errorf("error reading chunk header at %d - %w", offset, err)
		}

		offset += chunkHeaderSize

		chunk := &riff.Chunk{
			ID:   id,
			Size: int(size),
			R:    io.LimitReader(r, int64(size)),
		}

		chunks = append(chunks, ChunkInfo{
			ID:     id,
			Size:   size,
			Offset: offset,
			Kept:   classifyChunk(id).kept(),
		})

		n, err := io.Copy(io.Discard, chunk)
		if err != nil {
			return chunks, fmt.Errorf("failed to skip chunk %q: %w", id[:], err)
		}

		if n != int64(size) {
			return chunks, fmt.Errorf("chunk %q truncated after %d of %d bytes: %w", id[:], n, size, io.ErrUnexpectedEOF)
		}

		offset += int64(size)
	}
}
