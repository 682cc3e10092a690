package wavloop

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func newTestChunk(id string, data []byte) testChunk {
	return testChunk{id: id, size: uint32(len(data)), data: data}
}

// buildWav assembles a RIFF/WAVE file from chunks in the given order, with a
// correct RIFF size and no padding.
func buildWav(chunks ...testChunk) []byte {
	var body bytes.Buffer

	body.WriteString("WAVE")

	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(&body, binary.LittleEndian, c.size)
		body.Write(c.data)
	}

	var out bytes.Buffer

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func fmtChunkData(numChans uint16, sampleRate uint32) []byte {
	rec := FormatRecord{
		FormatTag:   wavFormatPCM,
		NumChannels: numChans,
		SampleRate:  sampleRate,
		ByteRate:    sampleRate * uint32(numChans) * 2,
		BlockAlign:  numChans * 2,
		BitDepth:    16,
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, rec)

	return buf.Bytes()
}

func smplChunkData(meta SampleMetadata) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, meta)

	return buf.Bytes()
}

// pcmData returns frames*numChans little-endian 16-bit samples with a
// recognizable pattern.
func pcmData(frames, numChans int) []byte {
	out := make([]byte, frames*numChans*2)
	for i := range frames * numChans {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(i*37-1000)))
	}

	return out
}

func mustParse(t *testing.T, b []byte) *File {
	t.Helper()

	f, err := Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return f
}

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}
