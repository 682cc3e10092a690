package wavloop

import "github.com/go-audio/riff"

// CIDSmpl is the chunk ID for a smpl chunk.
var CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}

type chunkTag int

const (
	tagUnknown chunkTag = iota
	tagFmt
	tagData
	tagSmpl
)

func (t chunkTag) String() string {
	switch t {
	case tagFmt:
		return "fmt"
	case tagData:
		return "data"
	case tagSmpl:
		return "smpl"
	default:
		return "unknown"
	}
}

// classifyChunk resolves a chunk ID by exact match.
func classifyChunk(id [4]byte) chunkTag {
	switch id {
	case riff.FmtID:
		return tagFmt
	case riff.DataFormatID:
		return tagData
	case CIDSmpl:
		return tagSmpl
	default:
		return tagUnknown
	}
}

// kept reports whether chunks with this tag survive a Save.
func (t chunkTag) kept() bool {
	return t != tagUnknown
}
