package wavloop

import "fmt"

// DiagnosticKind classifies a non-fatal parse finding.
type DiagnosticKind int

const (
	// ChunkDiscarded marks a chunk with an unrecognized ID.
	ChunkDiscarded DiagnosticKind = iota
	// SmplChunkUnsupported marks a smpl chunk whose size isn't 60 bytes.
	SmplChunkUnsupported
)

// Diagnostic records a chunk that was skipped while parsing. Skipped chunks
// are not written back by Save.
type Diagnostic struct {
	Kind DiagnosticKind
	ID   [4]byte
	// Offset is the position of the chunk body in the source.
	Offset int64
	Size   uint32
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case SmplChunkUnsupported:
		return fmt.Sprintf("unsupported smpl chunk of %d bytes at offset %d, discarded", d.Size, d.Offset)
	default:
		return fmt.Sprintf("chunk %q of %d bytes at offset %d will be removed", d.ID[:], d.Size, d.Offset)
	}
}
