package wavloop

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

const (
	// LoopMarkerSize is the encoded size of LoopMarker.
	LoopMarkerSize = 24
	// SampleMetadataSize is the encoded size of SampleMetadata, which is the
	// only smpl chunk size honored on read.
	SampleMetadataSize = 60
)

// LoopMarker is a single smpl loop record. Start and End are sample frames.
type LoopMarker struct {
	ID        uint32
	Type      uint32
	Start     uint32
	End       uint32
	Fraction  uint32
	PlayCount uint32
}

// SampleMetadata is a smpl chunk body carrying exactly one loop and no
// sampler-specific data.
type SampleMetadata struct {
	Manufacturer      uint32
	Product           uint32
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	// NumSampleLoops is forced to 1 after parsing.
	NumSampleLoops  uint32
	SamplerDataSize uint32
	Loop            LoopMarker
}

// defaultSampleMetadata is used when the source has no usable smpl chunk: a
// single loop covering the whole sample.
func defaultSampleMetadata(sampleCount uint32) SampleMetadata {
	return SampleMetadata{
		NumSampleLoops: 1,
		Loop:           LoopMarker{End: sampleCount - 1},
	}
}
