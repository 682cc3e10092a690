package wavloop

// FormatRecordSize is the encoded size of FormatRecord.
const FormatRecordSize = 16

const wavFormatPCM = 1

// FormatRecord is the fixed 16-byte head of a fmt chunk. Bytes past the first
// 16 are ignored on read and never written.
type FormatRecord struct {
	FormatTag   uint16
	NumChannels uint16
	SampleRate  uint32
	// ByteRate should equal SampleRate * NumChannels * BitDepth/8. It is kept
	// as read and not validated.
	ByteRate   uint32
	BlockAlign uint16
	BitDepth   uint16
}

// ExpectedByteRate returns the byte rate implied by the other fields.
func (f FormatRecord) ExpectedByteRate() uint32 {
	return f.SampleRate * uint32(f.ExpectedBlockAlign())
}

// ExpectedBlockAlign returns the frame size implied by the channel count and
// bit depth.
func (f FormatRecord) ExpectedBlockAlign() uint16 {
	return f.NumChannels * ((f.BitDepth + 7) / 8)
}

// IsPCM reports whether the format tag is integer PCM.
func (f FormatRecord) IsPCM() bool {
	return f.FormatTag == wavFormatPCM
}

func validChannelCount(n uint16) bool {
	return n == 1 || n == 2
}
