package wavloop

import "time"

// LoopPoint returns the loop start in sample frames.
func (f *File) LoopPoint() uint32 {
	return f.sampler.Loop.Start
}

// SetLoopPoint sets the loop start in sample frames. The value is stored as
// is; callers are expected to keep it below SampleCount (see ClampLoopPoint).
func (f *File) SetLoopPoint(frame uint32) {
	f.sampler.Loop.Start = frame
}

// ClampLoopPoint clamps v to [0, SampleCount()-1].
func (f *File) ClampLoopPoint(v int64) uint32 {
	if v <= 0 || f.sampleCount == 0 {
		return 0
	}

	last := int64(f.sampleCount) - 1
	if v > last {
		return uint32(last)
	}

	return uint32(v)
}

// SampleCount returns the number of sample frames in the payload.
func (f *File) SampleCount() uint32 {
	return f.sampleCount
}

// SamplingRate returns the sample rate in Hz.
func (f *File) SamplingRate() uint32 {
	return f.format.SampleRate
}

// Format returns a copy of the fmt record.
func (f *File) Format() FormatRecord {
	return f.format
}

// Sampler returns a copy of the smpl record as it will be written.
func (f *File) Sampler() SampleMetadata {
	return f.sampler
}

// PayloadLen returns the size of the data chunk as read.
func (f *File) PayloadLen() int {
	return len(f.payload)
}

// Diagnostics returns the chunks skipped during parsing.
func (f *File) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), f.diagnostics...)
}

// LoopPointDuration returns the loop start as an offset from the beginning
// of the file.
func (f *File) LoopPointDuration() time.Duration {
	return framesToDuration(uint64(f.LoopPoint()), f.SamplingRate())
}

// Duration returns the playing time of the payload.
func (f *File) Duration() time.Duration {
	return framesToDuration(uint64(f.sampleCount), f.SamplingRate())
}

// Close releases the payload. Closing twice is a no-op; a closed File can't
// be serialized.
func (f *File) Close() error {
	if f == nil || f.released {
		return nil
	}

	f.payload = nil
	f.released = true

	return nil
}
