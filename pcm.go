package wavloop

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// AudioFormat returns the go-audio description of the payload.
func (f *File) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(f.format.NumChannels),
		SampleRate:  int(f.format.SampleRate),
	}
}

// PCMBuffer decodes the whole payload as interleaved 16-bit samples.
func (f *File) PCMBuffer() (*audio.IntBuffer, error) {
	if f.released {
		return nil, ErrReleased
	}

	return f.frames(0, f.sampleCount), nil
}

// LoopRegion decodes the frames from the loop start to the loop end,
// inclusive. The end is clamped to the last frame; a start past the end
// yields an empty buffer.
func (f *File) LoopRegion() (*audio.IntBuffer, error) {
	if f.released {
		return nil, ErrReleased
	}

	if f.sampleCount == 0 {
		return f.frames(0, 0), nil
	}

	start := f.sampler.Loop.Start
	end := min(f.sampler.Loop.End, f.sampleCount-1)

	if start > end {
		return f.frames(0, 0), nil
	}

	return f.frames(start, end+1), nil
}

func (f *File) frames(from, to uint32) *audio.IntBuffer {
	numChans := int(f.format.NumChannels)

	buf := &audio.IntBuffer{
		Format:         f.AudioFormat(),
		SourceBitDepth: 16,
		Data:           make([]int, int(to-from)*numChans),
	}

	offset := int(from) * numChans * bytesPerFrameSample
	for i := range buf.Data {
		buf.Data[i] = int(int16(binary.LittleEndian.Uint16(f.payload[offset:])))
		offset += bytesPerFrameSample
	}

	return buf
}

// Peaks reduces buf to the given number of buckets, each holding the largest
// absolute sample of its frames across all channels, normalized to [0, 1].
func Peaks(buf *audio.IntBuffer, buckets int) []float64 {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || buckets < 1 {
		return nil
	}

	numChans := buf.Format.NumChannels
	numFrames := len(buf.Data) / numChans
	peaks := make([]float64, buckets)

	if numFrames == 0 {
		return peaks
	}

	for frame := range numFrames {
		bucket := frame * buckets / numFrames

		for ch := range numChans {
			v := math.Abs(float64(buf.Data[frame*numChans+ch])) / 32768

			if v > peaks[bucket] {
				peaks[bucket] = v
			}
		}
	}

	return peaks
}
