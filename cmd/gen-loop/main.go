// This tool generates a sine tone wav file with a loop point, handy to check
// how a sampler or game engine loops a sustained sound.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavloop"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-loop", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	loopAt := flagSet.Float64("loop", 0, "loop point in seconds")
	stereo := flagSet.Bool("stereo", false, "write two identical channels")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	log.Printf("generating a %f sec sine wav at %f hz looping at %f sec", *length, *frequency, *loopAt)

	const sampleRate = 48000

	numChans := 1
	if *stereo {
		numChans = 2
	}

	if err := writeSine(*output, sampleRate, numChans, *frequency, *length); err != nil {
		return err
	}

	f, err := wavloop.Open(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	f.SetLoopPoint(f.ClampLoopPoint(int64(math.Round(*loopAt * sampleRate))))

	return f.Save(*output)
}

func writeSine(path string, sampleRate, numChans int, frequency, length float64) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	defer func() {
		cerr := file.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	numFrames := int(float64(sampleRate) * length)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, numFrames*numChans),
	}

	for i := range numFrames {
		fv := math.Sin(float64(i) / float64(sampleRate) * frequency * 2 * math.Pi)

		for ch := range numChans {
			buf.Data[i*numChans+ch] = int(math.Round(fv * 32767))
		}
	}

	wavOut := wav.NewEncoder(file, sampleRate, 16, numChans, 1)

	if err := wavOut.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	return wavOut.Close()
}
