// This tool prints and edits the loop point stored in the smpl chunk of wav
// files. Edited files only keep their fmt, data and smpl chunks; use -info to
// see what a save would drop.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavloop"
)

const missingPathMessage = "You need to pass -file or -dir to indicate what file or folder content to process."

var (
	errMissingPath = errors.New("missing -file or -dir argument")
	errOutWithDir  = errors.New("-out can't be combined with -dir")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

// loopEdit is the requested loop point, in frames or in seconds.
type loopEdit struct {
	frames  int64
	seconds float64
}

func (e loopEdit) requested() bool {
	return e.frames >= 0 || e.seconds >= 0
}

func (e loopEdit) frame(f *wavloop.File) uint32 {
	if e.frames >= 0 {
		return f.ClampLoopPoint(e.frames)
	}

	return f.ClampLoopPoint(int64(math.Round(e.seconds * float64(f.SamplingRate()))))
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavloop", flag.ContinueOnError)
	flagSet.SetOutput(out)

	file := flagSet.String("file", "", "Path to the wave file to inspect or edit")
	dir := flagSet.String("dir", "", "Directory containing all the wav files to process")
	output := flagSet.String("out", "", "Path of the edited file, defaults to overwriting -file")
	frames := flagSet.Int64("loop", -1, "Loop point in sample frames, clamped to the sample")
	seconds := flagSet.Float64("seconds", -1, "Loop point in seconds, ignored when -loop is set")
	info := flagSet.Bool("info", false, "List every chunk and whether saving keeps it")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *file == "" && *dir == "" {
		return errMissingPath
	}

	if *dir != "" && *output != "" {
		return errOutWithDir
	}

	edit := loopEdit{frames: *frames, seconds: *seconds}
	logger := log.New(out, "warning: ", 0)

	if *file != "" {
		err := processFile(*file, *output, edit, *info, out, logger)
		if err != nil {
			return fmt.Errorf("something went wrong when processing %s - %w", *file, err)
		}
	}

	if *dir == "" {
		return nil
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", *dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())

		err := processFile(path, "", edit, *info, out, logger)
		if err != nil {
			logger.Printf("something went wrong processing %s - %v", path, err)
		}
	}

	return nil
}

func processFile(path, outPath string, edit loopEdit, showInventory bool, out io.Writer, logger *log.Logger) error {
	f, err := wavloop.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, d := range f.Diagnostics() {
		logger.Printf("%s: %s", path, d)
	}

	printSummary(out, path, f)

	if showInventory {
		if err := printInventory(out, path); err != nil {
			return err
		}
	}

	if !edit.requested() {
		return nil
	}

	f.SetLoopPoint(edit.frame(f))

	if outPath == "" {
		outPath = path
	}

	if err := f.Save(outPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Loop point set to %d (%.3f sec), saved to %s\n", f.LoopPoint(), f.LoopPointDuration().Seconds(), outPath)

	return nil
}

func printSummary(out io.Writer, path string, f *wavloop.File) {
	format := f.Format()
	smpl := f.Sampler()

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "Format: tag %d, %d ch, %d Hz, %d bit\n", format.FormatTag, format.NumChannels, format.SampleRate, format.BitDepth)
	fmt.Fprintf(out, "Samples: %d (%s)\n", f.SampleCount(), f.Duration())
	fmt.Fprintf(out, "Loop Point: %d\n", f.LoopPoint())
	fmt.Fprintf(out, "Loop Point (sec): %.3f\n", f.LoopPointDuration().Seconds())
	fmt.Fprintf(out, "Loop End: %d\n", smpl.Loop.End)
}

func printInventory(out io.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s - %w", path, err)
	}
	defer in.Close()

	chunks, err := wavloop.ReadChunkInventory(in)
	if err != nil {
		return fmt.Errorf("failed to list chunks of %s: %w", path, err)
	}

	fmt.Fprintln(out, "Chunks:")

	for i, c := range chunks {
		fmt.Fprintf(out, "\tchunk [%d]:\t%s\n", i, c)
	}

	return nil
}
