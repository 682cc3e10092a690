// This tool exports the loop region of a wav file (loop point to loop end) as
// an aiff file, so the loop can be auditioned on its own.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavloop"
	"github.com/go-audio/aiff"
)

var (
	errMissingPath = errors.New("you must set the -path flag")
	errEmptyLoop   = errors.New("the loop region is empty")
)

func main() {
	outPath, err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Loop region exported to %s\n", outPath)
}

func run(args []string) (string, error) {
	flagSet := flag.NewFlagSet("loop2aiff", flag.ContinueOnError)

	sourcePath := flagSet.String("path", "", "The path to the wav file to export the loop of")
	outFlag := flagSet.String("out", "", "Destination aiff file, defaults to the source path with a .aif extension")

	if err := flagSet.Parse(args); err != nil {
		return "", err
	}

	if *sourcePath == "" {
		return "", errMissingPath
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = (*sourcePath)[:len(*sourcePath)-len(filepath.Ext(*sourcePath))] + ".aif"
	}

	return outPath, exportLoop(*sourcePath, outPath)
}

func exportLoop(sourcePath, outPath string) (err error) {
	f, err := wavloop.Open(sourcePath)
	if err != nil {
		return err
	}
	defer f.Close()

	region, err := f.LoopRegion()
	if err != nil {
		return err
	}

	if len(region.Data) == 0 {
		return fmt.Errorf("%w: loop point %d, loop end %d", errEmptyLoop, f.LoopPoint(), f.Sampler().Loop.End)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	defer func() {
		cerr := outFile.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", outPath, cerr)
		}
	}()

	format := f.Format()
	encoder := aiff.NewEncoder(outFile, int(format.SampleRate), 16, int(format.NumChannels))

	if err := encoder.Write(region); err != nil {
		return fmt.Errorf("failed to write the loop region: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close the aiff encoder: %w", err)
	}

	return nil
}
