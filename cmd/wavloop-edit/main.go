// This tool is an interactive terminal editor for the loop point of a wav
// file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/wavloop"
)

var errMissingPath = errors.New("you must set the -file flag")

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavloop-edit", flag.ContinueOnError)

	path := flagSet.String("file", "", "The wav file to edit")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	f, err := wavloop.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, d := range f.Diagnostics() {
		log.Printf("warning: %s", d)
	}

	m, err := newModel(*path, f)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if fm, ok := final.(model); ok && fm.dirty {
		log.Printf("warning: unsaved loop point %d discarded", fm.file.LoopPoint())
	}

	return nil
}
