package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavloop"
	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

func writeTestWav(t *testing.T, path string, numFrames, sampleRate int) {
	t.Helper()

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, numFrames),
	}

	enc := gowav.NewEncoder(out, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRejectsOutWithDir(t *testing.T) {
	var out bytes.Buffer

	err := run([]string{"-dir", t.TempDir(), "-out", "x.wav"}, &out)
	if !errors.Is(err, errOutWithDir) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunPrintsSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWav(t, path, 8000, 8000)

	var outBuf bytes.Buffer
	if err := run([]string{"-file", path, "-info"}, &outBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := outBuf.String()
	checks := []string{
		"Format: tag 1, 1 ch, 8000 Hz, 16 bit",
		"Samples: 8000 (1s)",
		"Loop Point: 0",
		"Loop End: 7999",
		"Chunks:",
		"\"fmt \"",
		"\"data\"",
	}

	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Fatalf("expected output to contain %q\nfull output:\n%s", c, out)
		}
	}
}

func TestRunSetsLoopPoint(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want uint32
	}{
		{"frames", []string{"-loop", "1234"}, 1234},
		{"seconds", []string{"-seconds", "0.5"}, 4000},
		{"clamped", []string{"-loop", "999999"}, 7999},
		{"frames win over seconds", []string{"-loop", "10", "-seconds", "0.5"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in.wav")
			outPath := filepath.Join(dir, "out.wav")

			writeTestWav(t, in, 8000, 8000)

			var outBuf bytes.Buffer

			args := append([]string{"-file", in, "-out", outPath}, tt.args...)
			if err := run(args, &outBuf); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			f, err := wavloop.Open(outPath)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			if f.LoopPoint() != tt.want {
				t.Fatalf("loop point=%d, want %d", f.LoopPoint(), tt.want)
			}

			orig, err := wavloop.Open(in)
			if err != nil {
				t.Fatal(err)
			}
			defer orig.Close()

			if orig.LoopPoint() != 0 {
				t.Fatal("the input should be left untouched when -out is set")
			}
		})
	}
}

func TestRunDirWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeTestWav(t, filepath.Join(dir, "a.wav"), 100, 8000)

	if err := os.WriteFile(filepath.Join(dir, "broken.WAV"), []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600); err != nil {
		t.Fatal(err)
	}

	var outBuf bytes.Buffer
	if err := run([]string{"-dir", dir, "-loop", "50"}, &outBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := outBuf.String()
	if !strings.Contains(out, "warning: something went wrong processing") {
		t.Fatalf("expected a warning for the broken file\nfull output:\n%s", out)
	}

	if strings.Contains(out, "notes.txt") {
		t.Fatalf("non wav files must be skipped\nfull output:\n%s", out)
	}

	f, err := wavloop.Open(filepath.Join(dir, "a.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if f.LoopPoint() != 50 {
		t.Fatalf("loop point=%d, want 50", f.LoopPoint())
	}
}

func TestRunInvalidPath(t *testing.T) {
	var outBuf bytes.Buffer

	err := run([]string{"-file", "/nonexistent/path.wav"}, &outBuf)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRunFlagParseError(t *testing.T) {
	var outBuf bytes.Buffer

	if err := run([]string{"-loop", "not-a-number"}, &outBuf); err == nil {
		t.Fatal("expected failure for invalid flag value")
	}
}
