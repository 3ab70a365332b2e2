package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProbeArgs(t *testing.T) {
	args := ProbeArgs("/downloads/clip.mp4")

	expected := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		"/downloads/clip.mp4",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d", len(expected), len(args))
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"212.091000\n", 212091 * time.Millisecond, false},
		{"3", 3 * time.Second, false},
		{"N/A", 0, true},
		{"", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseDuration(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, binaryName(FFmpegCommand))
	if err := os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	original := lookPath
	t.Cleanup(func() { lookPath = original })

	tests := []struct {
		name       string
		configured string
		pathResult string
		pathErr    error
		want       string
		wantErr    error
	}{
		{name: "configured binary", configured: binary, want: binary},
		{name: "configured directory", configured: dir, want: binary},
		{name: "PATH lookup", pathResult: "/usr/bin/ffmpeg", want: "/usr/bin/ffmpeg"},
		{name: "unusable configured path falls back to PATH", configured: filepath.Join(dir, "nope"), pathResult: "/usr/bin/ffmpeg", want: "/usr/bin/ffmpeg"},
		{name: "missing everywhere", pathErr: errors.New("executable file not found in $PATH"), wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath = func(string) (string, error) { return tt.pathResult, tt.pathErr }

			got, err := Locate(tt.configured)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Locate() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Locate() = %q, want %q", got, tt.want)
			}
		})
	}
}
