package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Executable and probe constants
const (
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
)

// ErrNotFound is returned when no ffmpeg binary can be resolved
var ErrNotFound = errors.New("ffmpeg not found; install it or set its location in Settings")

// lookPath is swapped in tests
var lookPath = exec.LookPath

// Locate resolves the ffmpeg binary. A configured location may point at the
// binary itself or at the directory holding it; when empty, PATH is searched.
func Locate(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured != "" {
		candidate := configured
		if info, err := os.Stat(configured); err == nil && info.IsDir() {
			candidate = filepath.Join(configured, binaryName(FFmpegCommand))
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		log.Warn().Str("op", "ffmpeg/locate").Str("configured", configured).Msg("configured ffmpeg location is not usable, falling back to PATH")
	}

	path, err := lookPath(FFmpegCommand)
	if err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// ProbeArgs builds the ffprobe arguments that print a file's duration in seconds
func ProbeArgs(filePath string) []string {
	return []string{
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		filePath,
	}
}

// ProbeDuration returns the media duration of filePath using ffprobe
func ProbeDuration(ctx context.Context, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, FFprobeCommand, ProbeArgs(filePath)...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return parseDuration(string(output))
}

func parseDuration(raw string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond), nil
}

func binaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
