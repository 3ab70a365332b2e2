package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DownloadTask represents a single download started from the UI or CLI
type DownloadTask struct {
	ID         string
	URL        string
	Directory  string
	Format     string // engine format expression
	AudioOnly  bool
	Status     TaskStatus
	Percent    float64 // 0 to 100
	Downloaded int64   // bytes received so far
	Total      int64   // expected bytes, 0 if unknown
	LastError  string  // last error message if any
	Title      string  // video title from metadata
	OutputPath string  // path to downloaded file
	MIMEType   string  // detected type of the finished file
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetSizeString returns "downloaded / total", or just the downloaded amount
// when the total is unknown, or "—" before any bytes arrive.
func (dt *DownloadTask) GetSizeString() string {
	if dt.Downloaded <= 0 {
		return "—"
	}
	if dt.Total <= 0 {
		return humanize.Bytes(uint64(dt.Downloaded))
	}
	return fmt.Sprintf("%s / %s", humanize.Bytes(uint64(dt.Downloaded)), humanize.Bytes(uint64(dt.Total)))
}

// GetPercentString formats the percentage with one decimal
func (dt *DownloadTask) GetPercentString() string {
	return fmt.Sprintf("%.1f%%", dt.Percent)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) == 0 {
			return dt.URL
		}
		filename := parts[len(parts)-1]
		if idx := strings.LastIndex(filename, "."); idx > 0 {
			filename = filename[:idx]
		}
		return filename
	}

	return dt.URL
}

// Elapsed returns how long the task ran, or has been running so far
func (dt *DownloadTask) Elapsed() time.Duration {
	if dt.StartedAt.IsZero() {
		return 0
	}
	if dt.FinishedAt.IsZero() {
		return time.Since(dt.StartedAt)
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}
