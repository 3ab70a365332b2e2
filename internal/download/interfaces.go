package download

import (
	"context"

	"github.com/ytget/yt-grabber/internal/model"
)

// Post-processing constants
const (
	PostProcessorExtractAudio = "FFmpegExtractAudio"
	AudioCodecMP3             = "mp3"
	AudioQualityMP3           = "192"
	MergeContainerMP4         = "mp4"
)

// VideoInfo is the subset of engine metadata the app uses
type VideoInfo struct {
	ID       string
	Title    string
	Uploader string
	Duration float64 // seconds
}

// PostProcessor describes one engine-side step applied after the raw download
type PostProcessor struct {
	Key              string
	PreferredCodec   string
	PreferredQuality string
}

// Options is the engine configuration for one download
type Options struct {
	Format            string
	OutputTemplate    string
	MergeOutputFormat string
	RestrictFilenames bool
	PostProcessors    []PostProcessor
}

// Engine is the media extraction/download/transcode backend.
type Engine interface {
	// ExtractInfo fetches metadata without downloading.
	ExtractInfo(ctx context.Context, url string) (*VideoInfo, error)
	// Download blocks until the file is written or ctx is done. progress is
	// called from the engine's goroutine.
	Download(ctx context.Context, url string, opts Options, progress func(ProgressUpdate)) error
}

// Downloader is what the UI and CLI need from the download service.
type Downloader interface {
	Validate(req model.DownloadRequest) (Format, error)
	Start(ctx context.Context, req model.DownloadRequest) (*model.DownloadTask, <-chan Event, error)
}
