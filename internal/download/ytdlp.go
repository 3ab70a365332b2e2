package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-grabber/internal/logging"
)

// DefaultProgressInterval throttles engine progress callbacks
const DefaultProgressInterval = 250 * time.Millisecond

// YTDLPEngine drives the yt-dlp binary through go-ytdlp.
type YTDLPEngine struct {
	ffmpegLocation   string
	progressInterval time.Duration
	log              zerolog.Logger

	installMu sync.Mutex
	installed bool
}

// NewYTDLPEngine creates an engine; an empty ffmpegLocation means PATH lookup.
func NewYTDLPEngine(ffmpegLocation string) *YTDLPEngine {
	return &YTDLPEngine{
		ffmpegLocation:   ffmpegLocation,
		progressInterval: DefaultProgressInterval,
		log:              logging.Component("ytdlp"),
	}
}

// EnsureInstalled resolves the yt-dlp binary, downloading it into the
// go-ytdlp cache when it is not on PATH.
func EnsureInstalled(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// ensure installs yt-dlp on first use. A failed attempt is retried by the
// next call.
func (e *YTDLPEngine) ensure(ctx context.Context) error {
	e.installMu.Lock()
	defer e.installMu.Unlock()
	if e.installed {
		return nil
	}
	if err := EnsureInstalled(ctx); err != nil {
		return err
	}
	e.installed = true
	return nil
}

// ExtractInfo runs yt-dlp in simulate mode and maps its JSON dump
func (e *YTDLPEngine) ExtractInfo(ctx context.Context, url string) (*VideoInfo, error) {
	if err := e.ensure(ctx); err != nil {
		return nil, err
	}
	res, err := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		PrintJSON().
		Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return videoInfoFromResult(res)
}

// videoInfoFromResult maps the first extracted info entry of a result
func videoInfoFromResult(res *ytdlp.Result) (*VideoInfo, error) {
	if res == nil {
		return nil, errors.New("yt-dlp returned no result")
	}
	info, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if len(info) == 0 {
		return nil, errors.New("yt-dlp returned no metadata")
	}

	v := &VideoInfo{ID: info[0].ID}
	if info[0].Title != nil {
		v.Title = *info[0].Title
	}
	if info[0].Uploader != nil {
		v.Uploader = *info[0].Uploader
	}
	if info[0].Duration != nil {
		v.Duration = *info[0].Duration
	}
	return v, nil
}

// Download runs yt-dlp with opts and forwards progress events
func (e *YTDLPEngine) Download(ctx context.Context, url string, opts Options, progress func(ProgressUpdate)) error {
	if err := e.ensure(ctx); err != nil {
		return err
	}
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		NoPlaylist()

	if opts.MergeOutputFormat != "" {
		dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if opts.RestrictFilenames {
		dl.RestrictFilenames()
	}
	for _, pp := range opts.PostProcessors {
		switch pp.Key {
		case PostProcessorExtractAudio:
			dl.ExtractAudio().
				AudioFormat(pp.PreferredCodec).
				AudioQuality(pp.PreferredQuality)
		default:
			e.log.Warn().Str("op", "download/ytdlp").Str("key", pp.Key).Msg("unsupported post-processor ignored")
		}
	}
	if e.ffmpegLocation != "" {
		dl.FFmpegLocation(e.ffmpegLocation)
	}

	if progress != nil {
		dl.ProgressFunc(e.progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(ProgressUpdate{
				Status:          ProgressStatus(update.Status),
				DownloadedBytes: int64(update.DownloadedBytes),
				TotalBytes:      int64(update.TotalBytes),
			})
		})
	}

	e.log.Debug().Str("op", "download/ytdlp").Str("url", url).Str("format", opts.Format).Msg("running yt-dlp")
	_, err := dl.Run(ctx, url)
	return err
}
