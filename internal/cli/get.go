package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/ffmpeg"
	"github.com/ytget/yt-grabber/internal/model"
)

// DefaultVideoQuality is used by get when neither --video nor --audio is given
const DefaultVideoQuality = model.Video720p

// plainProgressStep is the percentage between lines printed by --plain
const plainProgressStep = 10

type getOptions struct {
	directory string
	video     string
	audio     string
	ffmpeg    string
	plain     bool
}

// readClipboard is swapped in tests
var readClipboard = clipboard.ReadAll

func newGetCmd(root *rootOptions) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get [url]",
		Short: "Download a video, or its audio as MP3, without opening the window",
		Long: `get downloads a single YouTube video into the default directory.
When no URL is given the clipboard is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := resolveURL(args, readClipboard)
			if err != nil {
				return err
			}
			req, err := buildRequest(root, opts, url)
			if err != nil {
				return err
			}
			return runGet(cmd.Context(), cmd.OutOrStdout(), root, opts, req)
		},
	}

	cmd.Flags().StringVarP(&opts.directory, "dir", "d", "", "download directory (default from config)")
	cmd.Flags().StringVarP(&opts.video, "video", "v", "", "video resolution: "+strings.Join(model.VideoQualityOptions()[1:], ", "))
	cmd.Flags().StringVarP(&opts.audio, "audio", "a", "", "audio bitrate, saved as mp3: "+strings.Join(model.AudioQualityOptions()[1:], ", "))
	cmd.Flags().StringVar(&opts.ffmpeg, "ffmpeg", "", "path to ffmpeg or its directory")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print progress lines instead of the interactive view")
	cmd.MarkFlagsMutuallyExclusive("video", "audio")
	return cmd
}

// resolveURL takes the positional argument, falling back to the clipboard
func resolveURL(args []string, read func() (string, error)) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	text, err := read()
	if err != nil {
		return "", fmt.Errorf("no URL given and clipboard is unavailable: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no URL given and clipboard is empty: %w", download.ErrInvalidURL)
	}
	return text, nil
}

func buildRequest(root *rootOptions, opts *getOptions, url string) (model.DownloadRequest, error) {
	dir := opts.directory
	if dir == "" {
		store, err := openStore(root)
		if err != nil {
			return model.DownloadRequest{}, err
		}
		dir, err = store.Load()
		if err != nil {
			log.Warn().Str("op", "cli/get").Str("config", store.Path()).Err(err).Msg("config unreadable, using default directory")
		}
	}

	req := model.DownloadRequest{
		URL:       url,
		Directory: dir,
		Video:     model.VideoQuality(opts.video),
		Audio:     model.AudioQuality(opts.audio),
	}
	if !req.HasQuality() {
		req.Video = DefaultVideoQuality
	}
	if req.Video.IsSelected() && !isOption(model.VideoQualityOptions(), string(req.Video)) {
		return req, fmt.Errorf("unknown video quality %q", req.Video)
	}
	if req.Audio.IsSelected() && !isOption(model.AudioQualityOptions(), string(req.Audio)) {
		return req, fmt.Errorf("unknown audio quality %q", req.Audio)
	}
	return req, nil
}

func runGet(ctx context.Context, out io.Writer, root *rootOptions, opts *getOptions, req model.DownloadRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	ffmpegPath := opts.ffmpeg
	if req.Audio.IsSelected() && !req.Video.IsSelected() {
		path, err := ffmpeg.Locate(opts.ffmpeg)
		if err != nil {
			return err
		}
		ffmpegPath = path
	}

	svc := download.NewService(download.NewYTDLPEngine(ffmpegPath))
	if opts.plain {
		started := time.Now()
		res, err := runPlain(ctx, out, svc, req)
		if err != nil {
			return err
		}
		printSummary(ctx, out, res, time.Since(started))
		return nil
	}

	// log lines would tear the progress view apart
	if !root.debug {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	task, events, err := svc.Start(ctx, req)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newProgressModel(task.URL, cancel), tea.WithOutput(out))
	go func() {
		for ev := range events {
			p.Send(eventMsg(ev))
		}
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to run progress view: %w", err)
	}

	m := final.(progressModel)
	if m.err != nil {
		if errors.Is(m.err, context.Canceled) {
			return errStopped
		}
		return m.err
	}

	var elapsed time.Duration
	if finished, ok := svc.GetTask(task.ID); ok {
		elapsed = finished.Elapsed()
	}
	printSummary(ctx, out, m.result, elapsed)
	return nil
}

var errStopped = errors.New("download stopped")

// runPlain downloads synchronously and prints a line every plainProgressStep
// percent, for pipes and CI logs.
func runPlain(ctx context.Context, out io.Writer, svc *download.Service, req model.DownloadRequest) (*download.Result, error) {
	fmt.Fprintln(out, "Downloading "+req.URL)

	printed := 0
	res, err := svc.Download(ctx, req, func(p download.Progress) {
		step := int(p.Percent) / plainProgressStep * plainProgressStep
		if step > printed {
			printed = step
			fmt.Fprintf(out, "%3d%%\n", step)
		}
	})
	if err != nil && ctx.Err() != nil {
		return nil, errStopped
	}
	return res, err
}

func printSummary(ctx context.Context, out io.Writer, res *download.Result, elapsed time.Duration) {
	if res == nil {
		return
	}
	fmt.Fprintln(out, successStyle.Render("Saved "+res.Path))

	var details []string
	if res.Uploader != "" {
		details = append(details, res.Uploader)
	}
	details = append(details, res.MIMEType)
	if info, err := os.Stat(res.Path); err == nil {
		details = append(details, humanize.Bytes(uint64(info.Size())))
	}
	if d, err := ffmpeg.ProbeDuration(ctx, res.Path); err == nil {
		details = append(details, d.String())
	}
	if elapsed > 0 {
		details = append(details, "took "+elapsed.Round(time.Second).String())
	}
	fmt.Fprintln(out, mutedStyle.Render(strings.Join(details, " · ")))
}

func isOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
