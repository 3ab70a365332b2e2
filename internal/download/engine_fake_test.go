package download

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

var (
	mp4Header = append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00"), make([]byte, 32)...)
	mp3Header = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...)
)

// fakeEngine writes a small file with a real signature instead of downloading
type fakeEngine struct {
	mu sync.Mutex

	id          string
	title       string
	infoErr     error
	downloadErr error
	skipWrite   bool
	blockUntil  bool // block Download until ctx is done
	panicMsg    string
	updates     []ProgressUpdate

	infoCalls     int
	downloadCalls int
	lastOptions   Options
}

func newFakeEngine(title string) *fakeEngine {
	return &fakeEngine{
		id:    "dQw4w9WgXcQ",
		title: title,
		updates: []ProgressUpdate{
			{Status: StatusDownloading, DownloadedBytes: 50, TotalBytes: 200},
			{Status: StatusDownloading, DownloadedBytes: 200, TotalBytes: 200},
			{Status: StatusFinished},
		},
	}
}

func (f *fakeEngine) ExtractInfo(ctx context.Context, url string) (*VideoInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &VideoInfo{ID: f.id, Title: f.title}, nil
}

func (f *fakeEngine) Download(ctx context.Context, url string, opts Options, progress func(ProgressUpdate)) error {
	f.mu.Lock()
	f.downloadCalls++
	f.lastOptions = opts
	f.mu.Unlock()

	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.blockUntil {
		<-ctx.Done()
		return errors.New("signal: killed")
	}
	if f.downloadErr != nil {
		return f.downloadErr
	}

	for _, u := range f.updates {
		progress(u)
	}
	if f.skipWrite {
		return nil
	}

	ext, header := ExtensionVideo, mp4Header
	if len(opts.PostProcessors) > 0 {
		ext, header = ExtensionAudio, mp3Header
	}
	path := strings.Replace(opts.OutputTemplate, "%(ext)s", ext, 1)
	return os.WriteFile(path, header, 0644)
}

func (f *fakeEngine) calls() (info, download int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls, f.downloadCalls
}
