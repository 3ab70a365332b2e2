package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigSetDirAndShow(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "Documents", config.ConfigFileName)
	dir := t.TempDir()

	out, err := execute(t, "config", "set-dir", dir, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Default directory set to "+dir)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"default_directory"`)

	out, err = execute(t, "config", "set-dir", dir, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")

	out, err = execute(t, "config", "show", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Directory: "+dir)
	assert.Contains(t, out, "Config:    "+configPath)
}

func TestConfigSetDirRejectsMissingDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), config.ConfigFileName)

	_, err := execute(t, "config", "set-dir", filepath.Join(t.TempDir(), "missing"), "--config", configPath)

	require.ErrorIs(t, err, download.ErrInvalidDirectory)
	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr), "config must not be written")
}

func TestConfigPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), config.ConfigFileName)

	out, err := execute(t, "config", "path", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath+"\n", out)
}

func TestGetRejectsBothQualities(t *testing.T) {
	_, err := execute(t, "get", "https://youtu.be/dQw4w9WgXcQ", "-v", "720p", "-a", "128kbps")
	require.Error(t, err)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		clip    string
		clipErr error
		want    string
		wantErr bool
	}{
		{name: "argument wins", args: []string{"https://youtu.be/dQw4w9WgXcQ"}, clip: "ignored", want: "https://youtu.be/dQw4w9WgXcQ"},
		{name: "clipboard trimmed", clip: "  https://youtu.be/dQw4w9WgXcQ\n", want: "https://youtu.be/dQw4w9WgXcQ"},
		{name: "empty clipboard", clip: "   ", wantErr: true},
		{name: "clipboard unavailable", clipErr: errors.New("no xclip"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveURL(tt.args, func() (string, error) { return tt.clip, tt.clipErr })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRequest(t *testing.T) {
	dir := t.TempDir()
	root := &rootOptions{configPath: filepath.Join(t.TempDir(), config.ConfigFileName)}

	tests := []struct {
		name      string
		opts      getOptions
		wantVideo model.VideoQuality
		wantAudio model.AudioQuality
		wantErr   bool
	}{
		{name: "default quality", opts: getOptions{directory: dir}, wantVideo: DefaultVideoQuality},
		{name: "video", opts: getOptions{directory: dir, video: "1080p"}, wantVideo: model.Video1080p},
		{name: "audio", opts: getOptions{directory: dir, audio: "320kbps"}, wantAudio: model.Audio320kbps},
		{name: "unknown video", opts: getOptions{directory: dir, video: "4k"}, wantErr: true},
		{name: "unknown audio", opts: getOptions{directory: dir, audio: "64kbps"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := buildRequest(root, &tt.opts, "https://youtu.be/dQw4w9WgXcQ")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dir, req.Directory)
			assert.Equal(t, tt.wantVideo, req.Video)
			assert.Equal(t, tt.wantAudio, req.Audio)
		})
	}
}

func TestBuildRequestUsesConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), config.ConfigFileName)
	_, err := config.NewStore(configPath, "/fallback").SaveDefaultDirectory(dir)
	require.NoError(t, err)

	req, err := buildRequest(&rootOptions{configPath: configPath}, &getOptions{}, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, dir, req.Directory)
}

func TestProgressModel(t *testing.T) {
	cancelled := false
	m := newProgressModel("https://youtu.be/dQw4w9WgXcQ", func() { cancelled = true })

	next, _ := m.Update(eventMsg(download.Event{
		Kind: download.EventStatus,
		Task: model.DownloadTask{Status: model.TaskStatusDownloading, Title: "Clip"},
	}))
	m = next.(progressModel)
	assert.Equal(t, model.TaskStatusDownloading, m.status)
	assert.Contains(t, m.View(), "Clip")

	next, _ = m.Update(eventMsg(download.Event{
		Kind:     download.EventProgress,
		Progress: download.Progress{Percent: 25, Downloaded: 250_000, Total: 1_000_000},
	}))
	m = next.(progressModel)
	assert.Equal(t, 25.0, m.progress.Percent)
	assert.Contains(t, m.View(), "25.0%")
	assert.Contains(t, m.View(), "250 kB / 1.0 MB")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(progressModel)
	assert.True(t, cancelled)
	assert.Contains(t, m.View(), "Stopping")

	res := &download.Result{Path: "/tmp/Clip.mp4"}
	next, cmd := m.Update(eventMsg(download.Event{Kind: download.EventCompleted, Result: res, Task: model.DownloadTask{Status: model.TaskStatusCompleted}}))
	m = next.(progressModel)
	require.NotNil(t, cmd)
	assert.True(t, m.status.IsFinished())
	assert.Equal(t, res, m.result)
	assert.Equal(t, download.MaxPercent, m.progress.Percent)
	assert.NotContains(t, m.View(), "q: stop")
}

func TestProgressModelFailure(t *testing.T) {
	m := newProgressModel("https://youtu.be/dQw4w9WgXcQ", nil)
	failure := &download.DownloadError{Op: "download", Err: errors.New("HTTP Error 403: Forbidden")}

	next, cmd := m.Update(eventMsg(download.Event{Kind: download.EventFailed, Err: failure, Task: model.DownloadTask{Status: model.TaskStatusError}}))
	m = next.(progressModel)

	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.err, failure)
	assert.Contains(t, m.View(), "HTTP Error 403")
}

func TestPrintSummaryNil(t *testing.T) {
	var out bytes.Buffer
	printSummary(context.Background(), &out, nil, time.Second)
	assert.Empty(t, out.String())
}

func TestPrintSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Clip.mp4")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	var out bytes.Buffer
	printSummary(context.Background(), &out, &download.Result{Path: path, Uploader: "Rick Astley", MIMEType: "video/mp4"}, 3*time.Second)

	assert.Contains(t, out.String(), "Saved "+path)
	assert.Contains(t, out.String(), "Rick Astley")
	assert.Contains(t, out.String(), "video/mp4")
	assert.Contains(t, out.String(), "2.0 kB")
	assert.Contains(t, out.String(), "took 3s")
}

// stubEngine reports half then full progress and writes an mp4 stub
type stubEngine struct {
	block bool
}

func (e *stubEngine) ExtractInfo(ctx context.Context, url string) (*download.VideoInfo, error) {
	return &download.VideoInfo{ID: "dQw4w9WgXcQ", Title: "Clip", Uploader: "Rick Astley"}, nil
}

func (e *stubEngine) Download(ctx context.Context, url string, opts download.Options, progress func(download.ProgressUpdate)) error {
	if e.block {
		<-ctx.Done()
		return errors.New("signal: killed")
	}
	progress(download.ProgressUpdate{Status: download.StatusDownloading, DownloadedBytes: 50, TotalBytes: 100})
	progress(download.ProgressUpdate{Status: download.StatusFinished})
	path := strings.Replace(opts.OutputTemplate, "%(ext)s", download.ExtensionVideo, 1)
	return os.WriteFile(path, []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00"), 0644)
}

func TestRunPlain(t *testing.T) {
	dir := t.TempDir()
	req := model.DownloadRequest{URL: "https://youtu.be/dQw4w9WgXcQ", Directory: dir, Video: model.Video720p}

	var out bytes.Buffer
	res, err := runPlain(context.Background(), &out, download.NewService(&stubEngine{}), req)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Clip.mp4"), res.Path)
	assert.Equal(t, "Rick Astley", res.Uploader)
	assert.Contains(t, out.String(), "Downloading https://youtu.be/dQw4w9WgXcQ")
	assert.Contains(t, out.String(), " 50%\n")
	assert.Contains(t, out.String(), "100%\n")
	assert.NotContains(t, out.String(), " 60%")
}

func TestRunPlainStopped(t *testing.T) {
	req := model.DownloadRequest{URL: "https://youtu.be/dQw4w9WgXcQ", Directory: t.TempDir(), Video: model.Video720p}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := runPlain(ctx, io.Discard, download.NewService(&stubEngine{block: true}), req)
	assert.ErrorIs(t, err, errStopped)
}

func TestRunPlainValidationError(t *testing.T) {
	req := model.DownloadRequest{URL: "not a link", Directory: t.TempDir(), Video: model.Video720p}

	_, err := runPlain(context.Background(), io.Discard, download.NewService(&stubEngine{}), req)
	assert.ErrorIs(t, err, download.ErrInvalidURL)
}
