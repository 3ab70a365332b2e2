package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// EventBufferSize is the capacity of a task's event channel. Progress events
// are dropped when it is full; status and terminal events are not.
const EventBufferSize = 64

// EventKind classifies task events
type EventKind int

const (
	EventStatus EventKind = iota
	EventProgress
	EventCompleted
	EventFailed
)

// Event is sent from a running task to its consumer. Task is a snapshot.
type Event struct {
	Kind     EventKind
	Task     model.DownloadTask
	Progress Progress
	Result   *Result
	Err      error
}

// Result describes a finished download
type Result struct {
	Path     string
	Title    string
	Uploader string
	MIMEType string
	Format   Format
}

// Service validates requests and runs downloads through an Engine
type Service struct {
	engine     Engine
	resolver   *Resolver
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
}

// NewService creates a new download service
func NewService(engine Engine) *Service {
	return &Service{
		engine:   engine,
		resolver: NewResolver(engine),
		tasks:    make(map[string]*model.DownloadTask),
	}
}

// Validate checks the URL, then the directory, then the quality choice, and
// returns the selected format. It never touches the engine.
func (s *Service) Validate(req model.DownloadRequest) (Format, error) {
	req = req.Normalized()

	if req.URL == "" || !platform.IsValidVideoURL(req.URL) {
		return Format{}, ErrInvalidURL
	}
	if !platform.IsDirectory(req.Directory) {
		return Format{}, ErrInvalidDirectory
	}

	f, ok := SelectFormat(req.Video, req.Audio)
	if !ok {
		return Format{}, ErrNoFormat
	}
	return f, nil
}

// BuildOptions assembles the engine configuration for a resolved name
func BuildOptions(dir, stem string, f Format) Options {
	opts := Options{
		Format:            f.Expression,
		OutputTemplate:    filepath.Join(dir, stem+".%(ext)s"),
		MergeOutputFormat: MergeContainerMP4,
		RestrictFilenames: true,
	}
	if f.AudioOnly {
		opts.PostProcessors = []PostProcessor{{
			Key:              PostProcessorExtractAudio,
			PreferredCodec:   AudioCodecMP3,
			PreferredQuality: AudioQualityMP3,
		}}
	}
	return opts
}

// Download runs a request synchronously. onProgress may be nil.
func (s *Service) Download(ctx context.Context, req model.DownloadRequest, onProgress func(Progress)) (*Result, error) {
	req = req.Normalized()
	f, err := s.Validate(req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req, f, nil, onProgress)
}

// Start validates synchronously and runs the download on a goroutine. The
// returned channel receives status and progress events followed by exactly
// one EventCompleted or EventFailed, then is closed. Consumers must drain it.
// Cancelling ctx aborts the engine and ends the task as Stopped.
func (s *Service) Start(ctx context.Context, req model.DownloadRequest) (*model.DownloadTask, <-chan Event, error) {
	req = req.Normalized()
	f, err := s.Validate(req)
	if err != nil {
		log.Info().Str("op", "download/start").Str("url", req.URL).Err(err).Msg("request rejected")
		return nil, nil, err
	}

	task := &model.DownloadTask{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Directory: req.Directory,
		Format:    f.Expression,
		AudioOnly: f.AudioOnly,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	snapshot := *task
	s.tasksMutex.Unlock()

	events := make(chan Event, EventBufferSize)
	go s.runTask(ctx, task, req, f, events)

	log.Info().Str("op", "download/start").Str("task", task.ID).Str("url", req.URL).Str("format", f.Expression).Msg("download started")
	return &snapshot, events, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

func (s *Service) runTask(ctx context.Context, task *model.DownloadTask, req model.DownloadRequest, f Format, events chan<- Event) {
	defer close(events)
	defer func() {
		if r := recover(); r != nil {
			err := unexpected(fmt.Errorf("%v", r))
			log.Error().Str("op", "download/task").Str("task", task.ID).Err(err).Msg("download panicked")
			events <- s.finish(task, nil, err)
		}
	}()

	onStatus := func() {
		events <- Event{Kind: EventStatus, Task: s.snapshot(task)}
	}
	onProgress := func(p Progress) {
		ev := Event{Kind: EventProgress, Task: s.snapshot(task), Progress: p}
		select {
		case events <- ev:
		default:
		}
	}

	res, err := s.run(ctx, req, f, &taskHooks{task: task, service: s, onStatus: onStatus}, onProgress)
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	events <- s.finish(task, res, err)
}

type taskHooks struct {
	task     *model.DownloadTask
	service  *Service
	onStatus func()
}

func (h *taskHooks) setStatus(status model.TaskStatus) {
	if h == nil {
		return
	}
	h.service.update(h.task, func(t *model.DownloadTask) { t.Status = status })
	h.onStatus()
}

func (h *taskHooks) setTitle(title string) {
	if h == nil {
		return
	}
	h.service.update(h.task, func(t *model.DownloadTask) { t.Title = title })
}

func (h *taskHooks) setProgress(p Progress) {
	if h == nil {
		return
	}
	h.service.update(h.task, func(t *model.DownloadTask) {
		t.Percent = p.Percent
		t.Downloaded = p.Downloaded
		t.Total = p.Total
	})
}

func (s *Service) run(ctx context.Context, req model.DownloadRequest, f Format, hooks *taskHooks, onProgress func(Progress)) (*Result, error) {
	ext := f.Extension()

	hooks.setStatus(model.TaskStatusResolving)
	stem, info, err := s.resolver.Resolve(ctx, req.Directory, req.URL, ext)
	if err != nil {
		return nil, err
	}
	hooks.setTitle(info.Title)

	opts := BuildOptions(req.Directory, stem, f)
	reporter := NewReporter(func(p Progress) {
		hooks.setProgress(p)
		if onProgress != nil {
			onProgress(p)
		}
	})

	hooks.setStatus(model.TaskStatusDownloading)
	if err := s.engine.Download(ctx, req.URL, opts, reporter.Handle); err != nil {
		if ctx.Err() != nil {
			log.Debug().Str("op", "download/run").Float64("percent", reporter.Percent()).Msg("engine interrupted")
		}
		return nil, &DownloadError{Op: "download", Err: err}
	}
	// some engines skip the final hook, e.g. when the file already existed
	reporter.Handle(ProgressUpdate{Status: StatusFinished})

	outputPath := platform.OutputPath(req.Directory, stem, ext)
	if !platform.PathExists(outputPath) {
		return nil, unexpected(fmt.Errorf("expected output %s was not created", outputPath))
	}

	mimeType, err := platform.DetectMIMEType(outputPath)
	if err != nil {
		log.Warn().Str("op", "download/run").Str("path", outputPath).Err(err).Msg("could not detect file type")
		mimeType = platform.UnknownMIMEType
	}

	return &Result{
		Path:     outputPath,
		Title:    info.Title,
		Uploader: info.Uploader,
		MIMEType: mimeType,
		Format:   f,
	}, nil
}

func (s *Service) finish(task *model.DownloadTask, res *Result, err error) Event {
	s.update(task, func(t *model.DownloadTask) {
		t.FinishedAt = time.Now()
		switch {
		case err == nil:
			t.Status = model.TaskStatusCompleted
			t.Percent = MaxPercent
			t.OutputPath = res.Path
			t.MIMEType = res.MIMEType
		case errors.Is(err, context.Canceled):
			t.Status = model.TaskStatusStopped
			t.LastError = err.Error()
		default:
			t.Status = model.TaskStatusError
			t.LastError = err.Error()
		}
	})

	snapshot := s.snapshot(task)
	if err != nil {
		log.Error().Str("op", "download/finish").Str("task", task.ID).Str("status", snapshot.Status.String()).
			Str("progress", snapshot.GetPercentString()).Err(err).Msg("download failed")
		return Event{Kind: EventFailed, Task: snapshot, Err: err}
	}

	log.Info().Str("op", "download/finish").Str("task", task.ID).Str("path", res.Path).Str("mime", res.MIMEType).
		Dur("elapsed", snapshot.Elapsed()).Msg("download completed")
	return Event{Kind: EventCompleted, Task: snapshot, Result: res, Progress: Progress{Percent: MaxPercent, Downloaded: snapshot.Downloaded, Total: snapshot.Total, Finished: true}}
}

func (s *Service) update(task *model.DownloadTask, fn func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	fn(task)
}

func (s *Service) snapshot(task *model.DownloadTask) model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return *task
}
