package ui

import (
	"fyne.io/fyne/v2/data/binding"

	"github.com/ytget/yt-grabber/internal/model"
)

// AppState is the view-model behind the download form. Widgets are bound to
// it, so tests and event handlers read and write values here only.
type AppState struct {
	URL       binding.String
	Directory binding.String
	Video     binding.String
	Audio     binding.String
	Status    binding.String
	Progress  binding.Float
}

// NewAppState creates state with both quality selectors unset
func NewAppState(directory string) *AppState {
	s := &AppState{
		URL:       binding.NewString(),
		Directory: binding.NewString(),
		Video:     binding.NewString(),
		Audio:     binding.NewString(),
		Status:    binding.NewString(),
		Progress:  binding.NewFloat(),
	}
	_ = s.Directory.Set(directory)
	_ = s.Video.Set(string(model.VideoSelect))
	_ = s.Audio.Set(string(model.AudioSelect))
	return s
}

// Request snapshots the form into a download request
func (s *AppState) Request() model.DownloadRequest {
	return model.DownloadRequest{
		URL:       get(s.URL),
		Directory: get(s.Directory),
		Video:     model.VideoQuality(get(s.Video)),
		Audio:     model.AudioQuality(get(s.Audio)),
	}
}

func get(b binding.String) string {
	v, _ := b.Get()
	return v
}
