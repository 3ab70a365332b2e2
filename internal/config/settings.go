package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyFFmpegLocation     = "ffmpeg_location"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages UI preferences that live outside the config file.
// The download directory is owned by Store.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal finished downloads in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal finished downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetFFmpegLocation returns a user supplied ffmpeg path, empty meaning PATH lookup
func (s *Settings) GetFFmpegLocation() string {
	return s.app.Preferences().String(KeyFFmpegLocation)
}

// SetFFmpegLocation stores the ffmpeg path handed to the engine
func (s *Settings) SetFFmpegLocation(path string) {
	s.app.Preferences().SetString(KeyFFmpegLocation, path)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
