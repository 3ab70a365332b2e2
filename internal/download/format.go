package download

import (
	"fmt"

	"github.com/ytget/yt-grabber/internal/model"
)

// Format expression templates passed to the engine
const (
	VideoFormatTemplate = "bestvideo[ext=mp4][height<=%s]+bestaudio"
	AudioFormatTemplate = "bestaudio[ext=m4a][abr<=%s]"
)

// Output extensions
const (
	ExtensionVideo = "mp4"
	ExtensionAudio = "mp3"
)

// Format is the resolved engine selector for one request
type Format struct {
	Expression string
	AudioOnly  bool
}

// Extension returns the extension of the file the engine will leave on disk
func (f Format) Extension() string {
	if f.AudioOnly {
		return ExtensionAudio
	}
	return ExtensionVideo
}

// SelectFormat maps the two selector values to a format expression. Video
// wins when both are set. ok is false when neither is set.
func SelectFormat(video model.VideoQuality, audio model.AudioQuality) (f Format, ok bool) {
	switch {
	case video.IsSelected():
		return Format{Expression: fmt.Sprintf(VideoFormatTemplate, video.Height())}, true
	case audio.IsSelected():
		return Format{Expression: fmt.Sprintf(AudioFormatTemplate, audio.Bitrate()), AudioOnly: true}, true
	default:
		return Format{}, false
	}
}
