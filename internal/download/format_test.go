package download

import (
	"strings"
	"testing"

	"github.com/ytget/yt-grabber/internal/model"
)

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name       string
		video      model.VideoQuality
		audio      model.AudioQuality
		ok         bool
		contains   string
		audioOnly  bool
		expression string
	}{
		{
			name:       "video only",
			video:      model.Video1080p,
			audio:      model.AudioSelect,
			ok:         true,
			contains:   "height<=1080",
			expression: "bestvideo[ext=mp4][height<=1080]+bestaudio",
		},
		{
			name:       "audio only",
			video:      model.VideoSelect,
			audio:      model.Audio320kbps,
			ok:         true,
			contains:   "abr<=320",
			audioOnly:  true,
			expression: "bestaudio[ext=m4a][abr<=320]",
		},
		{
			name:     "video wins when both are set",
			video:    model.Video360p,
			audio:    model.Audio128kbps,
			ok:       true,
			contains: "height<=360",
		},
		{
			name:  "nothing selected",
			video: model.VideoSelect,
			audio: model.AudioSelect,
		},
		{
			name: "empty values count as nothing selected",
		},
		{
			name:     "already stripped values",
			video:    "720",
			audio:    model.AudioSelect,
			ok:       true,
			contains: "height<=720]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := SelectFormat(tt.video, tt.audio)
			if ok != tt.ok {
				t.Fatalf("ok = %v, expected %v", ok, tt.ok)
			}
			if !ok {
				if f != (Format{}) {
					t.Errorf("expected zero Format, got %+v", f)
				}
				return
			}
			if !strings.Contains(f.Expression, tt.contains) {
				t.Errorf("expression %q does not contain %q", f.Expression, tt.contains)
			}
			if tt.expression != "" && f.Expression != tt.expression {
				t.Errorf("expression = %q, expected %q", f.Expression, tt.expression)
			}
			if f.AudioOnly != tt.audioOnly {
				t.Errorf("AudioOnly = %v, expected %v", f.AudioOnly, tt.audioOnly)
			}
		})
	}
}

func TestFormat_Extension(t *testing.T) {
	if ext := (Format{AudioOnly: true}).Extension(); ext != ExtensionAudio {
		t.Errorf("audio extension = %s, expected %s", ext, ExtensionAudio)
	}
	if ext := (Format{}).Extension(); ext != ExtensionVideo {
		t.Errorf("video extension = %s, expected %s", ext, ExtensionVideo)
	}
}
