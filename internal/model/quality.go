package model

import "strings"

// SelectOption is the placeholder value of both quality selectors.
const SelectOption = "Select"

// VideoQuality is a target video height choice such as "720p".
type VideoQuality string

const (
	VideoSelect VideoQuality = SelectOption
	Video1080p  VideoQuality = "1080p"
	Video720p   VideoQuality = "720p"
	Video360p   VideoQuality = "360p"
	Video144p   VideoQuality = "144p"
)

// AudioQuality is a target audio bitrate choice such as "128kbps".
type AudioQuality string

const (
	AudioSelect  AudioQuality = SelectOption
	Audio320kbps AudioQuality = "320kbps"
	Audio256kbps AudioQuality = "256kbps"
	Audio128kbps AudioQuality = "128kbps"
)

// Unit suffixes stripped before building format expressions
const (
	VideoUnitSuffix = "p"
	AudioUnitSuffix = "kbps"
)

// VideoQualityOptions returns selector values in display order.
func VideoQualityOptions() []string {
	return []string{
		string(VideoSelect),
		string(Video1080p),
		string(Video720p),
		string(Video360p),
		string(Video144p),
	}
}

// AudioQualityOptions returns selector values in display order.
func AudioQualityOptions() []string {
	return []string{
		string(AudioSelect),
		string(Audio320kbps),
		string(Audio256kbps),
		string(Audio128kbps),
	}
}

// IsSelected reports whether a concrete height was chosen.
func (q VideoQuality) IsSelected() bool {
	return isSelected(string(q))
}

// Height returns the numeric part, e.g. "1080" for "1080p".
func (q VideoQuality) Height() string {
	return strings.TrimSuffix(strings.TrimSpace(string(q)), VideoUnitSuffix)
}

// IsSelected reports whether a concrete bitrate was chosen.
func (q AudioQuality) IsSelected() bool {
	return isSelected(string(q))
}

// Bitrate returns the numeric part, e.g. "320" for "320kbps".
func (q AudioQuality) Bitrate() string {
	return strings.TrimSuffix(strings.TrimSpace(string(q)), AudioUnitSuffix)
}

func isSelected(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != SelectOption
}
