package model

import "strings"

// DownloadRequest is everything the user picked before pressing Download.
type DownloadRequest struct {
	URL       string
	Directory string
	Video     VideoQuality
	Audio     AudioQuality
}

// Normalized returns a copy with surrounding whitespace removed from the
// URL and directory, which is what pasted input usually carries.
func (r DownloadRequest) Normalized() DownloadRequest {
	r.URL = strings.TrimSpace(r.URL)
	r.Directory = strings.TrimSpace(r.Directory)
	return r
}

// HasQuality reports whether either selector holds a concrete value.
func (r DownloadRequest) HasQuality() bool {
	return r.Video.IsSelected() || r.Audio.IsSelected()
}
