package platform

import (
	"regexp"
	"strconv"
	"strings"
)

// VideoIDLength is the fixed length of a YouTube video id
const VideoIDLength = 11

// videoURLPattern accepts watch?v= and youtu.be/ links, scheme and www.
// optional. The id must end the string, so extra query parameters fail.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)([\w-]{` + strconv.Itoa(VideoIDLength) + `})$`)

// IsValidVideoURL reports whether s is a single-video YouTube link
func IsValidVideoURL(s string) bool {
	return videoURLPattern.MatchString(s)
}

// ExtractVideoID returns the VideoIDLength character id of a valid link, or "".
func ExtractVideoID(s string) string {
	m := videoURLPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	return m[len(m)-1]
}
