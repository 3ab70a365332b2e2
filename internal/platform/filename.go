package platform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FallbackTitle is used when a title sanitises down to nothing
const FallbackTitle = "video"

var (
	illegalFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)
	repeatedUnderscores  = regexp.MustCompile(`_+`)
)

// SanitizeTitle strips characters that are illegal in filenames on common
// filesystems and collapses runs of underscores.
func SanitizeTitle(title string) string {
	title = illegalFilenameChars.ReplaceAllString(title, "")
	title = repeatedUnderscores.ReplaceAllString(title, "_")
	return strings.TrimSpace(title)
}

// UniqueStem returns stem if <dir>/<stem>.<ext> is free, otherwise the first
// free "<stem>.(N)" for N = 1, 2, ... The scan is unbounded and not safe
// against concurrent writers.
func UniqueStem(dir, stem, ext string) string {
	if !PathExists(stemPath(dir, stem, ext)) {
		return stem
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.(%d)", stem, i)
		if !PathExists(stemPath(dir, candidate, ext)) {
			return candidate
		}
	}
}

// OutputPath joins a resolved stem and extension under dir
func OutputPath(dir, stem, ext string) string {
	return stemPath(dir, stem, ext)
}

func stemPath(dir, stem, ext string) string {
	return filepath.Clean(filepath.Join(dir, stem+"."+ext))
}
