package download

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-grabber/internal/platform"
)

// Resolver turns a URL into a free, filesystem-safe output stem.
type Resolver struct {
	engine Engine
}

// NewResolver creates a resolver backed by engine metadata
func NewResolver(engine Engine) *Resolver {
	return &Resolver{engine: engine}
}

// Resolve fetches the title, sanitises it and disambiguates it against
// existing <stem>.<ext> files in dir. It returns the stem and the metadata.
func (r *Resolver) Resolve(ctx context.Context, dir, url, ext string) (string, *VideoInfo, error) {
	info, err := r.engine.ExtractInfo(ctx, url)
	if err != nil {
		return "", nil, &DownloadError{Op: "metadata", Err: err}
	}
	if info == nil {
		return "", nil, &DownloadError{Op: "metadata", Err: fmt.Errorf("no metadata returned for %s", url)}
	}

	title := platform.SanitizeTitle(info.Title)
	if title == "" {
		id := info.ID
		if id == "" {
			id = platform.ExtractVideoID(url)
		}
		title = platform.SanitizeTitle(id)
	}
	if title == "" {
		title = platform.FallbackTitle
	}

	stem := platform.UniqueStem(dir, title, ext)
	log.Debug().Str("op", "download/resolve").Str("title", info.Title).Str("stem", stem).Msg("resolved output name")
	return stem, info, nil
}
