package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp): request validation, format selection,
// output name resolution, engine invocation and progress propagation to the
// UI over an event channel.
