package ffmpeg

// Package ffmpeg locates the ffmpeg toolchain used for audio extraction and
// reads media duration from finished files with ffprobe.
