package main

import "github.com/ytget/yt-grabber/internal/cli"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cli.Execute(version)
}
