package main

import "github.com/ytget/bing-wallpaper/internal/cli"

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
