package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/qrkit/internal/cli"
)

// Set via ldflags: go build -ldflags="-X main.version=1.0.0"
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stderr, cli.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
