// Package main is the entry point for the scnr CLI tool.
package main

import (
	"os"

	"github.com/scnrgo/scnr/internal/cli"
)

// Build-time metadata injected via ldflags.
var (
	version   = "dev"
	commit    = "none"
	date      = "unknown"
	goVersion = "unknown"
)

func main() {
	os.Exit(cli.Execute())
}
