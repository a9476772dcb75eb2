// Package main is the entry point for the Keyfort CLI.
package main

import (
	"os"

	"github.com/keyfort/keyfort/internal/cli"
)

// Build metadata, injected via -ldflags.
var (
	version string
	commit  string
	date    string
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
