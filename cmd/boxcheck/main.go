// Package main is the entry point for the boxcheck CLI.
//
// Build-time variables are injected via ldflags; during development they
// default to "dev", "none" and "unknown".
package main

import (
	"os"

	"github.com/ruudy-sib/boxcheck/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	os.Exit(cli.Execute(cli.NewRootCommand(), os.Stderr))
}
