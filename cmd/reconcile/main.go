// Package main provides the entry point for the reconcile CLI tool.
package main

import (
	"github.com/jayjaychukwu/reconcilation/cmd/reconcile/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
