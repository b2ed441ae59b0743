// Package main is the entry point for the webfleet CLI.
//
// webfleet is a command-line tool for standing up a small fleet of web
// servers on AWS: a VPC with public subnets, locked-down security groups,
// one control node running the configuration-management agent, and N
// managed nodes serving a status page. It is stateless apart from a
// per-environment fingerprint record.
//
// Commands: init, plan, apply, destroy, version, completion.
//
// For detailed usage information, run:
//
//	webfleet --help
package main

import (
	"fmt"
	"os"

	"github.com/webfleet/webfleet/cmd/webfleet/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
