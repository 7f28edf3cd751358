// Package main is the entry point for the browserrun CLI.
//
// browserrun can be used either as a library (SDK) or as a standalone binary
// driven by flags or a YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	browserrun serve -c browserrun.yaml                  # Serve a test run from config
//	browserrun serve -w out -m my_crate -- --filter foo  # Serve a test run from flags
//	browserrun validate -c browserrun.yaml               # Validate configuration
//	browserrun inspect out/my_crate_bg.wasm              # List test entry points
//	browserrun version                                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "browserrun",
	Short: "Serve wasm tests to a real browser",
	Long: `browserrun serves a compiled wasm test module over HTTP so it can run
inside a real browser.

It writes a bootstrap script (run.js) into the work directory that loads the
module, forwards runtime arguments and runs the selected tests, then serves
that directory (and the project directory as a fallback) until interrupted.

Quick start:
  1. Compile your tests and generate the JS glue into a directory
  2. Run: browserrun serve -w <dir> -m <module> --discover
  3. Open the printed URL in a browser, or point a driver at it

Example config:
  addr: 127.0.0.1:8000
  headless: true
  work_dir: target/wbg-out
  module: my_crate
  discover: true`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this browserrun binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "browserrun %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
