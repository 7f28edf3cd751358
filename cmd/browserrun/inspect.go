package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/browserrun/internal/wasminspect"
)

// inspectCmd lists the test entry points a compiled module exports.
var inspectCmd = &cobra.Command{
	Use:   "inspect <module_bg.wasm>",
	Short: "List test entry points exported by a wasm binary",
	Long: `List the test entry points exported by a compiled wasm binary, one per
line, in the order serve --discover would run them.

Example:
  browserrun inspect target/wbg-out/my_crate_bg.wasm
  browserrun inspect --prefix __wbgt_parse out/my_crate_bg.wasm`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("prefix", wasminspect.TestPrefix, "export name prefix that marks a test")
}

func runInspect(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("prefix")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read wasm module: %w", err)
	}
	tests, err := wasminspect.DiscoverTests(cmd.Context(), data, prefix)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for _, name := range tests {
		fmt.Fprintln(out, name)
	}
	return nil
}
