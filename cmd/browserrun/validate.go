package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/browserrun/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a browserrun configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields, including module and test names. It's useful for CI pipelines
before a browser is launched.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  browserrun validate -c browserrun.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	tests := fmt.Sprintf("%d", len(cfg.Tests))
	if len(cfg.Tests) == 0 {
		if cfg.Discover {
			tests = "discovered from binary"
		} else {
			tests = "0 (none will run)"
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Addr:        %s\n", cfg.Addr)
	fmt.Fprintf(out, "  Headless:    %t\n", cfg.Headless)
	fmt.Fprintf(out, "  Work dir:    %s\n", cfg.WorkDir)
	fmt.Fprintf(out, "  Project dir: %s\n", cfg.ProjectDir)
	fmt.Fprintf(out, "  Module:      %s (binary %s_bg.wasm)\n", cfg.Module, cfg.Module)
	fmt.Fprintf(out, "  Args:        %s\n", strings.Join(cfg.Args, " "))
	fmt.Fprintf(out, "  Tests:       %s\n", tests)

	return nil
}
