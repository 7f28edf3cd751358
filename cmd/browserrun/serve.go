package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/browserrun"
	"github.com/jpalmerr/browserrun/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd writes the bootstrap script and serves the work directory.
var serveCmd = &cobra.Command{
	Use:   "serve [flags] [-- runtime args...]",
	Short: "Serve a wasm test run",
	Long: `Serve a compiled wasm test module to a browser.

The server will:
  - Write run.js into the work directory
  - Serve the root page on /
  - Serve files from the work directory, falling back to the project directory

Settings come from a YAML config (-c) or from flags. Flags given alongside a
config override the matching config fields. Anything after "--" is forwarded
verbatim to the in-browser test context.

The server runs until interrupted (Ctrl+C) or receives SIGTERM. The URL is
printed to stdout once the listener is bound.

Example:
  browserrun serve -c browserrun.yaml
  browserrun serve -w target/wbg-out -m my_crate --discover --headless
  browserrun serve -w out -m my_crate -t __wbgt_parses_0 -- --nocapture`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.StringP("config", "c", "", "path to config file")
	f.StringP("work-dir", "w", "", "directory holding the compiled module")
	f.StringP("module", "m", "", "base name of the JS glue module")
	f.StringP("project-dir", "p", "", "fallback directory for assets (default \".\")")
	f.StringP("addr", "a", "", "address to listen on (default 127.0.0.1:0)")
	f.Bool("headless", false, "serve the page that mirrors console output into the DOM")
	f.StringArrayP("test", "t", nil, "test entry point to run (repeatable, order kept)")
	f.Bool("discover", false, "read test entry points from the binary when none are given")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	runtimeArgs, err := splitRuntimeArgs(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := serveConfig(cmd, runtimeArgs)
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"work_dir", cfg.WorkDir,
		"project_dir", cfg.ProjectDir,
		"module", cfg.Module,
		"tests", len(cfg.Tests),
		"discover", cfg.Discover,
	)

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}

	out := cmd.OutOrStdout()
	opts = append(opts,
		browserrun.WithLogger(logger),
		browserrun.WithReadyCallback(func(sess *browserrun.Session) {
			fmt.Fprintln(out, sess.URL())
		}),
	)

	runner, err := browserrun.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- runner.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}

// splitRuntimeArgs returns the arguments that followed "--". Positional
// arguments before it are rejected.
func splitRuntimeArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash == -1 {
		if len(args) > 0 {
			return nil, fmt.Errorf("unexpected arguments %q: pass runtime args after --", args)
		}
		return nil, nil
	}
	if dash > 0 {
		return nil, fmt.Errorf("unexpected arguments %q: pass runtime args after --", args[:dash])
	}
	return args[dash:], nil
}

// serveConfig reads the config file if one was given, applies any flags the
// user set on top of it and validates the result once. Environment variables
// are expanded in file values only; flag values and runtime args are taken
// as given.
func serveConfig(cmd *cobra.Command, runtimeArgs []string) (*config.Config, error) {
	f := cmd.Flags()
	cfg := &config.Config{}

	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else if !f.Changed("work-dir") || !f.Changed("module") {
		return nil, errors.New("either --config or both --work-dir and --module are required")
	}

	if f.Changed("work-dir") {
		cfg.WorkDir, _ = f.GetString("work-dir")
	}
	if f.Changed("module") {
		cfg.Module, _ = f.GetString("module")
	}
	if f.Changed("project-dir") {
		cfg.ProjectDir, _ = f.GetString("project-dir")
	}
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
	if f.Changed("headless") {
		cfg.Headless, _ = f.GetBool("headless")
	}
	if f.Changed("test") {
		cfg.Tests, _ = f.GetStringArray("test")
	}
	if f.Changed("discover") {
		cfg.Discover, _ = f.GetBool("discover")
	}
	if len(runtimeArgs) > 0 {
		cfg.Args = runtimeArgs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
