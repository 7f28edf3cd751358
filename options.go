package browserrun

import (
	"errors"
	"log/slog"
)

// runnerConfig holds mutable state during Runner construction.
type runnerConfig struct {
	invocation     *Invocation
	addr           string
	headless       bool
	workDir        string
	projectDir     string
	logger         *slog.Logger
	discoverTests  bool
	readyCallbacks []func(*Session)
}

// Option is a function that configures a [Runner] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*runnerConfig) error

// WithInvocation sets the module, arguments and tests of the run.
// Required.
//
// Example:
//
//	inv, _ := browserrun.NewInvocation("my_crate", browserrun.WithTests("__wbgt_a_0"))
//	r, err := browserrun.New(
//	    browserrun.WithInvocation(inv),
//	    browserrun.WithWorkDir(dir),
//	)
func WithInvocation(inv Invocation) Option {
	return func(cfg *runnerConfig) error {
		if inv.module == "" {
			return errors.New("invocation must be created with NewInvocation")
		}
		cfg.invocation = &inv
		return nil
	}
}

// WithAddr sets the TCP address the server listens on.
//
// Use port 0 to pick an ephemeral port and read it back from [Session.Addr].
// Defaults to "127.0.0.1:0".
//
// Returns an error if addr is empty.
func WithAddr(addr string) Option {
	return func(cfg *runnerConfig) error {
		if addr == "" {
			return errors.New("addr cannot be empty")
		}
		cfg.addr = addr
		return nil
	}
}

// WithHeadless selects the headless root page, which mirrors console output
// into DOM elements for drivers that cannot read the browser console.
func WithHeadless(headless bool) Option {
	return func(cfg *runnerConfig) error {
		cfg.headless = headless
		return nil
	}
}

// WithWorkDir sets the directory holding the compiled artifacts. The
// generated script is written there, so it must exist and be writable.
// Required.
//
// Returns an error if dir is empty.
func WithWorkDir(dir string) Option {
	return func(cfg *runnerConfig) error {
		if dir == "" {
			return errors.New("work dir cannot be empty")
		}
		cfg.workDir = dir
		return nil
	}
}

// WithProjectDir sets the directory searched for assets not found in the
// work directory, such as JS snippets imported by relative path.
// Defaults to the current directory.
//
// Returns an error if dir is empty.
func WithProjectDir(dir string) Option {
	return func(cfg *runnerConfig) error {
		if dir == "" {
			return errors.New("project dir cannot be empty")
		}
		cfg.projectDir = dir
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Runner instance.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *runnerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTestDiscovery makes the runner read the test entry points from the
// compiled binary's exports when the invocation names no tests.
func WithTestDiscovery() Option {
	return func(cfg *runnerConfig) error {
		cfg.discoverTests = true
		return nil
	}
}

// WithReadyCallback registers a function called by [Runner.Start] once the
// server is listening, typically to point a browser driver at [Session.URL].
//
// Multiple callbacks run in registration order. Panics within callbacks are
// recovered and logged. Nil callbacks are silently ignored.
func WithReadyCallback(cb func(*Session)) Option {
	return func(cfg *runnerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.readyCallbacks = append(cfg.readyCallbacks, cb)
		return nil
	}
}
