package browserrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jpalmerr/browserrun/internal/bootstrap"
	"github.com/jpalmerr/browserrun/internal/server"
	"github.com/jpalmerr/browserrun/internal/wasminspect"
)

const (
	defaultAddr       = "127.0.0.1:0"
	defaultProjectDir = "."
)

// Runner serves one browser test run.
//
// Runner is created using [New] with functional options. [Runner.Spawn]
// writes the bootstrap script and starts the server; [Runner.Start] does the
// same and blocks until its context is cancelled.
//
// The typical lifecycle is:
//
//	inv, _ := browserrun.NewInvocation("my_crate", browserrun.WithTests("__wbgt_a_0"))
//	r, err := browserrun.New(
//	    browserrun.WithInvocation(inv),
//	    browserrun.WithWorkDir(dir),
//	    browserrun.WithHeadless(true),
//	)
//	if err != nil {
//	    return err
//	}
//
//	sess, err := r.Spawn(ctx)
//	if err != nil {
//	    return err
//	}
//	driver.Navigate(sess.URL())
type Runner struct {
	invocation     Invocation
	addr           string
	headless       bool
	workDir        string
	projectDir     string
	logger         *slog.Logger
	discoverTests  bool
	readyCallbacks []func(*Session)
}

// New creates a new [Runner] with the given options.
//
// [WithInvocation] and [WithWorkDir] are required. Other options have
// defaults:
//   - Address: 127.0.0.1:0 (ephemeral port)
//   - Project dir: current directory
//   - Headless: false
//
// Returns an error if a required option is missing or any option is invalid.
func New(opts ...Option) (*Runner, error) {
	cfg := &runnerConfig{
		addr:       defaultAddr,
		projectDir: defaultProjectDir,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.invocation == nil {
		return nil, errors.New("an invocation is required")
	}
	if cfg.workDir == "" {
		return nil, errors.New("a work dir is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		invocation:     *cfg.invocation,
		addr:           cfg.addr,
		headless:       cfg.headless,
		workDir:        cfg.workDir,
		projectDir:     cfg.projectDir,
		logger:         logger,
		discoverTests:  cfg.discoverTests,
		readyCallbacks: cfg.readyCallbacks,
	}, nil
}

// Session is a running server for one test run.
type Session struct {
	id         string
	addr       net.Addr
	scriptPath string
	tests      []string
}

// ID returns the unique identifier of the session, used in log entries.
func (s *Session) ID() string {
	return s.id
}

// Addr returns the address the server is bound to.
func (s *Session) Addr() net.Addr {
	return s.addr
}

// URL returns the root page URL a browser should navigate to.
func (s *Session) URL() string {
	return "http://" + s.addr.String() + "/"
}

// ScriptPath returns the path of the generated bootstrap script.
func (s *Session) ScriptPath() string {
	return s.scriptPath
}

// Tests returns a copy of the tests the bootstrap script runs, in order.
func (s *Session) Tests() []string {
	return copyStrings(s.tests)
}

// Spawn generates the bootstrap script, writes it into the work directory and
// starts the server. It returns once the server is listening.
//
// Any failure here is fatal to the run: invalid names, test discovery or
// script write failures and bind failures are all returned. The server stops
// when ctx is cancelled.
func (r *Runner) Spawn(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	logger := r.logger.With("session_id", id)

	params := r.invocation.params()
	if len(params.Tests) == 0 && r.discoverTests {
		binPath := filepath.Join(r.workDir, r.invocation.BinaryName())
		tests, err := wasminspect.ReadAndDiscover(ctx, binPath)
		if err != nil {
			return nil, fmt.Errorf("failed to discover tests: %w", err)
		}
		logger.Info("tests discovered", "count", len(tests), "binary", binPath)
		params.Tests = tests
	}

	script, err := bootstrap.Generate(params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bootstrap script: %w", err)
	}
	scriptPath, err := bootstrap.WriteScript(r.workDir, script)
	if err != nil {
		return nil, err
	}

	handler := server.NewHandler(r.workDir, r.projectDir, r.headless, logger)
	httpServer := server.NewServer(r.addr, handler, logger)
	if err := httpServer.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start HTTP server: %w", err)
	}

	sess := &Session{
		id:         id,
		addr:       httpServer.Addr(),
		scriptPath: scriptPath,
		tests:      params.Tests,
	}
	logger.Info("test server listening",
		"url", sess.URL(),
		"module", params.Module,
		"tests", len(params.Tests),
		"headless", r.headless,
	)
	return sess, nil
}

// Start spawns the server, invokes the ready callbacks and blocks until ctx
// is cancelled.
//
// For signal handling, use [signal.NotifyContext]:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//	r.Start(ctx)
//
// Returns nil on cancellation. Returns an error if [Runner.Spawn] fails.
func (r *Runner) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	sess, err := r.Spawn(ctx)
	if err != nil {
		return err
	}

	for _, cb := range r.readyCallbacks {
		invokeCallbackSafe(cb, sess, r.logger)
	}

	<-ctx.Done()
	r.logger.Info("test server stopped", "session_id", sess.id)
	return nil
}

// Invocation returns the configured invocation.
func (r *Runner) Invocation() Invocation {
	return r.invocation
}

// WorkDir returns the configured work directory.
func (r *Runner) WorkDir() string {
	return r.workDir
}

// invokeCallbackSafe calls a ready callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(*Session), sess *Session, logger *slog.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("ready callback panicked",
				"panic", rec,
				"session_id", sess.id,
			)
		}
	}()
	cb(sess)
}
