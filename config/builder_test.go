package config

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpalmerr/browserrun"
)

func TestBuildInvocation(t *testing.T) {
	cfg := &Config{
		Module: "m",
		Args:   []string{"--filter", "foo"},
		Tests:  []string{"a", "b"},
	}

	inv, err := BuildInvocation(cfg)
	if err != nil {
		t.Fatalf("BuildInvocation() error = %v", err)
	}
	if inv.Module() != "m" {
		t.Errorf("Module() = %q, want m", inv.Module())
	}
	if strings.Join(inv.Args(), " ") != "--filter foo" {
		t.Errorf("Args() = %v", inv.Args())
	}
	if strings.Join(inv.Tests(), ",") != "a,b" {
		t.Errorf("Tests() = %v", inv.Tests())
	}
}

func TestBuildInvocation_InvalidModule(t *testing.T) {
	_, err := BuildInvocation(&Config{Module: "../escape"})
	if err == nil {
		t.Fatal("BuildInvocation() expected error, got nil")
	}
}

func TestBuildOptions_ProducesWorkingRunner(t *testing.T) {
	work := t.TempDir()
	yaml := "addr: 127.0.0.1:0\nheadless: true\nwork_dir: " + work + "\nmodule: m\ntests: [a]\n"

	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}
	opts = append(opts, browserrun.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	r, err := browserrun.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.WorkDir() != work {
		t.Errorf("WorkDir() = %q, want %q", r.WorkDir(), work)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess, err := r.Spawn(ctx)
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	resp, err := http.Get(sess.URL())
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `id="console_log"`) {
		t.Error("headless config did not select the headless page")
	}

	script, err := os.ReadFile(filepath.Join(work, "run.js"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(script), "tests.push('a');") {
		t.Errorf("script missing test registration:\n%s", script)
	}
}

func TestBuildOptions_Discover(t *testing.T) {
	cfg := &Config{Addr: "127.0.0.1:0", WorkDir: t.TempDir(), ProjectDir: ".", Module: "m", Discover: true}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}
	r, err := browserrun.New(append(opts, browserrun.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// no binary in the work dir, so discovery must fail the spawn
	if _, err := r.Spawn(context.Background()); err == nil || !strings.Contains(err.Error(), "discover") {
		t.Errorf("Spawn() error = %v, want discovery failure", err)
	}
}
