package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "browserrun.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return p
}

func TestRunValidate_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
addr: 127.0.0.1:8000
headless: true
work_dir: /tmp/wbg
module: my_crate
args: [--filter, parser]
tests: [__wbgt_a_0, __wbgt_b_1]
`)

	output, err := executeCmd(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Addr:        127.0.0.1:8000",
		"Headless:    true",
		"Work dir:    /tmp/wbg",
		"Project dir: .",
		"Module:      my_crate (binary my_crate_bg.wasm)",
		"Args:        --filter parser",
		"Tests:       2",
	}
	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_DiscoverSummary(t *testing.T) {
	configPath := writeConfig(t, "work_dir: /tmp/wbg\nmodule: m\ndiscover: true\n")

	output, err := executeCmd(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}
	if !strings.Contains(output, "Tests:       discovered from binary") {
		t.Errorf("output missing discovery summary\nGot: %s", output)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "work_dir: /tmp/wbg\nmodule: m\ntests: [\"bad name\"]\n")

	_, err := executeCmd(t, "validate", "-c", configPath)
	if err == nil {
		t.Fatal("validate command expected error for invalid config, got nil")
	}
	if !strings.Contains(err.Error(), "invalid test name") {
		t.Errorf("error should mention 'invalid test name', got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := executeCmd(t, "validate", "-c", "/nonexistent/path/browserrun.yaml")
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}
