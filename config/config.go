// Package config provides YAML configuration parsing for browserrun.
//
// This package enables running browserrun as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	addr: 127.0.0.1:8000
//	headless: true
//	work_dir: ${WBG_OUT_DIR}
//	project_dir: .
//
//	module: my_crate
//	args: [--filter, parser]
//	tests:
//	  - __wbgt_parses_0
//	  - __wbgt_rejects_1
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/browserrun/internal/bootstrap"
)

const (
	defaultAddr       = "127.0.0.1:0"
	defaultProjectDir = "."
)

// Config is the root configuration structure for browserrun.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Addr is the TCP address to listen on. Defaults to 127.0.0.1:0.
	Addr string `yaml:"addr"`

	// Headless selects the root page that mirrors console output into the DOM.
	Headless bool `yaml:"headless"`

	// WorkDir holds the compiled module and receives the generated script.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	WorkDir string `yaml:"work_dir"`

	// ProjectDir is searched for assets missing from WorkDir. Defaults to ".".
	// Supports environment variable substitution.
	ProjectDir string `yaml:"project_dir"`

	// Module is the base name of the JS glue module.
	Module string `yaml:"module"`

	// Args are forwarded verbatim to the in-browser test context.
	// Values support environment variable substitution.
	Args []string `yaml:"args"`

	// Tests are the entry points to run, in order.
	Tests []string `yaml:"tests"`

	// Discover reads the tests from the binary's exports when Tests is empty.
	Discover bool `yaml:"discover"`
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads, parses and validates a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads a YAML configuration file and expands environment variables
// without validating it. Callers that layer other settings on top (such as
// command-line flags) use Read, then call [Config.Validate] once.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Decode(data)
}

// Parse parses and validates YAML configuration data.
//
// Environment variables are expanded in WorkDir, ProjectDir and Args.
// Defaults are applied for Addr (127.0.0.1:0) and ProjectDir (".").
func Parse(data []byte) (*Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses YAML configuration data and expands environment variables
// in WorkDir, ProjectDir and Args. It does not apply defaults or validate.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.expandEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandEnv expands environment variables in place. It runs once per
// decoded file so expanded values are never expanded again.
func (c *Config) expandEnv() error {
	expanded, err := expandEnvVars(c.WorkDir)
	if err != nil {
		return fmt.Errorf("work_dir: %w", err)
	}
	c.WorkDir = expanded

	expanded, err = expandEnvVars(c.ProjectDir)
	if err != nil {
		return fmt.Errorf("project_dir: %w", err)
	}
	c.ProjectDir = expanded

	for i, arg := range c.Args {
		expanded, err := expandEnvVars(arg)
		if err != nil {
			return fmt.Errorf("args[%d]: %w", i, err)
		}
		c.Args[i] = expanded
	}
	return nil
}

// Validate applies defaults and validates c. It does not expand environment
// variables; values are taken as they are.
//
// [Parse] and [Load] call Validate; callers assembling a Config by hand (for
// example from command-line flags) must call it before [BuildOptions].
func (c *Config) Validate() error {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.ProjectDir == "" {
		c.ProjectDir = defaultProjectDir
	}

	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("addr: invalid address %q: %w", c.Addr, err)
	}

	if c.WorkDir == "" {
		return errors.New("work_dir is required")
	}

	if c.Module == "" {
		return errors.New("module is required")
	}
	if err := bootstrap.ValidateModule(c.Module); err != nil {
		return fmt.Errorf("module: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Tests))
	for i, name := range c.Tests {
		if err := bootstrap.ValidateTest(name); err != nil {
			return fmt.Errorf("tests[%d]: %w", i, err)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("tests[%d]: duplicate test %q", i, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
