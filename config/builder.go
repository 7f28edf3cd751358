package config

import (
	"github.com/jpalmerr/browserrun"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The returned options include the invocation, addresses and directories;
// callers append their own (for example [browserrun.WithLogger]).
func BuildOptions(cfg *Config) ([]browserrun.Option, error) {
	inv, err := BuildInvocation(cfg)
	if err != nil {
		return nil, err
	}

	opts := []browserrun.Option{
		browserrun.WithInvocation(inv),
		browserrun.WithAddr(cfg.Addr),
		browserrun.WithHeadless(cfg.Headless),
		browserrun.WithWorkDir(cfg.WorkDir),
		browserrun.WithProjectDir(cfg.ProjectDir),
	}
	if cfg.Discover {
		opts = append(opts, browserrun.WithTestDiscovery())
	}
	return opts, nil
}

// BuildInvocation converts the module, args and tests of cfg into an
// [browserrun.Invocation].
func BuildInvocation(cfg *Config) (browserrun.Invocation, error) {
	var opts []browserrun.InvocationOption
	if len(cfg.Args) > 0 {
		opts = append(opts, browserrun.WithArgs(cfg.Args...))
	}
	if len(cfg.Tests) > 0 {
		opts = append(opts, browserrun.WithTests(cfg.Tests...))
	}
	return browserrun.NewInvocation(cfg.Module, opts...)
}
