package browserrun

import (
	"fmt"
	"slices"

	"github.com/jpalmerr/browserrun/internal/bootstrap"
)

// Invocation describes one test run: the module to load, the arguments to
// forward into the browser and the tests to execute.
//
// Invocation is immutable after creation via [NewInvocation]. Getters return
// copies of the underlying slices.
type Invocation struct {
	module string
	args   []string
	tests  []string
}

// InvocationOption configures an [Invocation] during construction.
type InvocationOption func(*Invocation) error

// NewInvocation creates an [Invocation] for the module named module.
//
// The module name is the base name of the generated JS glue file; the binary
// "<module>_bg.wasm" is loaded next to it. Module and test names are
// embedded into the generated script unquoted, so they are validated here:
// module names must be a single path segment of letters, digits, '_', '.'
// and '-', and test names must be identifiers.
//
// Example:
//
//	inv, err := browserrun.NewInvocation("my_crate",
//	    browserrun.WithArgs("--filter", "parser"),
//	    browserrun.WithTests("__wbgt_parses_0", "__wbgt_rejects_1"),
//	)
func NewInvocation(module string, opts ...InvocationOption) (Invocation, error) {
	if err := bootstrap.ValidateModule(module); err != nil {
		return Invocation{}, err
	}

	inv := Invocation{module: module}
	for _, opt := range opts {
		if err := opt(&inv); err != nil {
			return Invocation{}, err
		}
	}
	return inv, nil
}

// WithArgs appends runtime arguments forwarded verbatim to the in-browser
// test context. They are typically test filters.
func WithArgs(args ...string) InvocationOption {
	return func(inv *Invocation) error {
		inv.args = append(inv.args, args...)
		return nil
	}
}

// WithTests appends test entry points, run in the order given.
//
// Returns an error if any name is not an identifier or is already present.
func WithTests(names ...string) InvocationOption {
	return func(inv *Invocation) error {
		for _, name := range names {
			if err := bootstrap.ValidateTest(name); err != nil {
				return err
			}
			if slices.Contains(inv.tests, name) {
				return fmt.Errorf("duplicate test %q", name)
			}
			inv.tests = append(inv.tests, name)
		}
		return nil
	}
}

// Module returns the module base name.
func (inv Invocation) Module() string {
	return inv.module
}

// Args returns a copy of the runtime arguments.
func (inv Invocation) Args() []string {
	return copyStrings(inv.args)
}

// Tests returns a copy of the test names in run order.
func (inv Invocation) Tests() []string {
	return copyStrings(inv.tests)
}

// BinaryName returns the file name of the compiled binary artifact.
func (inv Invocation) BinaryName() string {
	return inv.module + bootstrap.BinarySuffix + ".wasm"
}

// params converts the invocation for the script generator.
func (inv Invocation) params() bootstrap.Params {
	return bootstrap.Params{
		Module: inv.module,
		Args:   inv.Args(),
		Tests:  inv.Tests(),
	}
}

// copyStrings returns a copy of s, or nil if s is nil.
func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
