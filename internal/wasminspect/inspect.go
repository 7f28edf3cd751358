// Package wasminspect reads test entry points out of a compiled test binary.
//
// The test macro exports one function per test, named with [TestPrefix].
// Discovery compiles the module with wazero without instantiating it, so no
// imports need to be satisfied and no module code runs.
package wasminspect

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
)

// TestPrefix marks exported functions that are test entry points.
const TestPrefix = "__wbgt_"

// DiscoverTests returns the names of exported functions in wasm that start
// with prefix, sorted. An empty prefix returns every exported function.
func DiscoverTests(ctx context.Context, wasm []byte, prefix string) ([]string, error) {
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile wasm module: %w", err)
	}
	defer compiled.Close(ctx)

	var names []string
	for name := range compiled.ExportedFunctions() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadAndDiscover reads the wasm binary at path and returns its test entry
// points.
func ReadAndDiscover(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm module: %w", err)
	}
	names, err := DiscoverTests(ctx, data, TestPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}
