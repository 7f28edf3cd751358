package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

const (
	// ScriptName is the fixed file name of the generated script inside the
	// work directory. The root pages load it as "run.js".
	ScriptName = "run.js"

	// BinarySuffix is appended to the module name to form the binary
	// artifact's base name.
	BinarySuffix = "_bg"
)

// HookNames are the global console forwarding hooks, in severity order.
var HookNames = []string{
	"on_console_debug",
	"on_console_log",
	"on_console_info",
	"on_console_warn",
	"on_console_error",
}

var (
	// modulePattern accepts names usable as a single path segment.
	modulePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

	// testPattern accepts JavaScript identifiers, which is what wasm export
	// names look like when produced by the test macro.
	testPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Params holds the substitution points of the generated script.
type Params struct {
	// Module is the base name of the JS glue module; "<Module>_bg.wasm" is
	// the binary it loads.
	Module string

	// Args are forwarded verbatim to the test context.
	Args []string

	// Tests are the export names to run, in order.
	Tests []string
}

// ValidateModule reports whether name can be embedded as an import path
// segment.
func ValidateModule(name string) error {
	if !modulePattern.MatchString(name) {
		return fmt.Errorf("invalid module name %q: must match %s", name, modulePattern)
	}
	return nil
}

// ValidateTest reports whether name can be embedded as a quoted export name.
func ValidateTest(name string) error {
	if !testPattern.MatchString(name) {
		return fmt.Errorf("invalid test name %q: must be an identifier", name)
	}
	return nil
}

var scriptTemplate = template.Must(template.New(ScriptName).Parse(`
import {
    WasmBindgenTestContext as Context,
    __wbgtest_console_debug,
    __wbgtest_console_log,
    __wbgtest_console_info,
    __wbgtest_console_warn,
    __wbgtest_console_error,
    default as init,
} from './{{.Module}}';

// JS is running, so the wasm module is now being fetched asynchronously.
document.getElementById('output').textContent = "Loading wasm module...";

async function main(test) {
    const wasm = await init('./{{.Module}}{{.BinarySuffix}}.wasm');

    const cx = new Context();
    window.on_console_debug = __wbgtest_console_debug;
    window.on_console_log = __wbgtest_console_log;
    window.on_console_info = __wbgtest_console_info;
    window.on_console_warn = __wbgtest_console_warn;
    window.on_console_error = __wbgtest_console_error;

    // Runtime arguments, mostly test filters.
    cx.args({{.Args}});

    await cx.run(test.map(s => wasm[s]));
}

const tests = [];
{{range .Tests}}tests.push('{{.}}');
{{end}}main(tests);
`))

// Generate renders the bootstrap script for p.
//
// Module and test names are validated first; the argument list is encoded as
// a JSON string array, which is also a valid JavaScript array literal.
func Generate(p Params) (string, error) {
	if err := ValidateModule(p.Module); err != nil {
		return "", err
	}
	for _, name := range p.Tests {
		if err := ValidateTest(name); err != nil {
			return "", err
		}
	}

	args := p.Args
	if args == nil {
		args = []string{}
	}
	var encoded bytes.Buffer
	enc := json.NewEncoder(&encoded)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return "", fmt.Errorf("failed to encode args: %w", err)
	}

	var buf bytes.Buffer
	err := scriptTemplate.Execute(&buf, struct {
		Module       string
		BinarySuffix string
		Args         string
		Tests        []string
	}{
		Module:       p.Module,
		BinarySuffix: BinarySuffix,
		Args:         strings.TrimSuffix(encoded.String(), "\n"),
		Tests:        p.Tests,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", ScriptName, err)
	}
	return buf.String(), nil
}

// WriteScript writes script to [ScriptName] inside workDir and returns the
// path written.
func WriteScript(workDir, script string) (string, error) {
	p := filepath.Join(workDir, ScriptName)
	if err := os.WriteFile(p, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ScriptName, err)
	}
	return p, nil
}
