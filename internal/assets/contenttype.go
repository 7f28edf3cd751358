package assets

import "path/filepath"

const (
	// ScriptExtension is appended to extension-less module import paths.
	ScriptExtension = ".js"

	// WasmExtension is the extension of the compiled binary artifact.
	WasmExtension = ".wasm"

	// HTMLExtension is the extension of markup pages.
	HTMLExtension = ".html"

	// DefaultContentType is returned for any extension not in the table.
	DefaultContentType = "application/octet-stream"
)

var contentTypes = map[string]string{
	ScriptExtension: "text/javascript",
	WasmExtension:   "application/wasm",
	HTMLExtension:   "text/html",
}

// ContentType returns the Content-Type for a file path based solely on its
// extension. Unknown or missing extensions map to [DefaultContentType].
func ContentType(path string) string {
	if ct, ok := contentTypes[filepath.Ext(path)]; ok {
		return ct
	}
	return DefaultContentType
}
