// Package bootstrap generates the module script that the root page loads.
//
// The generated script imports the wasm-bindgen test module, initializes it
// from its "_bg.wasm" binary, installs the console forwarding hooks that the
// root pages call into, forwards the runtime arguments and runs the named
// tests in order. It is written once into the work directory as [ScriptName]
// before the server starts and is then served like any other file.
package bootstrap
