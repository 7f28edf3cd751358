// Package browserrun serves a compiled wasm test module to a real browser.
//
// A test run is described by an [Invocation]: the base name of the JS glue
// module produced by the compiler, the runtime arguments to forward (usually
// test filters) and the test entry points to execute. A [Runner] turns it
// into a generated bootstrap script in the work directory and starts an HTTP
// server that a browser, or a browser automation driver, navigates to.
//
// # Quick Start
//
//	inv, _ := browserrun.NewInvocation("my_crate",
//	    browserrun.WithArgs("--filter", "parser"),
//	    browserrun.WithTests("__wbgt_parses_0"),
//	)
//	r, _ := browserrun.New(
//	    browserrun.WithInvocation(inv),
//	    browserrun.WithWorkDir("target/wbg-out"),
//	    browserrun.WithHeadless(true),
//	)
//
//	sess, _ := r.Spawn(ctx)
//	fmt.Println("open", sess.URL())
//
// # What is served
//
//   - "/" returns the embedded root page; the headless variant mirrors
//     console output into DOM elements so drivers can scrape it
//   - "/run.js" is the generated bootstrap script
//   - any other path is looked up in the work directory, then the project
//     directory, with ".js" inferred for extension-less ES module imports
//   - anything not found is a 404 with an empty body
//
// The generated script installs five global console hooks,
// on_console_debug, on_console_log, on_console_info, on_console_warn and
// on_console_error, which the root pages call for every console message.
//
// # Architecture
//
// browserrun consists of several internal packages (under internal/):
//
//   - internal/assets: path resolution across roots and Content-Type table
//   - internal/bootstrap: bootstrap script generation
//   - internal/server: request handler and connection-per-goroutine server
//   - internal/wasminspect: test discovery from wasm exports
//   - pages: embedded root pages
package browserrun
