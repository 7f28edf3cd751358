// Package server provides the HTTP server that hosts a browser test run.
//
// This package is internal to browserrun and handles all HTTP concerns:
//
//   - Root page: "/" serves the embedded interactive or headless page
//   - Assets: any other path is resolved against the work directory, then
//     the project directory, with ".js" inferred for extension-less imports
//   - Everything else: 404 with an empty body
//
// Every accepted connection is handled on its own goroutine and carries
// exactly one request; keep-alives are disabled. The handler's state is
// fixed at construction and shared read-only by all connections.
//
// Users of the browserrun library should not need to interact with this
// package directly. The server is started by [browserrun.Runner.Spawn].
package server
