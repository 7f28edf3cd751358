// Package assets locates files requested by the browser and classifies
// them for the wire.
//
// A [Resolver] searches an ordered list of root directories using an ordered
// list of [Strategy] rewrites. The defaults search the exact request path
// first, then retry extension-less paths with ".js" appended, which is how
// browsers request ES module imports written without an extension.
//
// [ContentType] maps a resolved file's extension to its Content-Type value.
package assets
