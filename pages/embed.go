// Package pages provides the embedded root pages served at "/".
//
// Two variants exist. The interactive page leaves console output in the
// browser's native console. The headless page additionally appends every
// console message to a DOM element so an automated driver without access to
// the console can scrape it. Both pages load the generated "run.js" module
// and forward console calls to the hooks that script installs.
package pages

import (
	"embed"
	"io/fs"
)

//go:embed assets/*
var Assets embed.FS

const (
	interactivePath = "assets/index.html"
	headlessPath    = "assets/index-headless.html"
)

// Index returns the root page for the given mode.
func Index(headless bool) ([]byte, error) {
	if headless {
		return fs.ReadFile(Assets, headlessPath)
	}
	return fs.ReadFile(Assets, interactivePath)
}
