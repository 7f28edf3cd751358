package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Strategy rewrites a cleaned, slash-separated request path (no leading "/")
// into a candidate path relative to a root. It returns false when it does not
// apply to the path.
type Strategy func(p string) (string, bool)

// Exact uses the request path unchanged.
func Exact(p string) (string, bool) {
	return p, true
}

// WithScriptExtension appends [ScriptExtension] to paths whose final segment
// has no extension.
func WithScriptExtension(p string) (string, bool) {
	if path.Ext(p) != "" {
		return "", false
	}
	return p + ScriptExtension, true
}

// File is a resolved asset. The caller owns the handle and must close it.
type File struct {
	// Path is the filesystem path that was opened.
	Path string

	*os.File
}

// ContentType returns the classified Content-Type of the resolved file.
func (f *File) ContentType() string {
	return ContentType(f.Path)
}

// Resolver finds request paths under a set of root directories.
//
// Strategies are tried in order; each strategy is tried against every root
// before moving to the next. The first candidate that opens as a regular file
// wins. A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	Roots      []string
	Strategies []Strategy
}

// NewResolver returns a [Resolver] over roots using the default strategies:
// [Exact], then [WithScriptExtension].
func NewResolver(roots ...string) *Resolver {
	return &Resolver{
		Roots:      roots,
		Strategies: []Strategy{Exact, WithScriptExtension},
	}
}

// Resolve locates requestPath. It returns false when no root holds a
// matching file; absence is an expected outcome, not an error.
//
// The request path is cleaned as a rooted path before joining, so ".."
// segments cannot climb above a root.
func (r *Resolver) Resolve(requestPath string) (*File, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
	if rel == "" {
		return nil, false
	}

	for _, strategy := range r.Strategies {
		candidate, ok := strategy(rel)
		if !ok {
			continue
		}
		for _, root := range r.Roots {
			if f, ok := openRegular(filepath.Join(root, filepath.FromSlash(candidate))); ok {
				return f, true
			}
		}
	}
	return nil, false
}

// openRegular opens p if it is a readable regular file.
func openRegular(p string) (*File, bool) {
	f, err := os.Open(p)
	if err != nil {
		return nil, false
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, false
	}
	return &File{Path: p, File: f}, true
}
