package utils

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// UriToPath converts a "file://" URI to a filesystem path. Other strings are
// returned unchanged.
func UriToPath(u string) string {
	if !strings.HasPrefix(u, "file://") {
		return u
	}
	uu, err := url.Parse(u)
	if err != nil {
		return u
	}
	p := uu.Path
	// file:///C:/dir
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// PathToURI converts a filesystem path to a "file://" URI. Relative paths
// are resolved against the working directory.
func PathToURI(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// Appends a string to a slice only if it's not already present.
func AppendUnique(slice []string, v string) []string {
	if slices.Contains(slice, v) {
		return slice
	}
	return append(slice, v)
}
