// Package authz decides whether a request path is covered by a session's
// granted route patterns.
package authz

import "strings"

// Match reports whether a single pattern covers path. Three pattern kinds
// are supported: the universal wildcard ("*" or "/*"), a literal prefix with
// a trailing "*", and an exact path. Matching is case-sensitive.
func Match(pattern, path string) bool {
	if pattern == "*" || pattern == "/*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, pattern[:len(pattern)-1])
	}
	return path == pattern
}

// Authorized reports whether any pattern covers path. The bare root is
// normalized to /index.html first; no other canonicalization happens here
// (dot-segment resolution is the HTTP layer's job).
func Authorized(patterns []string, path string) bool {
	if path == "/" {
		path = "/index.html"
	}
	for _, p := range patterns {
		if Match(p, path) {
			return true
		}
	}
	return false
}
