// Package imgutil has small helpers for working with declared image MIME
// types.
package imgutil

import "strings"

// NormalizeType lower-cases a declared Content-Type and strips any
// parameters (e.g. "; charset=...").
func NormalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// IsAllowedType reports whether a declared Content-Type matches one of the
// allowed MIME types.
func IsAllowedType(contentType string, allowed []string) bool {
	ct := NormalizeType(contentType)
	for _, a := range allowed {
		if ct == strings.ToLower(a) {
			return true
		}
	}
	return false
}
