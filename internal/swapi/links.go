package swapi

import (
	"net/url"
	"strings"
)

const insecurePrefix = "http://"

// Secure rewrites an http:// URL to https://. Other values pass through.
func Secure(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= len(insecurePrefix) && strings.EqualFold(trimmed[:len(insecurePrefix)], insecurePrefix) {
		return "https://" + trimmed[len(insecurePrefix):]
	}
	return trimmed
}

// ID returns the last non-empty path segment of a resource URL, so
// ".../people/1/" and ".../people/1" both yield "1".
func ID(raw string) string {
	path := strings.TrimSpace(raw)
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(segments[i]); seg != "" {
			return seg
		}
	}
	return ""
}
