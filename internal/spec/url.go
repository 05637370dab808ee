package spec

import (
	"regexp"
	"strings"
)

// schemePrefix matches a url scheme followed by "://".
var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\d+\-.]*://`)

// NormaliseURL defaults the scheme of a user supplied url to https.
//
// Input that already has a "scheme://" prefix is returned as is (trimmed), input
// beginning with "//" is given "https:" and anything else is given "https://".
// Empty input stays empty.
func NormaliseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return ""
	case schemePrefix.MatchString(trimmed):
		return trimmed
	case strings.HasPrefix(trimmed, "//"):
		return "https:" + trimmed
	default:
		return "https://" + trimmed
	}
}
