// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	// unsafeChars matches characters outside [A-Za-z0-9_].
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

	// underscoreRuns matches runs of consecutive underscores.
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFilename converts a URL or URL path segment into a safe local
// filename. It percent-decodes, strips directory components, replaces
// anything outside [A-Za-z0-9_] in the base name with underscores,
// collapses and trims the underscores, lowercases the result, and forces a
// .pdf extension regardless of the original one.
//
// The empty string means the input yields no usable name; callers must
// skip such documents rather than invent a fallback. The function is
// deterministic and idempotent.
func SanitizeFilename(segment string) string {
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}

	base := path.Base(segment)
	if base == "." || base == "/" {
		return ""
	}
	base = strings.TrimSuffix(base, path.Ext(base))

	base = unsafeChars.ReplaceAllString(base, "_")
	base = underscoreRuns.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		return ""
	}

	return strings.ToLower(base) + ".pdf"
}
