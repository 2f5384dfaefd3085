package reddit

import (
	"net/url"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// previewHosts serve downscaled proxy copies; the full-resolution image
// lives on i.redd.it or the external origin, so these are rejected as
// candidates.
var previewHosts = map[string]bool{
	"preview.redd.it":          true,
	"external-preview.redd.it": true,
}

// HasImageExtension reports whether the URL path ends in a recognized
// image extension. Query strings and fragments are ignored. A trailing
// .gifv counts as well since it is normalized to .gif on admission.
func HasImageExtension(rawURL string) bool {
	path := urlPath(rawURL)

	if strings.HasSuffix(path, ".gifv") {
		return true
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// NormalizeImageURL rewrites a trailing .gifv path extension to .gif.
// Other URLs pass through unchanged.
func NormalizeImageURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if strings.HasSuffix(strings.ToLower(rawURL), ".gifv") {
			return rawURL[:len(rawURL)-len(".gifv")] + ".gif"
		}
		return rawURL
	}

	if strings.HasSuffix(strings.ToLower(u.Path), ".gifv") {
		u.Path = u.Path[:len(u.Path)-len(".gifv")] + ".gif"
		return u.String()
	}
	return rawURL
}

// isPreviewURL reports whether the URL points at a known preview-proxy host
func isPreviewURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return previewHosts[u.Hostname()]
}

// urlPath returns the lowercased path component of a URL, falling back
// to stripping the query and fragment by hand when parsing fails.
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		trimmed := rawURL
		if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
			trimmed = trimmed[:i]
		}
		return strings.ToLower(trimmed)
	}
	return strings.ToLower(u.Path)
}
