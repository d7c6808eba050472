// Package images normalizes user-supplied image URLs before they are
// persisted, so listings render from one canonical storage host.
package images

import (
	"net/url"
	"strings"
)

const (
	// storageHost is the canonical public image host.
	storageHost = "storage.omahub.com"

	// legacyStorageHost predates the CDN move; links to it still work but new
	// writes are rewritten.
	legacyStorageHost = "omahub-images.s3.amazonaws.com"
)

// Normalize canonicalizes a single image URL:
//
//   - leading/trailing whitespace is trimmed;
//   - bare storage paths ("brands/x.jpg") are anchored to the storage host;
//   - http is upgraded to https;
//   - the legacy S3 host is rewritten to the storage host;
//   - signed-URL query strings on storage URLs are dropped (they expire).
//
// URLs that do not parse are returned trimmed but otherwise untouched;
// rejecting them is the caller's call, not this helper's.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		return "https://" + storageHost + "/" + strings.TrimPrefix(raw, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	if strings.EqualFold(u.Host, legacyStorageHost) {
		u.Host = storageHost
	}
	if strings.EqualFold(u.Host, storageHost) {
		u.RawQuery = ""
		u.Fragment = ""
	}
	return u.String()
}

// LeadImage picks the display image for a listing from a gallery: the first
// entry that normalizes to a non-empty URL wins.
func LeadImage(gallery []string) string {
	for _, raw := range gallery {
		if img := Normalize(raw); img != "" {
			return img
		}
	}
	return ""
}
