package content

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultThumbnailWidth is used when a caller passes a non-positive width.
const DefaultThumbnailWidth = 800

// ThumbnailURL resolves an image reference for display.
// Absolute URLs and site paths are returned unchanged; anything else is
// treated as a Google Drive file id.
func ThumbnailURL(ref string, width int) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	if width <= 0 {
		width = DefaultThumbnailWidth
	}
	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w%d", url.QueryEscape(ref), width)
}
